package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeFocusUnreachable, "widget not reachable")

	if err == nil {
		t.Fatal("New should return non-nil error")
	}

	if err.Code != ErrCodeFocusUnreachable {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeFocusUnreachable)
	}

	if err.Message != "widget not reachable" {
		t.Errorf("Message = %v, want 'widget not reachable'", err.Message)
	}

	if err.Underlying != nil {
		t.Error("Underlying should be nil for New error")
	}

	if len(err.Stack) == 0 {
		t.Error("Stack should be captured")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ErrCodeTreeInvalid, "parent %d is not a container", 7)
	if err.Message != "parent 7 is not a container" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	underlying := errors.New("original error")
	err := Wrap(underlying, ErrCodeConfigLoad, "failed to read config")

	if err == nil {
		t.Fatal("Wrap should return non-nil error")
	}

	if err.Underlying != underlying {
		t.Error("Underlying should be preserved")
	}

	if !strings.Contains(err.Error(), "original error") {
		t.Error("Error string should include underlying error")
	}

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should see the underlying error")
	}
}

func TestWrap_Nil(t *testing.T) {
	err := Wrap(nil, ErrCodeInternal, "test")

	if err != nil {
		t.Error("Wrap of nil should return nil")
	}
}

func TestWithContext_SortedOutput(t *testing.T) {
	err := New(ErrCodeLayoutConstraint, "insufficient space").
		WithContext("required", 12).
		WithContext("available", 10).
		WithContext("node", "sidebar")

	want := "[LAYOUT_CONSTRAINT] insufficient space {available: 10, node: sidebar, required: 12}"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsCode(t *testing.T) {
	err := New(ErrCodeLayoutConstraint, "no room")

	if !IsCode(err, ErrCodeLayoutConstraint) {
		t.Error("IsCode should return true for matching code")
	}

	if IsCode(err, ErrCodeFocusUnreachable) {
		t.Error("IsCode should return false for non-matching code")
	}

	if IsCode(nil, ErrCodeLayoutConstraint) {
		t.Error("IsCode should return false for nil error")
	}

	wrapped := fmt.Errorf("arrange root: %w", err)
	if !IsCode(wrapped, ErrCodeLayoutConstraint) {
		t.Error("IsCode should look through fmt.Errorf wrapping")
	}

	if IsCode(errors.New("standard error"), ErrCodeInternal) {
		t.Error("IsCode should return false for unstructured errors")
	}
}

func TestGetCode(t *testing.T) {
	if code := GetCode(New(ErrCodeKeymapInvalid, "bad")); code != ErrCodeKeymapInvalid {
		t.Errorf("GetCode = %v, want %v", code, ErrCodeKeymapInvalid)
	}

	if GetCode(nil) != "" {
		t.Error("GetCode should return empty string for nil")
	}

	if GetCode(errors.New("standard")) != ErrCodeInternal {
		t.Error("GetCode should return ErrCodeInternal for unstructured errors")
	}
}

func TestStackTrace(t *testing.T) {
	err := New(ErrCodeInternal, "test error")

	trace := err.StackTrace()
	if !strings.Contains(trace, "Stack trace:") {
		t.Error("StackTrace should contain header")
	}

	found := false
	for _, frame := range err.Stack {
		if strings.Contains(frame.Function, "TestStackTrace") {
			found = true
			break
		}
	}
	if !found {
		t.Error("Stack should contain the calling test frame")
	}
}

func TestStack_StartsAtCaller(t *testing.T) {
	for name, err := range map[string]*Error{
		"New":  New(ErrCodeInternal, "x"),
		"Newf": Newf(ErrCodeInternal, "%s", "x"),
		"Wrap": Wrap(errors.New("x"), ErrCodeInternal, "y"),
	} {
		if len(err.Stack) == 0 {
			t.Fatalf("%s: empty stack", name)
		}
		if top := err.Stack[0]; !strings.Contains(top.Function, "TestStack_StartsAtCaller") || top.Line == 0 {
			t.Errorf("%s: top frame = %s:%d, want the calling test", name, top.Function, top.Line)
		}
	}
}
