package main

import (
	"errors"

	apperrors "github.com/dcrosta/dtk-sub000/pkg/errors"
)

const (
	exitFailure = 1
	exitConfig  = 2
	exitBackend = 3
)

type exitCoder interface {
	ExitCode() int
}

type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e exitError) Unwrap() error {
	return e.err
}

func (e exitError) ExitCode() int {
	if e.code == 0 {
		return exitFailure
	}
	return e.code
}

func withExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return exitError{code: code, err: err}
}

// exitCodeForError maps coded errors onto process exit codes.
func exitCodeForError(err error) int {
	if err == nil {
		return 0
	}
	var coded exitCoder
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeConfigLoad, apperrors.ErrCodeConfigParse, apperrors.ErrCodeConfigInvalid,
		apperrors.ErrCodeKeymapLoad, apperrors.ErrCodeKeymapInvalid:
		return exitConfig
	case apperrors.ErrCodeBackendInit:
		return exitBackend
	}
	return exitFailure
}
