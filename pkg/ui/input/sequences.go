// Package input decodes raw terminal input codes into logical key tokens.
//
// Escape sequences are looked up in a trie. A node may carry a token (the
// sequence is complete), children (more codes are expected) and a timeout
// token used when the sequence stalls at that node.
package input

import (
	"fmt"

	apperrors "github.com/dcrosta/dtk-sub000/pkg/errors"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
)

type node struct {
	children map[terminal.Code]*node
	token    terminal.Token
	timeout  terminal.Token
}

func (n *node) child(c terminal.Code) *node {
	if n.children == nil {
		return nil
	}
	return n.children[c]
}

func (n *node) ensure(c terminal.Code) *node {
	if n.children == nil {
		n.children = make(map[terminal.Code]*node)
	}
	next, ok := n.children[c]
	if !ok {
		next = &node{}
		n.children[c] = next
	}
	return next
}

// Sequences is the lookup table a Decoder walks.
type Sequences struct {
	root *node
	size int
}

// NewSequences returns an empty table.
func NewSequences() *Sequences {
	return &Sequences{root: &node{}}
}

// Add maps a complete raw sequence to a token. Re-adding a sequence replaces
// its token. A sequence may not be a prefix of another one; use AddTimeout
// for keys that are both complete on their own and the start of longer
// sequences (a lone ESC).
func (s *Sequences) Add(seq string, tok terminal.Token) error {
	codes := terminal.Codes(seq)
	if len(codes) == 0 || tok == terminal.TokenNone {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "sequence and token must be non-empty").
			WithContext("token", string(tok))
	}

	n := s.root
	for i, c := range codes {
		n = n.ensure(c)
		if n.token != terminal.TokenNone && i < len(codes)-1 {
			return conflict(seq, tok, "prefix already maps to "+string(n.token))
		}
	}
	if len(n.children) > 0 {
		return conflict(seq, tok, "sequence is a prefix of a longer entry")
	}
	if n.token == terminal.TokenNone {
		s.size++
	}
	n.token = tok
	return nil
}

// AddTimeout sets the token produced when input stops after prefix.
func (s *Sequences) AddTimeout(prefix string, tok terminal.Token) error {
	codes := terminal.Codes(prefix)
	if len(codes) == 0 || tok == terminal.TokenNone {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "prefix and token must be non-empty").
			WithContext("token", string(tok))
	}
	n := s.root
	for _, c := range codes {
		n = n.ensure(c)
		if n.token != terminal.TokenNone {
			return conflict(prefix, tok, "prefix already maps to "+string(n.token))
		}
	}
	n.timeout = tok
	return nil
}

// Len reports the number of complete sequences.
func (s *Sequences) Len() int {
	return s.size
}

// Lookup returns the token a complete sequence maps to.
func (s *Sequences) Lookup(seq string) (terminal.Token, bool) {
	n := s.root
	for _, c := range terminal.Codes(seq) {
		if n = n.child(c); n == nil {
			return terminal.TokenNone, false
		}
	}
	return n.token, n.token != terminal.TokenNone
}

func conflict(seq string, tok terminal.Token, msg string) error {
	return apperrors.New(apperrors.ErrCodeInvalidInput, msg).
		WithContext("sequence", fmt.Sprintf("%q", seq)).
		WithContext("token", string(tok))
}

// DefaultSequences returns control codes, a lone ESC and the xterm/VT
// encodings of named keys.
func DefaultSequences() *Sequences {
	s := NewSequences()
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	for c := terminal.Code(0x01); c <= 0x1a; c++ {
		switch c {
		case terminal.CodeTab, terminal.CodeCR, terminal.CodeBackspace:
			continue
		}
		must(s.Add(string(rune(c)), terminal.Ctrl(rune('a'+c-1))))
	}
	must(s.Add("\t", terminal.KeyTab))
	must(s.Add("\r", terminal.KeyEnter))
	must(s.Add("\b", terminal.KeyBackspace))
	must(s.Add("\x7f", terminal.KeyBackspace))
	must(s.Add("\x00", "ctrl-space"))
	must(s.Add(" ", terminal.KeySpace))
	must(s.Add("\x1c", `ctrl-\`))
	must(s.Add("\x1d", "ctrl-]"))
	must(s.Add("\x1e", "ctrl-^"))
	must(s.Add("\x1f", "ctrl-_"))

	for tok, seq := range terminal.Xterm {
		must(s.Add(seq, tok))
	}
	for seq, tok := range terminal.XtermAlternates {
		must(s.Add(seq, tok))
	}

	must(s.AddTimeout("\x1b", terminal.KeyEscape))
	must(s.AddTimeout("\x1b[", terminal.Alt('[')))
	must(s.AddTimeout("\x1bO", terminal.Alt('O')))
	return s
}

// Extend adds user sequences (raw sequence to key name) on top of s.
func (s *Sequences) Extend(extra map[string]string) error {
	for seq, name := range extra {
		if err := s.Add(seq, terminal.Normalize(name)); err != nil {
			return err
		}
	}
	return nil
}
