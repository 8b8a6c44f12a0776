package input

import (
	"time"

	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
)

// CodeSource yields raw codes with a bounded wait. backend.Screen satisfies
// it.
type CodeSource interface {
	ReadRawInputCode(timeout time.Duration) (terminal.Code, bool)
}

// Decoder turns a stream of raw codes into tokens. It is not safe for
// concurrent use; the render loop owns it.
type Decoder struct {
	seqs    *Sequences
	cur     *node
	buf     []terminal.Code
	altKeys bool
	onFail  func([]terminal.Code)
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithAltKeys decodes ESC followed by a printable code that starts no
// sequence as alt-<char>.
func WithAltKeys(enabled bool) Option {
	return func(d *Decoder) { d.altKeys = enabled }
}

// WithFailureHook is called with the discarded codes whenever a sequence
// is unrecognized or stalls without a timeout token.
func WithFailureHook(fn func(codes []terminal.Code)) Option {
	return func(d *Decoder) { d.onFail = fn }
}

// NewDecoder returns a decoder over seqs, or DefaultSequences when nil.
func NewDecoder(seqs *Sequences, opts ...Option) *Decoder {
	if seqs == nil {
		seqs = DefaultSequences()
	}
	d := &Decoder{seqs: seqs, cur: seqs.root}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Pending reports whether a partial sequence is buffered.
func (d *Decoder) Pending() bool {
	return d.cur != d.seqs.root
}

// Buffered returns a copy of the codes of the partial sequence.
func (d *Decoder) Buffered() []terminal.Code {
	return append([]terminal.Code(nil), d.buf...)
}

// Feed consumes one code. It returns a token when a key is complete.
func (d *Decoder) Feed(code terminal.Code) (terminal.Token, bool) {
	if !d.Pending() && code.IsPrintable() && d.cur.child(code) == nil {
		return terminal.Rune(rune(code)), true
	}

	next := d.cur.child(code)
	if next == nil {
		if d.altKeys && d.loneEscape() && code.IsPrintable() {
			d.reset()
			return terminal.Alt(rune(code)), true
		}
		restart := d.seqs.root.child(code)
		if d.loneEscape() && restart != nil && restart.token == terminal.TokenNone {
			// The escape stands alone and code begins a new sequence.
			esc := d.cur.timeout
			d.reset()
			d.cur = restart
			d.buf = append(d.buf, code)
			return esc, esc != terminal.TokenNone
		}
		d.buf = append(d.buf, code)
		d.fail()
		return terminal.TokenNone, false
	}

	if next.token != terminal.TokenNone {
		d.reset()
		return next.token, true
	}
	d.cur = next
	d.buf = append(d.buf, code)
	return terminal.TokenNone, false
}

// Expire tells the decoder no further code arrived in time. A buffered
// prefix resolves to its timeout token if it has one; otherwise it is
// discarded.
func (d *Decoder) Expire() (terminal.Token, bool) {
	if !d.Pending() {
		return terminal.TokenNone, false
	}
	if tok := d.cur.timeout; tok != terminal.TokenNone {
		d.reset()
		return tok, true
	}
	d.fail()
	return terminal.TokenNone, false
}

// Read decodes at most one token from src. It waits up to wait for the
// first code and up to escWait for each following code of a sequence.
func (d *Decoder) Read(src CodeSource, wait, escWait time.Duration) (terminal.Token, bool) {
	for {
		timeout := wait
		if d.Pending() {
			timeout = escWait
		}
		code, ok := src.ReadRawInputCode(timeout)
		if !ok {
			return d.Expire()
		}
		if tok, ok := d.Feed(code); ok {
			return tok, true
		}
		if !d.Pending() {
			return terminal.TokenNone, false
		}
	}
}

func (d *Decoder) loneEscape() bool {
	return len(d.buf) == 1 && d.buf[0] == terminal.CodeEscape
}

func (d *Decoder) fail() {
	if d.onFail != nil {
		d.onFail(d.Buffered())
	}
	d.reset()
}

func (d *Decoder) reset() {
	d.cur = d.seqs.root
	d.buf = d.buf[:0]
}
