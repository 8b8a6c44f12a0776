package runtime

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/dcrosta/dtk-sub000/pkg/logging"
	"github.com/dcrosta/dtk-sub000/pkg/telemetry"
	"github.com/dcrosta/dtk-sub000/pkg/ui/backend"
	"github.com/dcrosta/dtk-sub000/pkg/ui/eventq"
	"github.com/dcrosta/dtk-sub000/pkg/ui/input"
	"github.com/dcrosta/dtk-sub000/pkg/ui/keybind"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
)

// Default loop timing.
const (
	DefaultTick          = 50 * time.Millisecond
	DefaultEscapeTimeout = 25 * time.Millisecond
)

// Options configures a Context. Zero values select defaults.
type Options struct {
	// Decoder is used as is when set. Otherwise one is built from
	// Sequences (the default table when nil) and DecoderOptions, with alt
	// keys on and failures counted in Metrics.
	Decoder        *input.Decoder
	Sequences      *input.Sequences
	DecoderOptions []input.Option

	Queue   *eventq.Queue
	Logger  *logging.Logger
	Metrics *telemetry.Metrics

	// Tick bounds how long a loop waits for input each iteration.
	Tick time.Duration
	// EscapeTimeout bounds the wait between codes of one sequence.
	EscapeTimeout time.Duration
	// MaxFPS caps flushed frames per second; 0 disables the cap.
	MaxFPS int
}

// EventHandler applies a queued event on the loop goroutine.
type EventHandler func(ev eventq.Event)

// Context is shared by a top-level loop and every modal loop nested in
// it: screen, decoder, event queue, global bindings and the quit flag.
type Context struct {
	screen   backend.Screen
	decoder  *input.Decoder
	queue    *eventq.Queue
	globals  *keybind.Table
	handlers map[string]EventHandler

	log     *logging.Logger
	metrics *telemetry.Metrics
	limiter *rate.Limiter

	tick    time.Duration
	escWait time.Duration

	quit  bool
	loops []*Loop
}

// NewContext returns a context drawing to screen.
func NewContext(screen backend.Screen, opts Options) *Context {
	c := &Context{
		screen:   screen,
		decoder:  opts.Decoder,
		queue:    opts.Queue,
		globals:  keybind.NewTable(),
		handlers: make(map[string]EventHandler),
		log:      opts.Logger,
		metrics:  opts.Metrics,
		tick:     opts.Tick,
		escWait:  opts.EscapeTimeout,
	}
	if c.decoder == nil {
		dopts := append([]input.Option{input.WithAltKeys(true)}, opts.DecoderOptions...)
		dopts = append(dopts, input.WithFailureHook(c.decodeFailed))
		c.decoder = input.NewDecoder(opts.Sequences, dopts...)
	}
	if c.queue == nil {
		c.queue = eventq.New()
	}
	if c.tick <= 0 {
		c.tick = DefaultTick
	}
	if c.escWait <= 0 {
		c.escWait = DefaultEscapeTimeout
	}
	if opts.MaxFPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.MaxFPS), 1)
	}
	return c
}

func (c *Context) decodeFailed(codes []terminal.Code) {
	c.metrics.DecodeFailed()
	c.log.Debug(logging.CategoryInput, "decode_failed", "discarded unrecognized input", map[string]any{
		"codes": len(codes),
	})
}

func (c *Context) Screen() backend.Screen { return c.screen }

func (c *Context) Queue() *eventq.Queue { return c.queue }

func (c *Context) Decoder() *input.Decoder { return c.decoder }

func (c *Context) Logger() *logging.Logger { return c.log }

func (c *Context) Metrics() *telemetry.Metrics { return c.metrics }

// Globals are tried after the active path of whichever loop is running,
// so a global quit works inside dialogs too.
func (c *Context) Globals() *keybind.Table { return c.globals }

// Handle registers the handler for queued events of eventType. The
// well-known types key, invoke, redraw and quit are handled by the loop.
func (c *Context) Handle(eventType string, fn EventHandler) {
	if fn == nil {
		delete(c.handlers, eventType)
		return
	}
	c.handlers[eventType] = fn
}

// Quit ends every running loop.
func (c *Context) Quit() {
	c.quit = true
}

func (c *Context) Quitting() bool { return c.quit }

// Depth reports how many loops are running: 1 inside the top-level loop,
// one more per open modal.
func (c *Context) Depth() int { return len(c.loops) }

// Current returns the innermost running loop, nil if none is running.
func (c *Context) Current() *Loop {
	if len(c.loops) == 0 {
		return nil
	}
	return c.loops[len(c.loops)-1]
}

// NewLoop returns a full-screen loop over tree without running it.
func (c *Context) NewLoop(tree *Tree) *Loop {
	return newLoop(c, tree, false)
}

// Run runs a full-screen loop over tree until it or the context quits, or
// ctx is done.
func (c *Context) Run(ctx context.Context, tree *Tree) error {
	return c.NewLoop(tree).Run(ctx)
}

// RunModal runs a nested loop over tree, a separate tree with its own
// focus state, centered at its measured extent. The calling loop is
// suspended until the modal quits; then it is rearranged and repainted
// completely.
func (c *Context) RunModal(ctx context.Context, tree *Tree) error {
	outer := c.Current()
	depth := c.Depth() + 1

	ctx, span := telemetry.StartSpan(ctx, "modal")
	defer span.End()
	span.SetAttributes(telemetry.AttrDepth.Int(depth))
	if root := tree.Root(); root != NoID {
		span.SetAttributes(telemetry.AttrNode.String(tree.Name(root)))
	}

	c.log.Info(logging.CategoryModal, "modal_enter", "modal loop started", map[string]any{"depth": depth})
	err := newLoop(c, tree, true).Run(ctx)
	c.log.Info(logging.CategoryModal, "modal_exit", "modal loop finished", map[string]any{"depth": depth})
	telemetry.RecordError(ctx, err)

	if outer != nil {
		outer.Invalidate()
	}
	return err
}

func (c *Context) push(l *Loop) {
	c.loops = append(c.loops, l)
	c.metrics.SetModalDepth(len(c.loops))
}

func (c *Context) pop() {
	c.loops[len(c.loops)-1] = nil
	c.loops = c.loops[:len(c.loops)-1]
	c.metrics.SetModalDepth(len(c.loops))
}
