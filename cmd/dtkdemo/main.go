// Command dtkdemo runs a small form on the toolkit runtime.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dcrosta/dtk-sub000/pkg/config"
	apperrors "github.com/dcrosta/dtk-sub000/pkg/errors"
	"github.com/dcrosta/dtk-sub000/pkg/logging"
	"github.com/dcrosta/dtk-sub000/pkg/telemetry"
	"github.com/dcrosta/dtk-sub000/pkg/ui/backend"
	"github.com/dcrosta/dtk-sub000/pkg/ui/backend/sim"
	"github.com/dcrosta/dtk-sub000/pkg/ui/backend/tcell"
	"github.com/dcrosta/dtk-sub000/pkg/ui/input"
	"github.com/dcrosta/dtk-sub000/pkg/ui/keybind"
	"github.com/dcrosta/dtk-sub000/pkg/ui/keymap"
	"github.com/dcrosta/dtk-sub000/pkg/ui/runtime"
	"github.com/dcrosta/dtk-sub000/pkg/ui/theme"
)

// Version information - set via ldflags during build
var version = "0.1.0-dev"

// Sim backend size.
const (
	simRows = 24
	simCols = 80
)

type flags struct {
	configPath string
	backend    string
	keymapPath string
	traceFile  string
	metrics    bool
	script     string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "dtkdemo:", err)
		os.Exit(exitCodeForError(err))
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	root := &cobra.Command{
		Use:           "dtkdemo",
		Short:         "Run the terminal toolkit demo",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&f.configPath, "config", "", "Config file (default ~/.config/dtk/config.yaml)")
	root.Flags().StringVar(&f.backend, "backend", "", "Screen backend: tcell, tty or sim")
	root.Flags().StringVar(&f.keymapPath, "keymap", "", "TOML keymap applied over the defaults")
	root.Flags().StringVar(&f.traceFile, "trace-file", "", "Write OpenTelemetry spans as JSON to this file")
	root.Flags().BoolVar(&f.metrics, "metrics", false, "Print a metrics summary on exit")
	root.Flags().StringVar(&f.script, "script", "", "Quoted input fed to the sim backend, ending with ctrl-q, e.g. \"bob\\r\"")

	root.AddCommand(newKeymapCmd())
	return root
}

// newKeymapCmd prints the default bindings in keymap file form.
func newKeymapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keymap",
		Short: "Print the default keymap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			screen := sim.New(simRows, simCols)
			c := runtime.NewContext(screen, runtime.Options{Logger: logging.Nop()})
			if _, err := newDemo(c, theme.DefaultTheme()); err != nil {
				return err
			}
			return keymap.Export(cmd.OutOrStdout(), map[string]*keybind.Table{"global": c.Globals()})
		},
	}
}

func loadConfig(f flags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFromPath(f.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if f.backend != "" {
		cfg.UI.Backend = f.backend
	}
	if f.keymapPath != "" {
		cfg.Keymap.Path = f.keymapPath
	}
	if f.traceFile != "" {
		cfg.Telemetry.TraceFile = f.traceFile
	}
	if f.metrics {
		cfg.Telemetry.MetricsOnExit = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newBackend(name string) (backend.Backend, error) {
	switch name {
	case "sim":
		return sim.New(simRows, simCols), nil
	case "tty":
		return newTTYBackend()
	default:
		return tcell.New()
	}
}

func run(ctx context.Context, f flags, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	sessionID := uuid.NewString()
	logger, err := logging.NewLogger(cfg.LogDir(), sessionID)
	if err != nil {
		logger = logging.Nop()
	}
	defer logger.Close()
	logger.SetMinLevel(cfg.LogLevel())

	err = runSession(ctx, f, cfg, logger, sessionID, stdout)
	if err != nil {
		_ = logger.Error(logging.CategoryApp, "exit", err.Error(), map[string]any{
			"code": string(apperrors.GetCode(err)),
		})
		reportErrors(stderr, logger, recentErrors)
	}
	return err
}

// recentErrors is how many error events a failed run prints.
const recentErrors = 5

// reportErrors prints the last error events this session logged.
func reportErrors(w io.Writer, logger *logging.Logger, count int) {
	path := logger.ErrorLogPath()
	if path == "" {
		return
	}
	// other sessions share the file
	events, err := logging.ReadRecentEvents(path, count*10)
	if err != nil {
		return
	}
	var own []logging.Event
	for _, ev := range events {
		if ev.SessionID == logger.SessionID() {
			own = append(own, ev)
		}
	}
	if len(own) > count {
		own = own[len(own)-count:]
	}
	if len(own) == 0 {
		return
	}
	fmt.Fprintf(w, "recent errors (%s):\n", path)
	for _, ev := range own {
		fmt.Fprintf(w, "  %s %s/%s: %s\n", ev.Timestamp.Format(time.TimeOnly), ev.Category, ev.EventType, ev.Message)
	}
}

func runSession(ctx context.Context, f flags, cfg *config.Config, logger *logging.Logger, sessionID string, stdout io.Writer) error {
	if cfg.Telemetry.TraceFile != "" {
		out, err := os.Create(cfg.Telemetry.TraceFile)
		if err != nil {
			return fmt.Errorf("open trace file: %w", err)
		}
		defer out.Close()
		tp, err := telemetry.NewTracerProvider(out, "dtkdemo", sessionID)
		if err != nil {
			return err
		}
		defer tp.Shutdown(context.Background())
	}
	metrics := telemetry.NewMetrics(prometheus.NewRegistry())

	th, err := theme.Lookup(cfg.UI.Theme)
	if err != nil {
		return err
	}
	seqs := input.DefaultSequences()
	if err := seqs.Extend(cfg.Input.Sequences); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeConfigInvalid, "bad input.sequences")
	}

	screen, err := newBackend(cfg.UI.Backend)
	if err != nil {
		return err
	}
	if s, ok := screen.(*sim.Backend); ok && f.script != "" {
		script, err := strconv.Unquote(`"` + f.script + `"`)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "bad --script")
		}
		s.InjectString(script)
		s.InjectCodes(0x11)
	}
	if err := screen.Init(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeBackendInit, "failed to initialize screen").
			WithContext("backend", cfg.UI.Backend)
	}
	fini := sync.OnceFunc(screen.Fini)
	defer fini()

	c := runtime.NewContext(screen, runtime.Options{
		Sequences:      seqs,
		DecoderOptions: []input.Option{input.WithAltKeys(cfg.Input.AltKeys)},
		Logger:         logger,
		Metrics:        metrics,
		Tick:           cfg.UI.Tick,
		EscapeTimeout:  cfg.UI.EscapeTimeout,
		MaxFPS:         cfg.UI.MaxFPS,
	})
	d, err := newDemo(c, th)
	if err != nil {
		return err
	}
	if path := cfg.KeymapPath(); path != "" {
		if err := d.loadKeymap(path); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return produceTicks(gctx, c.Queue(), clockInterval) })
	if cfg.Keymap.Watch {
		w, err := keymap.NewWatcher(cfg.KeymapPath(), c.Queue(), logger)
		if err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
		g.Go(func() error { return w.Run(gctx) })
	}

	runErr := d.Run(ctx)
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	cancel()
	if err := g.Wait(); err != nil && runErr == nil {
		runErr = err
	}
	c.Queue().Close()

	// the simulation screen drops its contents on Fini
	var final string
	if s, ok := screen.(*sim.Backend); ok {
		final = s.CaptureTrimmed()
	}
	fini()
	if final != "" {
		fmt.Fprintln(stdout, final)
	}
	if cfg.Telemetry.MetricsOnExit {
		if err := metrics.WriteSummary(stdout); err != nil && runErr == nil {
			runErr = err
		}
	}
	return runErr
}
