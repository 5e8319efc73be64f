// Package cli wires the picker together behind the cmenu command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"cmenu/internal/config"
	"cmenu/internal/entries"
	"cmenu/internal/logging"
	"cmenu/internal/output"
	"cmenu/internal/session"
	"cmenu/internal/terminal"
	"cmenu/internal/ui"
	"cmenu/internal/ui/state"
	"cmenu/internal/ui/views"
)

// Usage is printed for any malformed invocation
const Usage = "usage: cmenu <OUTPUT_FILE> [-r|--remove]"

// ErrUsage marks a malformed invocation
var ErrUsage = errors.New("usage")

// Streams are the process streams a command runs against
type Streams struct {
	In      *os.File
	Out     io.Writer
	Err     io.Writer
	Display *os.File // where the picker draws when it is a terminal
}

type options struct {
	remove     bool
	configPath string
	frontend   string
}

// Execute runs the command against the process streams and returns the exit status
func Execute() int {
	streams := Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr, Display: os.Stdout}
	return Run(NewRootCommand(streams), streams)
}

// Run executes cmd and reports any failure on streams.Err
func Run(cmd *cobra.Command, streams Streams) int {
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, ErrUsage) {
			fmt.Fprintln(streams.Err, Usage)
		} else {
			fmt.Fprintf(streams.Err, "cmenu: %v\n", err)
		}
		return 1
	}
	return 0
}

// NewRootCommand builds the cmenu command
func NewRootCommand(streams Streams) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "cmenu <OUTPUT_FILE>",
		Short: "Pick one line from standard input and write it to a file",
		Long: `cmenu reads candidate lines from standard input, lets you narrow them with a
case-insensitive prefix filter and writes the chosen line to OUTPUT_FILE.
With --remove it prints OUTPUT_FILE and deletes it.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || args[0] == "" {
				return ErrUsage
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.remove {
				return output.Remove(args[0], streams.Out)
			}
			return runPicker(cmd.Context(), streams, opts, args[0])
		},
	}
	cmd.SetFlagErrorFunc(func(*cobra.Command, error) error {
		return ErrUsage
	})
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.Err)

	flags := cmd.Flags()
	flags.BoolVarP(&opts.remove, "remove", "r", false, "print OUTPUT_FILE and delete it")
	flags.StringVar(&opts.configPath, "config", "", "path to the config file")
	flags.StringVar(&opts.frontend, "frontend", "", "picker frontend: raw or tea")

	return cmd
}

func runPicker(ctx context.Context, streams Streams, opts *options, path string) error {
	logger, closer := logging.NewFileLoggerFromEnv()
	defer closer.Close()

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger.Debug("config loaded", "frontend", cfg.UISettings.Frontend)

	// fail before any interaction if the result could not be saved
	if err := output.CheckWritable(path); err != nil {
		return err
	}

	store, err := entries.Load(streams.In, cfg.Limits.MaxEntries, cfg.Limits.MaxEntryLength)
	if err != nil {
		return err
	}
	logger.Debug("entries loaded", "count", store.Len())

	ctrl, err := terminal.Open(streams.In, streams.Display)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGINT)
	defer stop()

	st := state.NewAppState(store.All(), cfg.Limits.MaxPatternLength)
	renderer := views.NewRenderer(lipgloss.NewRenderer(ctrl.Output()), cfg.UISettings.Color)

	var result state.Result
	switch cfg.UISettings.Frontend {
	case config.FrontendTea:
		result, err = ui.Run(ctx, ui.NewModel(st, renderer, cfg.UISettings, logger), ctrl.Input(), ctrl.Output())
	default:
		unwatch := restoreOnSignal(ctx, ctrl, streams.Err)
		result, err = session.New(ctrl, st, renderer, cfg.UISettings, logger).Run()
		unwatch()
	}
	if err != nil {
		logger.Error("session failed", "error", err)
		return err
	}

	if !result.OK {
		logger.Debug("nothing picked")
		return nil
	}
	return output.Write(path, result.Value)
}

func loadConfig(opts *options) (*config.Config, error) {
	svc := config.NewConfigService()
	if opts.configPath != "" {
		svc = config.NewConfigServiceWithPath(opts.configPath)
	}

	cfg, err := svc.Load()
	if err != nil {
		return nil, err
	}

	if opts.frontend != "" {
		cfg.UISettings.Frontend = opts.frontend
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// restoreOnSignal puts the terminal back and exits when a signal arrives while
// the raw session is blocked reading the keyboard.
func restoreOnSignal(ctx context.Context, ctrl *terminal.Controller, stderr io.Writer) func() {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = ctrl.Restore()
			fmt.Fprintln(stderr, "cmenu: interrupted")
			os.Exit(1)
		case <-done:
		}
	}()
	return func() { close(done) }
}
