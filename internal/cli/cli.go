// internal/cli/cli.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"recordbook/internal/config"
	"recordbook/internal/console"
	"recordbook/internal/telemetry"
	"recordbook/pkg/recordstore"
)

// Env is everything a program needs to build its service and handler.
type Env struct {
	Config       *config.Config
	Logger       *slog.Logger
	Prompter     *console.Prompter
	StoreOptions []recordstore.Option
}

// App describes one interactive program.
type App struct {
	Name  string
	Short string
	Run   func(ctx context.Context, env *Env) error
}

// NewCommand builds the root command for app.
func NewCommand(app App) *cobra.Command {
	v := config.NewViper(app.Name)
	var configFile string

	cmd := &cobra.Command{
		Use:           app.Name,
		Short:         app.Short,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}
			level, err := cfg.Level()
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			shutdown, err := telemetry.Setup(cmd.Context(), cfg.Telemetry)
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Warn("telemetry shutdown failed", "error", err)
				}
			}()

			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return fmt.Errorf("create data dir %s: %w", cfg.DataDir, err)
			}

			env := &Env{
				Config:       cfg,
				Logger:       logger.With("app", app.Name),
				Prompter:     console.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
				StoreOptions: cfg.StoreOptions(),
			}
			logger.Debug("starting", "app", app.Name, "data_dir", cfg.DataDir)
			return app.Run(cmd.Context(), env)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "path to a config file")
	flags.String("data-dir", config.DefaultDataDir, "directory holding saved data files")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.Bool("strict-load", false, "fail a load on the first malformed line")
	_ = v.BindPFlag("data_dir", flags.Lookup("data-dir"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("strict_load", flags.Lookup("strict-load"))

	return cmd
}

// Main runs app until it exits or the process is interrupted, and exits
// non-zero on failure.
func Main(app App) {
	if err := Execute(app, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Execute runs app with explicit arguments and streams.
func Execute(app App, args []string, in io.Reader, out, errOut io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewCommand(app)
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	err := cmd.ExecuteContext(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
