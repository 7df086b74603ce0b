// Package cli implements the pgmeta command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/joacominatel/pgmeta/internal/app"
	"github.com/joacominatel/pgmeta/internal/config"
	"github.com/joacominatel/pgmeta/internal/render"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// rootOptions holds the values resolved by the root command before any
// subcommand runs.
type rootOptions struct {
	output    string
	verbose   bool
	configDir string

	format render.Format
	cfg    *config.Config
	logger *slog.Logger
}

// saveConfig writes cfg to the directory given by --config, or to the
// default location.
func (o *rootOptions) saveConfig() error {
	save := config.Save
	if o.configDir != "" {
		save = func(cfg *config.Config) error { return config.SaveTo(o.configDir, cfg) }
	}
	if err := save(o.cfg); err != nil {
		return &app.ErrConfig{Cause: err}
	}
	return nil
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	load := config.Load
	if o.configDir != "" {
		load = func() (*config.Config, error) { return config.LoadFrom(o.configDir) }
	}
	cfg, err := load()
	if err != nil {
		return nil, &app.ErrConfig{Cause: err}
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "pgmeta",
		Short: "PostgreSQL column metadata extractor",
		Long: "Reads information_schema.columns and prints a database → schema → table → column\n" +
			"tree with the type attributes of every column.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// A .env file is optional
			_ = godotenv.Load()

			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			cfg, err := opts.loadConfig()
			if err != nil {
				opts.logger.Warn("config not loaded", "error", err)
				cfg = &config.Config{}
			}
			opts.cfg = cfg

			// Apply precedence: flag > config (env included) > default
			if !cmd.Flags().Changed("output") && cfg.Preferences.Output != "" {
				opts.output = cfg.Preferences.Output
			}
			format, err := render.ParseFormat(opts.output)
			if err != nil {
				return err
			}
			opts.format = format
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "json", "Output format (json, yaml, text)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&opts.configDir, "config", "", "Config directory (default ~/.pgmeta)")

	rootCmd.AddCommand(newDumpCmd(opts))
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newBrowseCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newConnectionsCmd(opts))
	rootCmd.AddCommand(newVersionCmd(opts))

	return rootCmd
}
