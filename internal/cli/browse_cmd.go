package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/joacominatel/pgmeta/internal/app"
	"github.com/joacominatel/pgmeta/internal/config"
	"github.com/joacominatel/pgmeta/internal/metadata"
	"github.com/joacominatel/pgmeta/internal/tui"
)

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	var (
		target targetFlags
		filter metadata.Filter
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Explore column metadata in a terminal UI",
		Long: "Opens the metadata browser. Without a target it lists the saved\n" +
			"connections and accepts a connection string.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			tuiOpts := tui.Options{
				Filter: filter,
				Save: func(*config.Config) error {
					return opts.saveConfig()
				},
			}

			if target.offline() {
				src, done, err := opts.source(ctx, target, cmd.InOrStdin())
				defer done()
				if err != nil {
					return err
				}
				tree, err := src.Extract(ctx, filter)
				if err != nil {
					return err
				}
				tuiOpts.Tree = tree
			} else if target.dsn != "" || target.connection != "" {
				dsn, err := target.resolveDSN(opts.cfg)
				if err != nil {
					return err
				}
				tuiOpts.DSN = dsn
			}

			service := app.NewService(newDriver(), metadata.NewExtractor(metadata.WithLogger(opts.logger)))
			defer service.Disconnect()

			p := tea.NewProgram(tui.NewModel(service, opts.cfg, tuiOpts),
				tea.WithAltScreen(),
				tea.WithContext(ctx),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run browser: %w", err)
			}
			return nil
		},
	}

	addTargetFlags(cmd, &target)
	addFilterFlags(cmd, &filter)

	return cmd
}
