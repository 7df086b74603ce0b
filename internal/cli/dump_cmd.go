package cli

import (
	"github.com/spf13/cobra"

	"github.com/joacominatel/pgmeta/internal/metadata"
	"github.com/joacominatel/pgmeta/internal/render"
)

func newDumpCmd(opts *rootOptions) *cobra.Command {
	var (
		target targetFlags
		filter metadata.Filter
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Extract column metadata and print the tree",
		Example: `  pgmeta dump --dsn postgresql://localhost/sales --schema public
  pgmeta dump -c prod --table orders -o yaml
  pgmeta dump --rows captured.json -o text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			src, done, err := opts.source(ctx, target, cmd.InOrStdin())
			defer done()
			if err != nil {
				return err
			}

			tree, err := src.Extract(ctx, filter)
			if err != nil {
				return err
			}
			return render.Tree(cmd.OutOrStdout(), opts.format, tree)
		},
	}

	addTargetFlags(cmd, &target)
	addFilterFlags(cmd, &filter)

	return cmd
}
