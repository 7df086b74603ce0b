package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joacominatel/pgmeta/internal/metadata"
)

func newQueryCmd() *cobra.Command {
	var filter metadata.Filter

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the catalog query without running it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), metadata.BuildQuery(filter))
			return err
		},
	}

	addFilterFlags(cmd, &filter)

	return cmd
}
