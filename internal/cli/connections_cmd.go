package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joacominatel/pgmeta/internal/config"
	"github.com/joacominatel/pgmeta/internal/render"
)

func newConnectionsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "connections",
		Aliases: []string{"conn"},
		Short:   "Manage saved connection profiles",
	}

	cmd.AddCommand(newConnectionsListCmd(opts))
	cmd.AddCommand(newConnectionsAddCmd(opts))
	cmd.AddCommand(newConnectionsRemoveCmd(opts))

	return cmd
}

// connectionView is a saved connection as listed, without its password.
type connectionView struct {
	Name    string `json:"name" yaml:"name"`
	Target  string `json:"target" yaml:"target"`
	SSLMode string `json:"sslmode,omitempty" yaml:"sslmode,omitempty"`
	Keyring bool   `json:"keyring" yaml:"keyring"`
	Default bool   `json:"default" yaml:"default"`
}

func newConnectionsListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved connections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def := config.DefaultConnection(opts.cfg)
			views := make([]connectionView, 0, len(opts.cfg.Connections))
			for _, c := range opts.cfg.Connections {
				views = append(views, connectionView{
					Name:    c.Name,
					Target:  c.DisplayString(),
					SSLMode: c.SSLMode,
					Keyring: c.Keyring,
					Default: def != nil && def.Name == c.Name,
				})
			}

			out := cmd.OutOrStdout()
			switch opts.format {
			case render.FormatJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(views)
			case render.FormatYAML:
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(views); err != nil {
					return fmt.Errorf("marshal connections: %w", err)
				}
				return enc.Close()
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTARGET\tSSLMODE\tKEYRING\tDEFAULT")
			for _, v := range views {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%t\n", v.Name, v.Target, v.SSLMode, v.Keyring, v.Default)
			}
			return tw.Flush()
		},
	}
}

func newConnectionsAddCmd(opts *rootOptions) *cobra.Command {
	var (
		name       string
		useKeyring bool
		makeDef    bool
	)

	cmd := &cobra.Command{
		Use:   "add <dsn>",
		Short: "Save a connection from a connection string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := config.ParseDSN(args[0])
			if err != nil {
				return err
			}
			if name != "" {
				conn.Name = name
			}
			if opts.cfg.HasConnection(conn.Name) {
				return fmt.Errorf("connection %q already exists", conn.Name)
			}
			if useKeyring {
				if err := config.StorePassword(&conn); err != nil {
					return err
				}
			}

			opts.cfg.AddConnection(conn)
			if makeDef {
				opts.cfg.Preferences.DefaultConnection = conn.Name
			}
			if err := opts.saveConfig(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved connection %s (%s)\n", conn.Name, conn.DisplayString())
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Connection name (default derived from the DSN)")
	cmd.Flags().BoolVar(&useKeyring, "keyring", false, "Store the password in the OS keyring")
	cmd.Flags().BoolVar(&makeDef, "default", false, "Make this the default connection")

	return cmd
}

func newConnectionsRemoveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a saved connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, ok := opts.cfg.FindConnection(args[0])
			if !ok {
				return fmt.Errorf("connection %q not found", args[0])
			}
			if conn.Keyring {
				if err := config.DeletePassword(conn.Name); err != nil {
					return err
				}
			}
			opts.cfg.RemoveConnection(conn.Name)
			if err := opts.saveConfig(); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed connection %s\n", conn.Name)
			return err
		},
	}
}
