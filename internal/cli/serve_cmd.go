package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/joacominatel/pgmeta/internal/server"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		target  targetFlags
		addr    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve column metadata over HTTP",
		Long: "Serves GET /metadata?table=&schema=&database= with the filtered tree\n" +
			"and GET /healthz.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			src, done, err := opts.source(ctx, target, cmd.InOrStdin())
			defer done()
			if err != nil {
				return err
			}

			if !opts.verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			srv := server.New(addr, server.NewHandler(src, opts.logger, timeout))

			errc := make(chan error, 1)
			go func() {
				opts.logger.Info("server listening", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- fmt.Errorf("http server: %w", err)
				}
				close(errc)
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			opts.logger.Info("shutting down server gracefully")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Per-request extraction timeout (0 disables)")
	addTargetFlags(cmd, &target)

	return cmd
}
