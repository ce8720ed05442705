package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackbar/pkg/server"
)

// serveScope prefixes the service's cache keys.
const serveScope = "serve:"

// serveCommand creates the serve command running the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		maxBody int64
		timeout time.Duration
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Serve renders charts over HTTP.

  POST /v1/render   JSON body with records, key and options; returns the artifact
  GET  /healthz     liveness and build info

Artifacts are cached like the render command (STACKBAR_CACHE_URL selects Redis).`,
		Example: `  stackbar serve --addr :8080
  curl -d '{"records":[{"month":"Jan","a":2,"b":3}],"key":{"dimension":"month","metric":["a","b"]}}' localhost:8080/v1/render`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache, serveScope)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger,
				server.WithMaxBodySize(maxBody),
				server.WithTimeout(timeout),
			)
			c.printInfo("Listening on %s", addr)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodySize, "maximum request body size in bytes")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request render timeout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}
