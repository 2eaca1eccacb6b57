package cli

import (
	"github.com/spf13/cobra"

	"github.com/inkpress/inkpress/internal/api"
	"github.com/inkpress/inkpress/pkg/cache"
	"github.com/inkpress/inkpress/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP
// rendering API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering API",
		Long: `Run the HTTP rendering API.

Endpoints:
  POST /v1/render    render a document description (body: JSON or TOML)
  GET  /healthz      health check

With --redis, rendered artifacts are cached in Redis so several
instances share one store; otherwise the local file cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := serveCache(redisURL, noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(store, serveKeyer(redisURL), c.Logger)
			defer runner.Close()

			server := api.New(runner, c.Logger)
			return server.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for shared artifact caching")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func serveCache(redisURL string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		return cache.NewRedisCache(redisURL)
	}
	return newCache(false)
}

// serveKeyer namespaces artifact keys when the store is a shared Redis
// instance, so other applications on the same instance cannot collide.
// The local file cache is already private to this tool.
func serveKeyer(redisURL string) cache.Keyer {
	if redisURL == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, appName+":")
}
