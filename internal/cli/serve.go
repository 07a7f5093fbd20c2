package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sketchflow/sketchflow/internal/api"
	"github.com/sketchflow/sketchflow/pkg/cache"
	"github.com/sketchflow/sketchflow/pkg/pipeline"
	"github.com/sketchflow/sketchflow/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		mongoURI  string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the sketchflow HTTP API.

Without flags the server renders manifests statelessly with a local
file cache. A Redis address switches the artifact cache to Redis so
multiple replicas share it, and a MongoDB URI enables persistence for
the saved-diagram endpoints.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, mongoURI, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "redis address for a shared cache (host:port)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "mongodb uri enabling diagram persistence")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, redisAddr, mongoURI string, noCache bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ch, err := c.serveCache(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(ch, nil, c.Logger)
	defer runner.Close()

	var st store.Store
	if mongoURI != "" {
		st, err = store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI})
		if err != nil {
			return fmt.Errorf("connect store: %w", err)
		}
		defer st.Close(context.Background())
		c.Logger.Info("persistence enabled", "backend", "mongodb")
	}

	srv := api.NewServer(api.Config{
		Addr:   addr,
		Runner: runner,
		Store:  st,
		Logger: c.Logger,
	})
	return srv.ListenAndServe(ctx)
}

// serveCache picks the cache backend for the server: Redis when an
// address is given, otherwise the local file cache.
func (c *CLI) serveCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("cache backend", "backend", "redis", "addr", redisAddr)
		return rc, nil
	}
	return newCache(false)
}
