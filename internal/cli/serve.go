package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/injectograph/injectograph/pkg/api"
	"github.com/injectograph/injectograph/pkg/cache"
	"github.com/injectograph/injectograph/pkg/pipeline"
	"github.com/injectograph/injectograph/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	mongoURI  string // MongoDB connection string for durable snapshots
	redisAddr string // Redis address for the shared cache
	noCache   bool   // disable caching
}

// serveCommand creates the serve command.
// Without --mongo-uri snapshots live in process memory; without
// --redis-addr the cache falls back to the local file cache.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for graph snapshots and sub-graph queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB URI for durable snapshot storage")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for the shared cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	addr := opts.addr
	if addr == "" {
		addr = c.config.Server.Addr
	}
	if addr == "" {
		addr = ":8080"
	}

	st, err := c.newStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	cch, err := c.newServeCache(ctx, opts)
	if err != nil {
		return err
	}
	defer cch.Close()

	srv := api.NewServer(st, pipeline.NewRunner(cch, c.Logger), c.Logger)
	return srv.ListenAndServe(ctx, addr)
}

// newStore selects the snapshot backend: MongoDB when configured,
// otherwise in-memory.
func (c *CLI) newStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	uri := opts.mongoURI
	if uri == "" {
		uri = c.config.Server.MongoURI
	}
	if uri == "" {
		c.Logger.Warn("no MongoDB configured, snapshots will not survive restarts")
		return store.NewMemoryStore(), nil
	}
	c.Logger.Info("using MongoDB snapshot store", "uri", uri)
	return store.NewMongoStore(ctx, uri)
}

// newServeCache selects the cache backend: Redis when configured,
// otherwise the local file cache.
func (c *CLI) newServeCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache || c.config.NoCache {
		return cache.NewNullCache(), nil
	}
	addr := opts.redisAddr
	if addr == "" {
		addr = c.config.Server.RedisAddr
	}
	if addr == "" {
		return c.newCache(false)
	}
	c.Logger.Info("using Redis cache", "addr", addr)
	return cache.NewRedisCache(ctx, addr)
}
