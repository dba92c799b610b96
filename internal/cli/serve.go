package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tillvoss/archsketch/internal/httpapi"
	"github.com/tillvoss/archsketch/pkg/config"
	"github.com/tillvoss/archsketch/pkg/store"
)

// serveCommand creates the serve command exposing the pipeline and the
// diagram store over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		envFile string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

Endpoints:
  POST /api/v1/sketch     run the text → graph → diagram pipeline
  CRUD /api/v1/diagrams   save, list, fetch, delete diagram snapshots
  GET  /healthz           liveness probe

An optional .env file is loaded before the configuration so deployment
secrets (ARCHSKETCH_MONGO_URI, ARCHSKETCH_REDIS_ADDR) can live outside
the config file.

Examples:
  archsketch serve
  archsketch serve --addr :9000 --env-file deploy/.env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := godotenv.Load(envFile); err != nil {
					return fmt.Errorf("load %s: %w", envFile, err)
				}
			} else {
				// Best effort: a local .env is optional.
				_ = godotenv.Load()
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			applyEnvOverrides(&cfg)
			if addr != "" {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			st, err := newStore(cmd.Context(), cfg.Store)
			if err != nil {
				c.Logger.Warn("diagram store unavailable", "err", err)
			} else {
				defer st.Close(context.Background())
			}

			srv := httpapi.New(runner, st, c.Logger)
			return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "env file to load before config")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// applyEnvOverrides lets deployment environment variables override the
// config file for the backends that carry credentials.
func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("ARCHSKETCH_MONGO_URI"); v != "" {
		cfg.Store.Backend = "mongo"
		cfg.Store.URI = v
	}
	if v := os.Getenv("ARCHSKETCH_REDIS_ADDR"); v != "" {
		cfg.Cache.Backend = "redis"
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("ARCHSKETCH_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

// newStore builds the diagram store selected by configuration.
func newStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      cfg.URI,
			Database: cfg.Database,
		})
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}
