package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"miniheureka/storefront/internal/cache"
	"miniheureka/storefront/internal/client"
	"miniheureka/storefront/internal/config"
	"miniheureka/storefront/internal/handler"
	"miniheureka/storefront/internal/proxy"
	"miniheureka/storefront/internal/render"
	"miniheureka/storefront/internal/service"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Client     client.CatalogClient
	Cache      cache.Cache
	Storefront *service.Storefront
	Server     *http.Server

	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
		Cache:  cache.NewNopCache(),
	}

	if cfg.Cache.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		// Test connection
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		container.redis = rdb
		container.Cache = cache.NewRedisCache(rdb, cfg.Cache.Prefix)
	}

	catalogTimeout := time.Duration(cfg.Catalog.Timeout) * time.Second
	proxySupplier := proxy.NewSupplier(ctx, cfg.Catalog.Proxies, cfg.Catalog.BaseURL, catalogTimeout)

	catalogClient := client.NewCatalogClient(cfg.Catalog, cfg.Breaker, client.Options{
		Proxies:  proxySupplier,
		Cache:    container.Cache,
		CacheTTL: cfg.Cache.TTLDuration(),
	})
	container.Client = catalogClient

	renderer, err := render.New()
	if err != nil {
		container.Close()
		return nil, err
	}

	container.Storefront = service.NewStorefront(catalogClient)

	health := handler.NewHealth()
	if cfg.Cache.Enabled {
		health.Register("cache", container.Cache.Ping)
	}

	router := handler.NewRouter(
		handler.NewPages(container.Storefront, renderer),
		health,
		time.Duration(cfg.Server.RequestTimeout)*time.Second,
	)

	container.Server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	return container, nil
}

// Run serves HTTP until ctx is cancelled, then shuts the server down gracefully
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("🚀 Storefront listening on %s", c.Server.Addr)
		if err := c.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(c.Config.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		log.Info("Shutting down HTTP server...")
		return c.Server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return err
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
