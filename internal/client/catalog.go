package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"miniheureka/storefront/internal/cache"
	"miniheureka/storefront/internal/config"
	"miniheureka/storefront/internal/domain"
	"miniheureka/storefront/internal/proxy"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

type CatalogClient interface {
	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryPage(ctx context.Context, categoryID, page int) (*domain.CategoryPage, error)
	GetProduct(ctx context.Context, productID int) (*domain.ProductDetail, error)
}

var (
	catalogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_requests_total",
			Help: "Catalog API lookups by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	catalogDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_catalog_request_duration_seconds",
			Help:    "Catalog API round trip time, cache hits excluded",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	breakerState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_catalog_breaker_state",
		Help: "Catalog circuit breaker state (0=closed, 1=half-open, 2=open)",
	})
)

// Options carries the optional collaborators of the catalog client.
type Options struct {
	Proxies  proxy.Supplier
	Cache    cache.Cache
	CacheTTL time.Duration
}

type catalogClient struct {
	rl            ratelimit.Limiter
	httpClient    *resty.Client
	breaker       *gobreaker.CircuitBreaker[[]byte]
	proxySupplier proxy.Supplier
	cache         cache.Cache
	cacheTTL      time.Duration
}

func NewCatalogClient(cfg config.CatalogConfig, breakerCfg config.BreakerConfig, opts Options) CatalogClient {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "mini-heureka-storefront")

	if opts.Proxies != nil {
		if proxyURL := opts.Proxies.Get(); proxyURL != "" {
			httpClient.SetProxy(proxyURL)
			log.Infof("Using catalog proxy: %s", proxyURL)
		}
	}

	c := opts.Cache
	if c == nil {
		c = cache.NewNopCache()
	}

	return &catalogClient{
		rl:            ratelimit.New(cfg.MaxRequestsPerSecond),
		httpClient:    httpClient,
		breaker:       newBreaker(breakerCfg),
		proxySupplier: opts.Proxies,
		cache:         c,
		cacheTTL:      opts.CacheTTL,
	}
}

func newBreaker(cfg config.BreakerConfig) *gobreaker.CircuitBreaker[[]byte] {
	settings := gobreaker.Settings{
		Name:        "catalog",
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.Interval) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
		// A missing product is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || domain.IsNotFound(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("Circuit breaker %s: %s -> %s", name, from, to)
			breakerState.Set(stateToFloat(to))
		},
	}

	breakerState.Set(0)
	return gobreaker.NewCircuitBreaker[[]byte](settings)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func (c *catalogClient) GetCategories(ctx context.Context) ([]domain.Category, error) {
	return fetch(ctx, c, domain.EndpointCategories, "/", decodeCategories)
}

func (c *catalogClient) GetCategoryPage(ctx context.Context, categoryID, page int) (*domain.CategoryPage, error) {
	path := fmt.Sprintf("/categories/%d/%d", categoryID, page)
	return fetch(ctx, c, domain.EndpointCategoryPage, path, decodeCategoryPage)
}

func (c *catalogClient) GetProduct(ctx context.Context, productID int) (*domain.ProductDetail, error) {
	path := fmt.Sprintf("/product/%d", productID)
	return fetch(ctx, c, domain.EndpointProduct, path, decodeProduct)
}

// fetch decodes the payload at path, from cache when possible. Only payloads
// that decode and validate are written back to the cache.
func fetch[T any](ctx context.Context, c *catalogClient, endpoint, path string, decode func([]byte) (T, error)) (T, error) {
	if data, ok := c.cached(ctx, path); ok {
		v, err := decode(data)
		if err == nil {
			catalogRequests.WithLabelValues(endpoint, "cache_hit").Inc()
			return v, nil
		}
		log.Warnf("Discarding unusable cached payload for %s: %v", path, err)
	}

	var zero T
	data, err := c.fetchJSON(ctx, endpoint, path)
	if err != nil {
		return zero, err
	}

	v, err := decode(data)
	if err != nil {
		catalogRequests.WithLabelValues(endpoint, "bad_shape").Inc()
		return zero, err
	}
	catalogRequests.WithLabelValues(endpoint, "ok").Inc()

	c.store(ctx, path, data)
	return v, nil
}

func (c *catalogClient) cached(ctx context.Context, path string) ([]byte, bool) {
	data, ok, err := c.cache.Get(ctx, path)
	if err != nil {
		log.Warnf("Catalog cache read failed for %s: %v", path, err)
		return nil, false
	}
	return data, ok
}

func (c *catalogClient) store(ctx context.Context, path string, data []byte) {
	if c.cacheTTL <= 0 {
		return
	}
	if err := c.cache.Set(ctx, path, data, c.cacheTTL); err != nil {
		log.Warnf("Catalog cache write failed for %s: %v", path, err)
	}
}

// fetchJSON returns the raw payload at path from the catalog API.
func (c *catalogClient) fetchJSON(ctx context.Context, endpoint, path string) ([]byte, error) {
	c.rl.Take()

	start := time.Now()
	data, err := c.breaker.Execute(func() ([]byte, error) {
		return c.get(ctx, endpoint, path)
	})
	catalogDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = &domain.NetworkError{Endpoint: endpoint, Err: err}
		}
		catalogRequests.WithLabelValues(endpoint, outcome(err)).Inc()
		return nil, err
	}

	return data, nil
}

func (c *catalogClient) get(ctx context.Context, endpoint, path string) ([]byte, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &domain.NetworkError{Endpoint: endpoint, Err: fmt.Errorf("request cancelled: %w", ctx.Err())}
		}
		c.rotateProxy()
		return nil, &domain.NetworkError{Endpoint: endpoint, Err: err}
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, &domain.NetworkError{Endpoint: endpoint, StatusCode: resp.StatusCode(), Err: domain.ErrNotFound}
	}
	if resp.IsError() {
		return nil, &domain.NetworkError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("unexpected status %s", resp.Status()),
		}
	}

	log.Debugf("Fetched catalog %s (%d bytes)", path, len(resp.Bytes()))
	return resp.Bytes(), nil
}

func (c *catalogClient) rotateProxy() {
	if c.proxySupplier == nil || c.proxySupplier.Len() < 2 {
		return
	}
	if next := c.proxySupplier.Get(); next != "" {
		log.Infof("Switching catalog proxy to %s", next)
		c.httpClient.SetProxy(next)
	}
}

func outcome(err error) string {
	switch {
	case domain.IsNotFound(err):
		return "not_found"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "breaker_open"
	default:
		return "error"
	}
}
