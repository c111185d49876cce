package proxy

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// maxParallelChecks bounds concurrent proxy probes at startup.
const maxParallelChecks = 16

// Supplier hands out catalog proxies in round-robin order
type Supplier interface {
	Get() string
	Len() int
}

type supplier struct {
	proxies []string
	current int
	mutex   sync.Mutex
}

// NewSupplier probes every configured proxy against the catalog root and keeps the ones that answer.
// Configured order is preserved among the survivors.
func NewSupplier(ctx context.Context, proxies []string, catalogURL string, timeout time.Duration) Supplier {
	if len(proxies) == 0 {
		return &supplier{}
	}

	alive := make([]bool, len(proxies))
	semaphore := make(chan struct{}, maxParallelChecks)

	var wg sync.WaitGroup
	for i, proxyURL := range proxies {
		wg.Add(1)

		go func(index int, proxyURL string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			alive[index] = probe(ctx, proxyURL, catalogURL, timeout)
			if alive[index] {
				log.Infof("Catalog proxy %s is reachable", proxyURL)
			} else {
				log.Warnf("Catalog proxy %s failed probe, skipping", proxyURL)
			}
		}(i, proxyURL)
	}
	wg.Wait()

	working := make([]string, 0, len(proxies))
	for i, ok := range alive {
		if ok {
			working = append(working, proxies[i])
		}
	}

	log.Infof("Proxy supplier ready with %d of %d proxies", len(working), len(proxies))

	return &supplier{proxies: working}
}

// Get returns the next proxy URL, or "" when none are available
func (s *supplier) Get() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.proxies) == 0 {
		return ""
	}

	proxyURL := s.proxies[s.current]
	s.current = (s.current + 1) % len(s.proxies)

	return proxyURL
}

func (s *supplier) Len() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return len(s.proxies)
}

func probe(ctx context.Context, proxyURL, catalogURL string, timeout time.Duration) bool {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetProxy(proxyURL)
	defer client.Close()

	resp, err := client.R().
		SetContext(ctx).
		Get(catalogURL)
	if err != nil {
		log.Debugf("Proxy probe via %s failed: %v", proxyURL, err)
		return false
	}

	return !resp.IsError()
}
