package cache

import (
	"context"

	"github.com/prognoshealth/fpdsproxy/fpds"
	"github.com/prognoshealth/fpdsproxy/logging"
	"github.com/prognoshealth/fpdsproxy/metrics"
	"go.uber.org/zap"
)

// Store is the storage used by Fetcher.
type Store interface {
	Get(ctx context.Context, url string) (string, bool, error)
	Put(ctx context.Context, url, body string) error
}

// Fetcher serves feed bodies from a Store and falls back to Next on a miss.
// Only bodies that look like a feed are stored. Store failures are logged and
// otherwise ignored.
type Fetcher struct {
	Next  fpds.Fetcher
	Store Store
}

var _ fpds.Fetcher = (*Fetcher)(nil)

// NewFetcher wraps next with store.
func NewFetcher(next fpds.Fetcher, store Store) *Fetcher {
	return &Fetcher{Next: next, Store: store}
}

// Fetch implements fpds.Fetcher.
func (f *Fetcher) Fetch(ctx context.Context, url string, headers map[string]string) (string, error) {
	log := logging.FromContext(ctx)

	body, hit, err := f.Store.Get(ctx, url)
	switch {
	case err != nil:
		metrics.ObserveCache("error")
		log.Warn("feed cache lookup failed", zap.Error(err))
	case hit:
		metrics.ObserveCache("hit")
		log.Debug("feed cache hit", zap.String("key", Key(url)))
		return body, nil
	default:
		metrics.ObserveCache("miss")
	}

	body, err = f.Next.Fetch(ctx, url, headers)
	if err != nil {
		return "", err
	}

	if fpds.IsFeed(body) {
		if err := f.Store.Put(ctx, url, body); err != nil {
			log.Warn("feed cache store failed", zap.Error(err))
		}
	}

	return body, nil
}
