package averages

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Dan9191/commission-tracker/internal/models"
	"github.com/Dan9191/commission-tracker/internal/repository"
	"github.com/sirupsen/logrus"
)

// Cache is a string key-value store with expiry
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CachedProvider serves averages from a cache and falls back to the wrapped provider.
// Cache failures are logged and never fail a lookup.
type CachedProvider struct {
	next  Provider
	cache Cache
	ttl   time.Duration
	log   *logrus.Logger
}

// NewCachedProvider wraps next with a cache
func NewCachedProvider(next Provider, cache Cache, ttl time.Duration, log *logrus.Logger) *CachedProvider {
	return &CachedProvider{next: next, cache: cache, ttl: ttl, log: log}
}

func cacheKey(userID string) string {
	return "averages:" + userID
}

func (p *CachedProvider) GetHistoricalAverages(ctx context.Context, userID string) (*models.HistoricalAverages, error) {
	key := cacheKey(userID)
	raw, err := p.cache.Get(ctx, key)
	switch {
	case err == nil:
		var avg models.HistoricalAverages
		if err := json.Unmarshal([]byte(raw), &avg); err == nil {
			return &avg, nil
		}
		p.log.Warnf("Discarding malformed cached averages for user %s", userID)
	case !errors.Is(err, repository.ErrCacheMiss):
		p.log.Warnf("Averages cache read failed for user %s: %v", userID, err)
	}

	avg, err := p.next.GetHistoricalAverages(ctx, userID)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(avg)
	if err != nil {
		p.log.Warnf("Failed to encode averages for user %s: %v", userID, err)
		return avg, nil
	}
	if err := p.cache.Set(ctx, key, string(payload), p.ttl); err != nil {
		p.log.Warnf("Averages cache write failed for user %s: %v", userID, err)
	}
	return avg, nil
}

// Invalidate drops the cached averages of a user
func (p *CachedProvider) Invalidate(ctx context.Context, userID string) error {
	return p.cache.Delete(ctx, cacheKey(userID))
}
