package repositories

import (
	"context"
	gocache "github.com/patrickmn/go-cache"
	"time"
)

type titleSource interface {
	Titles(ctx context.Context) (map[string]string, error)
}

const titlesCacheKey = "job-titles"

// CachedJobTitles memoizes the id-to-title lookup so resolving titles for a
// screenful of CV records costs one store read at most per TTL window.
type CachedJobTitles struct {
	source titleSource
	cache  *gocache.Cache
}

func NewCachedJobTitles(source titleSource) *CachedJobTitles {
	return &CachedJobTitles{source: source, cache: gocache.New(time.Minute, 5*time.Minute)}
}

func (c CachedJobTitles) Titles(ctx context.Context) (map[string]string, error) {
	if value, found := c.cache.Get(titlesCacheKey); found {
		return value.(map[string]string), nil
	}

	titles, err := c.source.Titles(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.Set(titlesCacheKey, titles, gocache.DefaultExpiration)
	return titles, nil
}
