package search

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// cacheSize bounds the query cache; typeahead queries are tiny and short
// lived, so a few hundred entries is plenty.
const cacheSize = 256

// queryCache is a small TTL cache of query -> results. The backend keeps an
// equivalent cache on its side; this one just spares it the repeats a user
// produces by backspacing over the same few characters.
type queryCache struct {
	lru *expirable.LRU[string, Response]
}

func newQueryCache(ttl time.Duration) *queryCache {
	if ttl <= 0 {
		return &queryCache{}
	}
	return &queryCache{lru: expirable.NewLRU[string, Response](cacheSize, nil, ttl)}
}

func cacheKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func (c *queryCache) get(query string) (Response, bool) {
	if c.lru == nil {
		return Response{}, false
	}
	return c.lru.Get(cacheKey(query))
}

func (c *queryCache) put(query string, resp Response) {
	if c.lru == nil {
		return
	}
	c.lru.Add(cacheKey(query), resp)
}
