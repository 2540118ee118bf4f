package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Client queries the inventory backend's search API.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	cache   *queryCache
}

// NewClient creates a search client for the given API endpoint.
// cacheTTL <= 0 disables the client-side query cache.
func NewClient(baseURL string, timeout, cacheTTL time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		// Typeahead traffic is already debounced upstream; the limiter is a
		// backstop so a misbehaving caller can't hammer the backend.
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 3),
		cache:   newQueryCache(cacheTTL),
	}
}

// Search runs one query against the API and returns grouped results.
//
// The query is sent URL-encoded as the q parameter with an explicit
// Accept: application/json header. A payload without a results field is an
// empty result set, not an error. Non-2xx statuses and malformed bodies are
// errors; the caller decides what failure looks like (the UI hides the
// dropdown and stays quiet).
func (c *Client) Search(ctx context.Context, query string) (Response, error) {
	if resp, ok := c.cache.get(query); ok {
		return resp, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return Response{}, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL, err := buildSearchURL(c.baseURL, query)
	if err != nil {
		return Response{}, fmt.Errorf("bad search endpoint: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Response{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, fmt.Errorf("search API error: %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Response{}, fmt.Errorf("decode search response: %w", err)
	}

	result := Response{Groups: payload.Results}
	if result.Groups == nil {
		result.Groups = map[string][]Item{}
	}

	c.cache.put(query, result)
	return result, nil
}

// buildSearchURL appends the encoded query as the q parameter, preserving
// any parameters already baked into the endpoint.
func buildSearchURL(base, query string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
