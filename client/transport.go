// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package client

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// WrapHTTPClient puts wrap in front of the current transport of client.
// The last wrapper added is the first to see a request.
func WrapHTTPClient(client *http.Client, wrap func(req *http.Request, next http.RoundTripper) (*http.Response, error)) {
	if client == nil {
		return
	}
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	client.Transport = roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return wrap(req, base)
	})
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// RateLimitTransport delays requests which exceed the limit of the limiter.
// Only requests that reach the network should pass it.
type RateLimitTransport struct {
	limiter *rate.Limiter
}

func NewRateLimitTransport(perSecond float64, burst int) *RateLimitTransport {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitTransport{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (t *RateLimitTransport) Handler() func(req *http.Request, next http.RoundTripper) (*http.Response, error) {
	return func(req *http.Request, next http.RoundTripper) (*http.Response, error) {
		if err := t.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
		return next.RoundTrip(req)
	}
}

// bearerTransport authenticates requests and points them at the api.
type bearerTransport struct {
	token  string
	apiURL *url.URL
}

func (t *bearerTransport) Handler() func(req *http.Request, next http.RoundTripper) (*http.Response, error) {
	return func(req *http.Request, next http.RoundTripper) (*http.Response, error) {
		// Clone the request to avoid modifying the original
		req = req.Clone(req.Context())

		if t.token != "" {
			req.Header.Set("Authorization", "Bearer "+t.token)
		}
		if req.Header.Get("X-Request-ID") == "" {
			req.Header.Set("X-Request-ID", uuid.New().String())
		}
		req.Header.Set("Accept", "application/json")

		req.URL.Scheme = t.apiURL.Scheme
		req.URL.Host = t.apiURL.Host
		// If the API URL has a base path, prepend it
		if t.apiURL.Path != "" && t.apiURL.Path != "/" {
			req.URL.Path = t.apiURL.Path + req.URL.Path
		}

		return next.RoundTrip(req)
	}
}

// CacheTransport keeps successful GET responses for a short time. Every
// successful mutation purges the whole cache, a resolve for example changes
// the report list, the stats and the report itself.
type CacheTransport struct {
	cache *expirable.LRU[string, []byte]
}

func NewCacheTransport(cacheSize int, expiration time.Duration) *CacheTransport {
	return &CacheTransport{
		cache: expirable.NewLRU[string, []byte](cacheSize, nil, expiration),
	}
}

func (c *CacheTransport) Purge() {
	c.cache.Purge()
}

func (c *CacheTransport) Len() int {
	return c.cache.Len()
}

func (c *CacheTransport) Handler() func(req *http.Request, next http.RoundTripper) (*http.Response, error) {
	return func(req *http.Request, next http.RoundTripper) (*http.Response, error) {
		if req.Method != http.MethodGet {
			resp, err := next.RoundTrip(req)
			if err == nil && resp.StatusCode < 400 {
				c.cache.Purge()
			}
			return resp, err
		}

		key := cacheKey(req)

		if val, ok := c.cache.Get(key); ok {
			slog.Debug("cache hit", "url", req.URL.String())
			resp, err := responseFromBytes(val, req)
			if err != nil {
				slog.Error("failed to read response from cache", "err", err)
				return nil, err
			}
			return resp, nil
		}

		resp, err := next.RoundTrip(req)
		if err != nil {
			return resp, err
		}

		// only cache successful responses
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return resp, nil
		}

		v, err := httputil.DumpResponse(resp, true)
		if err != nil {
			slog.Error("failed to dump response", "err", err)
			return resp, nil
		}

		c.cache.Add(key, v)

		return responseFromBytes(v, req)
	}
}

func responseFromBytes(v []byte, req *http.Request) (*http.Response, error) {
	r := bufio.NewReader(bytes.NewReader(v))
	resp, err := http.ReadResponse(r, req)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp, nil
}

// DeduplicationTransport lets concurrent identical GET requests share a single round trip.
type DeduplicationTransport struct {
	group singleflight.Group
}

func NewDeduplicationTransport() *DeduplicationTransport {
	return &DeduplicationTransport{}
}

type responseSnapshot struct {
	resp *http.Response
	body []byte
}

func (c *DeduplicationTransport) Handler() func(req *http.Request, next http.RoundTripper) (*http.Response, error) {
	return func(req *http.Request, next http.RoundTripper) (*http.Response, error) {
		if req.Method != http.MethodGet {
			return next.RoundTrip(req)
		}

		v, err, shared := c.group.Do(cacheKey(req), func() (any, error) {
			resp, err := next.RoundTrip(req)
			if err != nil {
				return nil, err
			}
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, err
			}
			return responseSnapshot{resp: resp, body: body}, nil
		})
		if err != nil {
			return nil, err
		}
		if shared {
			slog.Debug("deduplicated request", "method", req.Method, "url", req.URL.String())
		}

		snapshot := v.(responseSnapshot)
		cloned := *snapshot.resp
		cloned.Header = snapshot.resp.Header.Clone()
		cloned.Body = io.NopCloser(bytes.NewReader(snapshot.body))
		cloned.Request = req
		return &cloned, nil
	}
}

func cacheKey(req *http.Request) string {
	key := req.URL.String()

	auth := req.Header.Get("Authorization")
	if auth != "" {
		h := sha256.New()
		h.Write([]byte(key))
		h.Write([]byte(auth))
		return fmt.Sprintf("%x", h.Sum(nil))
	}

	return key
}
