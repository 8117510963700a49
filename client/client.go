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
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/l3montree-dev/vrcms/client")

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrDuplicateSubmission = errors.New("request is already in flight")
)

// APIError is returned for every non 2xx answer of the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden
}

type Options struct {
	Timeout   time.Duration
	Insecure  bool
	CacheTTL  time.Duration
	CacheSize int
	// requests per second, 0 disables the limit
	RateLimit float64
	RateBurst int
}

type Client struct {
	httpClient *http.Client
	cache      *CacheTransport

	mu       sync.Mutex
	inflight map[string]struct{}
}

// New returns a client for the api mounted at apiURL, e.g. https://vrcms.example.com/api.
// An empty token is only good for logging in.
func New(apiURL, token string, opts Options) (*Client, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse API URL")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("API URL %q needs a scheme and a host", apiURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")

	transport := &http.Transport{
		MaxIdleConnsPerHost: 10,
	}
	if opts.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // nolint:gosec
	}

	c := &Client{
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(transport),
			Timeout:   opts.Timeout,
		},
		inflight: make(map[string]struct{}),
	}

	if opts.RateLimit > 0 {
		WrapHTTPClient(c.httpClient, NewRateLimitTransport(opts.RateLimit, opts.RateBurst).Handler())
	}
	WrapHTTPClient(c.httpClient, NewDeduplicationTransport().Handler())
	if opts.CacheTTL > 0 {
		size := opts.CacheSize
		if size <= 0 {
			size = 128
		}
		c.cache = NewCacheTransport(size, opts.CacheTTL)
		WrapHTTPClient(c.httpClient, c.cache.Handler())
	}
	WrapHTTPClient(c.httpClient, (&bearerTransport{token: token, apiURL: u}).Handler())

	return c, nil
}

// acquire makes sure a mutation is not submitted twice while the first is still running.
func (c *Client) acquire(key string) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.inflight[key]; exists {
		return nil, errors.Wrap(ErrDuplicateSubmission, key)
	}
	c.inflight[key] = struct{}{}
	return func() {
		c.mu.Lock()
		delete(c.inflight, key)
		c.mu.Unlock()
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (err error) {
	ctx, span := tracer.Start(ctx, method+" "+path, trace.WithSpanKind(trace.SpanKindClient), trace.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", path),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if method != http.MethodGet {
		release, err := c.acquire(method + " " + path)
		if err != nil {
			return err
		}
		defer release()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "could not encode request body")
		}
		reader = bytes.NewReader(b)
	}

	target := &url.URL{Path: path}
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return errors.Wrap(err, "could not create request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "could not send request %s %s", method, path)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "could not read response body")
	}

	if resp.StatusCode == http.StatusUnauthorized && !strings.HasPrefix(path, "/auth") {
		slog.Debug("token rejected by backend", "path", path)
		return errors.Wrapf(ErrUnauthorized, "%s %s", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, payload)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errors.Wrapf(err, "could not decode response of %s %s", method, path)
	}
	return dtos.Validate(out)
}

func newAPIError(status int, payload []byte) *APIError {
	var msg struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(payload, &msg)

	message := msg.Message
	if message == "" {
		message = msg.Error
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: message}
}
