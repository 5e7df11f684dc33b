// Package client is the Go SDK for the carwash booking API. It wraps
// the REST endpoints with typed methods, caches booking lists, and
// rejects obviously invalid requests before they reach the wire.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL string
	http    *http.Client

	// Session is exported so callers can log in once and share the
	// token across goroutines.
	Session *Session

	cache    *gocache.Cache
	cacheTTL time.Duration
	group    singleflight.Group

	// statuses is the last status seen per booking ID. It lets the
	// client refuse transitions it already knows are illegal without a
	// round trip. Entries go stale the moment another client mutates
	// the booking; the server stays the authority.
	mu       sync.RWMutex
	statuses map[string]string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cacheTTL = ttl }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: defaultTimeout},
		Session:  &Session{},
		cacheTTL: 30 * time.Second,
		statuses: make(map[string]string),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.cache = gocache.New(c.cacheTTL, 2*c.cacheTTL)
	return c
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Errors     json.RawMessage `json:"errors"`
	Pagination *Pagination     `json:"pagination"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// do issues a request and decodes the envelope data into out. A failed
// envelope is translated into *Error; transport failures become
// KindNetwork.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (*Pagination, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindValidation, Message: fmt.Sprintf("encode request: %v", err)}
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: err.Error()}
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.Session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &Error{Kind: KindServer, Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
	}

	if !env.Success {
		return nil, errorFromResponse(resp.StatusCode, &env)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, &Error{Kind: KindServer, Status: resp.StatusCode, Message: fmt.Sprintf("decode data: %v", err)}
		}
	}

	return env.Pagination, nil
}

func errorFromResponse(status int, env *envelope) *Error {
	apiErr := &Error{Status: status, Message: env.Message}

	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		apiErr.Kind = KindValidation
		if isTransitionMessage(env.Message) {
			apiErr.Kind = KindInvalidTransition
		}
	case http.StatusUnauthorized:
		apiErr.Kind = KindUnauthorized
	case http.StatusForbidden:
		apiErr.Kind = KindForbidden
	case http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case http.StatusConflict:
		apiErr.Kind = KindConflict
	default:
		apiErr.Kind = KindServer
	}

	if len(env.Errors) > 0 {
		var fields map[string]string
		if err := json.Unmarshal(env.Errors, &fields); err == nil {
			apiErr.Fields = fields
		}
	}

	return apiErr
}

// rememberStatus updates the local status replica.
func (c *Client) rememberStatus(id, status string) {
	c.mu.Lock()
	c.statuses[id] = status
	c.mu.Unlock()
}

func (c *Client) lastKnownStatus(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	status, ok := c.statuses[id]
	return status, ok
}
