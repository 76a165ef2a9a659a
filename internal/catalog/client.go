// Package catalog is the HTTP client for the remote product catalog service.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/me/prodview/pkg/model"
)

// DefaultBaseURL is the public catalog service the viewer was built against.
const DefaultBaseURL = "https://dummyjson.com"

// maxErrorBody bounds how much of a failed response is kept for logging.
const maxErrorBody = 512

// Catalog abstracts the two remote catalog operations for testability.
type Catalog interface {
	ListProducts(ctx context.Context, limit, skip int) (*model.PageResult, error)
	SearchProducts(ctx context.Context, query string) (*model.PageResult, error)
}

// ClientConfig holds catalog service connection settings.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration

	// RequestsPerSecond paces outgoing requests; zero disables pacing.
	RequestsPerSecond float64
	Burst             int
}

// DefaultClientConfig returns configuration pointing to the public service.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:           DefaultBaseURL,
		Timeout:           15 * time.Second,
		RequestsPerSecond: 5,
		Burst:             5,
	}
}

// Client implements Catalog over net/http. Every call is a single attempt:
// no retries and no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a catalog client.
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("component", "catalog"),
	}
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}
	return c
}

// ListProducts fetches up to limit products starting after skip.
func (c *Client) ListProducts(ctx context.Context, limit, skip int) (*model.PageResult, error) {
	const op = "list products"
	if limit <= 0 || skip < 0 {
		return nil, fmt.Errorf("%s: %w: limit=%d skip=%d", op, ErrInvalidArgument, limit, skip)
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))

	res, err := c.get(ctx, op, "/products", q)
	if err != nil {
		return nil, err
	}
	if len(res.Products) > limit {
		res.Products = res.Products[:limit]
	}
	return res, nil
}

// SearchProducts runs a free-text search. The service does not paginate
// search results and may omit the total.
func (c *Client) SearchProducts(ctx context.Context, query string) (*model.PageResult, error) {
	const op = "search products"
	if query == "" {
		return nil, fmt.Errorf("%s: %w: empty query", op, ErrInvalidArgument)
	}

	q := url.Values{}
	q.Set("q", query)
	return c.get(ctx, op, "/products/search", q)
}

// pageBody is the wire form; Products is a pointer so a body without the
// field is reported as malformed rather than as an empty page.
type pageBody struct {
	Products *[]model.Product `json:"products"`
	Total    *int             `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values) (*model.PageResult, error) {
	u := c.baseURL + path + "?" + query.Encode()
	reqID := uuid.NewString()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &NetworkError{Op: op, URL: u, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	c.logger.Debug("HTTP request", "op", op, "url", u, "request_id", reqID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: u, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: u, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("HTTP response",
		"op", op,
		"request_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, &HTTPStatusError{Op: op, Status: resp.StatusCode, Body: string(body)}
	}

	var pb pageBody
	if err := json.Unmarshal(body, &pb); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	if pb.Products == nil {
		return nil, &DecodeError{Op: op, Err: errors.New(`missing "products" field`)}
	}

	return &model.PageResult{
		Products: *pb.Products,
		Total:    pb.Total,
		Skip:     pb.Skip,
		Limit:    pb.Limit,
	}, nil
}
