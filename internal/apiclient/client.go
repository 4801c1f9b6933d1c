// Package apiclient is a typed client for the remote back-office API.
// Every remote call goes through one circuit breaker and every response is
// decoded into pkg/model types in this package and nowhere else.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/me/insadmin/pkg/model"
	"github.com/sony/gobreaker"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "insadmin"
)

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// Breaker tuning; zero values use the defaults below.
	BreakerFailures int
	BreakerTimeout  time.Duration
}

// Client talks to the remote API on behalf of a signed-in user. The
// bearer token is passed per call; the client itself holds no credentials.
type Client struct {
	baseURL string
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

// New creates a client for cfg.BaseURL.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.BreakerFailures <= 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	logger = logger.With("component", "apiclient")

	httpc := resty.New().
		SetBaseURL(base).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)

	failures := uint32(cfg.BreakerFailures)
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "remote-api",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: breakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			breakerState.Set(float64(to))
		},
	})

	return &Client{baseURL: base, http: httpc, breaker: cb, logger: logger}
}

// BaseURL returns the remote API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// BreakerState reports the circuit breaker state: closed, half-open or open.
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// breakerSuccess decides what counts against the breaker. Client errors
// (4xx) and cancellations are the caller's fault, not the remote's.
func breakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status > 0 && apiErr.Status < http.StatusInternalServerError
	}
	return false
}

// call describes one remote request. op names the endpoint in logs and
// metrics, e.g. "centers.list".
type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
	stream bool
}

// do executes a call through the breaker and returns the response. For
// non-stream calls the body has been read; for stream calls the caller
// must close resp.RawBody().
func (c *Client) do(ctx context.Context, token string, rc call) (*resty.Response, error) {
	start := time.Now()
	out, err := c.breaker.Execute(func() (interface{}, error) {
		req := c.http.R().SetContext(ctx)
		if token != "" {
			req.SetAuthToken(token)
		}
		if len(rc.query) > 0 {
			req.SetQueryParamsFromValues(rc.query)
		}
		if rc.body != nil {
			req.SetHeader("Content-Type", "application/json").SetBody(rc.body)
		}
		if rc.stream {
			req.SetDoNotParseResponse(true)
		}
		resp, err := req.Execute(rc.method, rc.path)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", rc.method, rc.path, err)
		}
		if apiErr := classify(resp, rc.stream); apiErr != nil {
			return nil, apiErr
		}
		return resp, nil
	})

	status := "error"
	var resp *resty.Response
	if r, ok := out.(*resty.Response); ok && r != nil {
		resp = r
		status = strconv.Itoa(r.StatusCode())
	} else {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.Status > 0 {
			status = strconv.Itoa(apiErr.Status)
		}
	}
	requestDuration.WithLabelValues(rc.op, status).Observe(time.Since(start).Seconds())

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Warn("remote call rejected", "op", rc.op, "breaker", c.BreakerState())
		return nil, &model.APIError{Code: model.ErrUnavailable, Message: "remote API unavailable, try again shortly", Status: http.StatusServiceUnavailable}
	}
	if err != nil {
		c.logger.Debug("remote call failed", "op", rc.op, "method", rc.method, "path", rc.path, "status", status, "error", err)
		return nil, err
	}
	c.logger.Debug("remote call", "op", rc.op, "method", rc.method, "path", rc.path, "status", status, "duration_ms", time.Since(start).Milliseconds())
	return resp, nil
}

// get executes a GET and returns the body.
func (c *Client) get(ctx context.Context, token, op, path string, query url.Values) ([]byte, error) {
	resp, err := c.do(ctx, token, call{op: op, method: http.MethodGet, path: path, query: query})
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// send executes a write with a JSON body and returns the response body.
func (c *Client) send(ctx context.Context, token, op, method, path string, body any) ([]byte, error) {
	resp, err := c.do(ctx, token, call{op: op, method: method, path: path, body: body})
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// classify maps a non-2xx response to a model.APIError.
func classify(resp *resty.Response, stream bool) *model.APIError {
	code := resp.StatusCode()
	if code >= 200 && code < 300 {
		return nil
	}
	var body []byte
	if stream {
		if rb := resp.RawBody(); rb != nil {
			body = readLimited(rb, 4096)
			_ = rb.Close()
		}
	} else {
		body = resp.Body()
	}
	msg := remoteMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", code)
	}

	e := &model.APIError{Message: msg, Status: code}
	switch code {
	case http.StatusUnauthorized:
		e.Code = model.ErrUnauthorized
	case http.StatusForbidden:
		e.Code = model.ErrForbidden
	case http.StatusNotFound:
		e.Code = model.ErrNotFound
	default:
		e.Code = model.ErrUpstream
	}
	return e
}

// remoteMessage extracts message, error or error.message from a body.
func remoteMessage(body []byte) string {
	var v struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if json.Unmarshal(body, &v) != nil {
		return ""
	}
	if v.Message != "" {
		return v.Message
	}
	var s string
	if json.Unmarshal(v.Error, &s) == nil && s != "" {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(v.Error, &obj) == nil {
		return obj.Message
	}
	return ""
}

func escape(id string) string {
	return url.PathEscape(id)
}
