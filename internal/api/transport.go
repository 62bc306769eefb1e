package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matheuskafuri/newsdesk/internal/logger"
	"github.com/matheuskafuri/newsdesk/internal/metrics"
	"github.com/matheuskafuri/newsdesk/internal/normalize"
)

const (
	DefaultBaseURL = "http://localhost:8080/api"
	DefaultTimeout = 15 * time.Second

	maxBodySize = 8 << 20
	userAgent   = "newsdesk"
)

// Client talks to the news service. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
	metrics    metrics.Recorder
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.metrics = r
		}
	}
}

// New returns a client for the service rooted at baseURL, e.g.
// "http://localhost:8080/api".
func New(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: NewHTTPClient(DefaultTimeout),
		logger:     logger.NewNop(),
		metrics:    metrics.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NewHTTPClient returns an http.Client with the given overall timeout.
// Zero means DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			MaxIdleConns:          20,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: timeout,
			ExpectContinueTimeout: time.Second,
		},
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

type errorStyle int

const (
	// styleFixed reports a fixed per-endpoint message on a bad status.
	styleFixed errorStyle = iota
	// styleServerMessage reports the body's "message" field on a bad status.
	styleServerMessage
)

type endpoint struct {
	name    string
	style   errorStyle
	failMsg string
}

var (
	epArticles         = endpoint{name: "articles", style: styleFixed, failMsg: MsgArticles}
	epArticle          = endpoint{name: "article", style: styleFixed, failMsg: MsgArticle}
	epSources          = endpoint{name: "sources", style: styleFixed, failMsg: MsgSources}
	epSourceNames      = endpoint{name: "source_names", style: styleFixed, failMsg: MsgSourceNames}
	epCategories       = endpoint{name: "categories", style: styleServerMessage}
	epAnalytics        = endpoint{name: "analytics", style: styleServerMessage}
	epCategoryStats    = endpoint{name: "category_stats", style: styleServerMessage}
	epTopKeywords      = endpoint{name: "top_keywords", style: styleServerMessage}
	epTopPersonalities = endpoint{name: "top_personalities", style: styleServerMessage}
	epKeywordTrends    = endpoint{name: "keyword_trends", style: styleServerMessage}
)

func (e endpoint) statusMessage(body []byte) string {
	if e.style == styleFixed {
		return e.failMsg
	}
	var payload struct {
		Message normalize.Text `json:"message"`
	}
	if normalize.Decode(body, &payload) {
		if m := strings.TrimSpace(payload.Message.String()); m != "" {
			return m
		}
	}
	return MsgServer
}

// fetchJSON issues a GET for path and decodes the body into out. A body that
// is empty or not JSON leaves out untouched. Every failure is an *Error.
func (c *Client) fetchJSON(ctx context.Context, ep endpoint, path string, params url.Values, out any) error {
	start := time.Now()
	status, err := c.get(ctx, ep, path, params, out)
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
		c.logger.Warn("api request failed",
			logger.String("endpoint", ep.name),
			logger.String("path", path),
			logger.Int("status", status),
			logger.String("kind", outcome),
			logger.Error(err),
		)
	} else {
		c.logger.Debug("api request",
			logger.String("endpoint", ep.name),
			logger.Int("status", status),
			logger.Duration("elapsed", elapsed),
		)
	}
	c.metrics.ObserveRequest(ep.name, outcome, status, elapsed)
	return err
}

func (c *Client) get(ctx context.Context, ep endpoint, path string, params url.Values, out any) (int, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, &Error{Kind: KindOther, Endpoint: ep.name, Message: MsgOther, Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 0, &Error{Kind: KindOther, Endpoint: ep.name, Message: MsgOther, Err: err}
		}
		return 0, &Error{Kind: KindNetwork, Endpoint: ep.name, Message: MsgNetwork, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.StatusCode, &Error{Kind: KindOther, Endpoint: ep.name, Status: resp.StatusCode, Message: MsgOther, Err: fmt.Errorf("reading body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &Error{
			Kind:     KindServer,
			Endpoint: ep.name,
			Status:   resp.StatusCode,
			Message:  ep.statusMessage(body),
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	normalize.Decode(body, out)
	return resp.StatusCode, nil
}
