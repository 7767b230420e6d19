package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/junalkadhav/library-management/internal/observability"
	apperrors "github.com/junalkadhav/library-management/pkg/util"
)

// Client wraps outbound HTTP calls between services and normalizes every
// failure into one of three outcomes: transport failure (upstream
// unreachable), remote error status (upstream rejected, carrying the remote
// message when one is present), or success with the raw body passed through.
// Callers never see raw transport errors. Single attempt, bounded by the
// configured timeout; retrying is the caller's concern.
type Client struct {
	http    *http.Client
	logger  *zap.Logger
	metrics *observability.Metrics
}

// Response is a successful upstream reply.
type Response struct {
	Status int
	Body   []byte
}

// NewClient builds a call client with the given per-call timeout.
func NewClient(timeout time.Duration, logger *zap.Logger, metrics *observability.Metrics) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: metrics,
	}
}

// Do performs a single HTTP call and maps the outcome.
func (c *Client) Do(ctx context.Context, method, url string, header http.Header, body []byte) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if body != nil && req.Header.Get(headerContentType) == "" {
		req.Header.Set(headerContentType, "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("upstream call failed",
			zap.String("method", method),
			zap.String("url", url),
			zap.Error(err))
		c.metrics.RecordUpstreamCall(url, false)
		return nil, apperrors.NewUpstreamUnreachable(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordUpstreamCall(url, false)
		return nil, apperrors.NewUpstreamUnreachable(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.RecordUpstreamCall(url, false)
		return nil, apperrors.NewUpstreamRejected(resp.StatusCode, remoteMessage(data, resp.StatusCode))
	}

	c.metrics.RecordUpstreamCall(url, true)
	return &Response{Status: resp.StatusCode, Body: data}, nil
}

// DoJSON marshals the request body and decodes a successful response into out.
func (c *Client) DoJSON(ctx context.Context, method, url string, header http.Header, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
	}
	resp, err := c.Do(ctx, method, url, header, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

const headerContentType = "Content-Type"

// remoteMessage extracts the message field from a remote error body, reading
// both a top-level message and the shared error envelope, else falls back to
// the generic status text.
func remoteMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error.Message != "" {
			return payload.Error.Message
		}
	}
	return http.StatusText(status)
}
