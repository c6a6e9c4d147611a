// Package transport holds the HTTP policy shared by the notification
// backends: one bounded attempt per send, no retries.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultRequestTimeout = 10 * time.Second
	maxResponseBytes      = 1 << 20
)

type Client struct {
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

type Response struct {
	StatusCode int
	// Status is the status line as sent by the server, e.g. "404 Not Found".
	Status string
	Body   []byte
}

// Failed reports whether the server answered with an HTTP error status.
func (r Response) Failed() bool {
	return r.StatusCode >= http.StatusBadRequest
}

func (c Client) Do(ctx context.Context, method string, endpoint string, body []byte, header http.Header) (Response, error) {
	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, reader)
	if err != nil {
		return Response{}, fmt.Errorf("create request: %w", err)
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return Response{}, cleanTransportError(err, c.timeout())
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}

	status := resp.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return Response{StatusCode: resp.StatusCode, Status: status, Body: data}, nil
}

// NetworkMessage renders a transport failure for a NotifyResult.
func NetworkMessage(err error) string {
	return "Network error: " + err.Error()
}

// JoinURL appends path to an http(s) base URL, trimming duplicate slashes.
func JoinURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("base url host is required")
	}

	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/"), nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) timeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return DefaultRequestTimeout
	}
	return c.RequestTimeout
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, c.timeout())
}

// cleanTransportError drops the request URL from client errors; Telegram
// URLs embed the bot token.
func cleanTransportError(err error, timeout time.Duration) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() || errors.Is(urlErr.Err, context.DeadlineExceeded) {
			return fmt.Errorf("request timed out after %s", timeout)
		}
		return urlErr.Err
	}

	return err
}
