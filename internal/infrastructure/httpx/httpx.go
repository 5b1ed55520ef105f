package httpx

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const maxBodyBytes = 4 << 20

// HTTPClient is the subset of *http.Client used here.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Response is a fully read reply. Any status code is a valid Response.
type Response struct {
	StatusCode int
	Reason     string
	Body       []byte
}

type Client struct {
	HTTP      HTTPClient
	UserAgent string
	// MaxRetries bounds retries of network-level failures. HTTP statuses are
	// never retried.
	MaxRetries uint64
}

// New returns a Client over a pooled transport, safe to share per process.
func New(timeout time.Duration, maxRetries uint64) *Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 3 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		ForceAttemptHTTP2:     true,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   3 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &Client{
		HTTP:       &http.Client{Timeout: timeout, Transport: transport},
		UserAgent:  "stockquotes-service/1.0",
		MaxRetries: maxRetries,
	}
}

func (c *Client) Get(ctx context.Context, rawURL string) (Response, error) {
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 1 * time.Second
	exp.MaxElapsedTime = 3 * time.Second

	var out Response
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("new request: %w", err))
		}
		req.Header.Set("Accept", "application/json")
		if c.UserAgent != "" {
			req.Header.Set("User-Agent", c.UserAgent)
		}
		resp, err := hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		out = Response{StatusCode: resp.StatusCode, Reason: ReasonPhrase(resp), Body: body}
		return nil
	}
	b := backoff.WithContext(backoff.WithMaxRetries(exp, c.MaxRetries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return Response{}, err
	}
	return out, nil
}

// ReasonPhrase returns the text after the code in resp.Status, or the
// standard text for the code.
func ReasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
