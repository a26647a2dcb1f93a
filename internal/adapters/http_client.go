package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"mamba-plan/internal/shared"
)

const defaultHTTPTimeout = 60 * time.Second
const defaultHTTPRetries = 3
const defaultHTTPRetryDelay = 200 * time.Millisecond
const maxHTTPRetryDelay = 2 * time.Second

// httpFetcher issues GET requests with bounded retries on transport errors,
// 5xx, and 429 responses.
type httpFetcher struct {
	Client     *http.Client
	Retries    int
	RetryDelay time.Duration
}

func newHTTPFetcher(timeout time.Duration, retries int) httpFetcher {
	return httpFetcher{
		Client:     &http.Client{Timeout: normalizeHTTPTimeout(timeout)},
		Retries:    normalizeHTTPRetries(retries),
		RetryDelay: defaultHTTPRetryDelay,
	}
}

func (f httpFetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < f.Retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		retry, body, err := f.getOnce(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry || attempt == f.Retries-1 {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.retryDelay(attempt)):
		}
	}
	if lastErr == nil {
		lastErr = errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("http request failed")
	}
	return nil, lastErr
}

func (f httpFetcher) getOnce(ctx context.Context, rawURL string) (bool, []byte, error) {
	target, username, password, err := splitUserinfo(rawURL)
	if err != nil {
		return false, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid request url").
			WithCause(err)
	}
	redacted := shared.RedactURL(target)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return false, nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create http request").
			WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	if username != "" || password != "" {
		req.SetBasicAuth(username, password)
	}
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return true, nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("request to %s failed", redacted)).
			WithCause(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read response from %s", redacted)).
			WithCause(err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return false, body, nil
	}
	code := errbuilder.CodeInternal
	switch resp.StatusCode {
	case http.StatusNotFound:
		code = errbuilder.CodeNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		code = errbuilder.CodePermissionDenied
	}
	retry := resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests
	return retry, nil, errbuilder.New().
		WithCode(code).
		WithMsg(fmt.Sprintf("unexpected response from %s", redacted)).
		WithCause(shared.HTTPStatusError(resp.StatusCode, redacted))
}

func (f httpFetcher) retryDelay(attempt int) time.Duration {
	delay := f.RetryDelay * time.Duration(1<<attempt)
	if delay > maxHTTPRetryDelay {
		delay = maxHTTPRetryDelay
	}
	jitter := time.Duration(time.Now().UnixNano() % int64(delay/2+1))
	return delay + jitter
}

// splitUserinfo moves URL userinfo out of the URL so it travels as basic
// auth and never shows up in logged URLs.
func splitUserinfo(rawURL string) (string, string, string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", "", "", err
	}
	if parsed.User == nil {
		return rawURL, "", "", nil
	}
	username := parsed.User.Username()
	password, _ := parsed.User.Password()
	parsed.User = nil
	return parsed.String(), username, password, nil
}

func normalizeHTTPTimeout(value time.Duration) time.Duration {
	if value <= 0 {
		return defaultHTTPTimeout
	}
	return value
}

func normalizeHTTPRetries(value int) int {
	if value <= 0 {
		return defaultHTTPRetries
	}
	return value
}
