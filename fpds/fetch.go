package fpds

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds a single feed request.
const DefaultTimeout = 25 * time.Second

// maximum number of error body bytes kept on an HTTPError
const errorBodyLimit = 1024

// ErrTimeout is returned when the feed does not answer within the timeout.
var ErrTimeout = errors.New("feed request timed out")

// HTTPError is returned when the feed answers with a non-200 status.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("feed returned status %d", e.Status)
}

// Fetcher retrieves a feed document.
type Fetcher interface {
	Fetch(ctx context.Context, url string, headers map[string]string) (string, error)
}

// HTTPFetcher fetches over HTTP with a per-request timeout and no retries.
type HTTPFetcher struct {
	Client  *http.Client
	Timeout time.Duration
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher returns a fetcher using client, or http.DefaultClient when nil.
// A zero timeout falls back to DefaultTimeout.
func NewHTTPFetcher(client *http.Client, timeout time.Duration) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &HTTPFetcher{Client: client, Timeout: timeout}
}

// Fetch issues a single GET and returns the body. Timeouts are reported as ErrTimeout
// and non-200 answers as *HTTPError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, headers map[string]string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed building feed request")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return "", errors.Wrapf(ErrTimeout, "no answer within %v", f.Timeout)
		}
		return "", errors.Wrap(err, "failed requesting feed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return "", &HTTPError{Status: resp.StatusCode, Body: string(body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(ctx, err) {
			return "", errors.Wrapf(ErrTimeout, "body not read within %v", f.Timeout)
		}
		return "", errors.Wrap(err, "failed reading feed body")
	}

	return string(body), nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
