// Package fetch resolves a configured source to raw text (spec §4.D,
// §4.O "Platform seams"). It is grounded on the teacher's HTTP+cache
// loader (feng2208-adblocker parser/loader.go) and the context-aware,
// regex-validating downloader in the galpt-go-cfgw example, generalized
// into a small interface so remote HTTP and pre-supplied in-memory
// content are interchangeable.
package fetch

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hostlistc/hostlistc/internal/errs"
	"github.com/hostlistc/hostlistc/internal/logging"
)

// Fetcher resolves a single locator (URL or local path) to its raw
// textual content. Implementations are the platform seam §4.O calls out.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) (string, error)
}

// HTTPFetcher fetches remote sources over HTTP(S) and local sources from
// disk, with retrying exponential backoff on the remote path.
type HTTPFetcher struct {
	Client *http.Client
	Retry  RetryPolicy
	Logger logging.Logger

	readFile func(path string) ([]byte, error)
}

// NewHTTPFetcher builds an HTTPFetcher with the default client timeout and
// retry policy, in the teacher's constructor style.
func NewHTTPFetcher(logger logging.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{Timeout: 30 * time.Second},
		Retry:  DefaultRetryPolicy(),
		Logger: logging.OrNop(logger),
	}
}

// Fetch implements Fetcher. Remote locators (those with a URL scheme) are
// retried per the configured RetryPolicy; local paths are read once.
func (f *HTTPFetcher) Fetch(ctx context.Context, locator string) (string, error) {
	if !IsRemote(locator) {
		return f.fetchLocal(locator)
	}
	body, err := do(ctx, f.Retry, func(ctx context.Context, attempt int) (string, bool, error) {
		body, retryable, err := f.fetchOnce(ctx, locator)
		if err != nil {
			f.Logger.Warn("source fetch attempt failed", map[string]any{
				"source": locator, "attempt": attempt, "retryable": retryable, "error": err.Error(),
			})
		}
		return body, retryable, err
	})
	if err != nil {
		return "", asFetchError(locator, err)
	}
	return body, nil
}

func (f *HTTPFetcher) fetchLocal(path string) (string, error) {
	read := f.readFile
	if read == nil {
		read = defaultReadFile
	}
	data, err := read(path)
	if err != nil {
		if errors.Is(err, errFileNotFound) {
			return "", errs.New(errs.FileNotFound, path, err)
		}
		return "", errs.New(errs.SourceFetchFailed, path, err)
	}
	return string(data), nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) (body string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", isRetryableNetErr(err), err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		data, rerr := io.ReadAll(resp.Body)
		if rerr != nil {
			return "", true, rerr
		}
		return string(data), false, nil
	}

	retryable = resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
	return "", retryable, &httpStatusError{URL: url, StatusCode: resp.StatusCode}
}

type httpStatusError struct {
	URL        string
	StatusCode int
}

func (e *httpStatusError) Error() string {
	return "http status " + http.StatusText(e.StatusCode) + " from " + e.URL
}

// isRetryableNetErr classifies low-level network failures per §4.D:
// connection refused/timeout/reset are retryable.
func isRetryableNetErr(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := err.Error()
	for _, substr := range []string{"connection refused", "connection reset", "EOF", "i/o timeout"} {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

func asFetchError(locator string, err error) error {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		retryable := statusErr.StatusCode >= 500 || statusErr.StatusCode == http.StatusTooManyRequests
		return errs.Retryablef(errs.NetworkError, retryable, "fetching %s: %s", locator, statusErr.Error()).
			WithContext("source", locator).WithContext("statusCode", statusErr.StatusCode)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.New(errs.NetworkTimeout, "timed out fetching "+locator, err).WithContext("source", locator)
	}
	return errs.New(errs.SourceFetchFailed, "fetching "+locator, err).WithContext("source", locator)
}

// MemoryFetcher is an in-memory Fetcher keyed by locator, used by tests
// and by callers that already hold pre-supplied content (§4.O's second
// platform seam).
type MemoryFetcher struct {
	Content map[string]string
}

// NewMemoryFetcher builds a MemoryFetcher over the given locator->content map.
func NewMemoryFetcher(content map[string]string) *MemoryFetcher {
	return &MemoryFetcher{Content: content}
}

func (f *MemoryFetcher) Fetch(_ context.Context, locator string) (string, error) {
	content, ok := f.Content[locator]
	if !ok {
		return "", errs.New(errs.SourceFetchFailed, "no content registered for "+locator, nil).
			WithContext("source", locator)
	}
	return content, nil
}

// IsRemote reports whether locator carries a URL scheme (http/https),
// distinguishing remote sources from local filesystem paths.
func IsRemote(locator string) bool {
	return strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://")
}
