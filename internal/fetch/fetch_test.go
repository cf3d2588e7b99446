package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hostlistc/hostlistc/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcherReturnsBodyOn200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("||example.com^\n"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(nil)
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "||example.com^\n", body)
}

func TestHTTPFetcherRetriesOn5xxThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(nil)
	f.Retry = RetryPolicy{MaxAttempts: 3, Initial: time.Millisecond, Factor: 2, Cap: 10 * time.Millisecond, JitterFrac: 0}
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", body)
	assert.Equal(t, int32(3), calls)
}

func TestHTTPFetcherTerminalOn404(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(nil)
	f.Retry = RetryPolicy{MaxAttempts: 3, Initial: time.Millisecond, Factor: 2, Cap: 10 * time.Millisecond, JitterFrac: 0}
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls, "4xx other than 429 must not be retried")

	var te *errs.Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, errs.NetworkError, te.Kind())
	assert.False(t, te.Retryable)
}

func TestHTTPFetcherRetriesOn429(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(nil)
	f.Retry = RetryPolicy{MaxAttempts: 3, Initial: time.Millisecond, Factor: 2, Cap: 10 * time.Millisecond, JitterFrac: 0}
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", body)
}

func TestMemoryFetcherMissReportsSourceFetchFailed(t *testing.T) {
	f := NewMemoryFetcher(map[string]string{})
	_, err := f.Fetch(context.Background(), "missing.txt")
	require.Error(t, err)
	var te *errs.Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, errs.SourceFetchFailed, te.Kind())
}

func TestIsRemoteDistinguishesLocalPaths(t *testing.T) {
	assert.True(t, IsRemote("https://example.org/a.txt"))
	assert.True(t, IsRemote("http://example.org/a.txt"))
	assert.False(t, IsRemote("./local/a.txt"))
	assert.False(t, IsRemote("/abs/local.txt"))
}
