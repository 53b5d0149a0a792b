package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apehex/homespace"
	homehttp "github.com/apehex/homespace/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns the page body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "market-test", r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte("<html><body>ad page</body></html>"))
		}))
		defer srv.Close()

		f := homehttp.NewFetcher(homehttp.WithUserAgent("market-test"))
		defer f.Close()

		html, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Contains(t, html, "ad page")
	})

	t.Run("non-200 responses fail as unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		f := homehttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Equal(t, homespace.EUNAVAILABLE, homespace.ErrorCode(err))
	})

	t.Run("canceled context aborts the fetch", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer srv.Close()

		f := homehttp.NewFetcher()
		defer f.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := f.Fetch(ctx, srv.URL)

		require.Error(t, err)
	})
}
