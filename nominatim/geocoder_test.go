package nominatim_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apehex/homespace"
	"github.com/apehex/homespace/nominatim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchResultsXML = `<?xml version="1.0" encoding="UTF-8"?>
<searchresults timestamp="Sat, 11 Mar 23 12:00:00 +0000" querystring="berlin">
	<place place_id="1" display_name="Berlin, Deutschland" lat="52.5170365" lon="13.3888599"/>
</searchresults>`

const emptyResultsXML = `<?xml version="1.0" encoding="UTF-8"?>
<searchresults timestamp="Sat, 11 Mar 23 12:00:00 +0000" querystring="nowhere"></searchresults>`

func TestGeocoder_Locate(t *testing.T) {
	t.Parallel()

	t.Run("returns the first place of the response", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "Berlin", r.URL.Query().Get("q"))
			assert.Equal(t, "xml", r.URL.Query().Get("format"))
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
			_, _ = w.Write([]byte(searchResultsXML))
		}))
		defer srv.Close()

		g := nominatim.NewGeocoder(nominatim.WithBaseURL(srv.URL))

		pt, err := g.Locate(context.Background(), " Berlin ")

		require.NoError(t, err)
		require.NotNil(t, pt)
		assert.InDelta(t, 52.5170365, pt.Latitude, 1e-9)
		assert.InDelta(t, 13.3888599, pt.Longitude, 1e-9)
	})

	t.Run("no match means no location, not an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(emptyResultsXML))
		}))
		defer srv.Close()

		g := nominatim.NewGeocoder(nominatim.WithBaseURL(srv.URL))

		pt, err := g.Locate(context.Background(), "nowhere in particular")

		require.NoError(t, err)
		assert.Nil(t, pt)
	})

	t.Run("empty location skips the lookup", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Error("no request expected for an empty location")
		}))
		defer srv.Close()

		g := nominatim.NewGeocoder(nominatim.WithBaseURL(srv.URL))

		pt, err := g.Locate(context.Background(), " \n ")

		require.NoError(t, err)
		assert.Nil(t, pt)
	})

	t.Run("server errors surface as unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		g := nominatim.NewGeocoder(nominatim.WithBaseURL(srv.URL))

		_, err := g.Locate(context.Background(), "Berlin")

		require.Error(t, err)
		assert.Equal(t, homespace.EUNAVAILABLE, homespace.ErrorCode(err))
	})

	t.Run("transport failure surfaces as unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close() // connection refused from here on

		g := nominatim.NewGeocoder(nominatim.WithBaseURL(srv.URL))

		_, err := g.Locate(context.Background(), "Berlin")

		require.Error(t, err)
		assert.Equal(t, homespace.EUNAVAILABLE, homespace.ErrorCode(err))
	})
}
