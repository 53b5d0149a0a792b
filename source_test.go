package homespace_test

import (
	"testing"

	"github.com/apehex/homespace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Validate(t *testing.T) {
	t.Parallel()

	valid := homespace.Source{
		Name:  "craigslist",
		Kind:  homespace.SourceKindAd,
		URL:   "https://city.craigslist.org/search/fua",
		Links: "a.result-title",
	}

	t.Run("valid ad source", func(t *testing.T) {
		t.Parallel()
		s := valid
		assert.NoError(t, s.Validate())
	})

	t.Run("valid legal source needs no links selector", func(t *testing.T) {
		t.Parallel()
		s := homespace.Source{
			Name: "protonmail",
			Kind: homespace.SourceKindLegal,
			URL:  "https://proton.me/legal/privacy",
		}
		assert.NoError(t, s.Validate())
	})

	t.Run("name required", func(t *testing.T) {
		t.Parallel()
		s := valid
		s.Name = ""
		err := s.Validate()
		require.Error(t, err)
		assert.Equal(t, homespace.EINVALID, homespace.ErrorCode(err))
	})

	t.Run("url required", func(t *testing.T) {
		t.Parallel()
		s := valid
		s.URL = ""
		err := s.Validate()
		require.Error(t, err)
		assert.Equal(t, homespace.EINVALID, homespace.ErrorCode(err))
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		t.Parallel()
		s := valid
		s.Kind = "blog"
		err := s.Validate()
		require.Error(t, err)
		assert.Equal(t, homespace.EINVALID, homespace.ErrorCode(err))
	})

	t.Run("ad source without links selector rejected", func(t *testing.T) {
		t.Parallel()
		s := valid
		s.Links = ""
		err := s.Validate()
		require.Error(t, err)
		assert.Equal(t, homespace.EINVALID, homespace.ErrorCode(err))
	})
}

func TestSource_Context(t *testing.T) {
	t.Parallel()

	s := homespace.Source{
		Name:           "craigslist",
		Kind:           homespace.SourceKindAd,
		URL:            "https://city.craigslist.org/search/fua",
		BaseURL:        "https://city.craigslist.org",
		DatetimeFormat: "%Y-%m-%d %H:%M",
		Icon:           "sofa",
		Links:          "a.result-title",
		Selectors:      map[string]string{"title": "#titletextonly"},
	}

	cc := s.Context()

	assert.Equal(t, "https://city.craigslist.org", cc.BaseURL)
	assert.Equal(t, "%Y-%m-%d %H:%M", cc.DatetimeFormat)
	assert.Equal(t, "sofa", cc.Icon)
	assert.Equal(t, "craigslist", cc.Provider)
	assert.Equal(t, "#titletextonly", cc.Selectors["title"])
}
