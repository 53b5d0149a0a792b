package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/apehex/homespace"
	main "github.com/apehex/homespace/cmd/homespace"
	"github.com/apehex/homespace/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegalCmd_Run(t *testing.T) {
	t.Parallel()

	docs := []*homespace.LegalDocument{
		{
			ID:          "doc-2",
			URL:         "https://provider.example.com/privacy",
			Provider:    "provider",
			Text:        "We collect nothing anymore.",
			ContentHash: "a1b2c3d4e5f60718",
			FetchedAt:   time.Date(2023, 3, 10, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:          "doc-1",
			URL:         "https://provider.example.com/privacy",
			Provider:    "provider",
			Text:        "We collect everything.",
			ContentHash: "1807f6e5d4c3b2a1",
			FetchedAt:   time.Date(2023, 1, 1, 9, 30, 0, 0, time.UTC),
		},
	}

	t.Run("lists versions with fetch time and content hash", func(t *testing.T) {
		t.Parallel()

		legal := &mock.LegalDocumentService{
			FindLegalDocumentsFn: func(_ context.Context, filter homespace.LegalDocumentFilter) ([]*homespace.LegalDocument, error) {
				return docs, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Legal:  legal,
		}

		cmd := &main.LegalCmd{Limit: 20}

		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "2023-03-10 12:00")
		assert.Contains(t, output, "a1b2c3d4e5f60718")
		assert.Contains(t, output, "https://provider.example.com/privacy")
		// Without --full the document text stays out of the listing.
		assert.NotContains(t, output, "We collect nothing anymore.")
	})

	t.Run("prints document text with --full", func(t *testing.T) {
		t.Parallel()

		legal := &mock.LegalDocumentService{
			FindLegalDocumentsFn: func(context.Context, homespace.LegalDocumentFilter) ([]*homespace.LegalDocument, error) {
				return docs, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Legal:  legal,
		}

		cmd := &main.LegalCmd{Limit: 20, Full: true}

		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "We collect nothing anymore.")
		assert.Contains(t, stdout.String(), "We collect everything.")
	})

	t.Run("passes provider and URL filters through", func(t *testing.T) {
		t.Parallel()

		legal := &mock.LegalDocumentService{
			FindLegalDocumentsFn: func(_ context.Context, filter homespace.LegalDocumentFilter) ([]*homespace.LegalDocument, error) {
				require.NotNil(t, filter.Provider)
				require.NotNil(t, filter.URL)
				assert.Equal(t, "provider", *filter.Provider)
				assert.Equal(t, "https://provider.example.com/privacy", *filter.URL)
				return nil, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Legal:  legal,
		}

		cmd := &main.LegalCmd{
			Provider: "provider",
			URL:      "https://provider.example.com/privacy",
			Limit:    20,
		}

		require.NoError(t, cmd.Run(deps))
	})
}
