package homespace

import (
	"context"
	"time"
)

// LegalDocument is one observed version of a provider's legal
// commitment: a privacy policy, cookie notice, or terms of service.
// Versions are immutable; a changed text yields a new version with a
// new content hash, which is what makes the records diffable over time.
type LegalDocument struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Provider    string    `json:"provider"`
	Text        string    `json:"text"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the document is missing its identity
// field.
func (d *LegalDocument) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "legal document url required")
	}
	return nil
}

// LegalDocumentSchema returns the field table for legal-document
// records. Text fragments keep their document order and are joined as
// paragraphs.
func LegalDocumentSchema() Schema {
	return Schema{
		Kind:     "legal_document",
		Identity: "url",
		Fields: []FieldSpec{
			{Name: "url", Inputs: []Normalizer{TrimSpacing}, Output: TakeFirst()},
			{Name: "provider", Inputs: []Normalizer{TrimSpacing}, Output: TakeFirst()},
			{Name: "text", Output: JoinWith("\n\n")},
		},
	}
}

// LegalDocumentService represents a service for managing versioned
// legal documents.
type LegalDocumentService interface {
	// CreateLegalDocument stores a new version of a document.
	// When the latest stored version for the same provider and URL
	// carries the same content hash, no new version is created and
	// the stored version is returned with created == false.
	CreateLegalDocument(ctx context.Context, doc *LegalDocument) (created bool, err error)

	// FindLegalDocuments retrieves versions matching the filter,
	// newest first.
	FindLegalDocuments(ctx context.Context, filter LegalDocumentFilter) ([]*LegalDocument, error)
}

// LegalDocumentFilter represents a filter for FindLegalDocuments.
type LegalDocumentFilter struct {
	Provider *string `json:"provider"`
	URL      *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
