package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/apehex/homespace"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ homespace.LegalDocumentService = (*LegalDocumentService)(nil)

// LegalDocumentService implements homespace.LegalDocumentService using
// SQLite. Documents are append-only: every observed text change becomes
// a new immutable version row, which is what the diffing workflow reads.
type LegalDocumentService struct {
	db *DB
}

// NewLegalDocumentService creates a new LegalDocumentService.
func NewLegalDocumentService(db *DB) *LegalDocumentService {
	return &LegalDocumentService{db: db}
}

// CreateLegalDocument stores a new version of a document. When the
// latest stored version for the same provider and URL has the same
// content hash, the text has not changed and no row is inserted.
func (s *LegalDocumentService) CreateLegalDocument(ctx context.Context, doc *homespace.LegalDocument) (bool, error) {
	if err := doc.Validate(); err != nil {
		return false, err
	}

	doc.ContentHash = hashContent(doc.Text)

	var latestHash string
	err := s.db.QueryRowContext(ctx, `
		SELECT content_hash FROM legal_documents
		WHERE provider = ? AND url = ?
		ORDER BY fetched_at DESC, id DESC
		LIMIT 1
	`, doc.Provider, doc.URL).Scan(&latestHash)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	if err == nil && latestHash == doc.ContentHash {
		return false, nil
	}

	doc.ID = uuid.New().String()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO legal_documents (id, url, provider, text, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.URL, doc.Provider, doc.Text, doc.ContentHash, doc.FetchedAt.Format(time.RFC3339Nano))
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindLegalDocuments retrieves versions matching the filter, newest
// first.
func (s *LegalDocumentService) FindLegalDocuments(ctx context.Context, filter homespace.LegalDocumentFilter) ([]*homespace.LegalDocument, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, url, provider, text, content_hash, fetched_at
		FROM legal_documents WHERE 1=1`)

	if filter.Provider != nil {
		query.WriteString(" AND provider = ?")
		args = append(args, *filter.Provider)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY fetched_at DESC, id DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*homespace.LegalDocument
	for rows.Next() {
		var doc homespace.LegalDocument
		var fetchedAt string

		if err := rows.Scan(&doc.ID, &doc.URL, &doc.Provider, &doc.Text, &doc.ContentHash, &fetchedAt); err != nil {
			return nil, err
		}

		doc.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, err
		}

		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}
