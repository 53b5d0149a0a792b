package mock

import (
	"context"

	"github.com/apehex/homespace"
)

var _ homespace.AdService = (*AdService)(nil)

// AdService is a mock implementation of homespace.AdService.
type AdService struct {
	SaveAdFn  func(ctx context.Context, ad *homespace.SecondHandAd) error
	FindAdsFn func(ctx context.Context, filter homespace.AdFilter) ([]*homespace.SecondHandAd, error)
}

func (s *AdService) SaveAd(ctx context.Context, ad *homespace.SecondHandAd) error {
	return s.SaveAdFn(ctx, ad)
}

func (s *AdService) FindAds(ctx context.Context, filter homespace.AdFilter) ([]*homespace.SecondHandAd, error) {
	return s.FindAdsFn(ctx, filter)
}

var _ homespace.LegalDocumentService = (*LegalDocumentService)(nil)

// LegalDocumentService is a mock implementation of homespace.LegalDocumentService.
type LegalDocumentService struct {
	CreateLegalDocumentFn func(ctx context.Context, doc *homespace.LegalDocument) (bool, error)
	FindLegalDocumentsFn  func(ctx context.Context, filter homespace.LegalDocumentFilter) ([]*homespace.LegalDocument, error)
}

func (s *LegalDocumentService) CreateLegalDocument(ctx context.Context, doc *homespace.LegalDocument) (bool, error) {
	return s.CreateLegalDocumentFn(ctx, doc)
}

func (s *LegalDocumentService) FindLegalDocuments(ctx context.Context, filter homespace.LegalDocumentFilter) ([]*homespace.LegalDocument, error) {
	return s.FindLegalDocumentsFn(ctx, filter)
}
