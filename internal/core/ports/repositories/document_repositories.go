package repositories

import (
	"context"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
)

// ListDocumentsParams filters the document listing.
type ListDocumentsParams struct {
	Kind   *domain.DocumentKind
	Status *domain.DocumentStatus // matched against the stored status
	Limit  int
	Offset int
}

// DocumentReader defines read operations for payable/receivable documents.
type DocumentReader interface {
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// FindPaidDocumentByNumber retrieves a PAID document carrying the given
	// document number, used when deleting a ledger entry reverts its
	// originating document. Returns ErrNotFound when none exists.
	FindPaidDocumentByNumber(ctx context.Context, documentNumber string) (*domain.Document, error)

	ListDocuments(ctx context.Context, params ListDocumentsParams) ([]domain.Document, error)
}

// DocumentWriter defines write operations for documents.
type DocumentWriter interface {
	SaveDocument(ctx context.Context, doc domain.Document) error
	UpdateDocument(ctx context.Context, doc domain.Document) error
}

// DocumentRepositoryFacade combines the document repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
