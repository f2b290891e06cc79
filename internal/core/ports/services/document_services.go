package services

import (
	"context"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portsrepo "github.com/caixadigital/fluxo_backend/internal/core/ports/repositories"
	"github.com/caixadigital/fluxo_backend/internal/dto"
)

// DocumentSvcFacade manages the payable/receivable lifecycle outside of
// settlement: creation, lookup, listing and cancellation.
type DocumentSvcFacade interface {
	CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, userID string) (*domain.Document, error)
	GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
	ListDocuments(ctx context.Context, params portsrepo.ListDocumentsParams) ([]domain.Document, error)
	CancelDocument(ctx context.Context, documentID, userID string) (*domain.Document, error)
}
