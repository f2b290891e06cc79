package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/caixadigital/fluxo_backend/internal/apperrors"
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portsrepo "github.com/caixadigital/fluxo_backend/internal/core/ports/repositories"
	portssvc "github.com/caixadigital/fluxo_backend/internal/core/ports/services"
	"github.com/caixadigital/fluxo_backend/internal/dto"
	"github.com/caixadigital/fluxo_backend/internal/middleware"
	"github.com/caixadigital/fluxo_backend/internal/utils/money"
)

var ErrNotPending = errors.New("only pending documents can be cancelled")

type documentService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
	lookupRepo   portsrepo.LookupRepositoryFacade
}

// NewDocumentService creates a new document lifecycle service.
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryFacade, lookupRepo portsrepo.LookupRepositoryFacade) portssvc.DocumentSvcFacade {
	return &documentService{documentRepo: documentRepo, lookupRepo: lookupRepo}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// CreateDocument registers a PENDING payable or receivable. Implements
// portssvc.DocumentSvcFacade.
func (s *documentService) CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, userID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	valueCents, err := money.ToCents(req.Value)
	if err != nil {
		return nil, err
	}
	if valueCents <= 0 {
		return nil, fmt.Errorf("%w: document value must be positive", apperrors.ErrValidation)
	}

	if req.CostCenterID != nil {
		if _, err := s.lookupRepo.FindCostCenterByID(ctx, *req.CostCenterID); err != nil {
			return nil, fmt.Errorf("failed to find cost center: %w", err)
		}
	}

	now := time.Now().UTC()
	doc := domain.Document{
		DocumentID:     uuid.NewString(),
		Kind:           domain.DocumentKind(req.Kind),
		DocumentNumber: req.DocumentNumber,
		Description:    req.Description,
		Value:          valueCents,
		Status:         domain.Pending,
		DueDate:        req.DueDate,
		CostCenterID:   req.CostCenterID,
		Observation:    req.Observation,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		logger.Error("Failed to save document", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	logger.Info("Document created",
		slog.String("document_id", doc.DocumentID),
		slog.String("kind", string(doc.Kind)),
		slog.String("document_number", doc.DocumentNumber))
	return &doc, nil
}

// GetDocumentByID implements portssvc.DocumentSvcFacade.
func (s *documentService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.documentRepo.FindDocumentByID(ctx, documentID)
}

// ListDocuments implements portssvc.DocumentSvcFacade.
func (s *documentService) ListDocuments(ctx context.Context, params portsrepo.ListDocumentsParams) ([]domain.Document, error) {
	return s.documentRepo.ListDocuments(ctx, params)
}

// CancelDocument retires a PENDING document without touching the ledger. A
// PAID document must be reversed first. Implements portssvc.DocumentSvcFacade.
func (s *documentService) CancelDocument(ctx context.Context, documentID, userID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != domain.Pending {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrNotPending)
	}

	doc.Status = domain.Cancelled
	doc.LastUpdatedAt = time.Now().UTC()
	doc.LastUpdatedBy = userID
	if err := s.documentRepo.UpdateDocument(ctx, *doc); err != nil {
		logger.Error("Failed to cancel document", slog.String("error", err.Error()), slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to cancel document: %w", err)
	}

	logger.Info("Document cancelled", slog.String("document_id", documentID))
	return doc, nil
}
