package services

import (
	"context"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	"github.com/caixadigital/fluxo_backend/internal/dto"
)

// SettlementSvcFacade settles payables and receives receivables. The logic
// is symmetric; only the ledger direction differs.
type SettlementSvcFacade interface {
	// SettleDocument transitions a PENDING document to PAID, posts the raw
	// transaction and ledger entry to the requested scope and updates the
	// scope's cached balance, all atomically.
	SettleDocument(ctx context.Context, documentID string, req dto.SettleDocumentRequest, userID string) (*domain.Document, error)
}

// ReversalSvcFacade undoes settlements and removes ledger entries.
type ReversalSvcFacade interface {
	// ReverseSettlement returns a PAID document to PENDING, removes its
	// ledger entry, posts the inverse raw transaction, then recalculates
	// the affected scope outside the mutating transaction.
	ReverseSettlement(ctx context.Context, documentID, reason, userID string) (*domain.Document, error)

	// DeleteEntry removes an arbitrary ledger entry, reverts its side
	// effects (raw transaction, document status, cached balance), then
	// recalculates the tail of the scope's ledger.
	DeleteEntry(ctx context.Context, entryID, userID string) error
}
