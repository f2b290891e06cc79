package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caixadigital/fluxo_backend/internal/apperrors"
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portsrepo "github.com/caixadigital/fluxo_backend/internal/core/ports/repositories"
	portssvc "github.com/caixadigital/fluxo_backend/internal/core/ports/services"
	"github.com/caixadigital/fluxo_backend/internal/dto"
	"github.com/caixadigital/fluxo_backend/internal/middleware"
	"github.com/caixadigital/fluxo_backend/internal/utils/money"
)

var (
	ErrAlreadySettled     = errors.New("document is already settled")
	ErrDocumentNoValue    = errors.New("document has no value to settle")
	ErrDocumentCancelled  = errors.New("document is cancelled")
	ErrNegativeAdjustment = errors.New("fine, interest and discount must not be negative")
)

const (
	settlePayableDescription    = "Liquidação de conta a pagar"
	settleReceivableDescription = "Recebimento de conta a receber"
)

// settlementService transitions payable/receivable documents to PAID and
// posts the monetary movement to a scope. The logic is symmetric between
// the two kinds; only the ledger direction differs.
type settlementService struct {
	documentRepo   portsrepo.DocumentRepositoryFacade
	scopeRepo      portsrepo.ScopeRepositoryFacade
	lookupRepo     portsrepo.LookupRepositoryFacade
	settlementRepo portsrepo.SettlementRepositoryFacade
}

// NewSettlementService creates a new settlement engine.
func NewSettlementService(
	documentRepo portsrepo.DocumentRepositoryFacade,
	scopeRepo portsrepo.ScopeRepositoryFacade,
	lookupRepo portsrepo.LookupRepositoryFacade,
	settlementRepo portsrepo.SettlementRepositoryFacade,
) portssvc.SettlementSvcFacade {
	return &settlementService{
		documentRepo:   documentRepo,
		scopeRepo:      scopeRepo,
		lookupRepo:     lookupRepo,
		settlementRepo: settlementRepo,
	}
}

var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// SettleDocument settles a payable or receives a receivable. All writes
// (document update, raw transaction, cached balance adjustment, ledger
// append) happen in one atomic transaction; any failure rolls back all of
// them. Implements portssvc.SettlementSvcFacade.
func (s *settlementService) SettleDocument(ctx context.Context, documentID string, req dto.SettleDocumentRequest, userID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Document not found for settlement", slog.String("document_id", documentID))
		} else {
			logger.Error("Failed to find document for settlement", slog.String("error", err.Error()), slog.String("document_id", documentID))
		}
		return nil, err
	}

	if doc.Status == domain.Paid {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrAlreadySettled)
	}
	if doc.Status == domain.Cancelled {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrDocumentCancelled)
	}
	if doc.Value <= 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrDocumentNoValue)
	}

	fine, interest, discount, err := settlementAdjustments(req)
	if err != nil {
		return nil, err
	}

	if req.PaymentMethodID != nil {
		if _, err := s.lookupRepo.FindPaymentMethodByID(ctx, *req.PaymentMethodID); err != nil {
			logger.Warn("Payment method not found for settlement", slog.String("payment_method_id", *req.PaymentMethodID))
			return nil, fmt.Errorf("payment method %s: %w", *req.PaymentMethodID, err)
		}
	}
	if req.CostCenterID != nil {
		if _, err := s.lookupRepo.FindCostCenterByID(ctx, *req.CostCenterID); err != nil {
			logger.Warn("Cost center not found for settlement", slog.String("cost_center_id", *req.CostCenterID))
			return nil, fmt.Errorf("cost center %s: %w", *req.CostCenterID, err)
		}
	}

	scope, err := s.resolveScope(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	settlementDate := now
	if req.SettlementDate != nil {
		settlementDate = req.SettlementDate.UTC()
	}

	doc.Fine = fine
	doc.Interest = interest
	doc.Discount = discount
	amount := doc.SettlementAmount()
	if amount <= 0 {
		return nil, fmt.Errorf("%w: discount exceeds document value", apperrors.ErrValidation)
	}

	settlementID := uuid.NewString()
	description := settlePayableDescription
	if doc.Kind == domain.Receivable {
		description = settleReceivableDescription
	}

	doc.Status = domain.Paid
	doc.SettledValue = amount
	doc.SettlementDate = &settlementDate
	doc.SettlementID = &settlementID
	doc.PaymentMethodID = req.PaymentMethodID
	doc.CostCenterID = req.CostCenterID
	doc.BankAccountID = scope.BankAccountID
	doc.CashBoxID = scope.CashBoxID
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = userID

	entry := domain.CashFlowEntry{
		EntryID:        uuid.NewString(),
		Date:           settlementDate,
		Type:           doc.EntryType(),
		Value:          amount,
		Historic:       description,
		Description:    doc.Description,
		DocumentNumber: &doc.DocumentNumber,
		CostCenterID:   req.CostCenterID,
		BankAccountID:  scope.BankAccountID,
		CashBoxID:      scope.CashBoxID,
		SettlementID:   &settlementID,
		CreatedAt:      now,
	}

	params := portsrepo.SaveSettlementParams{Document: *doc, Entry: entry}
	if scope.IsBank() {
		params.BankTransaction = &domain.BankTransaction{
			BankTransactionID: uuid.NewString(),
			BankAccountID:     *scope.BankAccountID,
			Amount:            amount,
			Type:              doc.EntryType(),
			Description:       fmt.Sprintf("%s %s", description, doc.DocumentNumber),
			Timestamp:         settlementDate,
			SettlementID:      &settlementID,
			CreatedAt:         now,
		}
	} else {
		params.CashTransaction = &domain.CashTransaction{
			CashTransactionID: uuid.NewString(),
			CashBoxID:         *scope.CashBoxID,
			Amount:            amount,
			Type:              doc.EntryType(),
			Description:       fmt.Sprintf("%s %s", description, doc.DocumentNumber),
			Timestamp:         settlementDate,
			SettlementID:      &settlementID,
			CreatedAt:         now,
		}
	}

	savedEntry, err := s.settlementRepo.SaveSettlement(ctx, params)
	if err != nil {
		logger.Error("Failed to save settlement", slog.String("error", err.Error()), slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to save settlement: %w", err)
	}

	logger.Info("Document settled",
		slog.String("document_id", doc.DocumentID),
		slog.String("kind", string(doc.Kind)),
		slog.String("settlement_id", settlementID),
		slog.Int64("amount", amount),
		slog.Int64("entry_balance", savedEntry.Balance))
	return doc, nil
}

// resolveScope validates that the request names exactly one existing scope.
// The cash box is always referenced by explicit id; there is no implicit
// "sole cash box" lookup.
func (s *settlementService) resolveScope(ctx context.Context, req dto.SettleDocumentRequest) (domain.Scope, error) {
	scope := domain.Scope{BankAccountID: req.BankAccountID, CashBoxID: req.CashBoxID}
	if !scope.Valid() {
		return domain.Scope{}, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvalidScope)
	}
	if scope.IsBank() {
		if _, err := s.scopeRepo.FindBankAccountByID(ctx, *scope.BankAccountID); err != nil {
			return domain.Scope{}, fmt.Errorf("bank account %s: %w", *scope.BankAccountID, err)
		}
	} else {
		if _, err := s.scopeRepo.FindCashBoxByID(ctx, *scope.CashBoxID); err != nil {
			return domain.Scope{}, fmt.Errorf("cash box %s: %w", *scope.CashBoxID, err)
		}
	}
	return scope, nil
}

// settlementAdjustments converts the optional monetary adjustments to
// cents, defaulting each to zero.
func settlementAdjustments(req dto.SettleDocumentRequest) (fine, interest, discount int64, err error) {
	for _, d := range []decimal.Decimal{req.Fine, req.Interest, req.Discount} {
		if d.IsNegative() {
			return 0, 0, 0, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNegativeAdjustment)
		}
	}
	if fine, err = money.ToCents(req.Fine); err != nil {
		return 0, 0, 0, err
	}
	if interest, err = money.ToCents(req.Interest); err != nil {
		return 0, 0, 0, err
	}
	if discount, err = money.ToCents(req.Discount); err != nil {
		return 0, 0, 0, err
	}
	return fine, interest, discount, nil
}
