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
	"github.com/caixadigital/fluxo_backend/internal/middleware"
)

var (
	ErrNotSettled = errors.New("document is not settled")
)

const entryRemovedAnnotation = "Lançamento removido do fluxo de caixa"

// reversalService undoes settlements and deletes ledger entries. Each
// operation performs one atomic mutation that flags the scope
// recalc-pending, then runs the balance recalculation outside that
// transaction. A crash between the two phases leaves the flag set, so the
// inconsistency window is observable until the next recalculation
// self-heals it.
type reversalService struct {
	documentRepo    portsrepo.DocumentRepositoryFacade
	ledgerRepo      portsrepo.LedgerRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	settlementRepo  portsrepo.SettlementRepositoryFacade
	recalcSvc       portssvc.RecalcSvcFacade
}

// NewReversalService creates a new reversal/deletion engine.
func NewReversalService(
	documentRepo portsrepo.DocumentRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	transactionRepo portsrepo.TransactionRepositoryFacade,
	settlementRepo portsrepo.SettlementRepositoryFacade,
	recalcSvc portssvc.RecalcSvcFacade,
) portssvc.ReversalSvcFacade {
	return &reversalService{
		documentRepo:    documentRepo,
		ledgerRepo:      ledgerRepo,
		transactionRepo: transactionRepo,
		settlementRepo:  settlementRepo,
		recalcSvc:       recalcSvc,
	}
}

var _ portssvc.ReversalSvcFacade = (*reversalService)(nil)

// ReverseSettlement returns a PAID document to PENDING, deletes the ledger
// entry its settlement created, posts the inverse raw transaction and
// restores the scope's cached balance. Implements portssvc.ReversalSvcFacade.
func (s *reversalService) ReverseSettlement(ctx context.Context, documentID, reason, userID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Document not found for reversal", slog.String("document_id", documentID))
		} else {
			logger.Error("Failed to find document for reversal", slog.String("error", err.Error()), slog.String("document_id", documentID))
		}
		return nil, err
	}

	if doc.Status != domain.Paid || doc.SettledValue <= 0 || doc.SettlementDate == nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrNotSettled)
	}

	scope := domain.Scope{BankAccountID: doc.BankAccountID, CashBoxID: doc.CashBoxID}
	if !scope.Valid() {
		return nil, fmt.Errorf("%w: settled document carries no scope", apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	amount := doc.SettledValue
	postingType := doc.EntryType()

	// Locate the matching ledger entry. SettlementID disambiguates when
	// present; older rows fall back to value/type/document-number matching.
	var matchedEntryID string
	var matchedEntryDate time.Time
	entry, err := s.ledgerRepo.FindMatchingEntry(ctx, portsrepo.EntryMatch{
		Scope:          scope,
		Value:          amount,
		Type:           postingType,
		SettlementID:   doc.SettlementID,
		DocumentNumber: &doc.DocumentNumber,
	})
	switch {
	case err == nil:
		matchedEntryID = entry.EntryID
		matchedEntryDate = entry.Date
	case errors.Is(err, apperrors.ErrNotFound):
		// Tolerated: the engine prioritizes forward progress; the full
		// recalculation below restores global consistency regardless.
		logger.Warn("No ledger entry matched settlement during reversal", slog.String("document_id", documentID))
	default:
		logger.Error("Failed to locate ledger entry for reversal", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to locate ledger entry: %w", err)
	}

	params := portsrepo.SaveReversalParams{
		MatchedEntryID: matchedEntryID,
		Scope:          scope,
		BalanceDelta:   inverseDelta(postingType, amount),
	}

	// The inverse raw transaction mirrors the original posting with the
	// opposite type. Its absence from the log is tolerated on lookup, but
	// the estorno row is always written.
	originalDescription := settlePayableDescription
	if doc.Kind == domain.Receivable {
		originalDescription = settleReceivableDescription
	}
	if _, err := s.findRawTransaction(ctx, scope, doc, originalDescription); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to locate raw transaction for reversal", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to locate raw transaction: %w", err)
		}
		logger.Warn("No raw transaction matched settlement during reversal", slog.String("document_id", documentID))
	}
	inverseDescription := fmt.Sprintf("Estorno de %s %s", lowerFirst(originalDescription), doc.DocumentNumber)
	if scope.IsBank() {
		params.BankTransaction = &domain.BankTransaction{
			BankTransactionID: uuid.NewString(),
			BankAccountID:     *scope.BankAccountID,
			Amount:            amount,
			Type:              oppositeType(postingType),
			Description:       inverseDescription,
			Timestamp:         now,
			SettlementID:      doc.SettlementID,
			CreatedAt:         now,
		}
	} else {
		params.CashTransaction = &domain.CashTransaction{
			CashTransactionID: uuid.NewString(),
			CashBoxID:         *scope.CashBoxID,
			Amount:            amount,
			Type:              oppositeType(postingType),
			Description:       inverseDescription,
			Timestamp:         now,
			SettlementID:      doc.SettlementID,
			CreatedAt:         now,
		}
	}

	resetDocumentSettlement(doc, reason, now, userID)
	params.Document = *doc

	if err := s.settlementRepo.SaveReversal(ctx, params); err != nil {
		logger.Error("Failed to save reversal", slog.String("error", err.Error()), slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to save reversal: %w", err)
	}

	// Phase two, outside the atomic mutation: restore the running-balance
	// invariant for everything after the removed entry. The scope stays
	// flagged recalc-pending until this succeeds.
	if matchedEntryID != "" {
		_, err = s.recalcSvc.RecalculateFromDate(ctx, scope, matchedEntryDate.Add(time.Millisecond))
	} else {
		_, err = s.recalcSvc.RecalculateFull(ctx, scope)
	}
	if err != nil {
		// The reversal itself is committed; the dirty marker stays set and
		// the next recalculation heals the cached balance.
		logger.Error("Recalculation after reversal failed, scope left recalc-pending", slog.String("error", err.Error()))
	}

	logger.Info("Settlement reversed", slog.String("document_id", doc.DocumentID), slog.String("reason", reason))
	return doc, nil
}

// DeleteEntry removes an arbitrary ledger entry and reverses its side
// effects, then recomputes the balance of every surviving entry from the
// deleted entry's instant forward. Implements portssvc.ReversalSvcFacade.
func (s *reversalService) DeleteEntry(ctx context.Context, entryID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Ledger entry not found for deletion", slog.String("entry_id", entryID))
		} else {
			logger.Error("Failed to find ledger entry for deletion", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return err
	}

	scope := entry.Scope()
	now := time.Now().UTC()

	params := portsrepo.SaveEntryDeletionParams{
		Entry:        *entry,
		BalanceDelta: -entry.SignedValue(),
	}

	// Locate the raw transaction created alongside the entry. Imported
	// rows are matched by their file tag, settled rows by correlation id,
	// manual rows by amount/type near the entry's instant. Absence is
	// tolerated.
	if scope.IsBank() {
		match := portsrepo.TransactionMatch{
			BankAccountID: *scope.BankAccountID,
			Amount:        entry.Value,
			Type:          entry.Type,
			SettlementID:  entry.SettlementID,
			CSVFileName:   entry.CSVFileName,
			NotBefore:     dayStart(entry.Date),
			NearestTo:     entry.Date,
		}
		txn, err := s.transactionRepo.FindMatchingBankTransaction(ctx, match)
		switch {
		case err == nil:
			params.BankTransactionID = txn.BankTransactionID
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("No raw bank transaction matched deleted entry", slog.String("entry_id", entryID))
		default:
			logger.Error("Failed to locate raw bank transaction", slog.String("error", err.Error()))
			return fmt.Errorf("failed to locate raw bank transaction: %w", err)
		}
	} else {
		match := portsrepo.TransactionMatch{
			CashBoxID:    *scope.CashBoxID,
			Amount:       entry.Value,
			Type:         entry.Type,
			SettlementID: entry.SettlementID,
			NotBefore:    dayStart(entry.Date),
			NearestTo:    entry.Date,
		}
		txn, err := s.transactionRepo.FindMatchingCashTransaction(ctx, match)
		switch {
		case err == nil:
			params.CashTransactionID = txn.CashTransactionID
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("No raw cash transaction matched deleted entry", slog.String("entry_id", entryID))
		default:
			logger.Error("Failed to locate raw cash transaction", slog.String("error", err.Error()))
			return fmt.Errorf("failed to locate raw cash transaction: %w", err)
		}
	}

	// An entry that settled a document drags that document back to PENDING.
	if entry.DocumentNumber != nil && *entry.DocumentNumber != "" {
		doc, err := s.documentRepo.FindPaidDocumentByNumber(ctx, *entry.DocumentNumber)
		switch {
		case err == nil:
			resetDocumentSettlement(doc, entryRemovedAnnotation, now, userID)
			params.RevertDocument = doc
		case errors.Is(err, apperrors.ErrNotFound):
			// No PAID document carries this number; nothing to revert.
		default:
			logger.Error("Failed to find document for entry deletion", slog.String("error", err.Error()))
			return fmt.Errorf("failed to find document by number: %w", err)
		}
	}

	if err := s.settlementRepo.SaveEntryDeletion(ctx, params); err != nil {
		logger.Error("Failed to save entry deletion", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to save entry deletion: %w", err)
	}

	// The +1ms excludes the deleted entry's own timestamp from the seed
	// lookup while entries legitimately sharing that instant are still
	// recomputed; everything strictly before stays untouched.
	if _, err := s.recalcSvc.RecalculateFromDate(ctx, scope, entry.Date.Add(time.Millisecond)); err != nil {
		logger.Error("Recalculation after entry deletion failed, scope left recalc-pending", slog.String("error", err.Error()))
	}

	logger.Info("Ledger entry deleted", slog.String("entry_id", entryID))
	return nil
}

// findRawTransaction locates the raw transaction a settlement created.
// One principled window: from the settlement date forward, no upper bound,
// nearest match by timestamp.
func (s *reversalService) findRawTransaction(ctx context.Context, scope domain.Scope, doc *domain.Document, description string) (string, error) {
	match := portsrepo.TransactionMatch{
		Amount:              doc.SettledValue,
		Type:                doc.EntryType(),
		DescriptionContains: description,
		SettlementID:        doc.SettlementID,
		NotBefore:           *doc.SettlementDate,
		NearestTo:           *doc.SettlementDate,
	}
	if scope.IsBank() {
		match.BankAccountID = *scope.BankAccountID
		txn, err := s.transactionRepo.FindMatchingBankTransaction(ctx, match)
		if err != nil {
			return "", err
		}
		return txn.BankTransactionID, nil
	}
	match.CashBoxID = *scope.CashBoxID
	txn, err := s.transactionRepo.FindMatchingCashTransaction(ctx, match)
	if err != nil {
		return "", err
	}
	return txn.CashTransactionID, nil
}

// resetDocumentSettlement returns a document to PENDING, clearing every
// settlement field and annotating the observation with the reversal reason.
func resetDocumentSettlement(doc *domain.Document, reason string, now time.Time, userID string) {
	doc.Status = domain.Pending
	doc.SettledValue = 0
	doc.Fine = 0
	doc.Interest = 0
	doc.Discount = 0
	doc.SettlementDate = nil
	doc.SettlementID = nil
	doc.PaymentMethodID = nil
	doc.BankAccountID = nil
	doc.CashBoxID = nil
	annotation := fmt.Sprintf("[ESTORNADO: %s]", reason)
	if doc.Observation == "" {
		doc.Observation = annotation
	} else {
		doc.Observation = doc.Observation + " " + annotation
	}
	doc.LastUpdatedAt = now
	doc.LastUpdatedBy = userID
}

// inverseDelta is the signed cache adjustment that undoes a posting.
func inverseDelta(t domain.EntryType, amount int64) int64 {
	if t == domain.Debit {
		return amount
	}
	return -amount
}

func oppositeType(t domain.EntryType) domain.EntryType {
	if t == domain.Debit {
		return domain.Credit
	}
	return domain.Debit
}

// dayStart truncates an instant to midnight UTC of its calendar day.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// lowerFirst lowercases the first rune of a description so it reads
// naturally after the "Estorno de" prefix.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'A' && r[0] <= 'Z' {
		r[0] = r[0] + ('a' - 'A')
	}
	return string(r)
}
