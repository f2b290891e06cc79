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
	ErrInactiveAccount = errors.New("bank account is inactive")
	ErrNoImportedRows  = errors.New("no statement rows could be imported")
)

// Rows sharing a calendar date carry no natural time; synthesis spaces them
// one minute apart starting at 03:00 UTC, or one minute after the day's
// last existing transaction.
const (
	intraDayAnchorHour = 3
	intraDayStep       = time.Minute
)

// statementService imports bank statements: idempotent delete-then-reinsert
// keyed by file name, deterministic intra-day ordering, per-row atomic
// inserts, and an authoritative second balance pass.
type statementService struct {
	scopeRepo       portsrepo.ScopeRepositoryFacade
	lookupRepo      portsrepo.LookupRepositoryFacade
	ledgerRepo      portsrepo.LedgerRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	statementRepo   portsrepo.StatementRepositoryFacade
	batchPause      time.Duration
	maxRetries      int
}

// NewStatementService creates a new statement importer. batchPause is the
// delay between batches of the batched variant; maxRetries bounds the
// per-batch retry loop.
func NewStatementService(
	scopeRepo portsrepo.ScopeRepositoryFacade,
	lookupRepo portsrepo.LookupRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	transactionRepo portsrepo.TransactionRepositoryFacade,
	statementRepo portsrepo.StatementRepositoryFacade,
	batchPause time.Duration,
	maxRetries int,
) portssvc.StatementSvcFacade {
	return &statementService{
		scopeRepo:       scopeRepo,
		lookupRepo:      lookupRepo,
		ledgerRepo:      ledgerRepo,
		transactionRepo: transactionRepo,
		statementRepo:   statementRepo,
		batchPause:      batchPause,
		maxRetries:      maxRetries,
	}
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// ImportStatement implements portssvc.StatementSvcFacade.
func (s *statementService) ImportStatement(ctx context.Context, params portssvc.ImportStatementParams) (*domain.StatementImportResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.validateAccount(ctx, params.BankAccountID)
	if err != nil {
		return nil, err
	}

	rows, invalid, err := ParseStatement(params.FileBytes, params.SheetIndex)
	if err != nil {
		logger.Warn("Statement parse failed", slog.String("error", err.Error()), slog.String("file", params.FileName))
		return nil, err
	}
	for _, inv := range invalid {
		logger.Warn("Skipping invalid statement row", slog.Int("row", inv.RowIndex), slog.String("reason", inv.Reason))
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNoImportedRows)
	}

	result, err := s.processRows(ctx, account, rows, params.FileName, params.UserID)
	if err != nil {
		return nil, err
	}
	result.Skipped = len(invalid)

	logger.Info("Statement imported",
		slog.String("bank_account_id", account.BankAccountID),
		slog.String("file", params.FileName),
		slog.Int("imported", result.Imported),
		slog.Int("skipped", result.Skipped),
		slog.Int("errored", result.Errored),
		slog.Int64("final_balance", result.FinalBalance))
	return result, nil
}

// ImportStatementBatched implements portssvc.StatementSvcFacade. The
// statement is parsed once; rows are processed in file order in batches,
// each batch its own idempotent unit keyed by a suffixed file name with
// bounded retry, and a fixed pause between batches keeps pressure off the
// store.
func (s *statementService) ImportStatementBatched(ctx context.Context, params portssvc.ImportStatementParams, batchSize int) (*domain.StatementImportResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: batch size must be positive", apperrors.ErrValidation)
	}

	account, err := s.validateAccount(ctx, params.BankAccountID)
	if err != nil {
		return nil, err
	}

	rows, invalid, err := ParseStatement(params.FileBytes, params.SheetIndex)
	if err != nil {
		return nil, err
	}
	for _, inv := range invalid {
		logger.Warn("Skipping invalid statement row", slog.Int("row", inv.RowIndex), slog.String("reason", inv.Reason))
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNoImportedRows)
	}

	total := &domain.StatementImportResult{Skipped: len(invalid)}
	for batchNum := 0; batchNum*batchSize < len(rows); batchNum++ {
		start := batchNum * batchSize
		end := min(start+batchSize, len(rows))
		batchName := fmt.Sprintf("%s#batch-%03d", params.FileName, batchNum+1)

		batchResult, err := s.processBatchWithRetry(ctx, account, rows[start:end], batchName, params.UserID)
		if err != nil {
			logger.Error("Statement batch failed after retries",
				slog.String("batch", batchName), slog.String("error", err.Error()))
			return nil, fmt.Errorf("batch %d failed: %w", batchNum+1, err)
		}
		total.Imported += batchResult.Imported
		total.Errored += batchResult.Errored
		total.FinalBalance = batchResult.FinalBalance

		if end < len(rows) && s.batchPause > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.batchPause):
			}
		}
	}

	if total.Imported == 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNoImportedRows)
	}
	logger.Info("Batched statement import finished",
		slog.String("file", params.FileName),
		slog.Int("imported", total.Imported),
		slog.Int("errored", total.Errored))
	return total, nil
}

func (s *statementService) processBatchWithRetry(ctx context.Context, account *domain.BankAccount, rows []domain.StatementRow, batchName, userID string) (*domain.StatementImportResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var lastErr error
	backoff := time.Second
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		result, err := s.processRows(ctx, account, rows, batchName, userID)
		if err == nil {
			return result, nil
		}
		lastErr = err
		// Validation failures are deterministic; retrying cannot help.
		if errors.Is(err, apperrors.ErrValidation) {
			return nil, err
		}
		logger.Warn("Statement batch attempt failed",
			slog.String("batch", batchName), slog.Int("attempt", attempt), slog.String("error", err.Error()))
		if attempt < s.maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	return nil, lastErr
}

// processRows runs the side-effecting import pipeline for one idempotent
// unit: seed lookup, delete-then-reinsert, ordering synthesis, per-row
// atomic inserts and the authoritative second balance pass.
func (s *statementService) processRows(ctx context.Context, account *domain.BankAccount, rows []domain.StatementRow, csvFileName, userID string) (*domain.StatementImportResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	firstDate := rows[0].Date
	for _, r := range rows[1:] {
		if r.Date.Before(firstDate) {
			firstDate = r.Date
		}
	}

	// Carry-forward seed: latest snapshot strictly before the statement's
	// first transaction date, zero when the account has no history.
	seed := int64(0)
	snapshot, err := s.scopeRepo.FindLastBankBalanceBefore(ctx, account.BankAccountID, firstDate)
	switch {
	case err == nil:
		seed = snapshot.Balance
	case errors.Is(err, apperrors.ErrNotFound):
	default:
		return nil, fmt.Errorf("failed to find starting balance: %w", err)
	}

	// Re-import replaces: prior rows under this file tag go away before the
	// day-anchor lookups, so a re-run never anchors off its own output.
	if err := s.statementRepo.DeleteImportedRows(ctx, account.BankAccountID, csvFileName); err != nil {
		return nil, fmt.Errorf("failed to delete previously imported rows: %w", err)
	}

	timestamps, err := s.synthesizeTimestamps(ctx, account.BankAccountID, rows)
	if err != nil {
		return nil, err
	}

	result := &domain.StatementImportResult{}
	running := seed
	var fallbackCostCenterID *string
	for i, row := range rows {
		costCenterID, err := s.resolveCostCenter(ctx, row.CostCenterID, &fallbackCostCenterID)
		if err != nil {
			return nil, err
		}

		candidate := running + signedAmount(row.Type, row.Value)
		txn := domain.BankTransaction{
			BankTransactionID: uuid.NewString(),
			BankAccountID:     account.BankAccountID,
			Amount:            row.Value,
			Type:              row.Type,
			Description:       row.Historic,
			Timestamp:         timestamps[i],
			CSV:               true,
			CSVFileName:       &csvFileName,
			CreatedAt:         now,
		}
		entry := domain.CashFlowEntry{
			EntryID:       uuid.NewString(),
			Date:          timestamps[i],
			Type:          row.Type,
			Value:         row.Value,
			Balance:       candidate, // provisional; the second pass is authoritative
			Historic:      row.Historic,
			Description:   row.Detailing,
			CostCenterID:  costCenterID,
			BankAccountID: &account.BankAccountID,
			CSVFileName:   &csvFileName,
			CreatedAt:     now,
		}
		if err := s.statementRepo.SaveImportedRow(ctx, txn, entry); err != nil {
			// Per-row atomicity: this row rolled back alone; the import
			// carries on.
			logger.Error("Failed to import statement row",
				slog.Int("row", row.RowIndex), slog.String("error", err.Error()))
			result.Errored++
			continue
		}
		running = candidate
		result.Imported++
	}

	if result.Imported == 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNoImportedRows)
	}

	final, err := s.recomputeFromTransactions(ctx, account.BankAccountID, firstDate, seed)
	if err != nil {
		return nil, err
	}
	result.FinalBalance = final

	if err := s.scopeRepo.SaveBankBalanceSnapshot(ctx, domain.BankBalance{
		BankBalanceID: uuid.NewString(),
		BankAccountID: account.BankAccountID,
		Balance:       final,
		CreatedAt:     time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("failed to save balance snapshot: %w", err)
	}
	if err := s.scopeRepo.SetScopeBalance(ctx, domain.BankScope(account.BankAccountID), final, false); err != nil {
		return nil, fmt.Errorf("failed to update cached balance: %w", err)
	}
	return result, nil
}

// synthesizeTimestamps assigns each row a strictly increasing sub-day
// timestamp preserving file order. The first row of a calendar date anchors
// one minute after the day's last existing transaction, or at 03:00 UTC
// when the day is empty; subsequent rows of the same date step one minute
// each.
func (s *statementService) synthesizeTimestamps(ctx context.Context, bankAccountID string, rows []domain.StatementRow) ([]time.Time, error) {
	timestamps := make([]time.Time, len(rows))
	lastForDate := make(map[time.Time]time.Time)
	for i, row := range rows {
		day := row.Date
		if prev, seen := lastForDate[day]; seen {
			timestamps[i] = prev.Add(intraDayStep)
		} else {
			last, err := s.transactionRepo.FindLastBankTransactionTimeOn(ctx, bankAccountID, day)
			switch {
			case err == nil:
				timestamps[i] = last.Add(intraDayStep)
			case errors.Is(err, apperrors.ErrNotFound):
				timestamps[i] = day.Add(intraDayAnchorHour * time.Hour)
			default:
				return nil, fmt.Errorf("failed to find day anchor: %w", err)
			}
		}
		lastForDate[day] = timestamps[i]
	}
	return timestamps, nil
}

// resolveCostCenter prefers the row's explicit cost center when it exists;
// everything else lands on the fallback "Transações Bancárias" center,
// looked up by name once per import.
func (s *statementService) resolveCostCenter(ctx context.Context, explicit *string, fallback **string) (*string, error) {
	if explicit != nil {
		cc, err := s.lookupRepo.FindCostCenterByID(ctx, *explicit)
		switch {
		case err == nil:
			return &cc.CostCenterID, nil
		case errors.Is(err, apperrors.ErrNotFound):
			// Unknown override falls through to the fallback center.
		default:
			return nil, fmt.Errorf("failed to find cost center: %w", err)
		}
	}
	if *fallback == nil {
		cc, err := s.lookupRepo.FindCostCenterByName(ctx, domain.FallbackCostCenterName)
		if err != nil {
			return nil, fmt.Errorf("failed to find fallback cost center %q: %w", domain.FallbackCostCenterName, err)
		}
		*fallback = &cc.CostCenterID
	}
	return *fallback, nil
}

// recomputeFromTransactions is the authoritative balance pass: it reloads
// the account's raw transactions from the statement's first date, walks
// them in timestamp order accumulating from the seed, and writes the
// per-timestamp balances onto the ledger entries sharing each instant.
func (s *statementService) recomputeFromTransactions(ctx context.Context, bankAccountID string, from time.Time, seed int64) (int64, error) {
	txns, err := s.transactionRepo.ListBankTransactionsFromDate(ctx, bankAccountID, from)
	if err != nil {
		return 0, fmt.Errorf("failed to reload transactions: %w", err)
	}

	running := seed
	var updates []portsrepo.TimestampBalance
	for _, txn := range txns {
		running += signedAmount(txn.Type, txn.Amount)
		if n := len(updates); n > 0 && updates[n-1].Timestamp.Equal(txn.Timestamp) {
			updates[n-1].Balance = running
			continue
		}
		updates = append(updates, portsrepo.TimestampBalance{Timestamp: txn.Timestamp, Balance: running})
	}
	if len(updates) > 0 {
		if err := s.ledgerRepo.UpdateEntryBalancesByTimestamp(ctx, bankAccountID, updates); err != nil {
			return 0, fmt.Errorf("failed to write recomputed balances: %w", err)
		}
	}
	return running, nil
}

func (s *statementService) validateAccount(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.scopeRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrInactiveAccount)
	}
	return account, nil
}

func signedAmount(t domain.EntryType, amount int64) int64 {
	if t == domain.Debit {
		return -amount
	}
	return amount
}
