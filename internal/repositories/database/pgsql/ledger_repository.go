package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caixadigital/fluxo_backend/internal/apperrors"
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portsrepo "github.com/caixadigital/fluxo_backend/internal/core/ports/repositories"
	"github.com/caixadigital/fluxo_backend/internal/models"
	"github.com/caixadigital/fluxo_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, date, type, value, balance, historic, description,
	document_number, cost_center_id, bank_account_id, cash_box_id,
	settlement_id, csv_file_name, created_at`

const insertEntryQuery = `
	INSERT INTO cash_flow_entries (
		entry_id, date, type, value, balance, historic, description,
		document_number, cost_center_id, bank_account_id, cash_box_id,
		settlement_id, csv_file_name, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for the cash-flow ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// scopeColumn names the ledger column a scope filters on. The scope must be
// valid; callers enforce that at the service boundary.
func scopeColumn(scope domain.Scope) (string, string) {
	if scope.IsBank() {
		return "bank_account_id", *scope.BankAccountID
	}
	return "cash_box_id", *scope.CashBoxID
}

func scanEntry(row pgx.Row) (*models.CashFlowEntry, error) {
	var m models.CashFlowEntry
	err := row.Scan(
		&m.EntryID,
		&m.Date,
		&m.Type,
		&m.Value,
		&m.Balance,
		&m.Historic,
		&m.Description,
		&m.DocumentNumber,
		&m.CostCenterID,
		&m.BankAccountID,
		&m.CashBoxID,
		&m.SettlementID,
		&m.CSVFileName,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindEntryByID retrieves a single ledger entry.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.CashFlowEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM cash_flow_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry "+entryID, err)
	}
	entry := mapping.ToDomainCashFlowEntry(*m)
	return &entry, nil
}

// FindEntriesByScope retrieves every entry of the scope in chronological
// order.
func (r *PgxLedgerRepository) FindEntriesByScope(ctx context.Context, scope domain.Scope) ([]domain.CashFlowEntry, error) {
	col, id := scopeColumn(scope)
	query := fmt.Sprintf(`
		SELECT %s FROM cash_flow_entries
		WHERE %s = $1
		ORDER BY date ASC, created_at ASC, entry_id ASC;
	`, entryColumns, col)
	return r.queryEntries(ctx, query, id)
}

// FindEntriesFromDate retrieves the scope's entries with date >= from.
func (r *PgxLedgerRepository) FindEntriesFromDate(ctx context.Context, scope domain.Scope, from time.Time) ([]domain.CashFlowEntry, error) {
	col, id := scopeColumn(scope)
	query := fmt.Sprintf(`
		SELECT %s FROM cash_flow_entries
		WHERE %s = $1 AND date >= $2
		ORDER BY date ASC, created_at ASC, entry_id ASC;
	`, entryColumns, col)
	return r.queryEntries(ctx, query, id, from)
}

// FindLastEntryBefore retrieves the chronologically-last entry strictly
// before the given instant.
func (r *PgxLedgerRepository) FindLastEntryBefore(ctx context.Context, scope domain.Scope, before time.Time) (*domain.CashFlowEntry, error) {
	col, id := scopeColumn(scope)
	query := fmt.Sprintf(`
		SELECT %s FROM cash_flow_entries
		WHERE %s = $1 AND date < $2
		ORDER BY date DESC, created_at DESC, entry_id DESC
		LIMIT 1;
	`, entryColumns, col)
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, id, before))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find last entry before "+before.Format(time.RFC3339), err)
	}
	entry := mapping.ToDomainCashFlowEntry(*m)
	return &entry, nil
}

// FindMatchingEntry locates the entry a settlement created. The correlation
// id is authoritative when present; rows predating it fall back to the
// value/type/document-number heuristic, most recent first.
func (r *PgxLedgerRepository) FindMatchingEntry(ctx context.Context, match portsrepo.EntryMatch) (*domain.CashFlowEntry, error) {
	col, id := scopeColumn(match.Scope)

	if match.SettlementID != nil {
		query := fmt.Sprintf(`
			SELECT %s FROM cash_flow_entries
			WHERE %s = $1 AND settlement_id = $2
			ORDER BY created_at DESC
			LIMIT 1;
		`, entryColumns, col)
		m, err := scanEntry(r.Pool.QueryRow(ctx, query, id, *match.SettlementID))
		if err == nil {
			entry := mapping.ToDomainCashFlowEntry(*m)
			return &entry, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAppError(500, "failed to match entry by settlement id", err)
		}
	}

	query := fmt.Sprintf(`
		SELECT %s FROM cash_flow_entries
		WHERE %s = $1 AND value = $2 AND type = $3
	`, entryColumns, col)
	args := []interface{}{id, match.Value, match.Type}
	if match.DocumentNumber != nil {
		args = append(args, *match.DocumentNumber)
		query += fmt.Sprintf(" AND document_number = $%d", len(args))
	}
	if match.HistoricContains != "" {
		args = append(args, "%"+match.HistoricContains+"%")
		query += fmt.Sprintf(" AND historic ILIKE $%d", len(args))
	}
	query += " ORDER BY date DESC, created_at DESC LIMIT 1;"

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to match entry heuristically", err)
	}
	entry := mapping.ToDomainCashFlowEntry(*m)
	return &entry, nil
}

// SaveEntry inserts one ledger entry.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.CashFlowEntry) error {
	m := mapping.ToModelCashFlowEntry(entry)
	_, err := r.Pool.Exec(ctx, insertEntryQuery,
		m.EntryID, m.Date, m.Type, m.Value, m.Balance, m.Historic, m.Description,
		m.DocumentNumber, m.CostCenterID, m.BankAccountID, m.CashBoxID,
		m.SettlementID, m.CSVFileName, m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert entry "+m.EntryID, err)
	}
	return nil
}

// DeleteEntry removes one ledger entry.
func (r *PgxLedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM cash_flow_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateEntryBalances writes recomputed balances in bulk.
func (r *PgxLedgerRepository) UpdateEntryBalances(ctx context.Context, updates []portsrepo.BalanceUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(`UPDATE cash_flow_entries SET balance = $2 WHERE entry_id = $1;`, u.EntryID, u.Balance)
	}
	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute balance update batch", err)
	}
	return nil
}

// UpdateEntryBalancesByTimestamp writes a recomputed balance onto every
// entry of the bank account sharing each exact timestamp.
func (r *PgxLedgerRepository) UpdateEntryBalancesByTimestamp(ctx context.Context, bankAccountID string, updates []portsrepo.TimestampBalance) error {
	if len(updates) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(
			`UPDATE cash_flow_entries SET balance = $3 WHERE bank_account_id = $1 AND date = $2;`,
			bankAccountID, u.Timestamp, u.Balance,
		)
	}
	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute timestamp balance batch", err)
	}
	return nil
}

func (r *PgxLedgerRepository) queryEntries(ctx context.Context, query string, args ...interface{}) ([]domain.CashFlowEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries", err)
	}
	defer rows.Close()

	entries := []models.CashFlowEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}
	return mapping.ToDomainCashFlowEntries(entries), nil
}

// insertEntryTx inserts a ledger entry inside an open transaction. Shared by
// the settlement and statement repositories.
func insertEntryTx(ctx context.Context, tx pgx.Tx, m models.CashFlowEntry) error {
	_, err := tx.Exec(ctx, insertEntryQuery,
		m.EntryID, m.Date, m.Type, m.Value, m.Balance, m.Historic, m.Description,
		m.DocumentNumber, m.CostCenterID, m.BankAccountID, m.CashBoxID,
		m.SettlementID, m.CSVFileName, m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert entry "+m.EntryID, err)
	}
	return nil
}

// findLastEntryAtOrBeforeTx returns the balance of the scope's last entry
// positioned at or before the given instant, inside an open transaction.
// Zero when the scope has no earlier entry.
func findLastEntryAtOrBeforeTx(ctx context.Context, tx pgx.Tx, scope domain.Scope, at time.Time) (int64, error) {
	col, id := scopeColumn(scope)
	query := fmt.Sprintf(`
		SELECT balance FROM cash_flow_entries
		WHERE %s = $1 AND date <= $2
		ORDER BY date DESC, created_at DESC, entry_id DESC
		LIMIT 1;
	`, col)
	var balance int64
	err := tx.QueryRow(ctx, query, id, at).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, apperrors.NewAppError(500, "failed to find prior entry balance", err)
	}
	return balance, nil
}
