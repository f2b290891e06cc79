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

const bankTransactionColumns = `bank_transaction_id, bank_account_id, amount, type, description,
	timestamp, settlement_id, csv, csv_file_name, created_at`

const cashTransactionColumns = `cash_transaction_id, cash_box_id, amount, type, description,
	timestamp, settlement_id, created_at`

const insertBankTransactionQuery = `
	INSERT INTO bank_transactions (
		bank_transaction_id, bank_account_id, amount, type, description,
		timestamp, settlement_id, csv, csv_file_name, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

const insertCashTransactionQuery = `
	INSERT INTO cash_transactions (
		cash_transaction_id, cash_box_id, amount, type, description,
		timestamp, settlement_id, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for the raw
// transaction logs.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanBankTransaction(row pgx.Row) (*models.BankTransaction, error) {
	var m models.BankTransaction
	err := row.Scan(
		&m.BankTransactionID, &m.BankAccountID, &m.Amount, &m.Type, &m.Description,
		&m.Timestamp, &m.SettlementID, &m.CSV, &m.CSVFileName, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanCashTransaction(row pgx.Row) (*models.CashTransaction, error) {
	var m models.CashTransaction
	err := row.Scan(
		&m.CashTransactionID, &m.CashBoxID, &m.Amount, &m.Type, &m.Description,
		&m.Timestamp, &m.SettlementID, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindMatchingBankTransaction locates a bank transaction. The correlation id
// is tried first, then the statement file tag, then the amount/type/time
// heuristic with the nearest timestamp to NearestTo winning.
func (r *PgxTransactionRepository) FindMatchingBankTransaction(ctx context.Context, match portsrepo.TransactionMatch) (*domain.BankTransaction, error) {
	if match.SettlementID != nil {
		query := `
			SELECT ` + bankTransactionColumns + `
			FROM bank_transactions
			WHERE bank_account_id = $1 AND settlement_id = $2
			ORDER BY created_at DESC
			LIMIT 1;
		`
		m, err := scanBankTransaction(r.Pool.QueryRow(ctx, query, match.BankAccountID, *match.SettlementID))
		if err == nil {
			txn := mapping.ToDomainBankTransaction(*m)
			return &txn, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAppError(500, "failed to match bank transaction by settlement id", err)
		}
	}

	query := `
		SELECT ` + bankTransactionColumns + `
		FROM bank_transactions
		WHERE bank_account_id = $1 AND amount = $2 AND type = $3 AND timestamp >= $4
	`
	args := []interface{}{match.BankAccountID, match.Amount, match.Type, match.NotBefore}
	if match.CSVFileName != nil {
		args = append(args, *match.CSVFileName)
		query += fmt.Sprintf(" AND csv_file_name = $%d", len(args))
	}
	if match.DescriptionContains != "" {
		args = append(args, "%"+match.DescriptionContains+"%")
		query += fmt.Sprintf(" AND description ILIKE $%d", len(args))
	}
	args = append(args, match.NearestTo)
	query += fmt.Sprintf(" ORDER BY ABS(EXTRACT(EPOCH FROM (timestamp - $%d))) ASC LIMIT 1;", len(args))

	m, err := scanBankTransaction(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to match bank transaction heuristically", err)
	}
	txn := mapping.ToDomainBankTransaction(*m)
	return &txn, nil
}

// FindMatchingCashTransaction is the cash-box counterpart.
func (r *PgxTransactionRepository) FindMatchingCashTransaction(ctx context.Context, match portsrepo.TransactionMatch) (*domain.CashTransaction, error) {
	if match.SettlementID != nil {
		query := `
			SELECT ` + cashTransactionColumns + `
			FROM cash_transactions
			WHERE cash_box_id = $1 AND settlement_id = $2
			ORDER BY created_at DESC
			LIMIT 1;
		`
		m, err := scanCashTransaction(r.Pool.QueryRow(ctx, query, match.CashBoxID, *match.SettlementID))
		if err == nil {
			txn := mapping.ToDomainCashTransaction(*m)
			return &txn, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAppError(500, "failed to match cash transaction by settlement id", err)
		}
	}

	query := `
		SELECT ` + cashTransactionColumns + `
		FROM cash_transactions
		WHERE cash_box_id = $1 AND amount = $2 AND type = $3 AND timestamp >= $4
	`
	args := []interface{}{match.CashBoxID, match.Amount, match.Type, match.NotBefore}
	if match.DescriptionContains != "" {
		args = append(args, "%"+match.DescriptionContains+"%")
		query += fmt.Sprintf(" AND description ILIKE $%d", len(args))
	}
	args = append(args, match.NearestTo)
	query += fmt.Sprintf(" ORDER BY ABS(EXTRACT(EPOCH FROM (timestamp - $%d))) ASC LIMIT 1;", len(args))

	m, err := scanCashTransaction(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to match cash transaction heuristically", err)
	}
	txn := mapping.ToDomainCashTransaction(*m)
	return &txn, nil
}

// ListBankTransactionsFromDate retrieves the account's raw transactions with
// timestamp >= from in chronological order.
func (r *PgxTransactionRepository) ListBankTransactionsFromDate(ctx context.Context, bankAccountID string, from time.Time) ([]domain.BankTransaction, error) {
	query := `
		SELECT ` + bankTransactionColumns + `
		FROM bank_transactions
		WHERE bank_account_id = $1 AND timestamp >= $2
		ORDER BY timestamp ASC, created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, bankAccountID, from)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank transactions for account "+bankAccountID, err)
	}
	defer rows.Close()

	txns := []domain.BankTransaction{}
	for rows.Next() {
		m, err := scanBankTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank transaction row", err)
		}
		txns = append(txns, mapping.ToDomainBankTransaction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank transaction rows", err)
	}
	return txns, nil
}

// FindLastBankTransactionTimeOn returns the timestamp of the account's last
// raw transaction within the calendar day containing the given instant.
func (r *PgxTransactionRepository) FindLastBankTransactionTimeOn(ctx context.Context, bankAccountID string, day time.Time) (time.Time, error) {
	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	query := `
		SELECT timestamp FROM bank_transactions
		WHERE bank_account_id = $1 AND timestamp >= $2 AND timestamp < $3
		ORDER BY timestamp DESC
		LIMIT 1;
	`
	var ts time.Time
	err := r.Pool.QueryRow(ctx, query, bankAccountID, start, end).Scan(&ts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, apperrors.ErrNotFound
		}
		return time.Time{}, apperrors.NewAppError(500, "failed to find last transaction time for account "+bankAccountID, err)
	}
	return ts, nil
}

// SaveBankTransaction inserts a raw bank transaction.
func (r *PgxTransactionRepository) SaveBankTransaction(ctx context.Context, txn domain.BankTransaction) error {
	m := mapping.ToModelBankTransaction(txn)
	_, err := r.Pool.Exec(ctx, insertBankTransactionQuery,
		m.BankTransactionID, m.BankAccountID, m.Amount, m.Type, m.Description,
		m.Timestamp, m.SettlementID, m.CSV, m.CSVFileName, m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert bank transaction "+m.BankTransactionID, err)
	}
	return nil
}

// SaveCashTransaction inserts a raw cash transaction.
func (r *PgxTransactionRepository) SaveCashTransaction(ctx context.Context, txn domain.CashTransaction) error {
	m := mapping.ToModelCashTransaction(txn)
	_, err := r.Pool.Exec(ctx, insertCashTransactionQuery,
		m.CashTransactionID, m.CashBoxID, m.Amount, m.Type, m.Description,
		m.Timestamp, m.SettlementID, m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert cash transaction "+m.CashTransactionID, err)
	}
	return nil
}

// DeleteBankTransaction removes a raw bank transaction.
func (r *PgxTransactionRepository) DeleteBankTransaction(ctx context.Context, bankTransactionID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM bank_transactions WHERE bank_transaction_id = $1;`, bankTransactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete bank transaction "+bankTransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCashTransaction removes a raw cash transaction.
func (r *PgxTransactionRepository) DeleteCashTransaction(ctx context.Context, cashTransactionID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM cash_transactions WHERE cash_transaction_id = $1;`, cashTransactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete cash transaction "+cashTransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// insertBankTransactionTx inserts a raw bank transaction inside an open
// transaction.
func insertBankTransactionTx(ctx context.Context, tx pgx.Tx, m models.BankTransaction) error {
	_, err := tx.Exec(ctx, insertBankTransactionQuery,
		m.BankTransactionID, m.BankAccountID, m.Amount, m.Type, m.Description,
		m.Timestamp, m.SettlementID, m.CSV, m.CSVFileName, m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert bank transaction "+m.BankTransactionID, err)
	}
	return nil
}

// insertCashTransactionTx inserts a raw cash transaction inside an open
// transaction.
func insertCashTransactionTx(ctx context.Context, tx pgx.Tx, m models.CashTransaction) error {
	_, err := tx.Exec(ctx, insertCashTransactionQuery,
		m.CashTransactionID, m.CashBoxID, m.Amount, m.Type, m.Description,
		m.Timestamp, m.SettlementID, m.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert cash transaction "+m.CashTransactionID, err)
	}
	return nil
}
