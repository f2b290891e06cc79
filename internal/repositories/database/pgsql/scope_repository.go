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

const bankAccountColumns = `bank_account_id, name, bank, agency, number, balance, is_active,
	recalc_pending, created_at, created_by, last_updated_at, last_updated_by`

const cashBoxColumns = `cash_box_id, name, balance, recalc_pending,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxScopeRepository struct {
	BaseRepository
}

// newPgxScopeRepository creates a new repository for bank accounts, cash
// boxes and balance snapshots.
func newPgxScopeRepository(pool *pgxpool.Pool) portsrepo.ScopeRepositoryFacade {
	return &PgxScopeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ScopeRepositoryFacade = (*PgxScopeRepository)(nil)

func scanBankAccount(row pgx.Row) (*models.BankAccount, error) {
	var m models.BankAccount
	err := row.Scan(
		&m.BankAccountID, &m.Name, &m.Bank, &m.Agency, &m.Number,
		&m.Balance, &m.IsActive, &m.RecalcPending,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanCashBox(row pgx.Row) (*models.CashBox, error) {
	var m models.CashBox
	err := row.Scan(
		&m.CashBoxID, &m.Name, &m.Balance, &m.RecalcPending,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindBankAccountByID retrieves a bank account by its ID.
func (r *PgxScopeRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1;`
	m, err := scanBankAccount(r.Pool.QueryRow(ctx, query, bankAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank account "+bankAccountID, err)
	}
	account := mapping.ToDomainBankAccount(*m)
	return &account, nil
}

// FindCashBoxByID retrieves a cash box by its ID.
func (r *PgxScopeRepository) FindCashBoxByID(ctx context.Context, cashBoxID string) (*domain.CashBox, error) {
	query := `SELECT ` + cashBoxColumns + ` FROM cash_boxes WHERE cash_box_id = $1;`
	m, err := scanCashBox(r.Pool.QueryRow(ctx, query, cashBoxID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find cash box "+cashBoxID, err)
	}
	box := mapping.ToDomainCashBox(*m)
	return &box, nil
}

// ListBankAccounts retrieves every bank account ordered by name.
func (r *PgxScopeRepository) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank accounts", err)
	}
	defer rows.Close()

	accounts := []domain.BankAccount{}
	for rows.Next() {
		m, err := scanBankAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank account row", err)
		}
		accounts = append(accounts, mapping.ToDomainBankAccount(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank account rows", err)
	}
	return accounts, nil
}

// ListCashBoxes retrieves every cash box ordered by name.
func (r *PgxScopeRepository) ListCashBoxes(ctx context.Context) ([]domain.CashBox, error) {
	query := `SELECT ` + cashBoxColumns + ` FROM cash_boxes ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query cash boxes", err)
	}
	defer rows.Close()

	boxes := []domain.CashBox{}
	for rows.Next() {
		m, err := scanCashBox(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan cash box row", err)
		}
		boxes = append(boxes, mapping.ToDomainCashBox(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating cash box rows", err)
	}
	return boxes, nil
}

// FindLastBankBalanceBefore retrieves the most recent balance snapshot
// created strictly before the given instant.
func (r *PgxScopeRepository) FindLastBankBalanceBefore(ctx context.Context, bankAccountID string, before time.Time) (*domain.BankBalance, error) {
	query := `
		SELECT bank_balance_id, bank_account_id, balance, created_at
		FROM bank_balances
		WHERE bank_account_id = $1 AND created_at < $2
		ORDER BY created_at DESC
		LIMIT 1;
	`
	var m models.BankBalance
	err := r.Pool.QueryRow(ctx, query, bankAccountID, before).Scan(
		&m.BankBalanceID, &m.BankAccountID, &m.Balance, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find balance snapshot for account "+bankAccountID, err)
	}
	snapshot := mapping.ToDomainBankBalance(m)
	return &snapshot, nil
}

// SaveBankAccount inserts a bank account.
func (r *PgxScopeRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	query := `
		INSERT INTO bank_accounts (
			bank_account_id, name, bank, agency, number, balance, is_active,
			recalc_pending, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BankAccountID, m.Name, m.Bank, m.Agency, m.Number, m.Balance, m.IsActive,
		m.RecalcPending, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert bank account "+m.BankAccountID, err)
	}
	return nil
}

// SaveCashBox inserts a cash box.
func (r *PgxScopeRepository) SaveCashBox(ctx context.Context, box domain.CashBox) error {
	m := mapping.ToModelCashBox(box)
	query := `
		INSERT INTO cash_boxes (
			cash_box_id, name, balance, recalc_pending,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CashBoxID, m.Name, m.Balance, m.RecalcPending,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert cash box "+m.CashBoxID, err)
	}
	return nil
}

// SetScopeBalance writes the scope's cached balance and, when asked, clears
// the recalc-pending marker in the same statement.
func (r *PgxScopeRepository) SetScopeBalance(ctx context.Context, scope domain.Scope, balance int64, clearRecalcPending bool) error {
	table, idCol, id := scopeTable(scope)
	query := fmt.Sprintf(`
		UPDATE %s
		SET balance = $2,
		    recalc_pending = CASE WHEN $3 THEN FALSE ELSE recalc_pending END,
		    last_updated_at = NOW()
		WHERE %s = $1;
	`, table, idCol)
	cmdTag, err := r.Pool.Exec(ctx, query, id, balance, clearRecalcPending)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set balance for "+table, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveBankBalanceSnapshot appends a balance snapshot row.
func (r *PgxScopeRepository) SaveBankBalanceSnapshot(ctx context.Context, snapshot domain.BankBalance) error {
	query := `
		INSERT INTO bank_balances (bank_balance_id, bank_account_id, balance, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query,
		snapshot.BankBalanceID, snapshot.BankAccountID, snapshot.Balance, snapshot.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert balance snapshot for account "+snapshot.BankAccountID, err)
	}
	return nil
}

// scopeTable names the table, id column and id value a scope maps to.
func scopeTable(scope domain.Scope) (string, string, string) {
	if scope.IsBank() {
		return "bank_accounts", "bank_account_id", *scope.BankAccountID
	}
	return "cash_boxes", "cash_box_id", *scope.CashBoxID
}

// lockScopeBalanceTx locks the scope row and returns its cached balance,
// inside an open transaction. The row lock serializes concurrent mutations
// of the same scope.
func lockScopeBalanceTx(ctx context.Context, tx pgx.Tx, scope domain.Scope) (int64, error) {
	table, idCol, id := scopeTable(scope)
	query := fmt.Sprintf(`SELECT balance FROM %s WHERE %s = $1 FOR UPDATE;`, table, idCol)
	var balance int64
	if err := tx.QueryRow(ctx, query, id).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, apperrors.NewAppError(500, "failed to lock "+table+" row", err)
	}
	return balance, nil
}

// applyScopeBalanceTx writes the scope's cached balance inside an open
// transaction, optionally flagging the scope recalc-pending.
func applyScopeBalanceTx(ctx context.Context, tx pgx.Tx, scope domain.Scope, balance int64, setRecalcPending bool) error {
	table, idCol, id := scopeTable(scope)
	query := fmt.Sprintf(`
		UPDATE %s
		SET balance = $2,
		    recalc_pending = CASE WHEN $3 THEN TRUE ELSE recalc_pending END,
		    last_updated_at = NOW()
		WHERE %s = $1;
	`, table, idCol)
	if _, err := tx.Exec(ctx, query, id, balance, setRecalcPending); err != nil {
		return apperrors.NewAppError(500, "failed to update "+table+" balance", err)
	}
	return nil
}
