package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caixadigital/fluxo_backend/internal/apperrors"
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portsrepo "github.com/caixadigital/fluxo_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates the read-only reporting repository.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// GetCashFlowSummary aggregates the scope's entries within [from, to). The
// closing balance is the running balance of the last entry before the
// period end, independent of the period start.
func (r *PgxReportingRepository) GetCashFlowSummary(ctx context.Context, scope domain.Scope, from, to time.Time) (*domain.CashFlowSummary, error) {
	col, id := scopeColumn(scope)

	aggregateQuery := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(CASE WHEN type = 'CREDIT' THEN value ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'DEBIT' THEN value ELSE 0 END), 0),
			COUNT(*)
		FROM cash_flow_entries
		WHERE %s = $1 AND date >= $2 AND date < $3;
	`, col)

	summary := &domain.CashFlowSummary{Scope: scope, From: from, To: to}
	err := r.Pool.QueryRow(ctx, aggregateQuery, id, from, to).Scan(
		&summary.Credits, &summary.Debits, &summary.EntryCount,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate cash flow summary", err)
	}
	summary.Net = summary.Credits - summary.Debits

	closingQuery := fmt.Sprintf(`
		SELECT balance FROM cash_flow_entries
		WHERE %s = $1 AND date < $2
		ORDER BY date DESC, created_at DESC, entry_id DESC
		LIMIT 1;
	`, col)
	err = r.Pool.QueryRow(ctx, closingQuery, id, to).Scan(&summary.ClosingBalance)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to read closing balance", err)
	}

	return summary, nil
}
