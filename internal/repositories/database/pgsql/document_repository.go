package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/caixadigital/fluxo_backend/internal/apperrors"
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portsrepo "github.com/caixadigital/fluxo_backend/internal/core/ports/repositories"
	"github.com/caixadigital/fluxo_backend/internal/models"
	"github.com/caixadigital/fluxo_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const documentColumns = `document_id, kind, document_number, description, value, status, due_date,
	settled_value, fine, interest, discount, settlement_date, settlement_id,
	payment_method_id, cost_center_id, bank_account_id, cash_box_id, observation,
	created_at, created_by, last_updated_at, last_updated_by`

const updateDocumentQuery = `
	UPDATE documents
	SET status = $2,
	    settled_value = $3,
	    fine = $4,
	    interest = $5,
	    discount = $6,
	    settlement_date = $7,
	    settlement_id = $8,
	    payment_method_id = $9,
	    cost_center_id = $10,
	    bank_account_id = $11,
	    cash_box_id = $12,
	    observation = $13,
	    last_updated_at = $14,
	    last_updated_by = $15
	WHERE document_id = $1;
`

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for payable/receivable
// documents.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

func scanDocument(row pgx.Row) (*models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID, &m.Kind, &m.DocumentNumber, &m.Description, &m.Value, &m.Status, &m.DueDate,
		&m.SettledValue, &m.Fine, &m.Interest, &m.Discount, &m.SettlementDate, &m.SettlementID,
		&m.PaymentMethodID, &m.CostCenterID, &m.BankAccountID, &m.CashBoxID, &m.Observation,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindDocumentByID retrieves a document by its ID.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`
	m, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find document "+documentID, err)
	}
	doc := mapping.ToDomainDocument(*m)
	return &doc, nil
}

// FindPaidDocumentByNumber retrieves a PAID document carrying the given
// document number, most recently settled first.
func (r *PgxDocumentRepository) FindPaidDocumentByNumber(ctx context.Context, documentNumber string) (*domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE document_number = $1 AND status = 'PAID'
		ORDER BY settlement_date DESC
		LIMIT 1;
	`
	m, err := scanDocument(r.Pool.QueryRow(ctx, query, documentNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find paid document by number "+documentNumber, err)
	}
	doc := mapping.ToDomainDocument(*m)
	return &doc, nil
}

// ListDocuments retrieves documents filtered by kind and stored status,
// newest due date first.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, params portsrepo.ListDocumentsParams) ([]domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE 1=1`
	args := []interface{}{}
	if params.Kind != nil {
		args = append(args, string(*params.Kind))
		query += " AND kind = $" + strconv.Itoa(len(args))
	}
	if params.Status != nil {
		args = append(args, string(*params.Status))
		query += " AND status = $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY due_date DESC, created_at DESC"
	if params.Limit > 0 {
		args = append(args, params.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}
	if params.Offset > 0 {
		args = append(args, params.Offset)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}
	query += ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query documents", err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document row", err)
		}
		docs = append(docs, mapping.ToDomainDocument(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating document rows", err)
	}
	return docs, nil
}

// SaveDocument inserts a document.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	m := mapping.ToModelDocument(doc)
	query := `
		INSERT INTO documents (
			document_id, kind, document_number, description, value, status, due_date,
			settled_value, fine, interest, discount, settlement_date, settlement_id,
			payment_method_id, cost_center_id, bank_account_id, cash_box_id, observation,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DocumentID, m.Kind, m.DocumentNumber, m.Description, m.Value, m.Status, m.DueDate,
		m.SettledValue, m.Fine, m.Interest, m.Discount, m.SettlementDate, m.SettlementID,
		m.PaymentMethodID, m.CostCenterID, m.BankAccountID, m.CashBoxID, m.Observation,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert document "+m.DocumentID, err)
	}
	return nil
}

// UpdateDocument updates the mutable fields of a document.
func (r *PgxDocumentRepository) UpdateDocument(ctx context.Context, doc domain.Document) error {
	m := mapping.ToModelDocument(doc)
	cmdTag, err := r.Pool.Exec(ctx, updateDocumentQuery,
		m.DocumentID, m.Status, m.SettledValue, m.Fine, m.Interest, m.Discount,
		m.SettlementDate, m.SettlementID, m.PaymentMethodID, m.CostCenterID,
		m.BankAccountID, m.CashBoxID, m.Observation, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update document "+m.DocumentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// updateDocumentTx updates a document inside an open transaction.
func updateDocumentTx(ctx context.Context, tx pgx.Tx, m models.Document) error {
	cmdTag, err := tx.Exec(ctx, updateDocumentQuery,
		m.DocumentID, m.Status, m.SettledValue, m.Fine, m.Interest, m.Discount,
		m.SettlementDate, m.SettlementID, m.PaymentMethodID, m.CostCenterID,
		m.BankAccountID, m.CashBoxID, m.Observation, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update document "+m.DocumentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
