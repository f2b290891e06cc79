package dto

import (
	"time"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	"github.com/caixadigital/fluxo_backend/internal/utils/money"
	"github.com/shopspring/decimal"
)

// CreateDocumentRequest creates a PENDING payable or receivable. Monetary
// fields are decimal major units; conversion to cents happens here, once.
type CreateDocumentRequest struct {
	Kind           string          `json:"kind" binding:"required,oneof=PAYABLE RECEIVABLE"`
	DocumentNumber string          `json:"documentNumber" binding:"required,notblank"`
	Description    string          `json:"description"`
	Value          decimal.Decimal `json:"value" binding:"required"`
	DueDate        time.Time       `json:"dueDate" binding:"required"`
	CostCenterID   *string         `json:"costCenterID"`
	Observation    string          `json:"observation"`
}

// SettleDocumentRequest settles a payable or receives a receivable. The
// optional monetary adjustments default to zero; the settlement date
// defaults to "now". Exactly one of BankAccountID/CashBoxID names the
// target scope.
type SettleDocumentRequest struct {
	Fine            decimal.Decimal `json:"fine"`
	Interest        decimal.Decimal `json:"interest"`
	Discount        decimal.Decimal `json:"discount"`
	PaymentMethodID *string         `json:"paymentMethodID"`
	SettlementDate  *time.Time      `json:"settlementDate"`
	CostCenterID    *string         `json:"costCenterID"`
	BankAccountID   *string         `json:"bankAccountID"`
	CashBoxID       *string         `json:"cashBoxID"`
}

// ReverseSettlementRequest carries the reversal reason recorded on the
// document's observation.
type ReverseSettlementRequest struct {
	Reason string `json:"reason" binding:"required,notblank"`
}

// DocumentResponse is the API shape of a document. Status reflects the
// derived view: a pending document past its due date reads OVERDUE.
type DocumentResponse struct {
	DocumentID      string          `json:"documentID"`
	Kind            string          `json:"kind"`
	DocumentNumber  string          `json:"documentNumber"`
	Description     string          `json:"description"`
	Value           decimal.Decimal `json:"value"`
	Status          string          `json:"status"`
	DueDate         time.Time       `json:"dueDate"`
	SettledValue    decimal.Decimal `json:"settledValue"`
	Fine            decimal.Decimal `json:"fine"`
	Interest        decimal.Decimal `json:"interest"`
	Discount        decimal.Decimal `json:"discount"`
	SettlementDate  *time.Time      `json:"settlementDate,omitempty"`
	PaymentMethodID *string         `json:"paymentMethodID,omitempty"`
	CostCenterID    *string         `json:"costCenterID,omitempty"`
	BankAccountID   *string         `json:"bankAccountID,omitempty"`
	CashBoxID       *string         `json:"cashBoxID,omitempty"`
	Observation     string          `json:"observation"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToDocumentResponse converts a domain.Document to its API shape.
func ToDocumentResponse(d *domain.Document, now time.Time) DocumentResponse {
	return DocumentResponse{
		DocumentID:      d.DocumentID,
		Kind:            string(d.Kind),
		DocumentNumber:  d.DocumentNumber,
		Description:     d.Description,
		Value:           money.FromCents(d.Value),
		Status:          string(d.EffectiveStatus(now)),
		DueDate:         d.DueDate,
		SettledValue:    money.FromCents(d.SettledValue),
		Fine:            money.FromCents(d.Fine),
		Interest:        money.FromCents(d.Interest),
		Discount:        money.FromCents(d.Discount),
		SettlementDate:  d.SettlementDate,
		PaymentMethodID: d.PaymentMethodID,
		CostCenterID:    d.CostCenterID,
		BankAccountID:   d.BankAccountID,
		CashBoxID:       d.CashBoxID,
		Observation:     d.Observation,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDocumentResponses converts a slice of domain documents.
func ToDocumentResponses(docs []domain.Document, now time.Time) []DocumentResponse {
	responses := make([]DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = ToDocumentResponse(&docs[i], now)
	}
	return responses
}
