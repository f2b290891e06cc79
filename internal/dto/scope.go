package dto

import (
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	"github.com/caixadigital/fluxo_backend/internal/utils/money"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest creates a bank-account scope.
type CreateBankAccountRequest struct {
	Name   string `json:"name" binding:"required"`
	Bank   string `json:"bank" binding:"required"`
	Agency string `json:"agency"`
	Number string `json:"number"`
}

// CreateCashBoxRequest creates a cash-box scope.
type CreateCashBoxRequest struct {
	Name string `json:"name" binding:"required"`
}

// BankAccountResponse is the API shape of a bank account.
type BankAccountResponse struct {
	BankAccountID string          `json:"bankAccountID"`
	Name          string          `json:"name"`
	Bank          string          `json:"bank"`
	Agency        string          `json:"agency"`
	Number        string          `json:"number"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
	RecalcPending bool            `json:"recalcPending"`
}

// CashBoxResponse is the API shape of a cash box.
type CashBoxResponse struct {
	CashBoxID     string          `json:"cashBoxID"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
	RecalcPending bool            `json:"recalcPending"`
}

// RecalculateResponse reports the outcome of a full ledger recalculation.
type RecalculateResponse struct {
	FinalBalance decimal.Decimal `json:"finalBalance"`
}

// ToBankAccountResponse converts a domain.BankAccount to its API shape.
func ToBankAccountResponse(a *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID: a.BankAccountID,
		Name:          a.Name,
		Bank:          a.Bank,
		Agency:        a.Agency,
		Number:        a.Number,
		Balance:       money.FromCents(a.Balance),
		IsActive:      a.IsActive,
		RecalcPending: a.RecalcPending,
	}
}

// ToCashBoxResponse converts a domain.CashBox to its API shape.
func ToCashBoxResponse(b *domain.CashBox) CashBoxResponse {
	return CashBoxResponse{
		CashBoxID:     b.CashBoxID,
		Name:          b.Name,
		Balance:       money.FromCents(b.Balance),
		RecalcPending: b.RecalcPending,
	}
}

// ToBankAccountResponses converts a slice of domain bank accounts.
func ToBankAccountResponses(accounts []domain.BankAccount) []BankAccountResponse {
	responses := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToBankAccountResponse(&accounts[i])
	}
	return responses
}

// ToCashBoxResponses converts a slice of domain cash boxes.
func ToCashBoxResponses(boxes []domain.CashBox) []CashBoxResponse {
	responses := make([]CashBoxResponse, len(boxes))
	for i := range boxes {
		responses[i] = ToCashBoxResponse(&boxes[i])
	}
	return responses
}
