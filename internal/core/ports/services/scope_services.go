package services

import (
	"context"
	"time"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	"github.com/caixadigital/fluxo_backend/internal/dto"
)

// ScopeSvcFacade manages bank accounts and cash boxes.
type ScopeSvcFacade interface {
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error)
	CreateCashBox(ctx context.Context, req dto.CreateCashBoxRequest, userID string) (*domain.CashBox, error)
	GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)
	GetCashBoxByID(ctx context.Context, cashBoxID string) (*domain.CashBox, error)
	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)
	ListCashBoxes(ctx context.Context) ([]domain.CashBox, error)
}

// ReportingSvcFacade consumes the ledger read-only.
type ReportingSvcFacade interface {
	GetCashFlowSummary(ctx context.Context, scope domain.Scope, from, to time.Time) (*domain.CashFlowSummary, error)
}
