package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portsrepo "github.com/caixadigital/fluxo_backend/internal/core/ports/repositories"
	portssvc "github.com/caixadigital/fluxo_backend/internal/core/ports/services"
	"github.com/caixadigital/fluxo_backend/internal/dto"
	"github.com/caixadigital/fluxo_backend/internal/middleware"
)

type scopeService struct {
	scopeRepo portsrepo.ScopeRepositoryFacade
}

// NewScopeService creates a new scope management service.
func NewScopeService(scopeRepo portsrepo.ScopeRepositoryFacade) portssvc.ScopeSvcFacade {
	return &scopeService{scopeRepo: scopeRepo}
}

var _ portssvc.ScopeSvcFacade = (*scopeService)(nil)

// CreateBankAccount implements portssvc.ScopeSvcFacade. New accounts start
// active with a zero cached balance.
func (s *scopeService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.BankAccount{
		BankAccountID: uuid.NewString(),
		Name:          req.Name,
		Bank:          req.Bank,
		Agency:        req.Agency,
		Number:        req.Number,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.scopeRepo.SaveBankAccount(ctx, account); err != nil {
		logger.Error("Failed to save bank account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}
	logger.Info("Bank account created", slog.String("bank_account_id", account.BankAccountID))
	return &account, nil
}

// CreateCashBox implements portssvc.ScopeSvcFacade.
func (s *scopeService) CreateCashBox(ctx context.Context, req dto.CreateCashBoxRequest, userID string) (*domain.CashBox, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	box := domain.CashBox{
		CashBoxID: uuid.NewString(),
		Name:      req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.scopeRepo.SaveCashBox(ctx, box); err != nil {
		logger.Error("Failed to save cash box", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save cash box: %w", err)
	}
	logger.Info("Cash box created", slog.String("cash_box_id", box.CashBoxID))
	return &box, nil
}

// GetBankAccountByID implements portssvc.ScopeSvcFacade.
func (s *scopeService) GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	return s.scopeRepo.FindBankAccountByID(ctx, bankAccountID)
}

// GetCashBoxByID implements portssvc.ScopeSvcFacade.
func (s *scopeService) GetCashBoxByID(ctx context.Context, cashBoxID string) (*domain.CashBox, error) {
	return s.scopeRepo.FindCashBoxByID(ctx, cashBoxID)
}

// ListBankAccounts implements portssvc.ScopeSvcFacade.
func (s *scopeService) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	return s.scopeRepo.ListBankAccounts(ctx)
}

// ListCashBoxes implements portssvc.ScopeSvcFacade.
func (s *scopeService) ListCashBoxes(ctx context.Context) ([]domain.CashBox, error) {
	return s.scopeRepo.ListCashBoxes(ctx)
}
