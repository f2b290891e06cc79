package services_test

import (
	"context"
	"time"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portsrepo "github.com/caixadigital/fluxo_backend/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// Shared repository mocks for the service test suites in this package.

// --- MockLedgerRepository ---

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.CashFlowEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesByScope(ctx context.Context, scope domain.Scope) ([]domain.CashFlowEntry, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashFlowEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntriesFromDate(ctx context.Context, scope domain.Scope, from time.Time) ([]domain.CashFlowEntry, error) {
	args := m.Called(ctx, scope, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashFlowEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindLastEntryBefore(ctx context.Context, scope domain.Scope, before time.Time) (*domain.CashFlowEntry, error) {
	args := m.Called(ctx, scope, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindMatchingEntry(ctx context.Context, match portsrepo.EntryMatch) (*domain.CashFlowEntry, error) {
	args := m.Called(ctx, match)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowEntry), args.Error(1)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.CashFlowEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateEntryBalances(ctx context.Context, updates []portsrepo.BalanceUpdate) error {
	args := m.Called(ctx, updates)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateEntryBalancesByTimestamp(ctx context.Context, bankAccountID string, updates []portsrepo.TimestampBalance) error {
	args := m.Called(ctx, bankAccountID, updates)
	return args.Error(0)
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

// --- MockScopeRepository ---

type MockScopeRepository struct {
	mock.Mock
}

func (m *MockScopeRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockScopeRepository) FindCashBoxByID(ctx context.Context, cashBoxID string) (*domain.CashBox, error) {
	args := m.Called(ctx, cashBoxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashBox), args.Error(1)
}

func (m *MockScopeRepository) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockScopeRepository) ListCashBoxes(ctx context.Context) ([]domain.CashBox, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashBox), args.Error(1)
}

func (m *MockScopeRepository) FindLastBankBalanceBefore(ctx context.Context, bankAccountID string, before time.Time) (*domain.BankBalance, error) {
	args := m.Called(ctx, bankAccountID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankBalance), args.Error(1)
}

func (m *MockScopeRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockScopeRepository) SaveCashBox(ctx context.Context, box domain.CashBox) error {
	args := m.Called(ctx, box)
	return args.Error(0)
}

func (m *MockScopeRepository) SetScopeBalance(ctx context.Context, scope domain.Scope, balance int64, clearRecalcPending bool) error {
	args := m.Called(ctx, scope, balance, clearRecalcPending)
	return args.Error(0)
}

func (m *MockScopeRepository) SaveBankBalanceSnapshot(ctx context.Context, snapshot domain.BankBalance) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

var _ portsrepo.ScopeRepositoryFacade = (*MockScopeRepository)(nil)

// --- MockTransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindMatchingBankTransaction(ctx context.Context, match portsrepo.TransactionMatch) (*domain.BankTransaction, error) {
	args := m.Called(ctx, match)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindMatchingCashTransaction(ctx context.Context, match portsrepo.TransactionMatch) (*domain.CashTransaction, error) {
	args := m.Called(ctx, match)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTransaction), args.Error(1)
}

func (m *MockTransactionRepository) ListBankTransactionsFromDate(ctx context.Context, bankAccountID string, from time.Time) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, bankAccountID, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindLastBankTransactionTimeOn(ctx context.Context, bankAccountID string, day time.Time) (time.Time, error) {
	args := m.Called(ctx, bankAccountID, day)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockTransactionRepository) SaveBankTransaction(ctx context.Context, txn domain.BankTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveCashTransaction(ctx context.Context, txn domain.CashTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteBankTransaction(ctx context.Context, bankTransactionID string) error {
	args := m.Called(ctx, bankTransactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteCashTransaction(ctx context.Context, cashTransactionID string) error {
	args := m.Called(ctx, cashTransactionID)
	return args.Error(0)
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

// --- MockDocumentRepository ---

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindPaidDocumentByNumber(ctx context.Context, documentNumber string) (*domain.Document, error) {
	args := m.Called(ctx, documentNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListDocuments(ctx context.Context, params portsrepo.ListDocumentsParams) ([]domain.Document, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocument(ctx context.Context, doc domain.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

var _ portsrepo.DocumentRepositoryFacade = (*MockDocumentRepository)(nil)

// --- MockLookupRepository ---

type MockLookupRepository struct {
	mock.Mock
}

func (m *MockLookupRepository) FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}

func (m *MockLookupRepository) FindCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error) {
	args := m.Called(ctx, costCenterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostCenter), args.Error(1)
}

func (m *MockLookupRepository) FindCostCenterByName(ctx context.Context, name string) (*domain.CostCenter, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostCenter), args.Error(1)
}

var _ portsrepo.LookupRepositoryFacade = (*MockLookupRepository)(nil)

// --- MockSettlementRepository ---

type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) SaveSettlement(ctx context.Context, params portsrepo.SaveSettlementParams) (*domain.CashFlowEntry, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowEntry), args.Error(1)
}

func (m *MockSettlementRepository) SaveReversal(ctx context.Context, params portsrepo.SaveReversalParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockSettlementRepository) SaveEntryDeletion(ctx context.Context, params portsrepo.SaveEntryDeletionParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

var _ portsrepo.SettlementRepositoryFacade = (*MockSettlementRepository)(nil)

// --- MockStatementRepository ---

type MockStatementRepository struct {
	mock.Mock
}

func (m *MockStatementRepository) DeleteImportedRows(ctx context.Context, bankAccountID, csvFileName string) error {
	args := m.Called(ctx, bankAccountID, csvFileName)
	return args.Error(0)
}

func (m *MockStatementRepository) SaveImportedRow(ctx context.Context, txn domain.BankTransaction, entry domain.CashFlowEntry) error {
	args := m.Called(ctx, txn, entry)
	return args.Error(0)
}

var _ portsrepo.StatementRepositoryFacade = (*MockStatementRepository)(nil)
