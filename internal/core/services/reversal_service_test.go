package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/caixadigital/fluxo_backend/internal/apperrors"
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portsrepo "github.com/caixadigital/fluxo_backend/internal/core/ports/repositories"
	portssvc "github.com/caixadigital/fluxo_backend/internal/core/ports/services"
	"github.com/caixadigital/fluxo_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- MockRecalcService ---

type MockRecalcService struct {
	mock.Mock
}

func (m *MockRecalcService) RecalculateFull(ctx context.Context, scope domain.Scope) (int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRecalcService) RecalculateFromDate(ctx context.Context, scope domain.Scope, from time.Time) (int64, error) {
	args := m.Called(ctx, scope, from)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.RecalcSvcFacade = (*MockRecalcService)(nil)

type ReversalServiceTestSuite struct {
	suite.Suite
	mockDocumentRepo    *MockDocumentRepository
	mockLedgerRepo      *MockLedgerRepository
	mockTransactionRepo *MockTransactionRepository
	mockSettlementRepo  *MockSettlementRepository
	mockRecalc          *MockRecalcService
	service             portssvc.ReversalSvcFacade
}

func (suite *ReversalServiceTestSuite) SetupTest() {
	suite.mockDocumentRepo = new(MockDocumentRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockTransactionRepo = new(MockTransactionRepository)
	suite.mockSettlementRepo = new(MockSettlementRepository)
	suite.mockRecalc = new(MockRecalcService)
	suite.service = services.NewReversalService(
		suite.mockDocumentRepo,
		suite.mockLedgerRepo,
		suite.mockTransactionRepo,
		suite.mockSettlementRepo,
		suite.mockRecalc,
	)
}

func settledPayable(bankAccountID string) *domain.Document {
	settlementID := uuid.NewString()
	settlementDate := time.Date(2025, 7, 10, 14, 30, 0, 0, time.UTC)
	return &domain.Document{
		DocumentID:     uuid.NewString(),
		Kind:           domain.Payable,
		DocumentNumber: "NF-1042",
		Description:    "Aluguel do galpão",
		Value:          25_000,
		Status:         domain.Paid,
		DueDate:        time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
		SettledValue:   25_245,
		Fine:           295,
		Discount:       50,
		SettlementDate: &settlementDate,
		SettlementID:   &settlementID,
		BankAccountID:  &bankAccountID,
		Observation:    "pago via PIX",
	}
}

func (suite *ReversalServiceTestSuite) TestReverseSettlement_MatchedEntry() {
	ctx := context.Background()
	accountID := uuid.NewString()
	scope := domain.BankScope(accountID)
	doc := settledPayable(accountID)
	userID := uuid.NewString()

	matched := domain.CashFlowEntry{
		EntryID:       uuid.NewString(),
		Date:          *doc.SettlementDate,
		Type:          domain.Debit,
		Value:         25_245,
		BankAccountID: &accountID,
		SettlementID:  doc.SettlementID,
	}

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockLedgerRepo.On("FindMatchingEntry", ctx, mock.MatchedBy(func(m portsrepo.EntryMatch) bool {
		return m.Value == 25_245 && m.Type == domain.Debit && m.SettlementID != nil
	})).Return(&matched, nil).Once()
	suite.mockTransactionRepo.On("FindMatchingBankTransaction", ctx, mock.AnythingOfType("repositories.TransactionMatch")).
		Return(&domain.BankTransaction{BankTransactionID: uuid.NewString()}, nil).Once()

	var captured portsrepo.SaveReversalParams
	suite.mockSettlementRepo.On("SaveReversal", ctx, mock.AnythingOfType("repositories.SaveReversalParams")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(portsrepo.SaveReversalParams)
		}).
		Return(nil).Once()
	suite.mockRecalc.On("RecalculateFromDate", ctx, scope, matched.Date.Add(time.Millisecond)).Return(int64(0), nil).Once()

	reversed, err := suite.service.ReverseSettlement(ctx, doc.DocumentID, "valor incorreto", userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Pending, reversed.Status)
	suite.Zero(reversed.SettledValue)
	suite.Zero(reversed.Fine)
	suite.Zero(reversed.Discount)
	suite.Nil(reversed.SettlementDate)
	suite.Nil(reversed.SettlementID)
	suite.Nil(reversed.BankAccountID)
	suite.Equal("pago via PIX [ESTORNADO: valor incorreto]", reversed.Observation)
	suite.Equal(userID, reversed.LastUpdatedBy)

	suite.Equal(matched.EntryID, captured.MatchedEntryID)
	suite.Equal(int64(25_245), captured.BalanceDelta) // undoing a debit restores the amount
	suite.Require().NotNil(captured.BankTransaction)
	suite.Equal(domain.Credit, captured.BankTransaction.Type)
	suite.Equal("Estorno de liquidação de conta a pagar NF-1042", captured.BankTransaction.Description)

	suite.mockRecalc.AssertExpectations(suite.T())
}

func (suite *ReversalServiceTestSuite) TestReverseSettlement_NoMatchedEntryFallsBackToFullRecalc() {
	ctx := context.Background()
	accountID := uuid.NewString()
	scope := domain.BankScope(accountID)
	doc := settledPayable(accountID)

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockLedgerRepo.On("FindMatchingEntry", ctx, mock.AnythingOfType("repositories.EntryMatch")).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTransactionRepo.On("FindMatchingBankTransaction", ctx, mock.AnythingOfType("repositories.TransactionMatch")).
		Return(nil, apperrors.ErrNotFound).Once()

	var captured portsrepo.SaveReversalParams
	suite.mockSettlementRepo.On("SaveReversal", ctx, mock.AnythingOfType("repositories.SaveReversalParams")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(portsrepo.SaveReversalParams)
		}).
		Return(nil).Once()
	suite.mockRecalc.On("RecalculateFull", ctx, scope).Return(int64(0), nil).Once()

	_, err := suite.service.ReverseSettlement(ctx, doc.DocumentID, "duplicado", uuid.NewString())

	suite.Require().NoError(err)
	suite.Empty(captured.MatchedEntryID)
	suite.Require().NotNil(captured.BankTransaction) // estorno row is written regardless
	suite.mockRecalc.AssertExpectations(suite.T())
}

func (suite *ReversalServiceTestSuite) TestReverseSettlement_NotSettled() {
	ctx := context.Background()
	doc := settledPayable(uuid.NewString())
	doc.Status = domain.Pending
	doc.SettledValue = 0

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	_, err := suite.service.ReverseSettlement(ctx, doc.DocumentID, "motivo", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorIs(err, services.ErrNotSettled)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "SaveReversal", mock.Anything, mock.Anything)
}

func (suite *ReversalServiceTestSuite) TestReverseSettlement_RecalcFailureStillSucceeds() {
	ctx := context.Background()
	accountID := uuid.NewString()
	scope := domain.BankScope(accountID)
	doc := settledPayable(accountID)

	matched := domain.CashFlowEntry{
		EntryID:       uuid.NewString(),
		Date:          *doc.SettlementDate,
		Type:          domain.Debit,
		Value:         25_245,
		BankAccountID: &accountID,
	}

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockLedgerRepo.On("FindMatchingEntry", ctx, mock.AnythingOfType("repositories.EntryMatch")).Return(&matched, nil).Once()
	suite.mockTransactionRepo.On("FindMatchingBankTransaction", ctx, mock.AnythingOfType("repositories.TransactionMatch")).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockSettlementRepo.On("SaveReversal", ctx, mock.AnythingOfType("repositories.SaveReversalParams")).Return(nil).Once()
	suite.mockRecalc.On("RecalculateFromDate", ctx, scope, mock.AnythingOfType("time.Time")).
		Return(int64(0), apperrors.ErrInternal).Once()

	// The reversal is committed; a failed recalculation leaves the scope
	// flagged and is not surfaced to the caller.
	reversed, err := suite.service.ReverseSettlement(ctx, doc.DocumentID, "motivo", uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.Pending, reversed.Status)
}

func (suite *ReversalServiceTestSuite) TestDeleteEntry_RevertsDocumentAndRecalculates() {
	ctx := context.Background()
	accountID := uuid.NewString()
	scope := domain.BankScope(accountID)
	userID := uuid.NewString()
	docNumber := "NF-1042"
	entryDate := time.Date(2025, 7, 10, 14, 30, 0, 0, time.UTC)

	entry := domain.CashFlowEntry{
		EntryID:        uuid.NewString(),
		Date:           entryDate,
		Type:           domain.Debit,
		Value:          25_245,
		DocumentNumber: &docNumber,
		BankAccountID:  &accountID,
	}
	doc := settledPayable(accountID)
	txnID := uuid.NewString()

	suite.mockLedgerRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()
	suite.mockTransactionRepo.On("FindMatchingBankTransaction", ctx, mock.MatchedBy(func(m portsrepo.TransactionMatch) bool {
		return m.BankAccountID == accountID && m.Amount == 25_245 && m.NearestTo.Equal(entryDate)
	})).Return(&domain.BankTransaction{BankTransactionID: txnID}, nil).Once()
	suite.mockDocumentRepo.On("FindPaidDocumentByNumber", ctx, docNumber).Return(doc, nil).Once()

	var captured portsrepo.SaveEntryDeletionParams
	suite.mockSettlementRepo.On("SaveEntryDeletion", ctx, mock.AnythingOfType("repositories.SaveEntryDeletionParams")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(portsrepo.SaveEntryDeletionParams)
		}).
		Return(nil).Once()
	suite.mockRecalc.On("RecalculateFromDate", ctx, scope, entryDate.Add(time.Millisecond)).Return(int64(0), nil).Once()

	err := suite.service.DeleteEntry(ctx, entry.EntryID, userID)

	suite.Require().NoError(err)
	suite.Equal(txnID, captured.BankTransactionID)
	suite.Equal(int64(25_245), captured.BalanceDelta) // deleting a debit adds the value back
	suite.Require().NotNil(captured.RevertDocument)
	suite.Equal(domain.Pending, captured.RevertDocument.Status)
	suite.Contains(captured.RevertDocument.Observation, "Lançamento removido do fluxo de caixa")
	suite.mockRecalc.AssertExpectations(suite.T())
}

func (suite *ReversalServiceTestSuite) TestDeleteEntry_NoDocumentNumber() {
	ctx := context.Background()
	cashBoxID := uuid.NewString()
	entryDate := time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC)

	entry := domain.CashFlowEntry{
		EntryID:   uuid.NewString(),
		Date:      entryDate,
		Type:      domain.Credit,
		Value:     5_000,
		CashBoxID: &cashBoxID,
	}

	suite.mockLedgerRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()
	suite.mockTransactionRepo.On("FindMatchingCashTransaction", ctx, mock.AnythingOfType("repositories.TransactionMatch")).
		Return(nil, apperrors.ErrNotFound).Once()

	var captured portsrepo.SaveEntryDeletionParams
	suite.mockSettlementRepo.On("SaveEntryDeletion", ctx, mock.AnythingOfType("repositories.SaveEntryDeletionParams")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(portsrepo.SaveEntryDeletionParams)
		}).
		Return(nil).Once()
	suite.mockRecalc.On("RecalculateFromDate", ctx, domain.CashScope(cashBoxID), entryDate.Add(time.Millisecond)).Return(int64(0), nil).Once()

	err := suite.service.DeleteEntry(ctx, entry.EntryID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Empty(captured.CashTransactionID)
	suite.Nil(captured.RevertDocument)
	suite.Equal(int64(-5_000), captured.BalanceDelta)
	suite.mockDocumentRepo.AssertNotCalled(suite.T(), "FindPaidDocumentByNumber", mock.Anything, mock.Anything)
}

func (suite *ReversalServiceTestSuite) TestDeleteEntry_EntryNotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockLedgerRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteEntry(ctx, entryID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestReversalService(t *testing.T) {
	suite.Run(t, new(ReversalServiceTestSuite))
}
