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

type StatementServiceTestSuite struct {
	suite.Suite
	mockScopeRepo       *MockScopeRepository
	mockLookupRepo      *MockLookupRepository
	mockLedgerRepo      *MockLedgerRepository
	mockTransactionRepo *MockTransactionRepository
	mockStatementRepo   *MockStatementRepository
	service             portssvc.StatementSvcFacade

	accountID  string
	costCenter domain.CostCenter
}

func (suite *StatementServiceTestSuite) SetupTest() {
	suite.mockScopeRepo = new(MockScopeRepository)
	suite.mockLookupRepo = new(MockLookupRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockTransactionRepo = new(MockTransactionRepository)
	suite.mockStatementRepo = new(MockStatementRepository)
	suite.service = services.NewStatementService(
		suite.mockScopeRepo,
		suite.mockLookupRepo,
		suite.mockLedgerRepo,
		suite.mockTransactionRepo,
		suite.mockStatementRepo,
		0, // no inter-batch pause in tests
		1,
	)
	suite.accountID = uuid.NewString()
	suite.costCenter = domain.CostCenter{CostCenterID: uuid.NewString(), Name: domain.FallbackCostCenterName}
}

func (suite *StatementServiceTestSuite) expectActiveAccount() {
	suite.mockScopeRepo.On("FindBankAccountByID", mock.Anything, suite.accountID).
		Return(&domain.BankAccount{BankAccountID: suite.accountID, IsActive: true}, nil)
}

func (suite *StatementServiceTestSuite) importParams(fileBytes []byte) portssvc.ImportStatementParams {
	return portssvc.ImportStatementParams{
		BankAccountID: suite.accountID,
		FileBytes:     fileBytes,
		SheetIndex:    0,
		FileName:      "extrato-junho.xlsx",
		UserID:        uuid.NewString(),
	}
}

func (suite *StatementServiceTestSuite) TestImportStatement_SynthesizesIntraDayOrdering() {
	ctx := context.Background()
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	fileBytes := buildStatement(suite.T(), [][]interface{}{
		{"01/06/2025", "Depósito em conta", "1.000,00", "C"},
		{"01/06/2025", "Pagamento fornecedor", "500,00", "D"},
	})

	suite.expectActiveAccount()
	// No history at all: zero seed, empty day, fallback cost center.
	suite.mockScopeRepo.On("FindLastBankBalanceBefore", ctx, suite.accountID, day).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockStatementRepo.On("DeleteImportedRows", ctx, suite.accountID, "extrato-junho.xlsx").Return(nil).Once()
	suite.mockTransactionRepo.On("FindLastBankTransactionTimeOn", ctx, suite.accountID, day).Return(time.Time{}, apperrors.ErrNotFound).Once()
	suite.mockLookupRepo.On("FindCostCenterByName", ctx, domain.FallbackCostCenterName).Return(&suite.costCenter, nil).Once()

	var saved []domain.CashFlowEntry
	suite.mockStatementRepo.On("SaveImportedRow", ctx, mock.AnythingOfType("domain.BankTransaction"), mock.AnythingOfType("domain.CashFlowEntry")).
		Run(func(args mock.Arguments) {
			saved = append(saved, args.Get(2).(domain.CashFlowEntry))
		}).
		Return(nil).Twice()

	// Authoritative second pass reloads what was just written.
	suite.mockTransactionRepo.On("ListBankTransactionsFromDate", ctx, suite.accountID, day).Return([]domain.BankTransaction{
		{Amount: 100_000, Type: domain.Credit, Timestamp: day.Add(3 * time.Hour)},
		{Amount: 50_000, Type: domain.Debit, Timestamp: day.Add(3*time.Hour + time.Minute)},
	}, nil).Once()
	suite.mockLedgerRepo.On("UpdateEntryBalancesByTimestamp", ctx, suite.accountID, mock.MatchedBy(func(updates []portsrepo.TimestampBalance) bool {
		return len(updates) == 2 &&
			updates[0].Timestamp.Equal(day.Add(3*time.Hour)) && updates[0].Balance == 100_000 &&
			updates[1].Timestamp.Equal(day.Add(3*time.Hour+time.Minute)) && updates[1].Balance == 50_000
	})).Return(nil).Once()
	suite.mockScopeRepo.On("SaveBankBalanceSnapshot", ctx, mock.AnythingOfType("domain.BankBalance")).Return(nil).Once()
	suite.mockScopeRepo.On("SetScopeBalance", ctx, domain.BankScope(suite.accountID), int64(50_000), false).Return(nil).Once()

	result, err := suite.service.ImportStatement(ctx, suite.importParams(fileBytes))

	suite.Require().NoError(err)
	suite.Equal(2, result.Imported)
	suite.Zero(result.Skipped)
	suite.Zero(result.Errored)
	suite.Equal(int64(50_000), result.FinalBalance)

	// Rows of the same calendar date anchor at 03:00 UTC and step one minute.
	suite.Require().Len(saved, 2)
	suite.True(saved[0].Date.Equal(day.Add(3 * time.Hour)))
	suite.True(saved[1].Date.Equal(day.Add(3*time.Hour + time.Minute)))
	suite.Equal(int64(100_000), saved[0].Balance)
	suite.Equal(int64(50_000), saved[1].Balance)
	suite.Require().NotNil(saved[0].CostCenterID)
	suite.Equal(suite.costCenter.CostCenterID, *saved[0].CostCenterID)
	suite.Require().NotNil(saved[0].CSVFileName)
	suite.Equal("extrato-junho.xlsx", *saved[0].CSVFileName)

	suite.mockStatementRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestImportStatement_SeedsFromPriorSnapshot() {
	ctx := context.Background()
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	fileBytes := buildStatement(suite.T(), [][]interface{}{
		{"01/06/2025", "Depósito", "1.000,00", "C"},
	})

	suite.expectActiveAccount()
	suite.mockScopeRepo.On("FindLastBankBalanceBefore", ctx, suite.accountID, day).
		Return(&domain.BankBalance{Balance: 20_000}, nil).Once()
	suite.mockStatementRepo.On("DeleteImportedRows", ctx, suite.accountID, "extrato-junho.xlsx").Return(nil).Once()
	suite.mockTransactionRepo.On("FindLastBankTransactionTimeOn", ctx, suite.accountID, day).Return(time.Time{}, apperrors.ErrNotFound).Once()
	suite.mockLookupRepo.On("FindCostCenterByName", ctx, domain.FallbackCostCenterName).Return(&suite.costCenter, nil).Once()
	suite.mockStatementRepo.On("SaveImportedRow", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockTransactionRepo.On("ListBankTransactionsFromDate", ctx, suite.accountID, day).Return([]domain.BankTransaction{
		{Amount: 100_000, Type: domain.Credit, Timestamp: day.Add(3 * time.Hour)},
	}, nil).Once()
	suite.mockLedgerRepo.On("UpdateEntryBalancesByTimestamp", ctx, suite.accountID, mock.MatchedBy(func(updates []portsrepo.TimestampBalance) bool {
		return len(updates) == 1 && updates[0].Balance == 120_000
	})).Return(nil).Once()
	suite.mockScopeRepo.On("SaveBankBalanceSnapshot", ctx, mock.Anything).Return(nil).Once()
	suite.mockScopeRepo.On("SetScopeBalance", ctx, domain.BankScope(suite.accountID), int64(120_000), false).Return(nil).Once()

	result, err := suite.service.ImportStatement(ctx, suite.importParams(fileBytes))

	suite.Require().NoError(err)
	suite.Equal(int64(120_000), result.FinalBalance)
}

func (suite *StatementServiceTestSuite) TestImportStatement_RowFailureDoesNotAbort() {
	ctx := context.Background()
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	fileBytes := buildStatement(suite.T(), [][]interface{}{
		{"01/06/2025", "Primeira", "1.000,00", "C"},
		{"01/06/2025", "Segunda", "500,00", "D"},
	})

	suite.expectActiveAccount()
	suite.mockScopeRepo.On("FindLastBankBalanceBefore", ctx, suite.accountID, day).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockStatementRepo.On("DeleteImportedRows", ctx, suite.accountID, "extrato-junho.xlsx").Return(nil).Once()
	suite.mockTransactionRepo.On("FindLastBankTransactionTimeOn", ctx, suite.accountID, day).Return(time.Time{}, apperrors.ErrNotFound).Once()
	suite.mockLookupRepo.On("FindCostCenterByName", ctx, domain.FallbackCostCenterName).Return(&suite.costCenter, nil).Once()

	// First row fails alone; the second still lands.
	suite.mockStatementRepo.On("SaveImportedRow", ctx, mock.Anything, mock.Anything).
		Return(apperrors.NewAppError(500, "insert failed", nil)).Once()
	suite.mockStatementRepo.On("SaveImportedRow", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	suite.mockTransactionRepo.On("ListBankTransactionsFromDate", ctx, suite.accountID, day).Return([]domain.BankTransaction{
		{Amount: 50_000, Type: domain.Debit, Timestamp: day.Add(3*time.Hour + time.Minute)},
	}, nil).Once()
	suite.mockLedgerRepo.On("UpdateEntryBalancesByTimestamp", ctx, suite.accountID, mock.Anything).Return(nil).Once()
	suite.mockScopeRepo.On("SaveBankBalanceSnapshot", ctx, mock.Anything).Return(nil).Once()
	suite.mockScopeRepo.On("SetScopeBalance", ctx, domain.BankScope(suite.accountID), int64(-50_000), false).Return(nil).Once()

	result, err := suite.service.ImportStatement(ctx, suite.importParams(fileBytes))

	suite.Require().NoError(err)
	suite.Equal(1, result.Imported)
	suite.Equal(1, result.Errored)
}

func (suite *StatementServiceTestSuite) TestImportStatement_InactiveAccount() {
	ctx := context.Background()
	suite.mockScopeRepo.On("FindBankAccountByID", ctx, suite.accountID).
		Return(&domain.BankAccount{BankAccountID: suite.accountID, IsActive: false}, nil).Once()

	_, err := suite.service.ImportStatement(ctx, suite.importParams([]byte("ignored")))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorIs(err, services.ErrInactiveAccount)
}

func (suite *StatementServiceTestSuite) TestImportStatement_NoValidRows() {
	ctx := context.Background()
	fileBytes := buildStatement(suite.T(), [][]interface{}{
		{"banana", "Histórico", "1.000,00", "C"},
	})

	suite.expectActiveAccount()

	_, err := suite.service.ImportStatement(ctx, suite.importParams(fileBytes))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStatementRepo.AssertNotCalled(suite.T(), "DeleteImportedRows", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *StatementServiceTestSuite) TestImportStatementBatched_SplitsIntoSuffixedUnits() {
	ctx := context.Background()
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	fileBytes := buildStatement(suite.T(), [][]interface{}{
		{"01/06/2025", "Primeira", "1.000,00", "C"},
		{"01/06/2025", "Segunda", "500,00", "D"},
	})

	suite.expectActiveAccount()
	suite.mockScopeRepo.On("FindLastBankBalanceBefore", ctx, suite.accountID, day).Return(nil, apperrors.ErrNotFound)
	suite.mockStatementRepo.On("DeleteImportedRows", ctx, suite.accountID, "extrato-junho.xlsx#batch-001").Return(nil).Once()
	suite.mockStatementRepo.On("DeleteImportedRows", ctx, suite.accountID, "extrato-junho.xlsx#batch-002").Return(nil).Once()
	suite.mockTransactionRepo.On("FindLastBankTransactionTimeOn", ctx, suite.accountID, day).Return(time.Time{}, apperrors.ErrNotFound).Once()
	suite.mockTransactionRepo.On("FindLastBankTransactionTimeOn", ctx, suite.accountID, day).Return(day.Add(3*time.Hour), nil).Once()
	suite.mockLookupRepo.On("FindCostCenterByName", ctx, domain.FallbackCostCenterName).Return(&suite.costCenter, nil)
	suite.mockStatementRepo.On("SaveImportedRow", ctx, mock.Anything, mock.Anything).Return(nil)
	suite.mockTransactionRepo.On("ListBankTransactionsFromDate", ctx, suite.accountID, day).Return([]domain.BankTransaction{}, nil)
	suite.mockScopeRepo.On("SaveBankBalanceSnapshot", ctx, mock.Anything).Return(nil)
	suite.mockScopeRepo.On("SetScopeBalance", ctx, domain.BankScope(suite.accountID), mock.AnythingOfType("int64"), false).Return(nil)

	result, err := suite.service.ImportStatementBatched(ctx, suite.importParams(fileBytes), 1)

	suite.Require().NoError(err)
	suite.Equal(2, result.Imported)
	suite.mockStatementRepo.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestImportStatementBatched_RejectsNonPositiveBatchSize() {
	_, err := suite.service.ImportStatementBatched(context.Background(), suite.importParams([]byte("ignored")), 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestStatementService(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}
