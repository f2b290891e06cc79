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
	"github.com/caixadigital/fluxo_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SettlementServiceTestSuite struct {
	suite.Suite
	mockDocumentRepo   *MockDocumentRepository
	mockScopeRepo      *MockScopeRepository
	mockLookupRepo     *MockLookupRepository
	mockSettlementRepo *MockSettlementRepository
	service            portssvc.SettlementSvcFacade
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockDocumentRepo = new(MockDocumentRepository)
	suite.mockScopeRepo = new(MockScopeRepository)
	suite.mockLookupRepo = new(MockLookupRepository)
	suite.mockSettlementRepo = new(MockSettlementRepository)
	suite.service = services.NewSettlementService(
		suite.mockDocumentRepo,
		suite.mockScopeRepo,
		suite.mockLookupRepo,
		suite.mockSettlementRepo,
	)
}

func pendingDocument(kind domain.DocumentKind, valueCents int64) *domain.Document {
	return &domain.Document{
		DocumentID:     uuid.NewString(),
		Kind:           kind,
		DocumentNumber: "NF-1042",
		Description:    "Aluguel do galpão",
		Value:          valueCents,
		Status:         domain.Pending,
		DueDate:        time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *SettlementServiceTestSuite) TestSettleDocument_PayableDebitsBankAccount() {
	ctx := context.Background()
	userID := uuid.NewString()
	doc := pendingDocument(domain.Payable, 25_000)
	accountID := uuid.NewString()
	settlementDate := time.Date(2025, 7, 10, 14, 30, 0, 0, time.UTC)

	req := dto.SettleDocumentRequest{
		Fine:           decimal.NewFromFloat(2.95),
		Discount:       decimal.NewFromFloat(0.50),
		SettlementDate: &settlementDate,
		BankAccountID:  &accountID,
	}

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockScopeRepo.On("FindBankAccountByID", ctx, accountID).Return(&domain.BankAccount{BankAccountID: accountID, IsActive: true}, nil).Once()

	var captured portsrepo.SaveSettlementParams
	suite.mockSettlementRepo.On("SaveSettlement", ctx, mock.AnythingOfType("repositories.SaveSettlementParams")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(portsrepo.SaveSettlementParams)
		}).
		Return(&domain.CashFlowEntry{Balance: -25_245}, nil).Once()

	settled, err := suite.service.SettleDocument(ctx, doc.DocumentID, req, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Paid, settled.Status)
	// 250.00 + 2.95 fine - 0.50 discount = 252.45
	suite.Equal(int64(25_245), settled.SettledValue)
	suite.Require().NotNil(settled.SettlementID)
	suite.Require().NotNil(settled.SettlementDate)
	suite.True(settlementDate.Equal(*settled.SettlementDate))
	suite.Equal(userID, settled.LastUpdatedBy)

	suite.Equal(domain.Debit, captured.Entry.Type)
	suite.Equal(int64(25_245), captured.Entry.Value)
	suite.Equal("Liquidação de conta a pagar", captured.Entry.Historic)
	suite.Require().NotNil(captured.Entry.DocumentNumber)
	suite.Equal(doc.DocumentNumber, *captured.Entry.DocumentNumber)
	suite.Require().NotNil(captured.BankTransaction)
	suite.Nil(captured.CashTransaction)
	suite.Equal("Liquidação de conta a pagar NF-1042", captured.BankTransaction.Description)
	suite.Equal(captured.Entry.SettlementID, captured.BankTransaction.SettlementID)

	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestSettleDocument_ReceivableCreditsCashBox() {
	ctx := context.Background()
	doc := pendingDocument(domain.Receivable, 100_000)
	cashBoxID := uuid.NewString()

	req := dto.SettleDocumentRequest{CashBoxID: &cashBoxID}

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockScopeRepo.On("FindCashBoxByID", ctx, cashBoxID).Return(&domain.CashBox{CashBoxID: cashBoxID}, nil).Once()

	var captured portsrepo.SaveSettlementParams
	suite.mockSettlementRepo.On("SaveSettlement", ctx, mock.AnythingOfType("repositories.SaveSettlementParams")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(portsrepo.SaveSettlementParams)
		}).
		Return(&domain.CashFlowEntry{Balance: 100_000}, nil).Once()

	settled, err := suite.service.SettleDocument(ctx, doc.DocumentID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(int64(100_000), settled.SettledValue)
	suite.Equal(domain.Credit, captured.Entry.Type)
	suite.Equal("Recebimento de conta a receber", captured.Entry.Historic)
	suite.Require().NotNil(captured.CashTransaction)
	suite.Nil(captured.BankTransaction)
}

func (suite *SettlementServiceTestSuite) TestSettleDocument_AlreadySettled() {
	ctx := context.Background()
	doc := pendingDocument(domain.Payable, 25_000)
	doc.Status = domain.Paid

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	accountID := uuid.NewString()
	_, err := suite.service.SettleDocument(ctx, doc.DocumentID, dto.SettleDocumentRequest{BankAccountID: &accountID}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorIs(err, services.ErrAlreadySettled)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "SaveSettlement", mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestSettleDocument_CancelledDocument() {
	ctx := context.Background()
	doc := pendingDocument(domain.Payable, 25_000)
	doc.Status = domain.Cancelled

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	accountID := uuid.NewString()
	_, err := suite.service.SettleDocument(ctx, doc.DocumentID, dto.SettleDocumentRequest{BankAccountID: &accountID}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDocumentCancelled)
}

func (suite *SettlementServiceTestSuite) TestSettleDocument_NegativeAdjustmentRejected() {
	ctx := context.Background()
	doc := pendingDocument(domain.Payable, 25_000)

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	accountID := uuid.NewString()
	req := dto.SettleDocumentRequest{
		Discount:      decimal.NewFromFloat(-1.00),
		BankAccountID: &accountID,
	}
	_, err := suite.service.SettleDocument(ctx, doc.DocumentID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SettlementServiceTestSuite) TestSettleDocument_DiscountExceedsValue() {
	ctx := context.Background()
	doc := pendingDocument(domain.Payable, 25_000)
	accountID := uuid.NewString()

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockScopeRepo.On("FindBankAccountByID", ctx, accountID).Return(&domain.BankAccount{BankAccountID: accountID}, nil).Once()

	req := dto.SettleDocumentRequest{
		Discount:      decimal.NewFromFloat(300.00),
		BankAccountID: &accountID,
	}
	_, err := suite.service.SettleDocument(ctx, doc.DocumentID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockSettlementRepo.AssertNotCalled(suite.T(), "SaveSettlement", mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestSettleDocument_BothScopesRejected() {
	ctx := context.Background()
	doc := pendingDocument(domain.Payable, 25_000)
	accountID := uuid.NewString()
	cashBoxID := uuid.NewString()

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()

	req := dto.SettleDocumentRequest{BankAccountID: &accountID, CashBoxID: &cashBoxID}
	_, err := suite.service.SettleDocument(ctx, doc.DocumentID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SettlementServiceTestSuite) TestSettleDocument_UnknownPaymentMethod() {
	ctx := context.Background()
	doc := pendingDocument(domain.Payable, 25_000)
	accountID := uuid.NewString()
	pmID := uuid.NewString()

	suite.mockDocumentRepo.On("FindDocumentByID", ctx, doc.DocumentID).Return(doc, nil).Once()
	suite.mockLookupRepo.On("FindPaymentMethodByID", ctx, pmID).Return(nil, apperrors.ErrNotFound).Once()

	req := dto.SettleDocumentRequest{PaymentMethodID: &pmID, BankAccountID: &accountID}
	_, err := suite.service.SettleDocument(ctx, doc.DocumentID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestSettlementService(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
