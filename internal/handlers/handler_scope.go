package handlers

import (
	"net/http"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portssvc "github.com/caixadigital/fluxo_backend/internal/core/ports/services"
	"github.com/caixadigital/fluxo_backend/internal/dto"
	"github.com/caixadigital/fluxo_backend/internal/middleware"
	"github.com/caixadigital/fluxo_backend/internal/utils/money"
	"github.com/gin-gonic/gin"
)

// scopeHandler handles bank-account and cash-box requests.
type scopeHandler struct {
	scopeService  portssvc.ScopeSvcFacade
	recalcService portssvc.RecalcSvcFacade
}

func newScopeHandler(ss portssvc.ScopeSvcFacade, rs portssvc.RecalcSvcFacade) *scopeHandler {
	return &scopeHandler{scopeService: ss, recalcService: rs}
}

// registerScopeRoutes sets up the bank-account and cash-box routes.
func registerScopeRoutes(rg *gin.RouterGroup, ss portssvc.ScopeSvcFacade, rs portssvc.RecalcSvcFacade) {
	h := newScopeHandler(ss, rs)
	accounts := rg.Group("/bank-accounts")
	{
		accounts.POST("/", h.createBankAccount)
		accounts.GET("/", h.listBankAccounts)
		accounts.GET("/:bankAccountID", h.getBankAccount)
		accounts.POST("/:bankAccountID/recalculate", h.recalculateBankAccount)
	}
	boxes := rg.Group("/cash-boxes")
	{
		boxes.POST("/", h.createCashBox)
		boxes.GET("/", h.listCashBoxes)
		boxes.GET("/:cashBoxID", h.getCashBox)
		boxes.POST("/:cashBoxID/recalculate", h.recalculateCashBox)
	}
}

// createBankAccount godoc
// @Summary Create a bank account
// @Tags bank-accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateBankAccountRequest true "Bank account data"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Router /bank-accounts/ [post]
func (h *scopeHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.scopeService.CreateBankAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create bank account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// listBankAccounts godoc
// @Summary List bank accounts
// @Tags bank-accounts
// @Produce json
// @Success 200 {array} dto.BankAccountResponse
// @Router /bank-accounts/ [get]
func (h *scopeHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.scopeService.ListBankAccounts(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list bank accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponses(accounts))
}

// getBankAccount godoc
// @Summary Get a bank account by ID
// @Tags bank-accounts
// @Produce json
// @Param bankAccountID path string true "Bank account ID"
// @Success 200 {object} dto.BankAccountResponse
// @Failure 404 {object} map[string]string "Bank account not found"
// @Router /bank-accounts/{bankAccountID} [get]
func (h *scopeHandler) getBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	account, err := h.scopeService.GetBankAccountByID(c.Request.Context(), c.Param("bankAccountID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get bank account")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// recalculateBankAccount godoc
// @Summary Recalculate a bank account's ledger
// @Description Recomputes every running balance of the account from zero and refreshes its cached balance
// @Tags bank-accounts
// @Produce json
// @Param bankAccountID path string true "Bank account ID"
// @Success 200 {object} dto.RecalculateResponse
// @Router /bank-accounts/{bankAccountID}/recalculate [post]
func (h *scopeHandler) recalculateBankAccount(c *gin.Context) {
	h.recalculate(c, domain.BankScope(c.Param("bankAccountID")))
}

// createCashBox godoc
// @Summary Create a cash box
// @Tags cash-boxes
// @Accept json
// @Produce json
// @Param box body dto.CreateCashBoxRequest true "Cash box data"
// @Success 201 {object} dto.CashBoxResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Router /cash-boxes/ [post]
func (h *scopeHandler) createCashBox(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCashBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	box, err := h.scopeService.CreateCashBox(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create cash box")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCashBoxResponse(box))
}

// listCashBoxes godoc
// @Summary List cash boxes
// @Tags cash-boxes
// @Produce json
// @Success 200 {array} dto.CashBoxResponse
// @Router /cash-boxes/ [get]
func (h *scopeHandler) listCashBoxes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	boxes, err := h.scopeService.ListCashBoxes(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list cash boxes")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashBoxResponses(boxes))
}

// getCashBox godoc
// @Summary Get a cash box by ID
// @Tags cash-boxes
// @Produce json
// @Param cashBoxID path string true "Cash box ID"
// @Success 200 {object} dto.CashBoxResponse
// @Failure 404 {object} map[string]string "Cash box not found"
// @Router /cash-boxes/{cashBoxID} [get]
func (h *scopeHandler) getCashBox(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	box, err := h.scopeService.GetCashBoxByID(c.Request.Context(), c.Param("cashBoxID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to get cash box")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashBoxResponse(box))
}

// recalculateCashBox godoc
// @Summary Recalculate a cash box's ledger
// @Description Recomputes every running balance of the cash box from zero and refreshes its cached balance
// @Tags cash-boxes
// @Produce json
// @Param cashBoxID path string true "Cash box ID"
// @Success 200 {object} dto.RecalculateResponse
// @Router /cash-boxes/{cashBoxID}/recalculate [post]
func (h *scopeHandler) recalculateCashBox(c *gin.Context) {
	h.recalculate(c, domain.CashScope(c.Param("cashBoxID")))
}

func (h *scopeHandler) recalculate(c *gin.Context, scope domain.Scope) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	finalBalance, err := h.recalcService.RecalculateFull(c.Request.Context(), scope)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to recalculate balances")
		return
	}

	logger.Info("Ledger recalculated", "scope", scope.String(), "finalBalance", finalBalance)
	c.JSON(http.StatusOK, dto.RecalculateResponse{FinalBalance: money.FromCents(finalBalance)})
}
