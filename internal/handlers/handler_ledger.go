package handlers

import (
	"net/http"
	"strconv"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portssvc "github.com/caixadigital/fluxo_backend/internal/core/ports/services"
	"github.com/caixadigital/fluxo_backend/internal/dto"
	"github.com/caixadigital/fluxo_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for the cash-flow ledger.
type ledgerHandler struct {
	ledgerService   portssvc.LedgerSvcFacade
	reversalService portssvc.ReversalSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, rs portssvc.ReversalSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls, reversalService: rs}
}

// registerLedgerRoutes sets up the ledger routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ls portssvc.LedgerSvcFacade, rs portssvc.ReversalSvcFacade) {
	h := newLedgerHandler(ls, rs)
	entries := rg.Group("/entries")
	{
		entries.GET("/", h.listEntries)
		entries.DELETE("/:entryID", h.deleteEntry)
	}
}

// listEntries godoc
// @Summary List ledger entries of a scope
// @Description Retrieves every entry of a bank account or cash box in chronological order
// @Tags entries
// @Produce json
// @Param bankAccountID query string false "Bank account ID"
// @Param cashBoxID query string false "Cash box ID"
// @Success 200 {array} dto.EntryResponse
// @Failure 400 {object} map[string]string "Exactly one scope must be given"
// @Router /entries/ [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scope, ok := scopeFromQuery(c)
	if !ok {
		return
	}

	entries, err := h.ledgerService.ListEntries(c.Request.Context(), scope)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponses(entries))
}

// deleteEntry godoc
// @Summary Delete a ledger entry
// @Description Removes an entry, its raw transaction and reverts its document, then recomputes balances
// @Tags entries
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 204 "Entry deleted"
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /entries/{entryID} [delete]
func (h *ledgerHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.reversalService.DeleteEntry(c.Request.Context(), c.Param("entryID"), userID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// scopeFromQuery reads a bankAccountID/cashBoxID query pair into a scope,
// writing a 400 response when not exactly one is given.
func scopeFromQuery(c *gin.Context) (domain.Scope, bool) {
	bankAccountID := c.Query("bankAccountID")
	cashBoxID := c.Query("cashBoxID")
	if (bankAccountID == "") == (cashBoxID == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of bankAccountID/cashBoxID must be given"})
		return domain.Scope{}, false
	}
	if bankAccountID != "" {
		return domain.BankScope(bankAccountID), true
	}
	return domain.CashScope(cashBoxID), true
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
