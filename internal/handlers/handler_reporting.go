package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/caixadigital/fluxo_backend/internal/core/ports/services"
	"github.com/caixadigital/fluxo_backend/internal/dto"
	"github.com/caixadigital/fluxo_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles read-only cash-flow reporting requests.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// registerReportingRoutes sets up the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: rs}
	rg.GET("/reports/cash-flow-summary", h.getCashFlowSummary)
}

// getCashFlowSummary godoc
// @Summary Summarize a scope's cash flow over a period
// @Description Aggregates credits, debits, net movement and closing balance between from (inclusive) and to (exclusive)
// @Tags reports
// @Produce json
// @Param bankAccountID query string false "Bank account ID"
// @Param cashBoxID query string false "Cash box ID"
// @Param from query string true "Period start, RFC 3339 or YYYY-MM-DD"
// @Param to query string true "Period end, RFC 3339 or YYYY-MM-DD"
// @Success 200 {object} dto.CashFlowSummaryResponse
// @Failure 400 {object} map[string]string "Invalid period or scope"
// @Router /reports/cash-flow-summary [get]
func (h *reportingHandler) getCashFlowSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	scope, ok := scopeFromQuery(c)
	if !ok {
		return
	}

	from, ok := timeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := timeQuery(c, "to")
	if !ok {
		return
	}

	summary, err := h.reportingService.GetCashFlowSummary(c.Request.Context(), scope, from, to)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build cash flow summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashFlowSummaryResponse(summary))
}

// timeQuery parses a required query parameter as RFC 3339 or a bare date,
// writing a 400 response when absent or malformed.
func timeQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " is required"})
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " timestamp"})
		return time.Time{}, false
	}
	return t, true
}
