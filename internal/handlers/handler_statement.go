package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portssvc "github.com/caixadigital/fluxo_backend/internal/core/ports/services"
	"github.com/caixadigital/fluxo_backend/internal/dto"
	"github.com/caixadigital/fluxo_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

const maxStatementBytes = 20 << 20 // 20 MiB upload cap

// statementHandler handles bank-statement uploads.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
	batchSize        int
}

func newStatementHandler(ss portssvc.StatementSvcFacade, batchSize int) *statementHandler {
	return &statementHandler{statementService: ss, batchSize: batchSize}
}

// registerStatementRoutes sets up the statement import routes.
func registerStatementRoutes(rg *gin.RouterGroup, ss portssvc.StatementSvcFacade, batchSize int) {
	h := newStatementHandler(ss, batchSize)
	rg.POST("/bank-accounts/:bankAccountID/statements", h.importStatement)
}

// importStatement godoc
// @Summary Import a bank statement
// @Description Parses an uploaded spreadsheet and loads its rows into the account's ledger. Re-uploading the same file name replaces the prior import.
// @Tags statements
// @Accept multipart/form-data
// @Produce json
// @Param bankAccountID path string true "Bank account ID"
// @Param file formData file true "Statement workbook (.xlsx)"
// @Param sheet formData int false "Zero-based sheet index"
// @Param batched formData bool false "Split the import into retried batches"
// @Success 200 {object} dto.ImportStatementResponse
// @Failure 400 {object} map[string]string "No importable rows"
// @Failure 409 {object} map[string]string "Account is inactive"
// @Router /bank-accounts/{bankAccountID}/statements [post]
func (h *statementHandler) importStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing statement file"})
		return
	}
	if fileHeader.Size > maxStatementBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "statement file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded statement", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded statement", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}

	sheetIndex := 0
	if raw := c.PostForm("sheet"); raw != "" {
		sheetIndex, err = strconv.Atoi(raw)
		if err != nil || sheetIndex < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sheet index"})
			return
		}
	}

	params := portssvc.ImportStatementParams{
		BankAccountID: c.Param("bankAccountID"),
		FileBytes:     fileBytes,
		SheetIndex:    sheetIndex,
		FileName:      fileHeader.Filename,
		UserID:        userID,
	}

	var result *domain.StatementImportResult
	if c.PostForm("batched") == "true" {
		result, err = h.statementService.ImportStatementBatched(c.Request.Context(), params, h.batchSize)
	} else {
		result, err = h.statementService.ImportStatement(c.Request.Context(), params)
	}
	if err != nil {
		respondServiceError(c, logger, err, "Failed to import statement")
		return
	}

	logger.Info("Statement imported",
		"bankAccountID", params.BankAccountID,
		"fileName", params.FileName,
		"imported", result.Imported,
		"skipped", result.Skipped,
		"errored", result.Errored)
	c.JSON(http.StatusOK, dto.ToImportStatementResponse(result))
}
