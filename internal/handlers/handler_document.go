package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/caixadigital/fluxo_backend/internal/apperrors"
	"github.com/caixadigital/fluxo_backend/internal/core/domain"
	portsrepo "github.com/caixadigital/fluxo_backend/internal/core/ports/repositories"
	portssvc "github.com/caixadigital/fluxo_backend/internal/core/ports/services"
	"github.com/caixadigital/fluxo_backend/internal/dto"
	"github.com/caixadigital/fluxo_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// documentHandler handles HTTP requests for payable/receivable documents,
// including their settlement and reversal.
type documentHandler struct {
	documentService   portssvc.DocumentSvcFacade
	settlementService portssvc.SettlementSvcFacade
	reversalService   portssvc.ReversalSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade, ss portssvc.SettlementSvcFacade, rs portssvc.ReversalSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds, settlementService: ss, reversalService: rs}
}

// registerDocumentRoutes sets up the document routes.
func registerDocumentRoutes(rg *gin.RouterGroup, ds portssvc.DocumentSvcFacade, ss portssvc.SettlementSvcFacade, rs portssvc.ReversalSvcFacade) {
	h := newDocumentHandler(ds, ss, rs)
	documents := rg.Group("/documents")
	{
		documents.POST("/", h.createDocument)
		documents.GET("/", h.listDocuments)
		documents.GET("/:documentID", h.getDocument)
		documents.POST("/:documentID/settle", h.settleDocument)
		documents.POST("/:documentID/reverse", h.reverseSettlement)
		documents.POST("/:documentID/cancel", h.cancelDocument)
	}
}

// createDocument godoc
// @Summary Create a payable or receivable document
// @Description Registers a new PENDING document
// @Tags documents
// @Accept json
// @Produce json
// @Param document body dto.CreateDocumentRequest true "Document"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /documents/ [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create document")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc, time.Now().UTC()))
}

// getDocument godoc
// @Summary Get a document
// @Description Retrieves a document by ID; a pending document past its due date reads OVERDUE
// @Tags documents
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} map[string]string "Document not found"
// @Router /documents/{documentID} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), c.Param("documentID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc, time.Now().UTC()))
}

// listDocuments godoc
// @Summary List documents
// @Description Lists documents filtered by kind and status
// @Tags documents
// @Produce json
// @Param kind query string false "PAYABLE or RECEIVABLE"
// @Param status query string false "PENDING, PAID or CANCELLED"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} dto.DocumentResponse
// @Router /documents/ [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params portsrepo.ListDocumentsParams
	if kind := c.Query("kind"); kind != "" {
		k := domain.DocumentKind(kind)
		if k != domain.Payable && k != domain.Receivable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be PAYABLE or RECEIVABLE"})
			return
		}
		params.Kind = &k
	}
	if status := c.Query("status"); status != "" {
		s := domain.DocumentStatus(status)
		if s != domain.Pending && s != domain.Paid && s != domain.Cancelled {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status must be PENDING, PAID or CANCELLED"})
			return
		}
		params.Status = &s
	}
	params.Limit = intQuery(c, "limit", 50)
	params.Offset = intQuery(c, "offset", 0)

	docs, err := h.documentService.ListDocuments(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list documents")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponses(docs, time.Now().UTC()))
}

// settleDocument godoc
// @Summary Settle a document
// @Description Pays a payable or receives a receivable, posting the ledger entry
// @Tags documents
// @Accept json
// @Produce json
// @Param documentID path string true "Document ID"
// @Param settlement body dto.SettleDocumentRequest true "Settlement"
// @Success 200 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Document state forbids settlement"
// @Router /documents/{documentID}/settle [post]
func (h *documentHandler) settleDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SettleDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for settleDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.settlementService.SettleDocument(c.Request.Context(), c.Param("documentID"), req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to settle document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc, time.Now().UTC()))
}

// reverseSettlement godoc
// @Summary Reverse a settlement
// @Description Returns a PAID document to PENDING and removes its ledger entry
// @Tags documents
// @Accept json
// @Produce json
// @Param documentID path string true "Document ID"
// @Param reversal body dto.ReverseSettlementRequest true "Reversal"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Document is not settled"
// @Router /documents/{documentID}/reverse [post]
func (h *documentHandler) reverseSettlement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReverseSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for reverseSettlement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.reversalService.ReverseSettlement(c.Request.Context(), c.Param("documentID"), req.Reason, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reverse settlement")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc, time.Now().UTC()))
}

// cancelDocument godoc
// @Summary Cancel a pending document
// @Tags documents
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} map[string]string "Document not found"
// @Failure 409 {object} map[string]string "Only pending documents can be cancelled"
// @Router /documents/{documentID}/cancel [post]
func (h *documentHandler) cancelDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	doc, err := h.documentService.CancelDocument(c.Request.Context(), c.Param("documentID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to cancel document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc, time.Now().UTC()))
}

// respondServiceError maps the error taxonomy onto HTTP statuses. Internal
// causes are logged but never surfaced.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, internalMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "Resource already exists"})
	default:
		logger.Error(internalMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}
