package handler

import (
	"fmt"
	"time"

	"github.com/freightbooks/freightbooks-api/internal/application/service"
	"github.com/freightbooks/freightbooks-api/internal/domain/enum"
	"github.com/freightbooks/freightbooks-api/internal/domain/receipt"
	"github.com/freightbooks/freightbooks-api/internal/presentation/http/dto/response"
	"github.com/freightbooks/freightbooks-api/pkg/export"
	"github.com/freightbooks/freightbooks-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReceiptHandler handles receipt document HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// CreateReceiptRequest represents the create receipt request body. Groups
// bind through the domain types so malformed row values coerce instead of
// failing the whole request.
type CreateReceiptRequest struct {
	ProNumber   string             `json:"pro_number" binding:"required"`
	ReceiptType string             `json:"receipt_type" binding:"required"`
	Groups      []receipt.Group    `json:"groups" binding:"required,min=1"`
	Tax         receipt.TaxOptions `json:"tax"`
}

// UpdateReceiptRequest represents the update receipt request body
type UpdateReceiptRequest struct {
	Groups  []receipt.Group    `json:"groups" binding:"required,min=1"`
	Tax     receipt.TaxOptions `json:"tax"`
	Version int                `json:"version"`
}

// List handles listing receipts
// @Summary List Receipts
// @Description Get all receipt documents with pagination and filtering
// @Tags receipts
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param pro_number query string false "PRO number filter"
// @Param receipt_type query string false "Receipt type filter"
// @Success 200 {object} response.APIResponse
// @Router /receipts [get]
func (h *ReceiptHandler) List(c *gin.Context) {
	page := 1
	perPage := 15
	if p := c.Query("page"); p != "" {
		if parsed, err := parsePositiveInt(p); err == nil {
			page = parsed
		}
	}
	if pp := c.Query("per_page"); pp != "" {
		if parsed, err := parsePositiveInt(pp); err == nil {
			perPage = parsed
		}
	}

	var receiptType *enum.ReceiptType
	if rt := c.Query("receipt_type"); rt != "" {
		parsed := enum.ReceiptType(rt)
		if !parsed.Valid() {
			response.BadRequest(c, "Unknown receipt type")
			return
		}
		receiptType = &parsed
	}

	result, err := h.receiptService.ListReceipts(c.Request.Context(), &service.ListReceiptsInput{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		ProNumber:   c.Query("pro_number"),
		ReceiptType: receiptType,
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Receipts retrieved successfully", result)
}

// Get handles getting a single receipt
// @Summary Get Receipt
// @Description Get a receipt document by ID
// @Tags receipts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Receipt ID"
// @Success 200 {object} response.APIResponse
// @Router /receipts/{id} [get]
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	doc, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", doc)
}

// ListByPro handles listing all receipts for one PRO number
// @Summary List Receipts by PRO
// @Description Get every receipt filed under a PRO number, newest first
// @Tags receipts
// @Security BearerAuth
// @Produce json
// @Param proNumber path string true "PRO number"
// @Success 200 {object} response.APIResponse
// @Router /pros/{proNumber}/receipts [get]
func (h *ReceiptHandler) ListByPro(c *gin.Context) {
	proNumber := c.Param("proNumber")
	if proNumber == "" {
		response.BadRequest(c, "PRO number is required")
		return
	}

	docs, err := h.receiptService.ListReceiptsByPro(c.Request.Context(), proNumber)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipts retrieved successfully", docs)
}

// Create handles creating a receipt
// @Summary Create Receipt
// @Description File a new receipt document for a PRO number
// @Tags receipts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateReceiptRequest true "Receipt data"
// @Success 201 {object} response.APIResponse
// @Router /receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	doc, err := h.receiptService.CreateReceipt(c.Request.Context(), &service.CreateReceiptInput{
		Actor:       service.Actor{ID: *userID, Email: GetUserEmail(c)},
		ProNumber:   req.ProNumber,
		ReceiptType: enum.ReceiptType(req.ReceiptType),
		Groups:      req.Groups,
		Tax:         req.Tax,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created successfully", doc)
}

// Update handles replacing a receipt's contents
// @Summary Update Receipt
// @Description Replace a receipt's group tree and recompute its snapshot
// @Tags receipts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Receipt ID"
// @Param request body UpdateReceiptRequest true "Receipt data"
// @Success 200 {object} response.APIResponse
// @Router /receipts/{id} [put]
func (h *ReceiptHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	var req UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	doc, err := h.receiptService.UpdateReceipt(c.Request.Context(), &service.UpdateReceiptInput{
		Actor:   service.Actor{ID: *userID, Email: GetUserEmail(c)},
		ID:      id,
		Groups:  req.Groups,
		Tax:     req.Tax,
		Version: req.Version,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt updated successfully", doc)
}

// Delete handles deleting a receipt
// @Summary Delete Receipt
// @Description Delete a receipt document by ID
// @Tags receipts
// @Security BearerAuth
// @Param id path string true "Receipt ID"
// @Success 204
// @Router /receipts/{id} [delete]
func (h *ReceiptHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	actor := service.Actor{ID: *userID, Email: GetUserEmail(c)}
	if err := h.receiptService.DeleteReceipt(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Export handles exporting a receipt as an xlsx workbook
// @Summary Export Receipt
// @Description Download a receipt document as an xlsx workbook
// @Tags receipts
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Receipt ID"
// @Success 200
// @Router /receipts/{id}/export [get]
func (h *ReceiptHandler) Export(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	doc, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("%s-%s-%s.xlsx",
		doc.ReceiptType, doc.ProNumber, time.Now().Format("20060102"))

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := export.WriteReceipt(c.Writer, doc); err != nil {
		response.InternalServerError(c, "Failed to render workbook")
		return
	}
}
