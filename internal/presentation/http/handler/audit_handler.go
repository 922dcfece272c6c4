package handler

import (
	"github.com/freightbooks/freightbooks-api/internal/application/service"
	"github.com/freightbooks/freightbooks-api/internal/domain/enum"
	"github.com/freightbooks/freightbooks-api/internal/presentation/http/dto/response"
	"github.com/freightbooks/freightbooks-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// AuditHandler handles audit log HTTP requests
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List handles listing audit log entries
// @Summary List Audit Logs
// @Description Get audit log entries with pagination and filtering
// @Tags audit
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param action query string false "Action filter (create, update, delete)"
// @Param target_type query string false "Target type filter"
// @Param pro_number query string false "PRO number filter"
// @Success 200 {object} response.APIResponse
// @Router /audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
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

	var action *enum.AuditAction
	if a := c.Query("action"); a != "" {
		parsed := enum.AuditAction(a)
		if !parsed.Valid() {
			response.BadRequest(c, "Unknown audit action")
			return
		}
		action = &parsed
	}

	result, err := h.auditService.ListAuditLogs(c.Request.Context(), &service.ListAuditLogsInput{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Action:     action,
		TargetType: c.Query("target_type"),
		TargetID:   c.Query("target_id"),
		ProNumber:  c.Query("pro_number"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Audit logs retrieved successfully", result)
}
