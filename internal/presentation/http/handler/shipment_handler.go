package handler

import (
	"time"

	"github.com/freightbooks/freightbooks-api/internal/application/service"
	"github.com/freightbooks/freightbooks-api/internal/domain/enum"
	"github.com/freightbooks/freightbooks-api/internal/presentation/http/dto/response"
	"github.com/freightbooks/freightbooks-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ShipmentHandler handles shipment-related HTTP requests
type ShipmentHandler struct {
	shipmentService *service.ShipmentService
}

// NewShipmentHandler creates a new shipment handler
func NewShipmentHandler(shipmentService *service.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

// CreateShipmentRequest represents the create shipment request body
type CreateShipmentRequest struct {
	ProNumber    string  `json:"pro_number" binding:"required,max=50"`
	Consignee    string  `json:"consignee" binding:"required,max=255"`
	Origin       string  `json:"origin" binding:"max=255"`
	Destination  string  `json:"destination" binding:"max=255"`
	Status       int     `json:"status"`
	DeliveryDate *string `json:"delivery_date"`
	Note         *string `json:"note"`
}

// UpdateShipmentRequest represents the update shipment request body
type UpdateShipmentRequest struct {
	Consignee    *string `json:"consignee"`
	Origin       *string `json:"origin"`
	Destination  *string `json:"destination"`
	Status       *int    `json:"status"`
	DeliveryDate *string `json:"delivery_date"`
	Note         *string `json:"note"`
}

// List handles listing shipments
// @Summary List Shipments
// @Description Get all shipments with pagination and filtering
// @Tags shipments
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /shipments [get]
func (h *ShipmentHandler) List(c *gin.Context) {
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

	var status *enum.ShipmentStatus
	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.ShipmentStatus(parsed)
			status = &st
		}
	}

	result, err := h.shipmentService.ListShipments(c.Request.Context(), &service.ListShipmentsInput{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:    c.Query("search"),
		Status:    status,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Shipments retrieved successfully", result)
}

// Get handles getting a single shipment
// @Summary Get Shipment
// @Description Get a shipment by ID
// @Tags shipments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Shipment ID"
// @Success 200 {object} response.APIResponse
// @Router /shipments/{id} [get]
func (h *ShipmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shipment ID")
		return
	}

	shipment, err := h.shipmentService.GetShipment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shipment retrieved successfully", shipment)
}

// Create handles creating a shipment
// @Summary Create Shipment
// @Description Register a new shipment under a PRO number
// @Tags shipments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateShipmentRequest true "Shipment data"
// @Success 201 {object} response.APIResponse
// @Router /shipments [post]
func (h *ShipmentHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	deliveryDate, ok := parseDeliveryDate(c, req.DeliveryDate)
	if !ok {
		return
	}

	shipment, err := h.shipmentService.CreateShipment(c.Request.Context(), &service.CreateShipmentInput{
		Actor:        service.Actor{ID: *userID, Email: GetUserEmail(c)},
		ProNumber:    req.ProNumber,
		Consignee:    req.Consignee,
		Origin:       req.Origin,
		Destination:  req.Destination,
		Status:       enum.ShipmentStatus(req.Status),
		DeliveryDate: deliveryDate,
		Note:         req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shipment created successfully", shipment)
}

// Update handles updating a shipment
// @Summary Update Shipment
// @Description Update an existing shipment; the PRO number cannot change
// @Tags shipments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Shipment ID"
// @Param request body UpdateShipmentRequest true "Shipment data"
// @Success 200 {object} response.APIResponse
// @Router /shipments/{id} [put]
func (h *ShipmentHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shipment ID")
		return
	}

	var req UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	deliveryDate, ok := parseDeliveryDate(c, req.DeliveryDate)
	if !ok {
		return
	}

	var status *enum.ShipmentStatus
	if req.Status != nil {
		st := enum.ShipmentStatus(*req.Status)
		status = &st
	}

	shipment, err := h.shipmentService.UpdateShipment(c.Request.Context(), &service.UpdateShipmentInput{
		Actor:        service.Actor{ID: *userID, Email: GetUserEmail(c)},
		ID:           id,
		Consignee:    req.Consignee,
		Origin:       req.Origin,
		Destination:  req.Destination,
		Status:       status,
		DeliveryDate: deliveryDate,
		Note:         req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shipment updated successfully", shipment)
}

// Delete handles deleting a shipment
// @Summary Delete Shipment
// @Description Delete a shipment; fails while receipts are on file
// @Tags shipments
// @Security BearerAuth
// @Param id path string true "Shipment ID"
// @Success 204
// @Router /shipments/{id} [delete]
func (h *ShipmentHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shipment ID")
		return
	}

	actor := service.Actor{ID: *userID, Email: GetUserEmail(c)}
	if err := h.shipmentService.DeleteShipment(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// parseDeliveryDate parses an optional YYYY-MM-DD date, writing the error
// response itself when the value is malformed.
func parseDeliveryDate(c *gin.Context, raw *string) (*time.Time, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		response.BadRequest(c, "Invalid delivery date format. Use YYYY-MM-DD")
		return nil, false
	}
	return &parsed, true
}
