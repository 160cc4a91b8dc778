package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	salesapp "github.com/hisaabos/backend/internal/application/sales"
)

// OrderHandler handles order lifecycle and courier booking API endpoints
type OrderHandler struct {
	BaseHandler
	orderService   *salesapp.OrderService
	bookingService *salesapp.BookingService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *salesapp.OrderService, bookingService *salesapp.BookingService) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		bookingService: bookingService,
	}
}

// Create books a new manual order
func (h *OrderHandler) Create(c *gin.Context) {
	var req salesapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID retrieves an order by its ID
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByInvoiceNumber retrieves an order by its invoice number
func (h *OrderHandler) GetByInvoiceNumber(c *gin.Context) {
	invoiceNumber := c.Param("invoice")
	if invoiceNumber == "" {
		h.BadRequest(c, "Invoice number is required")
		return
	}

	order, err := h.orderService.GetByInvoiceNumber(c.Request.Context(), invoiceNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// Update applies a partial update to an order's customer details
func (h *OrderHandler) Update(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req salesapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateStatus moves an order through its lifecycle
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req salesapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// Delete removes an order
func (h *OrderHandler) Delete(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), orderID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// List retrieves orders with filtering and pagination
func (h *OrderHandler) List(c *gin.Context) {
	var filter salesapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// riskCheckQuery carries the phone number to score
type riskCheckQuery struct {
	Phone string `form:"phone" binding:"required,pk_phone"`
}

// CheckRisk scores a phone number against the blacklist and return history
func (h *OrderHandler) CheckRisk(c *gin.Context) {
	var query riskCheckQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	assessment, err := h.orderService.CheckRisk(c.Request.Context(), query.Phone)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, assessment)
}

// BulkBook books a batch of pending orders with one courier
func (h *OrderHandler) BulkBook(c *gin.Context) {
	var req salesapp.BulkBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.bookingService.BulkBook(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// QuoteFactoring asks a courier for an early COD settlement quote
func (h *OrderHandler) QuoteFactoring(c *gin.Context) {
	var req salesapp.FactoringQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quote, err := h.bookingService.QuoteFactoring(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, quote)
}
