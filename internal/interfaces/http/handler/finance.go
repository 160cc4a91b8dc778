package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	financeapp "github.com/hisaabos/backend/internal/application/finance"
)

// FinanceHandler handles expense and ad-spend API endpoints
type FinanceHandler struct {
	BaseHandler
	financeService *financeapp.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(financeService *financeapp.FinanceService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
	}
}

// CreateExpense records a business expense
func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	var req financeapp.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.financeService.CreateExpense(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, expense)
}

// ListExpenses retrieves expenses with pagination
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	var filter financeapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expenses, err := h.financeService.ListExpenses(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expenses)
}

// DeleteExpense removes an expense record
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID format")
		return
	}

	if err := h.financeService.DeleteExpense(c.Request.Context(), expenseID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateAdSpend records marketing spend on a platform
func (h *FinanceHandler) CreateAdSpend(c *gin.Context) {
	var req financeapp.CreateAdSpendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	spend, err := h.financeService.CreateAdSpend(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, spend)
}

// ListAdSpends retrieves ad spend records with pagination
func (h *FinanceHandler) ListAdSpends(c *gin.Context) {
	var filter financeapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	spends, err := h.financeService.ListAdSpends(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, spends)
}

// DeleteAdSpend removes an ad spend record
func (h *FinanceHandler) DeleteAdSpend(c *gin.Context) {
	spendID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ad spend ID format")
		return
	}

	if err := h.financeService.DeleteAdSpend(c.Request.Context(), spendID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// dateWindowQuery bounds a sum to an optional date window
type dateWindowQuery struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// TotalAdSpend sums ad spend over an optional date window
func (h *FinanceHandler) TotalAdSpend(c *gin.Context) {
	var query dateWindowQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	total, err := h.financeService.TotalAdSpend(c.Request.Context(), query.From, query.To)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, total)
}
