package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest represents a request to record an operating cost
type CreateExpenseRequest struct {
	ExpenseDate time.Time       `json:"expense_date"`
	Category    string          `json:"category" binding:"required,oneof=rent salaries utilities packaging transport other"`
	Description string          `json:"description" binding:"required,min=1,max=500"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ProjectID   *uuid.UUID      `json:"project_id"`
}

// CreateAdSpendRequest represents a request to record marketing spend
type CreateAdSpendRequest struct {
	SpendDate time.Time       `json:"spend_date"`
	Platform  string          `json:"platform" binding:"required,oneof=facebook tiktok google other"`
	Notes     string          `json:"notes" binding:"max=200"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	ExpenseDate time.Time       `json:"expense_date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ProjectID   *uuid.UUID      `json:"project_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// AdSpendResponse represents an ad spend record in API responses
type AdSpendResponse struct {
	ID        uuid.UUID       `json:"id"`
	SpendDate time.Time       `json:"spend_date"`
	Platform  string          `json:"platform"`
	Notes     string          `json:"notes,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// ListFilter represents filter options for finance lists
type ListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// TotalResponse carries a summed amount over an optional date window
type TotalResponse struct {
	From  *time.Time      `json:"from,omitempty"`
	To    *time.Time      `json:"to,omitempty"`
	Total decimal.Decimal `json:"total"`
}

// ToExpenseResponse converts a domain Expense to ExpenseResponse
func ToExpenseResponse(e *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		ExpenseDate: e.ExpenseDate,
		Category:    string(e.Category),
		Description: e.Description,
		Amount:      e.Amount,
		ProjectID:   e.ProjectID,
		CreatedAt:   e.CreatedAt,
	}
}

// ToAdSpendResponse converts a domain AdSpend to AdSpendResponse
func ToAdSpendResponse(a *finance.AdSpend) AdSpendResponse {
	return AdSpendResponse{
		ID:        a.ID,
		SpendDate: a.SpendDate,
		Platform:  string(a.Platform),
		Notes:     a.Notes,
		Amount:    a.Amount,
		CreatedAt: a.CreatedAt,
	}
}
