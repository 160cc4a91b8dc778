package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseCategory buckets operating costs for the dashboard breakdown
type ExpenseCategory string

const (
	ExpenseCategoryRent      ExpenseCategory = "rent"
	ExpenseCategorySalaries  ExpenseCategory = "salaries"
	ExpenseCategoryUtilities ExpenseCategory = "utilities"
	ExpenseCategoryPackaging ExpenseCategory = "packaging"
	ExpenseCategoryTransport ExpenseCategory = "transport"
	ExpenseCategoryOther     ExpenseCategory = "other"
)

// IsValid checks if the expense category is recognized
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryRent, ExpenseCategorySalaries, ExpenseCategoryUtilities,
		ExpenseCategoryPackaging, ExpenseCategoryTransport, ExpenseCategoryOther:
		return true
	}
	return false
}

// Expense is a dated operating cost, optionally tagged to a project so it
// lands in that project's P&L instead of general overhead.
type Expense struct {
	shared.BaseEntity
	ExpenseDate time.Time `gorm:"index"`
	Category    ExpenseCategory
	Description string
	Amount      decimal.Decimal `gorm:"type:decimal(14,2)"`
	ProjectID   *uuid.UUID      `gorm:"index"`
}

// TableName returns the database table name
func (Expense) TableName() string {
	return "expenses"
}

// NewExpense creates a validated expense record
func NewExpense(expenseDate time.Time, category ExpenseCategory, description string, amount decimal.Decimal) (*Expense, error) {
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown expense category")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}

	return &Expense{
		BaseEntity:  shared.NewBaseEntity(),
		ExpenseDate: expenseDate,
		Category:    category,
		Description: description,
		Amount:      amount,
	}, nil
}

// TagProject attributes the expense to a project
func (e *Expense) TagProject(projectID uuid.UUID) {
	e.ProjectID = &projectID
	e.UpdatedAt = time.Now()
}
