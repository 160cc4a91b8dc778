package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DateRange bounds a reporting window. Zero values mean unbounded.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ExpenseRepository defines the interface for expense persistence
type ExpenseRepository interface {
	// FindByID finds an expense by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)

	// FindAll finds expenses with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Expense, error)

	// FindByProject finds expenses tagged with a project
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]Expense, error)

	// SumByRange totals expense amounts inside the window
	SumByRange(ctx context.Context, dateRange DateRange) (decimal.Decimal, error)

	// SumByCategory totals expense amounts per category inside the window
	SumByCategory(ctx context.Context, dateRange DateRange) (map[ExpenseCategory]decimal.Decimal, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *Expense) error

	// Delete removes an expense
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdSpendRepository defines the interface for ad spend persistence
type AdSpendRepository interface {
	// FindByID finds an ad spend record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*AdSpend, error)

	// FindAll finds ad spend records with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]AdSpend, error)

	// SumByRange totals ad spend inside the window
	SumByRange(ctx context.Context, dateRange DateRange) (decimal.Decimal, error)

	// Save creates or updates an ad spend record
	Save(ctx context.Context, spend *AdSpend) error

	// Delete removes an ad spend record
	Delete(ctx context.Context, id uuid.UUID) error
}
