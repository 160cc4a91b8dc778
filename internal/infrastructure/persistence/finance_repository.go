package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/finance"
	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var expense finance.Expense
	if err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// FindAll finds expenses with filtering
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Expense, error) {
	var expenses []finance.Expense
	query := r.db.WithContext(ctx).Model(&finance.Expense{})
	if filter.Search != "" {
		query = query.Where("description LIKE ?", "%"+filter.Search+"%")
	}
	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}
	if err := applyFilter(query, filter, expenseSortFields).Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// FindByProject finds expenses tagged with a project
func (r *GormExpenseRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]finance.Expense, error) {
	var expenses []finance.Expense
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("expense_date DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// SumByRange totals expense amounts inside the window
func (r *GormExpenseRepository) SumByRange(ctx context.Context, dateRange finance.DateRange) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := r.db.WithContext(ctx).Model(&finance.Expense{}).
		Select("COALESCE(SUM(amount), 0)")
	query = applyDateRange(query, "expense_date", dateRange)
	if err := query.Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// SumByCategory totals expense amounts per category inside the window
func (r *GormExpenseRepository) SumByCategory(ctx context.Context, dateRange finance.DateRange) (map[finance.ExpenseCategory]decimal.Decimal, error) {
	var rows []struct {
		Category finance.ExpenseCategory
		Total    decimal.Decimal
	}
	query := r.db.WithContext(ctx).Model(&finance.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Group("category")
	query = applyDateRange(query, "expense_date", dateRange)
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[finance.ExpenseCategory]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.Category] = row.Total
	}
	return totals, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

// Delete removes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.Expense{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormAdSpendRepository implements finance.AdSpendRepository using GORM
type GormAdSpendRepository struct {
	db *gorm.DB
}

// NewGormAdSpendRepository creates a new GormAdSpendRepository
func NewGormAdSpendRepository(db *gorm.DB) *GormAdSpendRepository {
	return &GormAdSpendRepository{db: db}
}

// FindByID finds an ad spend record by its ID
func (r *GormAdSpendRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AdSpend, error) {
	var spend finance.AdSpend
	if err := r.db.WithContext(ctx).First(&spend, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &spend, nil
}

// FindAll finds ad spend records with filtering
func (r *GormAdSpendRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.AdSpend, error) {
	var spends []finance.AdSpend
	query := r.db.WithContext(ctx).Model(&finance.AdSpend{})
	if filter.Search != "" {
		query = query.Where("notes LIKE ?", "%"+filter.Search+"%")
	}
	if platform, ok := filter.Filters["platform"]; ok {
		query = query.Where("platform = ?", platform)
	}
	if err := applyFilter(query, filter, adSpendSortFields).Find(&spends).Error; err != nil {
		return nil, err
	}
	return spends, nil
}

// SumByRange totals ad spend inside the window
func (r *GormAdSpendRepository) SumByRange(ctx context.Context, dateRange finance.DateRange) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := r.db.WithContext(ctx).Model(&finance.AdSpend{}).
		Select("COALESCE(SUM(amount), 0)")
	query = applyDateRange(query, "spend_date", dateRange)
	if err := query.Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Save creates or updates an ad spend record
func (r *GormAdSpendRepository) Save(ctx context.Context, spend *finance.AdSpend) error {
	return r.db.WithContext(ctx).Save(spend).Error
}

// Delete removes an ad spend record
func (r *GormAdSpendRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.AdSpend{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyDateRange bounds a query by the named date column; zero bounds are
// open-ended
func applyDateRange(query *gorm.DB, column string, dateRange finance.DateRange) *gorm.DB {
	if !dateRange.From.IsZero() {
		query = query.Where(column+" >= ?", dateRange.From)
	}
	if !dateRange.To.IsZero() {
		query = query.Where(column+" <= ?", dateRange.To)
	}
	return query
}
