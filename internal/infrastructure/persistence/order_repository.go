package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/sales"
	"github.com/hisaabos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// invoiceSequence is the per-year counter backing invoice number assignment
type invoiceSequence struct {
	Year      int `gorm:"primaryKey"`
	LastValue int
}

func (invoiceSequence) TableName() string {
	return "invoice_sequences"
}

// GormOrderRepository implements sales.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Order, error) {
	var order sales.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByInvoiceNumber finds an order by its invoice number
func (r *GormOrderRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*sales.Order, error) {
	var order sales.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "invoice_number = ?", invoiceNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDs finds a batch of orders by id; missing ids are simply absent
// from the result
func (r *GormOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]sales.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var orders []sales.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id IN ?", ids).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindAll finds orders with filtering. Search matches invoice number,
// customer name and phone.
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Order, error) {
	var orders []sales.Order
	query := r.filteredQuery(ctx, filter)
	if err := applyFilter(query, filter, orderSortFields).
		Preload("Items").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds orders in a given status
func (r *GormOrderRepository) FindByStatus(ctx context.Context, status sales.OrderStatus, filter shared.Filter) ([]sales.Order, error) {
	var orders []sales.Order
	query := r.db.WithContext(ctx).Model(&sales.Order{}).Where("status = ?", status)
	if err := applyFilter(query, filter, orderSortFields).
		Preload("Items").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByProject finds orders tagged with a project
func (r *GormOrderRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]sales.Order, error) {
	var orders []sales.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ExistsByExternalOrderID reports whether a platform order was already
// imported
func (r *GormOrderRepository) ExistsByExternalOrderID(ctx context.Context, externalOrderID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&sales.Order{}).
		Where("external_order_id = ?", externalOrderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an order together with its items
func (r *GormOrderRepository) Save(ctx context.Context, order *sales.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(order.Items))
		for i, item := range order.Items {
			currentItemIDs[i] = item.ID
		}
		// Drop items removed from the aggregate, then save the rest
		if len(currentItemIDs) > 0 {
			if err := tx.Where("order_id = ? AND id NOT IN ?", order.ID, currentItemIDs).
				Delete(&sales.OrderItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("order_id = ?", order.ID).
				Delete(&sales.OrderItem{}).Error; err != nil {
				return err
			}
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := tx.Save(&order.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveWithLock saves with optimistic locking (version check). Items are
// not touched; item changes only happen while Pending via Save.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *sales.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := order.Version
		order.Version++
		order.UpdatedAt = time.Now()

		result := tx.Model(&sales.Order{}).
			Where("id = ? AND version = ?", order.ID, currentVersion).
			Select("*").Omit("id", "created_at").
			Updates(order)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			order.Version = currentVersion
			return shared.ErrConcurrencyConflict
		}
		return nil
	})
}

// Delete removes an order and its items
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&sales.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&sales.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filteredQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOrderRepository) filteredQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&sales.Order{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("invoice_number LIKE ? OR customer_name LIKE ? OR customer_phone LIKE ?",
			pattern, pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if city, ok := filter.Filters["city"]; ok {
		query = query.Where("city = ?", city)
	}
	if source, ok := filter.Filters["source"]; ok {
		query = query.Where("source = ?", source)
	}
	if highRisk, ok := filter.Filters["is_high_risk"]; ok {
		query = query.Where("is_high_risk = ?", highRisk)
	}
	return query
}

// NextInvoiceNumber atomically assigns the next invoice number for the
// current year. The upsert increments the per-year counter in one
// statement, so concurrent callers serialize on the sequence row and can
// never observe the same value.
func (r *GormOrderRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	var next int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO invoice_sequences (year, last_value) VALUES (?, 1)
		ON CONFLICT (year) DO UPDATE SET last_value = invoice_sequences.last_value + 1
		RETURNING last_value`, year).Scan(&next).Error
	if err != nil {
		return "", fmt.Errorf("assigning invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%d-%03d", year, next), nil
}
