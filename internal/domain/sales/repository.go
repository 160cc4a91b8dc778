package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByInvoiceNumber finds an order by its invoice number
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Order, error)

	// FindByIDs finds a batch of orders by id, preserving only existing ones
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Order, error)

	// FindAll finds orders with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByStatus finds orders in a given status
	FindByStatus(ctx context.Context, status OrderStatus, filter shared.Filter) ([]Order, error)

	// FindByProject finds orders tagged with a project
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]Order, error)

	// ExistsByExternalOrderID reports whether a platform order was already imported
	ExistsByExternalOrderID(ctx context.Context, externalOrderID string) (bool, error)

	// Save creates or updates an order together with its items
	Save(ctx context.Context, order *Order) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, order *Order) error

	// Delete removes an order and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// NextInvoiceNumber atomically assigns the next invoice number for the
	// current year, in the form INV-<year>-<zero-padded sequence>. Assignment
	// is serialized at the database so two concurrent clients can never
	// observe the same sequence value.
	NextInvoiceNumber(ctx context.Context) (string, error)
}
