package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/catalog"
	"github.com/hisaabos/backend/internal/domain/khata"
	"github.com/hisaabos/backend/internal/domain/sales"
	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of sales.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*sales.Order, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]sales.Order, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]sales.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]sales.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status sales.OrderStatus, filter shared.Filter) ([]sales.Order, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]sales.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]sales.Order, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]sales.Order), args.Error(1)
}

func (m *MockOrderRepository) ExistsByExternalOrderID(ctx context.Context, externalOrderID string) (bool, error) {
	args := m.Called(ctx, externalOrderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *sales.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, order *sales.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockPersonRepository is a mock implementation of khata.PersonRepository
type MockPersonRepository struct {
	mock.Mock
}

func (m *MockPersonRepository) FindByID(ctx context.Context, id uuid.UUID) (*khata.Person, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*khata.Person), args.Error(1)
}

func (m *MockPersonRepository) FindByPhone(ctx context.Context, phone string) (*khata.Person, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*khata.Person), args.Error(1)
}

func (m *MockPersonRepository) FindAll(ctx context.Context, filter shared.Filter) ([]khata.Person, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]khata.Person), args.Error(1)
}

func (m *MockPersonRepository) Save(ctx context.Context, person *khata.Person) error {
	args := m.Called(ctx, person)
	return args.Error(0)
}

func (m *MockPersonRepository) AppendLedgerEntry(ctx context.Context, personID uuid.UUID, entryDate time.Time, description string, debit, credit decimal.Decimal) (*khata.LedgerEntry, error) {
	args := m.Called(ctx, personID, entryDate, description, debit, credit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*khata.LedgerEntry), args.Error(1)
}

func (m *MockPersonRepository) IncrementReturnCount(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockPersonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPersonRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockBlacklistRepository is a mock implementation of khata.BlacklistRepository
type MockBlacklistRepository struct {
	mock.Mock
}

func (m *MockBlacklistRepository) IsBlacklisted(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlacklistRepository) Add(ctx context.Context, entry *khata.BlacklistEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockBlacklistRepository) Remove(ctx context.Context, phone string) error {
	args := m.Called(ctx, phone)
	return args.Error(0)
}

func (m *MockBlacklistRepository) FindAll(ctx context.Context) ([]khata.BlacklistEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]khata.BlacklistEntry), args.Error(1)
}
