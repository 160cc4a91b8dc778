package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/catalog"
	"github.com/hisaabos/backend/internal/domain/finance"
	"github.com/hisaabos/backend/internal/domain/sales"
	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

// MockExpenseRepository is a mock implementation of finance.ExpenseRepository
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Expense, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) FindByProject(ctx context.Context, projectID uuid.UUID) ([]finance.Expense, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]finance.Expense), args.Error(1)
}

func (m *MockExpenseRepository) SumByRange(ctx context.Context, dateRange finance.DateRange) (decimal.Decimal, error) {
	args := m.Called(ctx, dateRange)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) SumByCategory(ctx context.Context, dateRange finance.DateRange) (map[finance.ExpenseCategory]decimal.Decimal, error) {
	args := m.Called(ctx, dateRange)
	return args.Get(0).(map[finance.ExpenseCategory]decimal.Decimal), args.Error(1)
}

func (m *MockExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAdSpendRepository is a mock implementation of finance.AdSpendRepository
type MockAdSpendRepository struct {
	mock.Mock
}

func (m *MockAdSpendRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.AdSpend, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AdSpend), args.Error(1)
}

func (m *MockAdSpendRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.AdSpend, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]finance.AdSpend), args.Error(1)
}

func (m *MockAdSpendRepository) SumByRange(ctx context.Context, dateRange finance.DateRange) (decimal.Decimal, error) {
	args := m.Called(ctx, dateRange)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAdSpendRepository) Save(ctx context.Context, spend *finance.AdSpend) error {
	args := m.Called(ctx, spend)
	return args.Error(0)
}

func (m *MockAdSpendRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newDashboardFixture() (*DashboardService, *MockOrderRepository, *MockProductRepository, *MockExpenseRepository, *MockAdSpendRepository) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	expenseRepo := new(MockExpenseRepository)
	adSpendRepo := new(MockAdSpendRepository)
	service := NewDashboardService(orderRepo, productRepo, expenseRepo, adSpendRepo)
	return service, orderRepo, productRepo, expenseRepo, adSpendRepo
}

func dashOrder(t *testing.T, invoice, city string, status sales.OrderStatus, items ...sales.OrderItem) sales.Order {
	t.Helper()
	order, err := sales.NewOrder(invoice, "Ayesha Khan", "03001234567", "", city, sales.OrderSourceManual)
	require.NoError(t, err)
	for _, item := range items {
		_, err := order.AddItem(item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.UnitLandedCost)
		require.NoError(t, err)
	}

	if status == sales.OrderStatusReturned {
		require.NoError(t, order.TransitionTo(sales.OrderStatusConfirmed))
		require.NoError(t, order.TransitionTo(sales.OrderStatusReturned))
		return *order
	}
	for _, step := range []sales.OrderStatus{
		sales.OrderStatusConfirmed,
		sales.OrderStatusInTransit,
		sales.OrderStatusDelivered,
		sales.OrderStatusCashReceived,
	} {
		if order.Status == status {
			break
		}
		require.NoError(t, order.TransitionTo(step))
	}
	return *order
}

func TestDashboardService_Dashboard(t *testing.T) {
	service, orderRepo, _, expenseRepo, adSpendRepo := newDashboardFixture()

	kurta := sales.OrderItem{ProductID: uuid.New(), ProductName: "Cotton Kurta", Quantity: 2, UnitPrice: decimal.NewFromInt(999), UnitLandedCost: decimal.NewFromInt(525)}
	dupatta := sales.OrderItem{ProductID: uuid.New(), ProductName: "Dupatta", Quantity: 1, UnitPrice: decimal.NewFromInt(450), UnitLandedCost: decimal.NewFromInt(200)}

	orders := []sales.Order{
		dashOrder(t, "INV-2026-050", "Lahore", sales.OrderStatusCashReceived, kurta),   // 1998
		dashOrder(t, "INV-2026-051", "Karachi", sales.OrderStatusDelivered, dupatta),   // 450
		dashOrder(t, "INV-2026-052", "Lahore", sales.OrderStatusInTransit, kurta),      // not realized
		dashOrder(t, "INV-2026-053", "Multan", sales.OrderStatusReturned, dupatta),     // RTO
		dashOrder(t, "INV-2026-054", "Lahore", sales.OrderStatusPending, kurta),        // not realized
	}

	orderRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(orders, nil)
	expenseRepo.On("SumByRange", mock.Anything, finance.DateRange{}).Return(decimal.NewFromInt(300), nil)
	expenseRepo.On("SumByCategory", mock.Anything, finance.DateRange{}).Return(map[finance.ExpenseCategory]decimal.Decimal{
		finance.ExpenseCategoryRent: decimal.NewFromInt(300),
	}, nil)
	adSpendRepo.On("SumByRange", mock.Anything, finance.DateRange{}).Return(decimal.NewFromInt(198), nil)

	resp, err := service.Dashboard(context.Background(), DashboardFilter{})
	require.NoError(t, err)

	// Realized = Cash Received (1998) + Delivered (450)
	assert.True(t, decimal.NewFromInt(2448).Equal(resp.Revenue))
	// COGS = 2*525 + 1*200
	assert.True(t, decimal.NewFromInt(1250).Equal(resp.COGS))
	// Net = 2448 - 1250 - 300 - 198
	assert.True(t, decimal.NewFromInt(700).Equal(resp.NetProfit))
	assert.True(t, decimal.NewFromInt(1998).Equal(resp.CashInHand))
	// Delivered (450) + In Transit (1998)
	assert.True(t, decimal.NewFromInt(2448).Equal(resp.CashInTransit))
	assert.Equal(t, 5, resp.TotalOrders)
	assert.Equal(t, 1, resp.ReturnedOrders)
	assert.True(t, decimal.NewFromInt(20).Equal(resp.ReturnRatePercent))

	require.Len(t, resp.TopProducts, 2)
	assert.Equal(t, "Cotton Kurta", resp.TopProducts[0].ProductName)
	assert.Equal(t, 2, resp.TopProducts[0].Quantity)

	require.Len(t, resp.CitySales, 2)
	assert.Equal(t, "Lahore", resp.CitySales[0].City)
	assert.True(t, decimal.NewFromInt(1998).Equal(resp.CitySales[0].Revenue))

	assert.True(t, decimal.NewFromInt(300).Equal(resp.ExpenseBreakdown["rent"]))
}

func TestDashboardService_Dashboard_CogsFallback(t *testing.T) {
	service, orderRepo, productRepo, expenseRepo, adSpendRepo := newDashboardFixture()

	product, err := catalog.NewProduct("Cotton Kurta", decimal.NewFromInt(450), decimal.NewFromInt(50), decimal.NewFromInt(25), decimal.NewFromInt(999), 10, 2)
	require.NoError(t, err)
	deleted := uuid.New()

	// Lines imported before cost tracking carry a zero snapshot
	legacy := sales.OrderItem{ProductID: product.ID, ProductName: "Cotton Kurta", Quantity: 2, UnitPrice: decimal.NewFromInt(999), UnitLandedCost: decimal.Zero}
	orphan := sales.OrderItem{ProductID: deleted, ProductName: "Old Dupatta", Quantity: 1, UnitPrice: decimal.NewFromInt(450), UnitLandedCost: decimal.Zero}

	orders := []sales.Order{
		dashOrder(t, "INV-2026-055", "Lahore", sales.OrderStatusCashReceived, legacy, orphan),
	}

	orderRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(orders, nil)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("FindByID", mock.Anything, deleted).Return(nil, shared.ErrNotFound)
	expenseRepo.On("SumByRange", mock.Anything, finance.DateRange{}).Return(decimal.Zero, nil)
	expenseRepo.On("SumByCategory", mock.Anything, finance.DateRange{}).Return(map[finance.ExpenseCategory]decimal.Decimal{}, nil)
	adSpendRepo.On("SumByRange", mock.Anything, finance.DateRange{}).Return(decimal.Zero, nil)

	resp, err := service.Dashboard(context.Background(), DashboardFilter{})
	require.NoError(t, err)

	// Catalog fallback for the known product, zero for the deleted one
	assert.True(t, decimal.NewFromInt(1050).Equal(resp.COGS))
}

func TestDashboardService_Dashboard_EmptyBook(t *testing.T) {
	service, orderRepo, _, expenseRepo, adSpendRepo := newDashboardFixture()

	orderRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return([]sales.Order{}, nil)
	expenseRepo.On("SumByRange", mock.Anything, finance.DateRange{}).Return(decimal.Zero, nil)
	expenseRepo.On("SumByCategory", mock.Anything, finance.DateRange{}).Return(map[finance.ExpenseCategory]decimal.Decimal{}, nil)
	adSpendRepo.On("SumByRange", mock.Anything, finance.DateRange{}).Return(decimal.Zero, nil)

	resp, err := service.Dashboard(context.Background(), DashboardFilter{})
	require.NoError(t, err)

	assert.True(t, resp.ReturnRatePercent.IsZero(), "no orders means a zero rate, not a division error")
	assert.Empty(t, resp.TopProducts)
	assert.Empty(t, resp.CitySales)
}

func TestDashboardService_DateWindow(t *testing.T) {
	service, orderRepo, _, expenseRepo, adSpendRepo := newDashboardFixture()

	inside := dashOrder(t, "INV-2026-056", "Lahore", sales.OrderStatusCashReceived)
	require.NoError(t, inside.OverrideTotal(decimal.NewFromInt(1000)))
	outside := dashOrder(t, "INV-2026-057", "Lahore", sales.OrderStatusCashReceived)
	require.NoError(t, outside.OverrideTotal(decimal.NewFromInt(9999)))
	outside.CreatedAt = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	orderRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return([]sales.Order{inside, outside}, nil)
	expenseRepo.On("SumByRange", mock.Anything, mock.AnythingOfType("finance.DateRange")).Return(decimal.Zero, nil)
	expenseRepo.On("SumByCategory", mock.Anything, mock.AnythingOfType("finance.DateRange")).Return(map[finance.ExpenseCategory]decimal.Decimal{}, nil)
	adSpendRepo.On("SumByRange", mock.Anything, mock.AnythingOfType("finance.DateRange")).Return(decimal.Zero, nil)

	resp, err := service.Dashboard(context.Background(), DashboardFilter{From: &from})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(1000).Equal(resp.Revenue), "the 2020 order falls outside the window")
	assert.Equal(t, 1, resp.TotalOrders)
}
