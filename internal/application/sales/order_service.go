package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/catalog"
	"github.com/hisaabos/backend/internal/domain/khata"
	"github.com/hisaabos/backend/internal/domain/sales"
	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderService handles the order lifecycle: creation with stock decrement
// and risk scoring, status transitions with RTO side effects, and the
// generic partial update.
type OrderService struct {
	orderRepo     sales.OrderRepository
	productRepo   catalog.ProductRepository
	personRepo    khata.PersonRepository
	blacklistRepo khata.BlacklistRepository
	txScope       TransactionScope
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo sales.OrderRepository,
	productRepo catalog.ProductRepository,
	personRepo khata.PersonRepository,
	blacklistRepo khata.BlacklistRepository,
	txScope TransactionScope,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		personRepo:    personRepo,
		blacklistRepo: blacklistRepo,
		txScope:       txScope,
	}
}

// assessCustomerRisk scores a phone against the blacklist and the khata
// return history. A phone with no khata record scores as zero returns.
func assessCustomerRisk(
	ctx context.Context,
	blacklistRepo khata.BlacklistRepository,
	personRepo khata.PersonRepository,
	phone string,
) (sales.RiskAssessment, error) {
	blacklisted, err := blacklistRepo.IsBlacklisted(ctx, phone)
	if err != nil {
		return sales.RiskAssessment{}, err
	}
	if blacklisted {
		// Blacklist wins; the return history is irrelevant
		return sales.AssessRisk(true, 0), nil
	}

	returnCount := 0
	person, err := personRepo.FindByPhone(ctx, phone)
	if err == nil {
		returnCount = person.ReturnCount
	} else if !errors.Is(err, shared.ErrNotFound) {
		return sales.RiskAssessment{}, err
	}

	return sales.AssessRisk(blacklisted, returnCount), nil
}

// CheckRisk scores a customer phone without creating anything
func (s *OrderService) CheckRisk(ctx context.Context, phone string) (*sales.RiskAssessment, error) {
	assessment, err := assessCustomerRisk(ctx, s.blacklistRepo, s.personRepo, phone)
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}

// Create creates a new order: assigns the next invoice number, snapshots
// product name, price and landed cost onto the line items, decrements stock
// for catalog-linked lines, and flags the customer's risk.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	invoiceNumber, err := s.orderRepo.NextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	order, err := sales.NewOrder(invoiceNumber, req.CustomerName, req.CustomerPhone, req.CustomerAddress, req.City, sales.OrderSourceManual)
	if err != nil {
		return nil, err
	}

	touched := make([]*catalog.Product, 0, len(req.Items))
	for _, line := range req.Items {
		if line.ProductID != nil {
			product, err := s.productRepo.FindByID(ctx, *line.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return nil, shared.NewDomainError("UNKNOWN_PRODUCT", fmt.Sprintf("Product %s not found", *line.ProductID))
				}
				return nil, err
			}

			unitPrice := product.RetailPrice
			if line.UnitPrice != nil {
				unitPrice = *line.UnitPrice
			}

			if _, err := order.AddItem(product.ID, product.Name, line.Quantity, unitPrice, product.LandedCost); err != nil {
				return nil, err
			}

			product.AdjustStock(-line.Quantity)
			touched = append(touched, product)
			continue
		}

		if line.ProductName == "" || line.UnitPrice == nil {
			return nil, shared.NewDomainError("INVALID_ITEM", "Custom items need a product name and a unit price")
		}
		if _, err := order.AddItem(uuid.Nil, line.ProductName, line.Quantity, *line.UnitPrice, decimal.Zero); err != nil {
			return nil, err
		}
	}

	if req.TotalOverride != nil {
		if err := order.OverrideTotal(*req.TotalOverride); err != nil {
			return nil, err
		}
	}

	if req.ProjectID != nil {
		order.TagProject(req.ProjectID)
	}

	assessment, err := assessCustomerRisk(ctx, s.blacklistRepo, s.personRepo, req.CustomerPhone)
	if err != nil {
		return nil, err
	}
	order.FlagRisk(assessment)

	// Stock decrements and the order row land in one transaction; a failed
	// order save must not leave stock reduced.
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, product := range touched {
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return err
			}
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByInvoiceNumber retrieves an order by its invoice number
func (s *OrderService) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByInvoiceNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateStatus moves an order along the lifecycle, enforcing the transition
// table. A transition to Returned (RTO) increments the return count of the
// person matching the customer phone and puts the stock back.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	target := sales.OrderStatus(req.Status)
	wasReturned := order.IsReturned()
	if err := order.TransitionTo(target); err != nil {
		return nil, err
	}

	// RTO side effects and the status save share one transaction so a
	// concurrency conflict on the order leaves stock and khata untouched.
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if target == sales.OrderStatusReturned && !wasReturned {
			if _, err := repos.PersonRepo().IncrementReturnCount(ctx, order.CustomerPhone); err != nil {
				return err
			}
			if err := restoreStock(ctx, repos.ProductRepo(), order); err != nil {
				return err
			}
		}
		return repos.OrderRepo().SaveWithLock(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// restoreStock puts item quantities back into the catalog. Lines for
// products that have since been deleted are skipped.
func restoreStock(ctx context.Context, productRepo catalog.ProductRepository, order *sales.Order) error {
	for _, item := range order.Items {
		if item.ProductID == uuid.Nil {
			continue
		}
		product, err := productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return err
		}
		product.AdjustStock(item.Quantity)
		if err := productRepo.Save(ctx, product); err != nil {
			return err
		}
	}
	return nil
}

// Update applies a partial update to the order's customer fields and
// project tag
func (s *OrderService) Update(ctx context.Context, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	name, phone, address, city := "", "", "", ""
	if req.CustomerName != nil {
		name = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		phone = *req.CustomerPhone
	}
	if req.CustomerAddress != nil {
		address = *req.CustomerAddress
	}
	if req.City != nil {
		city = *req.City
	}
	order.UpdateCustomer(name, phone, address, city)

	if req.ClearProject {
		order.TagProject(nil)
	} else if req.ProjectID != nil {
		order.TagProject(req.ProjectID)
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Delete removes an order and its items
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	return s.orderRepo.Delete(ctx, orderID)
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderResponse], error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Status != "" {
		if !sales.OrderStatus(filter.Status).IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", filter.Status))
		}
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.City != "" {
		domainFilter.Filters["city"] = filter.City
	}
	if filter.Source != "" {
		domainFilter.Filters["source"] = filter.Source
	}
	if filter.IsHighRisk != nil {
		domainFilter.Filters["is_high_risk"] = *filter.IsHighRisk
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}

	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}
