package sales

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hisaabos/backend/internal/domain/sales"
	"github.com/hisaabos/backend/internal/domain/shared"
	"github.com/hisaabos/backend/internal/domain/shared/valueobject"
	"github.com/hisaabos/backend/internal/domain/shipping"
)

// BookingService books manifests of orders with a courier and quotes
// factoring where the courier supports it.
type BookingService struct {
	orderRepo sales.OrderRepository
	couriers  shipping.Registry
}

// NewBookingService creates a new BookingService
func NewBookingService(orderRepo sales.OrderRepository, couriers shipping.Registry) *BookingService {
	return &BookingService{
		orderRepo: orderRepo,
		couriers:  couriers,
	}
}

// BulkBook books a batch of orders with one courier. A provider failure
// mutates nothing. On success, orders the provider acknowledged move to
// Confirmed with their tracking details; missing orders and orders not in
// Pending are reported as skipped.
func (s *BookingService) BulkBook(ctx context.Context, req BulkBookRequest) (*BulkBookResponse, error) {
	code := shipping.CourierCode(req.Courier)
	provider, err := s.couriers.Provider(code)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindByIDs(ctx, req.OrderIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*sales.Order, len(orders))
	for i := range orders {
		byID[orders[i].ID] = &orders[i]
	}

	response := &BulkBookResponse{
		Courier: string(code),
		Booked:  make([]OrderResponse, 0, len(req.OrderIDs)),
		Skipped: make([]SkippedOrder, 0),
	}

	eligible := make([]*sales.Order, 0, len(req.OrderIDs))
	bookingReqs := make([]shipping.BookingRequest, 0, len(req.OrderIDs))
	for _, orderID := range req.OrderIDs {
		order, ok := byID[orderID]
		if !ok {
			response.Skipped = append(response.Skipped, SkippedOrder{OrderID: orderID, Reason: "order not found"})
			continue
		}
		if order.Status != sales.OrderStatusPending {
			response.Skipped = append(response.Skipped, SkippedOrder{
				OrderID: orderID,
				Reason:  fmt.Sprintf("order is %s, only pending orders can be booked", order.Status),
			})
			continue
		}

		eligible = append(eligible, order)
		bookingReqs = append(bookingReqs, shipping.BookingRequest{
			OrderID:       order.ID,
			InvoiceNumber: order.InvoiceNumber,
			CustomerName:  order.CustomerName,
			CustomerPhone: order.CustomerPhone,
			Address:       order.CustomerAddress,
			City:          order.City,
			CODAmount:     order.Total,
			ItemSummary:   order.ItemSummary(),
			Pieces:        len(order.Items),
		})
	}

	if len(eligible) == 0 {
		return response, nil
	}

	results, err := provider.BulkBook(ctx, bookingReqs)
	if err != nil {
		return nil, err
	}

	resultByOrder := make(map[uuid.UUID]shipping.BookingResult, len(results))
	for _, result := range results {
		resultByOrder[result.OrderID] = result
	}

	for _, order := range eligible {
		result, ok := resultByOrder[order.ID]
		if !ok {
			response.Skipped = append(response.Skipped, SkippedOrder{
				OrderID: order.ID,
				Reason:  "courier did not return a booking for this order",
			})
			continue
		}

		if err := order.AssignCourier(string(code), result.TrackingID, result.ConsignmentNumber); err != nil {
			return nil, err
		}
		if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
			return nil, err
		}
		response.Booked = append(response.Booked, ToOrderResponse(order))
	}

	return response, nil
}

// QuoteFactoring prices early COD settlement of a batch of orders with a
// courier that offers factoring
func (s *BookingService) QuoteFactoring(ctx context.Context, req FactoringQuoteRequest) (*FactoringQuoteResponse, error) {
	code := shipping.CourierCode(req.Courier)
	provider, err := s.couriers.Provider(code)
	if err != nil {
		return nil, err
	}

	factorer, ok := provider.(shipping.Factorer)
	if !ok {
		return nil, shared.NewDomainError("FACTORING_UNSUPPORTED", fmt.Sprintf("%s does not offer COD factoring", code.DisplayName()))
	}

	orders, err := s.orderRepo.FindByIDs(ctx, req.OrderIDs)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, shared.ErrNotFound
	}

	gross := valueobject.ZeroPKR()
	for i := range orders {
		gross, err = gross.Add(valueobject.NewMoneyPKR(orders[i].Total))
		if err != nil {
			return nil, err
		}
	}

	quote, err := factorer.QuoteFactoring(ctx, gross)
	if err != nil {
		return nil, err
	}

	return &FactoringQuoteResponse{
		Courier: string(code),
		Orders:  len(orders),
		Quote:   *quote,
	}, nil
}
