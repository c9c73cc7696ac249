package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/identity"
	"github.com/tornado/portal/internal/domain/ordering"
	"github.com/tornado/portal/internal/domain/quoting"
	"github.com/tornado/portal/internal/domain/shared"
)

// OrderService converts approved quotes into orders and drives them through
// the fulfilment pipeline
type OrderService struct {
	orderRepo ordering.OrderRepository
	quoteRepo quoting.QuoteRepository
	events    shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo ordering.OrderRepository, quoteRepo quoting.QuoteRepository, events shared.EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		quoteRepo: quoteRepo,
		events:    events,
	}
}

// ConvertQuote creates a pending order from an approved quote. A quote can be
// converted at most once; the repository's unique index on quote_id backs
// this against racing conversions.
func (s *OrderService) ConvertQuote(ctx context.Context, actor identity.Actor, req ConvertQuoteRequest) (*OrderResponse, error) {
	if err := actor.RequirePermission(identity.PermOrderManage); err != nil {
		return nil, err
	}

	quote, err := s.quoteRepo.FindByID(ctx, req.QuoteID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessPartner(quote.PartnerID) {
		return nil, shared.ErrNotFound
	}

	exists, err := s.orderRepo.ExistsByQuote(ctx, quote.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrQuoteConverted
	}

	order, err := ordering.NewOrderFromQuote(quote, ordering.NewOrderNumber(time.Now()), actor.UserID)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		order.SetNotes(req.Notes)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publish(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order under the partner isolation rules
func (s *OrderService) GetByID(ctx context.Context, actor identity.Actor, orderID uuid.UUID) (*OrderResponse, error) {
	if err := actor.RequirePermission(identity.PermOrderRead); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessPartner(order.PartnerID) {
		return nil, shared.ErrNotFound
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByQuote retrieves the order created from a quote, if any
func (s *OrderService) GetByQuote(ctx context.Context, actor identity.Actor, quoteID uuid.UUID) (*OrderResponse, error) {
	if err := actor.RequirePermission(identity.PermOrderRead); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessPartner(order.PartnerID) {
		return nil, shared.ErrNotFound
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders: everything for privileged actors, the own partner's
// orders for partner actors
func (s *OrderService) List(ctx context.Context, actor identity.Actor, filter shared.Filter) ([]OrderResponse, error) {
	if err := actor.RequirePermission(identity.PermOrderRead); err != nil {
		return nil, err
	}

	if actor.IsPrivileged() {
		orders, err := s.orderRepo.FindAllActive(ctx, filter)
		if err != nil {
			return nil, err
		}
		return ToOrderListResponses(orders), nil
	}

	partnerID, err := actor.ScopedPartnerID(nil)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindByPartner(ctx, partnerID, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderListResponses(orders), nil
}

// UpdateStatus advances the order to the target status, or cancels it. The
// pipeline is forward-only; every change appends a history row.
func (s *OrderService) UpdateStatus(ctx context.Context, actor identity.Actor, orderID uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	if err := actor.RequirePermission(identity.PermOrderManage); err != nil {
		return nil, err
	}

	target, err := ordering.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessPartner(order.PartnerID) {
		return nil, shared.ErrNotFound
	}
	if !order.IsActive {
		return nil, shared.NewDomainError("INVALID_STATE", "Order is not active")
	}

	if target == ordering.OrderStatusCancelled {
		err = order.Cancel(req.Notes, actor.UserID)
	} else {
		err = order.TransitionTo(target, req.Notes, actor.UserID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publish(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// publish flushes the aggregate's buffered events. Event delivery is best
// effort; the write has already committed.
func (s *OrderService) publish(ctx context.Context, order *ordering.Order) {
	events := order.GetDomainEvents()
	if len(events) > 0 {
		_ = s.events.Publish(ctx, events...)
	}
	order.ClearDomainEvents()
}
