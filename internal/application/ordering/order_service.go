package ordering

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopcore/backend/internal/domain/cart"
	"github.com/shopcore/backend/internal/domain/catalog"
	"github.com/shopcore/backend/internal/domain/identity"
	"github.com/shopcore/backend/internal/domain/inventory"
	"github.com/shopcore/backend/internal/domain/ordering"
	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

// OrderService drives checkout and the order lifecycle
//
// The order row and its inventory reservation form the transactional
// unit of a checkout: the cart is cleared best-effort afterwards, and
// a failed order save releases the reservation.
type OrderService struct {
	orderRepo      ordering.OrderRepository
	productRepo    catalog.ProductRepository
	cartRepo       cart.CartRepository
	customerRepo   identity.CustomerRepository
	ledger         inventory.Ledger
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo ordering.OrderRepository,
	productRepo catalog.ProductRepository,
	cartRepo cart.CartRepository,
	customerRepo identity.CustomerRepository,
	ledger inventory.Ledger,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		cartRepo:     cartRepo,
		customerRepo: customerRepo,
		ledger:       ledger,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// PlaceOrder runs a checkout: it resolves the requested products,
// reserves their stock atomically, persists the order with price and
// name snapshots, then clears the customer's cart
func (s *OrderService) PlaceOrder(ctx context.Context, actor identity.Actor, req PlaceOrderRequest) (*OrderResponse, error) {
	if !actor.CanAccess(req.CustomerID) {
		return nil, shared.ErrForbidden
	}
	if len(req.Items) == 0 {
		return nil, shared.ErrEmptyOrder
	}

	// Requests may repeat a product; fold duplicates into one line
	productIDs := make([]uuid.UUID, 0, len(req.Items))
	quantities := make(map[uuid.UUID]int64, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be at least 1")
		}
		if _, seen := quantities[item.ProductID]; !seen {
			productIDs = append(productIDs, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}

	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for _, id := range productIDs {
		if _, ok := byID[id]; !ok {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found: "+id.String())
		}
	}

	order, err := ordering.NewOrder(req.CustomerID, ordering.PaymentMethod(req.PaymentMethod), req.Note)
	if err != nil {
		return nil, err
	}
	for _, id := range productIDs {
		product := byID[id]
		unitPrice := valueobject.NewMoneyUSD(product.Price)
		if err := order.AddLine(product.ID, product.Name, quantities[id], unitPrice); err != nil {
			return nil, err
		}
	}
	if err := order.Place(); err != nil {
		return nil, err
	}

	reservations := make([]inventory.Reservation, 0, len(productIDs))
	for _, id := range productIDs {
		reservations = append(reservations, inventory.Reservation{
			ProductID: id,
			Quantity:  quantities[id],
		})
	}

	if err := s.ledger.Reserve(ctx, reservations); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		// Give the reserved stock back before surfacing the failure
		if releaseErr := s.ledger.Release(ctx, reservations); releaseErr != nil {
			s.logger.Error("failed to release reservation after order save failure",
				zap.String("order_id", order.ID.String()),
				zap.Error(releaseErr),
			)
		}
		return nil, err
	}

	// The order stands on its own; a stale cart is only an annoyance
	if err := s.cartRepo.DeleteByCustomer(ctx, req.CustomerID); err != nil {
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("customer_id", req.CustomerID.String()),
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateStatus moves an order to the target status (admin only)
// Cancelling an order releases its reserved inventory
func (s *OrderService) UpdateStatus(ctx context.Context, actor identity.Actor, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	target := ordering.OrderStatus(req.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown status: "+req.Status)
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.IsCancellation(target) {
		err = order.Cancel(req.Reason)
	} else {
		err = order.TransitionTo(target)
	}
	if err != nil {
		return nil, err
	}

	// Optimistic locking makes the transition win at most once, so a
	// cancellation releases stock at most once as well
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	if order.IsCancellation(target) {
		reservations := make([]inventory.Reservation, 0, len(order.Lines))
		for _, line := range order.Lines {
			reservations = append(reservations, inventory.Reservation{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			})
		}
		if err := s.ledger.Release(ctx, reservations); err != nil {
			s.logger.Error("failed to release inventory for cancelled order",
				zap.String("order_id", order.ID.String()),
				zap.Error(err),
			)
		}
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Get retrieves an order by ID (owner or admin)
func (s *OrderService) Get(ctx context.Context, actor identity.Actor, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(order.CustomerID) {
		return nil, shared.ErrForbidden
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders newest-first: all of them for admins, the
// actor's own orders otherwise
func (s *OrderService) List(ctx context.Context, actor identity.Actor, filter OrderListFilter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	repoFilter := shared.DefaultFilter()
	repoFilter.Page = filter.Page
	repoFilter.PageSize = filter.PageSize
	if filter.Status != "" {
		repoFilter.Filters["status"] = filter.Status
	}

	var (
		orders []ordering.Order
		total  int64
		err    error
	)
	if actor.IsAdmin() {
		orders, err = s.orderRepo.FindAll(ctx, repoFilter)
		if err != nil {
			return nil, 0, err
		}
		total, err = s.orderRepo.Count(ctx, repoFilter)
	} else {
		orders, err = s.orderRepo.FindByCustomer(ctx, actor.CustomerID, repoFilter)
		if err != nil {
			return nil, 0, err
		}
		total, err = s.orderRepo.CountByCustomer(ctx, actor.CustomerID, repoFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses, total, nil
}

// GetDetailed composes an order with its owning customer
// A failing customer lookup never fails the read: the order is
// returned without the customer section and a warning is logged
func (s *OrderService) GetDetailed(ctx context.Context, actor identity.Actor, orderID uuid.UUID) (*OrderDetailResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(order.CustomerID) {
		return nil, shared.ErrForbidden
	}

	detail := &OrderDetailResponse{
		Order: ToOrderResponse(order),
	}

	customer, err := s.customerRepo.FindByID(ctx, order.CustomerID)
	if err != nil {
		s.logger.Warn("failed to load customer for order detail",
			zap.String("order_id", order.ID.String()),
			zap.String("customer_id", order.CustomerID.String()),
			zap.Error(err),
		)
		return detail, nil
	}
	detail.Customer = toCustomerSummary(customer)

	return detail, nil
}

func (s *OrderService) publishEvents(ctx context.Context, order *ordering.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	order.ClearDomainEvents()
}
