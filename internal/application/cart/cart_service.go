package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopcore/backend/internal/domain/cart"
	"github.com/shopcore/backend/internal/domain/catalog"
	"github.com/shopcore/backend/internal/domain/identity"
	"github.com/shopcore/backend/internal/domain/shared"
)

// CartService handles cart business operations
// Every operation is scoped to the cart owner; admins may act on any cart
type CartService struct {
	cartRepo    cart.CartRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.CartRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// AddItem puts a product into the customer's cart
// Adding a product already in the cart accumulates its quantity
func (s *CartService) AddItem(ctx context.Context, actor identity.Actor, customerID uuid.UUID, req AddItemRequest) (*CartItemResponse, error) {
	if !actor.CanAccess(customerID) {
		return nil, shared.ErrForbidden
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.FindByCustomerAndProduct(ctx, customerID, req.ProductID)
	switch {
	case err == nil:
		if err := item.AddQuantity(req.Quantity); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		item, err = cart.NewCartItem(customerID, req.ProductID, req.Quantity)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := toCartItemResponse(item, product)
	return &response, nil
}

// UpdateItem replaces the quantity of the customer's cart line for a product
// A quantity of zero or below removes the line instead
func (s *CartService) UpdateItem(ctx context.Context, actor identity.Actor, customerID, productID uuid.UUID, req UpdateItemRequest) (*CartItemResponse, error) {
	if !actor.CanAccess(customerID) {
		return nil, shared.ErrForbidden
	}

	item, err := s.cartRepo.FindByCustomerAndProduct(ctx, customerID, productID)
	if err != nil {
		return nil, err
	}

	if req.Quantity <= 0 {
		if err := s.cartRepo.Delete(ctx, item.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := item.SetQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}

	response := toCartItemResponse(item, product)
	return &response, nil
}

// RemoveItem deletes the customer's cart line for a product
func (s *CartService) RemoveItem(ctx context.Context, actor identity.Actor, customerID, productID uuid.UUID) error {
	if !actor.CanAccess(customerID) {
		return shared.ErrForbidden
	}

	item, err := s.cartRepo.FindByCustomerAndProduct(ctx, customerID, productID)
	if err != nil {
		return err
	}

	return s.cartRepo.Delete(ctx, item.ID)
}

// Clear removes every item from the customer's cart
func (s *CartService) Clear(ctx context.Context, actor identity.Actor, customerID uuid.UUID) error {
	if !actor.CanAccess(customerID) {
		return shared.ErrForbidden
	}
	return s.cartRepo.DeleteByCustomer(ctx, customerID)
}

// Get returns the customer's cart enriched with current catalog data
// Items whose product has been removed from the catalog are dropped
// from the cart and from the response
func (s *CartService) Get(ctx context.Context, actor identity.Actor, customerID uuid.UUID) (*CartResponse, error) {
	if !actor.CanAccess(customerID) {
		return nil, shared.ErrForbidden
	}

	items, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	response := &CartResponse{
		CustomerID: customerID,
		Items:      make([]CartItemResponse, 0, len(items)),
		Total:      decimal.Zero,
	}

	for i := range items {
		product, ok := byID[items[i].ProductID]
		if !ok {
			// Product left the catalog since the item was added
			if err := s.cartRepo.Delete(ctx, items[i].ID); err != nil && !errors.Is(err, shared.ErrNotFound) {
				s.logger.Warn("failed to prune orphaned cart item",
					zap.String("item_id", items[i].ID.String()),
					zap.Error(err),
				)
			}
			continue
		}

		line := toCartItemResponse(&items[i], product)
		response.Items = append(response.Items, line)
		response.Total = response.Total.Add(line.Subtotal)
	}

	return response, nil
}

func toCartItemResponse(item *cart.CartItem, product *catalog.Product) CartItemResponse {
	return CartItemResponse{
		ID:          item.ID,
		ProductID:   item.ProductID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Quantity:    item.Quantity,
		Subtotal:    product.Price.Mul(decimal.NewFromInt(item.Quantity)),
		AddedAt:     item.CreatedAt,
	}
}
