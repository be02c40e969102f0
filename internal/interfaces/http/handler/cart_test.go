package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cartapp "github.com/shopcore/backend/internal/application/cart"
	"github.com/shopcore/backend/internal/domain/cart"
	"github.com/shopcore/backend/internal/domain/catalog"
	"github.com/shopcore/backend/internal/domain/identity"
	"github.com/shopcore/backend/internal/domain/shared"
)

func setupCartRouter(handler *CartHandler, actorID uuid.UUID, role identity.Role) *gin.Engine {
	r := gin.New()
	r.Use(withActor(actorID, role))
	handler.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func newStoredCartItem(t *testing.T, customerID, productID uuid.UUID, quantity int64) *cart.CartItem {
	t.Helper()
	item, err := cart.NewCartItem(customerID, productID, quantity)
	require.NoError(t, err)
	return item
}

func TestCartHandler_Get(t *testing.T) {
	customerID := uuid.New()
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)

	keyboard := newStoredProduct(t, "Keyboard", "59.90", 10)
	item := newStoredCartItem(t, customerID, keyboard.ID, 2)
	cartRepo.On("FindByCustomer", mock.Anything, customerID).Return([]cart.CartItem{*item}, nil)
	productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{keyboard.ID}).Return([]catalog.Product{*keyboard}, nil)

	handler := NewCartHandler(cartapp.NewCartService(cartRepo, productRepo, zap.NewNop()))
	router := setupCartRouter(handler, customerID, identity.RoleCustomer)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/"+customerID.String()+"/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, customerID.String(), data["customer_id"])
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, "Keyboard", line["product_name"])
	assert.Equal(t, "119.8", line["subtotal"])
	assert.Equal(t, "119.8", data["total"])
}

func TestCartHandler_Get_OtherCustomerForbidden(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)

	handler := NewCartHandler(cartapp.NewCartService(cartRepo, productRepo, zap.NewNop()))
	router := setupCartRouter(handler, uuid.New(), identity.RoleCustomer)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/"+uuid.New().String()+"/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	cartRepo.AssertNotCalled(t, "FindByCustomer", mock.Anything, mock.Anything)
}

func TestCartHandler_AddItem(t *testing.T) {
	customerID := uuid.New()
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)

	keyboard := newStoredProduct(t, "Keyboard", "59.90", 10)
	productRepo.On("FindByID", mock.Anything, keyboard.ID).Return(keyboard, nil)
	cartRepo.On("FindByCustomerAndProduct", mock.Anything, customerID, keyboard.ID).Return(nil, shared.ErrNotFound)
	cartRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	handler := NewCartHandler(cartapp.NewCartService(cartRepo, productRepo, zap.NewNop()))
	router := setupCartRouter(handler, customerID, identity.RoleCustomer)

	body, _ := json.Marshal(cartapp.AddItemRequest{ProductID: keyboard.ID, Quantity: 2})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers/"+customerID.String()+"/cart", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, keyboard.ID.String(), data["product_id"])
	assert.Equal(t, float64(2), data["quantity"])
}

func TestCartHandler_AddItem_ZeroQuantityRejected(t *testing.T) {
	customerID := uuid.New()
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)

	handler := NewCartHandler(cartapp.NewCartService(cartRepo, productRepo, zap.NewNop()))
	router := setupCartRouter(handler, customerID, identity.RoleCustomer)

	body, _ := json.Marshal(map[string]interface{}{"product_id": uuid.New(), "quantity": 0})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers/"+customerID.String()+"/cart", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartHandler_UpdateItem_ReplacesQuantity(t *testing.T) {
	customerID := uuid.New()
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)

	keyboard := newStoredProduct(t, "Keyboard", "59.90", 10)
	item := newStoredCartItem(t, customerID, keyboard.ID, 2)
	cartRepo.On("FindByCustomerAndProduct", mock.Anything, customerID, keyboard.ID).Return(item, nil)
	cartRepo.On("Save", mock.Anything, item).Return(nil)
	productRepo.On("FindByID", mock.Anything, keyboard.ID).Return(keyboard, nil)

	handler := NewCartHandler(cartapp.NewCartService(cartRepo, productRepo, zap.NewNop()))
	router := setupCartRouter(handler, customerID, identity.RoleCustomer)

	body, _ := json.Marshal(cartapp.UpdateItemRequest{Quantity: 5})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/customers/"+customerID.String()+"/cart/"+keyboard.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(5), data["quantity"])
}

func TestCartHandler_UpdateItem_ZeroQuantityRemoves(t *testing.T) {
	customerID := uuid.New()
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)

	keyboard := newStoredProduct(t, "Keyboard", "59.90", 10)
	item := newStoredCartItem(t, customerID, keyboard.ID, 2)
	cartRepo.On("FindByCustomerAndProduct", mock.Anything, customerID, keyboard.ID).Return(item, nil)
	cartRepo.On("Delete", mock.Anything, item.ID).Return(nil)

	handler := NewCartHandler(cartapp.NewCartService(cartRepo, productRepo, zap.NewNop()))
	router := setupCartRouter(handler, customerID, identity.RoleCustomer)

	body, _ := json.Marshal(cartapp.UpdateItemRequest{Quantity: 0})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/customers/"+customerID.String()+"/cart/"+keyboard.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	cartRepo.AssertCalled(t, "Delete", mock.Anything, item.ID)
	cartRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCartHandler_RemoveItem(t *testing.T) {
	customerID := uuid.New()
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)

	productID := uuid.New()
	item := newStoredCartItem(t, customerID, productID, 2)
	cartRepo.On("FindByCustomerAndProduct", mock.Anything, customerID, productID).Return(item, nil)
	cartRepo.On("Delete", mock.Anything, item.ID).Return(nil)

	handler := NewCartHandler(cartapp.NewCartService(cartRepo, productRepo, zap.NewNop()))
	router := setupCartRouter(handler, customerID, identity.RoleCustomer)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/customers/"+customerID.String()+"/cart/"+productID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCartHandler_Clear(t *testing.T) {
	customerID := uuid.New()
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)

	cartRepo.On("DeleteByCustomer", mock.Anything, customerID).Return(nil)

	handler := NewCartHandler(cartapp.NewCartService(cartRepo, productRepo, zap.NewNop()))
	router := setupCartRouter(handler, customerID, identity.RoleCustomer)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/customers/"+customerID.String()+"/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	cartRepo.AssertCalled(t, "DeleteByCustomer", mock.Anything, customerID)
}
