package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	identityapp "github.com/shopcore/backend/internal/application/identity"
	"github.com/shopcore/backend/internal/domain/identity"
	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/infrastructure/auth"
	"github.com/shopcore/backend/internal/infrastructure/config"
	"github.com/shopcore/backend/internal/interfaces/http/middleware"
)

// MockCustomerRepository is a mock implementation of identity.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByUsername(ctx context.Context, username string) (*identity.Customer, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *identity.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-with-enough-length",
		AccessTokenExpiration: time.Hour,
		Issuer:                "shopcore-test",
	})
}

func setupAuthRouter(handler *AuthHandler, jwtService *auth.JWTService, blacklist auth.TokenBlacklist) *gin.Engine {
	r := gin.New()
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths:      []string{"/api/v1/auth/login"},
	}))
	handler.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func newTestCustomer(t *testing.T, username, password string) *identity.Customer {
	t.Helper()
	customer, err := identity.NewCustomer(username, password, username+"@example.com", identity.RoleCustomer)
	require.NoError(t, err)
	return customer
}

func TestAuthHandler_Login_Success(t *testing.T) {
	repo := new(MockCustomerRepository)
	customer := newTestCustomer(t, "alice", "Password123")
	repo.On("FindByUsername", mock.Anything, "alice").Return(customer, nil)

	jwtService := testJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	authService := identityapp.NewAuthService(repo, jwtService, blacklist, zap.NewNop())
	handler := NewAuthHandler(authService)
	router := setupAuthRouter(handler, jwtService, blacklist)

	body, _ := json.Marshal(identityapp.LoginRequest{Username: "alice", Password: "Password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.True(t, response["success"].(bool))
	data := response["data"].(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])
	assert.Equal(t, "Bearer", data["token_type"])
	assert.Equal(t, customer.ID.String(), data["customer_id"])
	assert.Equal(t, "customer", data["role"])
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	repo := new(MockCustomerRepository)
	customer := newTestCustomer(t, "alice", "Password123")
	repo.On("FindByUsername", mock.Anything, "alice").Return(customer, nil)

	jwtService := testJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	authService := identityapp.NewAuthService(repo, jwtService, blacklist, zap.NewNop())
	handler := NewAuthHandler(authService)
	router := setupAuthRouter(handler, jwtService, blacklist)

	body, _ := json.Marshal(identityapp.LoginRequest{Username: "alice", Password: "nope"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	errInfo := response["error"].(map[string]interface{})
	assert.Equal(t, "UNAUTHORIZED", errInfo["code"])
	assert.Equal(t, "Invalid username or password", errInfo["detail"])
}

func TestAuthHandler_Login_InvalidRequestBody(t *testing.T) {
	repo := new(MockCustomerRepository)
	jwtService := testJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	authService := identityapp.NewAuthService(repo, jwtService, blacklist, zap.NewNop())
	handler := NewAuthHandler(authService)
	router := setupAuthRouter(handler, jwtService, blacklist)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Validate_EchoesIdentity(t *testing.T) {
	repo := new(MockCustomerRepository)
	customer := newTestCustomer(t, "alice", "Password123")
	repo.On("FindByUsername", mock.Anything, "alice").Return(customer, nil)

	jwtService := testJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	authService := identityapp.NewAuthService(repo, jwtService, blacklist, zap.NewNop())
	handler := NewAuthHandler(authService)
	router := setupAuthRouter(handler, jwtService, blacklist)

	loginBody, _ := json.Marshal(identityapp.LoginRequest{Username: "alice", Password: "Password123"})
	loginReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(loginBody))
	loginReq.Header.Set("Content-Type", "application/json")
	loginW := httptest.NewRecorder()
	router.ServeHTTP(loginW, loginReq)
	require.Equal(t, http.StatusOK, loginW.Code)

	var loginResp map[string]interface{}
	require.NoError(t, json.Unmarshal(loginW.Body.Bytes(), &loginResp))
	token := loginResp["data"].(map[string]interface{})["access_token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/validate", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, customer.ID.String(), data["customer_id"])
	assert.Equal(t, "customer", data["role"])
}

func TestAuthHandler_Validate_MissingToken(t *testing.T) {
	repo := new(MockCustomerRepository)
	jwtService := testJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	authService := identityapp.NewAuthService(repo, jwtService, blacklist, zap.NewNop())
	handler := NewAuthHandler(authService)
	router := setupAuthRouter(handler, jwtService, blacklist)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/validate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Logout_RevokesToken(t *testing.T) {
	repo := new(MockCustomerRepository)
	customer := newTestCustomer(t, "alice", "Password123")
	repo.On("FindByUsername", mock.Anything, "alice").Return(customer, nil)

	jwtService := testJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	authService := identityapp.NewAuthService(repo, jwtService, blacklist, zap.NewNop())
	handler := NewAuthHandler(authService)
	router := setupAuthRouter(handler, jwtService, blacklist)

	loginBody, _ := json.Marshal(identityapp.LoginRequest{Username: "alice", Password: "Password123"})
	loginReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(loginBody))
	loginReq.Header.Set("Content-Type", "application/json")
	loginW := httptest.NewRecorder()
	router.ServeHTTP(loginW, loginReq)
	require.Equal(t, http.StatusOK, loginW.Code)

	var loginResp map[string]interface{}
	require.NoError(t, json.Unmarshal(loginW.Body.Bytes(), &loginResp))
	token := loginResp["data"].(map[string]interface{})["access_token"].(string)

	logoutReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	logoutReq.Header.Set("Authorization", "Bearer "+token)
	logoutW := httptest.NewRecorder()
	router.ServeHTTP(logoutW, logoutReq)
	assert.Equal(t, http.StatusNoContent, logoutW.Code)

	// The same token must now be rejected by the middleware
	replayReq := httptest.NewRequest(http.MethodGet, "/api/v1/auth/validate", nil)
	replayReq.Header.Set("Authorization", "Bearer "+token)
	replayW := httptest.NewRecorder()
	router.ServeHTTP(replayW, replayReq)
	assert.Equal(t, http.StatusUnauthorized, replayW.Code)

	var replayResp map[string]interface{}
	require.NoError(t, json.Unmarshal(replayW.Body.Bytes(), &replayResp))
	errInfo := replayResp["error"].(map[string]interface{})
	assert.Equal(t, "Token has been revoked", errInfo["detail"])
}
