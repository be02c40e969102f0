package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopcore/backend/internal/domain/identity"
)

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued credential and who it belongs to
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	CustomerID  uuid.UUID `json:"customer_id"`
	Role        string    `json:"role"`
}

// ValidateResponse echoes the identity carried by a valid token
type ValidateResponse struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Role       string    `json:"role"`
}

// CustomerResponse represents a customer profile in API responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCustomerResponse converts a domain customer to an API response
func ToCustomerResponse(customer *identity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        customer.ID,
		Username:  customer.Username,
		Name:      customer.Name,
		Email:     customer.Email,
		Phone:     customer.Phone,
		Address:   customer.Address,
		Role:      customer.Role.String(),
		CreatedAt: customer.CreatedAt,
	}
}
