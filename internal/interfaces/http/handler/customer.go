package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/shopcore/backend/internal/application/identity"
)

// CustomerHandler handles customer account endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *identityapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *identityapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// GetByID returns a customer's profile
// Customers may only read their own; admins may read any
func (h *CustomerHandler) GetByID(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	customerID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	result, err := h.customerService.Get(c.Request.Context(), actor, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RegisterRoutes registers all customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.GET("/:id", h.GetByID)
	}
}
