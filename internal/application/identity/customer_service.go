package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopcore/backend/internal/domain/identity"
	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/infrastructure/config"
)

// CustomerService handles customer profile operations
type CustomerService struct {
	customerRepo identity.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo identity.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Get retrieves a customer profile (owner or admin)
func (s *CustomerService) Get(ctx context.Context, actor identity.Actor, customerID uuid.UUID) (*CustomerResponse, error) {
	if !actor.CanAccess(customerID) {
		return nil, shared.ErrForbidden
	}

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// EnsureAdmin makes sure the configured admin account exists,
// creating it on first startup
func (s *CustomerService) EnsureAdmin(ctx context.Context, cfg config.BootstrapConfig) error {
	if cfg.AdminPassword == "" {
		s.logger.Warn("admin bootstrap skipped: no admin password configured")
		return nil
	}

	_, err := s.customerRepo.FindByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	admin, err := identity.NewCustomer(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail, identity.RoleAdmin)
	if err != nil {
		return err
	}
	if err := s.customerRepo.Save(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("admin account bootstrapped",
		zap.String("username", cfg.AdminUsername),
		zap.String("customer_id", admin.ID.String()),
	)
	return nil
}
