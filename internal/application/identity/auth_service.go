package identity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shopcore/backend/internal/domain/identity"
	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/infrastructure/auth"
)

// AuthService handles authentication operations
type AuthService struct {
	customerRepo identity.CustomerRepository
	jwtService   *auth.JWTService
	blacklist    auth.TokenBlacklist
	logger       *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	customerRepo identity.CustomerRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		customerRepo: customerRepo,
		jwtService:   jwtService,
		blacklist:    blacklist,
		logger:       logger,
	}
}

// Login verifies the credentials and issues an access token
// An unknown username and a wrong password are indistinguishable to
// the caller
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	customer, err := s.customerRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Warn("login attempt for unknown username", zap.String("username", req.Username))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
	}

	if !customer.VerifyPassword(req.Password) {
		s.logger.Warn("login attempt with wrong password", zap.String("username", req.Username))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")
	}

	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		CustomerID: customer.ID,
		Username:   customer.Username,
		Role:       customer.Role.String(),
	})
	if err != nil {
		s.logger.Error("failed to sign access token", zap.Error(err))
		return nil, err
	}

	s.logger.Info("customer logged in",
		zap.String("username", customer.Username),
		zap.String("customer_id", customer.ID.String()),
	)

	return &LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		CustomerID:  customer.ID,
		Role:        customer.Role.String(),
	}, nil
}

// Validate echoes the identity carried by already-validated claims
func (s *AuthService) Validate(claims *auth.Claims) (*ValidateResponse, error) {
	customerID, err := claims.GetCustomerID()
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	return &ValidateResponse{
		CustomerID: customerID,
		Role:       claims.Role,
	}, nil
}

// Logout revokes the token by blacklisting its ID until it would have
// expired anyway
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims.ID == "" || claims.ExpiresAt == nil {
		return shared.ErrUnauthorized
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		// Already expired, nothing to revoke
		return nil
	}

	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("failed to blacklist token", zap.Error(err))
		return err
	}

	s.logger.Info("customer logged out", zap.String("customer_id", claims.CustomerID))
	return nil
}
