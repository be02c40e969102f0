package identity

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcore/backend/internal/domain/shared"
)

func TestNewCustomer(t *testing.T) {
	customer, err := NewCustomer("alice", "secret-pass", "alice@example.com", RoleCustomer)

	require.NoError(t, err)
	assert.Equal(t, "alice", customer.Username)
	assert.Equal(t, RoleCustomer, customer.Role)
	assert.NotEqual(t, "secret-pass", customer.PasswordHash)
	assert.True(t, customer.VerifyPassword("secret-pass"))
	assert.False(t, customer.VerifyPassword("wrong"))
}

func TestNewCustomer_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		role     Role
	}{
		{"empty username", "", "secret-pass", RoleCustomer},
		{"short password", "alice", "abc", RoleCustomer},
		{"bad role", "alice", "secret-pass", Role("root")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCustomer(tt.username, tt.password, "", tt.role)
			var domainErr *shared.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		})
	}
}

func TestCustomer_ChangePassword(t *testing.T) {
	customer, err := NewCustomer("alice", "secret-pass", "", RoleCustomer)
	require.NoError(t, err)

	require.NoError(t, customer.ChangePassword("new-secret"))
	assert.True(t, customer.VerifyPassword("new-secret"))
	assert.False(t, customer.VerifyPassword("secret-pass"))

	assert.Error(t, customer.ChangePassword("ab"))
}

func TestCustomer_IsAdmin(t *testing.T) {
	admin, err := NewCustomer("boss", "secret-pass", "", RoleAdmin)
	require.NoError(t, err)
	customer, err := NewCustomer("alice", "secret-pass", "", RoleCustomer)
	require.NoError(t, err)

	assert.True(t, admin.IsAdmin())
	assert.False(t, customer.IsAdmin())
}

func TestActor_CanAccess(t *testing.T) {
	ownerID := uuid.New()

	owner := Actor{CustomerID: ownerID, Role: RoleCustomer}
	stranger := Actor{CustomerID: uuid.New(), Role: RoleCustomer}
	admin := Actor{CustomerID: uuid.New(), Role: RoleAdmin}

	assert.True(t, owner.CanAccess(ownerID))
	assert.False(t, stranger.CanAccess(ownerID))
	assert.True(t, admin.CanAccess(ownerID))
}
