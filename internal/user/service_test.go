package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookingcore/resource-booking-backend/internal/auth"
)

type memUserRepo struct {
	users map[string]*User // by id
	seq   int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*User)}
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) Create(ctx context.Context, u *User) error {
	if _, err := m.GetByEmail(ctx, u.Email); err == nil {
		return ErrEmailAlreadyUsed
	}
	m.seq++
	u.ID = fmt.Sprintf("user-%d", m.seq)
	u.CreatedAt = time.Now()
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (m *memUserRepo) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	var out []*User
	for _, u := range m.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		out = append(out, u)
	}
	return out, len(out), nil
}

func (m *memUserRepo) Update(ctx context.Context, u *User) error {
	if _, ok := m.users[u.ID]; !ok {
		return ErrNotFound
	}
	m.users[u.ID] = u
	return nil
}

// plainHasher avoids bcrypt cost in unit tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with default role", func(t *testing.T) {
		svc := NewService(newMemUserRepo(), plainHasher{})
		u, err := svc.Register(ctx, "Alice@Example.com", "password123", "  Alice  ")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", u.Email)
		assert.Equal(t, auth.RoleUser, u.Role)
		require.NotNil(t, u.DisplayName)
		assert.Equal(t, "Alice", *u.DisplayName)
		assert.True(t, u.IsActive)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		svc := NewService(newMemUserRepo(), plainHasher{})
		_, err := svc.Register(ctx, "alice@example.com", "password123", "")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "ALICE@example.com", "password456", "")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("short password rejected", func(t *testing.T) {
		svc := NewService(newMemUserRepo(), plainHasher{})
		_, err := svc.Register(ctx, "alice@example.com", "short", "")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	svc := NewService(repo, plainHasher{})

	registered, err := svc.Register(ctx, "alice@example.com", "password123", "")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Login(ctx, "alice@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
		assert.NotNil(t, u.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "nope-nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email looks like wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "bob@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user refused", func(t *testing.T) {
		registered.IsActive = false
		defer func() { registered.IsActive = true }()

		_, err := svc.Login(ctx, "alice@example.com", "password123")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}

func TestSetRole(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	svc := NewService(repo, plainHasher{})

	u, err := svc.Register(ctx, "alice@example.com", "password123", "")
	require.NoError(t, err)

	t.Run("promote to admin", func(t *testing.T) {
		updated, err := svc.SetRole(ctx, u.ID, auth.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, auth.RoleAdmin, updated.Role)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		_, err := svc.SetRole(ctx, u.ID, "superuser")
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.SetRole(ctx, "ghost", auth.RoleAdmin)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
