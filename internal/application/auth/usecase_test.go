package auth_test

import (
	"context"
	"testing"

	"github.com/jhoicas/restobar-api/internal/application/auth"
	"github.com/jhoicas/restobar-api/internal/application/dto"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/infrastructure/memory"
	"github.com/jhoicas/restobar-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func newAuth() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.NewStore().Users(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "restobar"})
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()

	u, err := uc.RegisterUser(ctx, dto.CreateUserRequest{Email: " Caja@Bar.co ", Password: "secreto123", Role: entity.RoleCajero})
	require.NoError(t, err)
	assert.Equal(t, "caja@bar.co", u.Email)
	assert.Equal(t, "caja@bar.co", u.Name)

	_, err = uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "caja@bar.co", Password: "otraclave1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "CAJA@bar.co", Password: "secreto123"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, entity.RoleCajero, role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "caja@bar.co", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@bar.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()

	u, err := uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "mesero@bar.co", Password: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMesero, u.Role)

	_, err = uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "corta@bar.co", Password: "1234567"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "chef@bar.co", Password: "12345678", Role: "chef"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInactiveUserCannotLogin(t *testing.T) {
	ctx := context.Background()
	users := memory.NewStore().Users()
	uc := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: secret, ExpMinutes: 5})

	u, err := uc.RegisterUser(ctx, dto.CreateUserRequest{Email: "temp@bar.co", Password: "12345678"})
	require.NoError(t, err)
	stored, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	stored.Status = entity.UserStatusInactive
	require.NoError(t, users.Update(ctx, stored))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "temp@bar.co", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()

	created, err := uc.EnsureAdmin(ctx, "admin@bar.co", "adminadmin")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureAdmin(ctx, "admin@bar.co", "adminadmin")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = uc.EnsureAdmin(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, created)
}
