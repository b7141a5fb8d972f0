package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mboma-backend/internal/models"
)

func TestRegisterHashesPassword(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	user, err := svc.Register(context.Background(), &models.SignupRequest{
		Name: "Wanjiku Kamau", Phone: "+254711000111",
		Email: "wanjiku@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.NotZero(t, user.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.SignupRequest
	}{
		{"missing name", models.SignupRequest{Phone: "0711", Email: "a@b.co", Password: "secret1"}},
		{"missing email", models.SignupRequest{Name: "A", Phone: "0711", Password: "secret1"}},
		{"bad email", models.SignupRequest{Name: "A", Phone: "0711", Email: "not-an-email", Password: "secret1"}},
		{"short password", models.SignupRequest{Name: "A", Phone: "0711", Email: "a@b.co", Password: "abc"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, &tc.req)
			assert.Error(t, err)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.SignupRequest{
		Name: "Wanjiku Kamau", Phone: "+254711000111",
		Email: "wanjiku@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	// Same address with different casing still collides
	_, err = svc.Register(ctx, &models.SignupRequest{
		Name: "Other Person", Phone: "+254722000222",
		Email: "Wanjiku@Example.com", Password: "different1",
	})
	assert.ErrorIs(t, err, models.ErrDuplicateEmail)
}

func TestAuthenticateRoundTrip(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	ctx := context.Background()

	registered, err := svc.Register(ctx, &models.SignupRequest{
		Name: "Wanjiku Kamau", Phone: "+254711000111",
		Email: "wanjiku@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, &models.LoginRequest{
		Email: "wanjiku@example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	// Email lookup is case-insensitive
	user, err = svc.Authenticate(ctx, &models.LoginRequest{
		Email: "WANJIKU@EXAMPLE.COM", Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestAuthenticateFailures(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.SignupRequest{
		Name: "Wanjiku Kamau", Phone: "+254711000111",
		Email: "wanjiku@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	// Wrong password and unknown email are indistinguishable
	_, err = svc.Authenticate(ctx, &models.LoginRequest{
		Email: "wanjiku@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, &models.LoginRequest{
		Email: "nobody@example.com", Password: "hunter22",
	})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}
