package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mboma-backend/internal/auth"
	"mboma-backend/internal/models"
)

// UserStore is the persistence surface the identity flows need
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type UserService struct {
	Users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{Users: users}
}

// Register creates a new account. The password is stored only as a bcrypt
// hash; the email keeps its original casing but uniqueness and lookup are
// case-insensitive.
func (s *UserService) Register(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	email := strings.TrimSpace(req.Email)

	if name == "" || phone == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("name, phone, email and password are required")
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Phone:        phone,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the user. A missing account
// and a wrong password both come back as ErrInvalidCredentials so the
// response does not reveal which emails are registered.
func (s *UserService) Authenticate(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	user, err := s.Users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}

// GetProfile returns a user by id
func (s *UserService) GetProfile(ctx context.Context, id int) (*models.User, error) {
	return s.Users.Get(ctx, id)
}
