package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"mboma-backend/internal/models"
)

// uniqueViolation is the Postgres error code for a unique constraint breach
const uniqueViolation = "23505"

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

// Create inserts a new user. A case-insensitive unique index on email backs
// the duplicate check, so concurrent signups with the same address cannot
// both succeed.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO users(full_name, phone_number, email, password_hash)
         VALUES($1, $2, $3, $4)
         RETURNING user_id, created_at`,
		u.Name, u.Phone, u.Email, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return models.ErrDuplicateEmail
	}
	return err
}

// Get returns a user by id
func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := r.DB.QueryRow(ctx,
		`SELECT user_id, full_name, phone_number, email, password_hash, created_at
         FROM users WHERE user_id=$1`, id).
		Scan(&user.ID, &user.Name, &user.Phone, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail looks a user up by email, case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.DB.QueryRow(ctx,
		`SELECT user_id, full_name, phone_number, email, password_hash, created_at
         FROM users WHERE LOWER(email)=LOWER($1)`, email).
		Scan(&user.ID, &user.Name, &user.Phone, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
