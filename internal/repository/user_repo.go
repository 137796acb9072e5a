package repository

import (
	"context"
	"errors"
	"fmt"

	"pollution_tracker/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repositories use. Both *pgxpool.Pool
// and pgxmock satisfy it, which keeps the repositories testable.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	UpdateLocation(ctx context.Context, id int, lat, lon float64, aqi int) error
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database. The unique indexes on email
// and phone are the backstop against duplicates; callers that want a
// friendly error check FindByEmail first.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (name, email, phone, password_hash, created_at)
            VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRow(ctx, sql, user.Name, user.Email, user.Phone, user.PasswordHash, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by their email address
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, name, email, phone, password_hash, lat, lon, last_aqi, created_at, updated_at, last_alert_time
            FROM users WHERE email = $1`
	err := r.db.QueryRow(ctx, sql, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash,
		&user.Lat, &user.Lon, &user.LastAQI, &user.CreatedAt, &user.UpdatedAt, &user.LastAlertTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found is not an error for this method's contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, name, email, phone, password_hash, lat, lon, last_aqi, created_at, updated_at, last_alert_time
            FROM users WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash,
		&user.Lat, &user.Lon, &user.LastAQI, &user.CreatedAt, &user.UpdatedAt, &user.LastAlertTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// UpdateLocation overwrites the user's last known coordinates and AQI value
func (r *userRepository) UpdateLocation(ctx context.Context, id int, lat, lon float64, aqi int) error {
	sql := `UPDATE users SET lat = $1, lon = $2, last_aqi = $3, updated_at = NOW() WHERE id = $4`
	cmdTag, err := r.db.Exec(ctx, sql, lat, lon, aqi, id)
	if err != nil {
		return fmt.Errorf("failed to update user location: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found for location update")
	}
	return nil
}
