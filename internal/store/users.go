package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/creamroast/pos-api/internal/models"
)

// GetUserByEmail fetches an active user profile for login.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	var hash sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, estado, created_at, updated_at
		FROM user_profiles
		WHERE email = ? AND estado = 'activo'`, email).
		Scan(&u.ID, &u.Name, &u.Email, &hash, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	u.PasswordHash = hash.String
	return u, nil
}

// CreateUserParams is the input to CreateUser. PasswordHash must
// already be bcrypt-hashed by the caller.
type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	Role         string
}

// CreateUser inserts a user profile. Emails are unique.
func (s *Store) CreateUser(ctx context.Context, params CreateUserParams) (models.User, error) {
	if strings.TrimSpace(params.Name) == "" || strings.TrimSpace(params.Email) == "" {
		return models.User{}, validationf("name and email are required")
	}
	switch params.Role {
	case models.RoleCashier, models.RoleAdmin, models.RoleEmployee:
	default:
		return models.User{}, validationf("invalid role %q", params.Role)
	}

	now := time.Now().UTC()
	u := models.User{
		ID:        uuid.NewString(),
		Name:      params.Name,
		Email:     params.Email,
		Role:      params.Role,
		Status:    "activo",
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_profiles (id, name, email, password_hash, role, estado, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, params.PasswordHash, u.Role, u.Status, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, validationf("a user with email %s already exists", params.Email)
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// CountUsers reports how many profiles exist. Used at startup to decide
// whether to seed the bootstrap admin.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM user_profiles").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
