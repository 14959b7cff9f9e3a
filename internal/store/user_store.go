package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"quickbuy/internal/apperr"
	"quickbuy/internal/models"
)

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = "id, username, email, password_hash, role, shop_name, created_at"

// CheckExisting runs a single lookup matching any of the supplied unique
// fields. shopName is only matched when non-empty.
func (s *UserStore) CheckExisting(ctx context.Context, email, username, shopName string) (models.ExistingUser, error) {
	query := "SELECT email, username, shop_name FROM users WHERE email = ? OR username = ?"
	args := []interface{}{email, username}
	if shopName != "" {
		query += " OR shop_name = ?"
		args = append(args, shopName)
	}

	var rows []struct {
		Email    string  `db:"email"`
		Username string  `db:"username"`
		ShopName *string `db:"shop_name"`
	}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return models.ExistingUser{}, fmt.Errorf("checking existing user: %w", err)
	}

	var existing models.ExistingUser
	for _, row := range rows {
		if row.Email == email {
			existing.EmailTaken = true
		}
		if row.Username == username {
			existing.UsernameTaken = true
		}
		if shopName != "" && row.ShopName != nil && *row.ShopName == shopName {
			existing.ShopNameTaken = true
		}
	}
	return existing, nil
}

// Create inserts a new user row and returns its id. The caller hashes the
// password. A registration that loses the check-then-insert race trips a
// unique key here; re-checking turns that into the same duplicate message
// the pre-check would have produced.
func (s *UserStore) Create(ctx context.Context, user *models.User) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role, shop_name) VALUES (?, ?, ?, ?, ?)",
		user.Username, user.Email, user.PasswordHash, user.Role, user.ShopName,
	)
	if err != nil {
		shopName := ""
		if user.ShopName != nil {
			shopName = *user.ShopName
		}
		existing, checkErr := s.CheckExisting(ctx, user.Email, user.Username, shopName)
		if checkErr == nil {
			if msg := existing.FirstConflict(); msg != "" {
				return 0, apperr.Validation(msg)
			}
		}
		return 0, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new user id: %w", err)
	}
	return id, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("finding user by email: %w", err)
	}
	return &user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("finding user by id: %w", err)
	}
	return &user, nil
}

// ListNonAdmin returns every customer and seller, without password hashes.
func (s *UserStore) ListNonAdmin(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := s.db.SelectContext(ctx, &users,
		"SELECT id, username, email, role, shop_name, created_at FROM users WHERE role != ?",
		string(models.RoleAdmin),
	)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Delete hard-deletes a user. A seller's products go with them via the
// schema's cascading foreign key.
func (s *UserStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}
