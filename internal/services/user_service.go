package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"quickbuy/internal/apperr"
	"quickbuy/internal/models"
)

// UserStore is the credential store the service runs against. The sqlx
// implementation lives in internal/store; tests substitute a fake.
type UserStore interface {
	CheckExisting(ctx context.Context, email, username, shopName string) (models.ExistingUser, error)
	Create(ctx context.Context, user *models.User) (int64, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	ListNonAdmin(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id int64) error
}

type UserService struct {
	store  UserStore
	logger zerolog.Logger
}

func NewUserService(store UserStore, logger zerolog.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Register validates the request and creates the user. Validation rules fire
// in a fixed order and short-circuit before any database access: required
// fields, role, shop name for sellers, email format, password strength, then
// the duplicate check (email before username before shop name).
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return nil, apperr.Validation("All fields are required!")
	}
	if !models.ValidRole(req.Role) {
		return nil, apperr.Validation("Invalid role selected")
	}
	isSeller := req.Role == string(models.RoleSeller)
	if isSeller && strings.TrimSpace(req.ShopName) == "" {
		return nil, apperr.Validation("Shop name is required for sellers")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, apperr.Validation("Invalid email format")
	}
	if len(req.Password) < 8 {
		return nil, apperr.Validation("Password must be at least 8 characters long")
	}

	shopName := ""
	if isSeller {
		shopName = req.ShopName
	}
	existing, err := s.store.CheckExisting(ctx, req.Email, req.Username, shopName)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error checking existing user")
		return nil, apperr.Internal("registration failed", err)
	}
	if msg := existing.FirstConflict(); msg != "" {
		return nil, apperr.Validation(msg)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return nil, apperr.Internal("failed to hash password", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         req.Role,
	}
	if isSeller {
		user.ShopName = &req.ShopName
	}

	id, err := s.store.Create(ctx, user)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("Error creating user")
		return nil, apperr.Internal("failed to create user", err)
	}

	created, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("failed to load created user", err)
	}

	s.logger.Info().Int64("user_id", created.ID).Str("email", created.Email).Msg("User registered")
	return created, nil
}

// Authenticate checks the credentials. Unknown email and wrong password are
// indistinguishable to the caller, so accounts cannot be enumerated.
func (s *UserService) Authenticate(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperr.Validation("Email and password are required")
	}

	user, err := s.store.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.Unauthenticated("Invalid email or password")
		}
		s.logger.Error().Err(err).Msg("Error querying user")
		return nil, apperr.Internal("login failed", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn().Str("email", req.Email).Msg("Failed authentication attempt")
		return nil, apperr.Unauthenticated("Invalid email or password")
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("User authenticated")
	return user, nil
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	return s.store.FindByID(ctx, userID)
}

// ListUsers returns every non-admin user, for the admin panel.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListNonAdmin(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing users")
		return nil, apperr.Internal("failed to list users", err)
	}
	return users, nil
}

// DeleteUser removes a user. Admin accounts cannot be deleted, not even by
// themselves. Missing targets win over the admin rule.
func (s *UserService) DeleteUser(ctx context.Context, userID int64) error {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == string(models.RoleAdmin) {
		return apperr.Forbidden("Cannot delete admin users")
	}

	if err := s.store.Delete(ctx, userID); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("Error deleting user")
		return apperr.Internal(fmt.Sprintf("failed to delete user %d", userID), err)
	}

	s.logger.Info().Int64("user_id", userID).Msg("User deleted")
	return nil
}
