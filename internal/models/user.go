package models

import "time"

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	ShopName     *string   `db:"shop_name" json:"shop_name,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleSeller   UserRole = "seller"
	RoleAdmin    UserRole = "admin"
)

func ValidRole(role string) bool {
	switch UserRole(role) {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	ShopName string `json:"shop_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token,omitempty"`
}

// ExistingUser reports which unique fields an existing row already claims.
// Callers report the first conflict in a fixed order: email, username, shop name.
type ExistingUser struct {
	EmailTaken    bool
	UsernameTaken bool
	ShopNameTaken bool
}

// FirstConflict returns the message for the highest-priority conflict, or ""
// when none of the fields are taken.
func (e ExistingUser) FirstConflict() string {
	switch {
	case e.EmailTaken:
		return "Email already exists"
	case e.UsernameTaken:
		return "Username already exists"
	case e.ShopNameTaken:
		return "Shop name already exists"
	}
	return ""
}
