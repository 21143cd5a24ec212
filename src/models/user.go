package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UserRole is stored and compared in its lowercase form.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

func (r UserRole) String() string {
	return string(r)
}

// ParseUserRole accepts only the exact lowercase role names.
func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case RoleAdmin, RoleUser:
		return UserRole(s), nil
	default:
		return "", fmt.Errorf("unknown user role %q", s)
	}
}

// Scan implements sql.Scanner for the user_role column.
func (r *UserRole) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into UserRole", src)
	}
	role, err := ParseUserRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Value implements driver.Valuer.
func (r UserRole) Value() (driver.Value, error) {
	if _, err := ParseUserRole(string(r)); err != nil {
		return nil, err
	}
	return string(r), nil
}

type User struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Password          string     `json:"-"`
	Role              UserRole   `json:"role"`
	Verified          bool       `json:"verified"`
	VerificationToken *string    `json:"verification_token,omitempty"`
	TokenExpiresAt    *time.Time `json:"token_expires_at,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type RegisterUserDto struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type LoginUserDto struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// FilterUserDto is the public view of a user; it never carries the password hash.
type FilterUserDto struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FilterUser(u *User) FilterUserDto {
	return FilterUserDto{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func FilterUsers(users []User) []FilterUserDto {
	out := make([]FilterUserDto, 0, len(users))
	for i := range users {
		out = append(out, FilterUser(&users[i]))
	}
	return out
}

type UserData struct {
	User FilterUserDto `json:"user"`
}

type UserResponseDto struct {
	Status string   `json:"status"`
	Data   UserData `json:"data"`
}

type UserListResponseDto struct {
	Status  string          `json:"status"`
	Users   []FilterUserDto `json:"users"`
	Results int64           `json:"results"`
}

type UserLoginResponseDto struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
