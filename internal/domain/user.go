package domain

import (
	"strings"
	"time"
)

// IDLength is the length of every opaque entity identifier (UUID string).
const IDLength = 36

// LooksLikeID reports whether id has the opaque-identifier shape. This is a
// cheap check run before any existence lookup.
func LooksLikeID(id string) bool {
	return len(id) == IDLength
}

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phoneNumber"`
	ProfilePicture string    `json:"profilePicture"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CreateUserRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phoneNumber"`
	ProfilePicture string `json:"profilePicture"`
}

func (r *CreateUserRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateUserRequest) Validate() error {
	if r.Username == "" || r.Password == "" || r.Name == "" || r.Email == "" {
		return ValidationError("username, password, name and email are required")
	}
	return nil
}

// UserPatch is the allow-list of user fields mutable through the update
// route. The password is deliberately absent.
type UserPatch struct {
	Username       *string `json:"username,omitempty"`
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	PhoneNumber    *string `json:"phoneNumber,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// UserFilter narrows user listings; at most one of the fields is applied, in
// declaration order.
type UserFilter struct {
	Username string
	Email    string
	Name     string
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
