package domain

import (
	"strings"
	"time"
)

type Host struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phoneNumber"`
	ProfilePicture string    `json:"profilePicture"`
	About          string    `json:"about"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CreateHostRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phoneNumber"`
	ProfilePicture string `json:"profilePicture"`
	About          string `json:"about"`
}

func (r *CreateHostRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateHostRequest) Validate() error {
	if r.Username == "" || r.Password == "" || r.Name == "" || r.Email == "" {
		return ValidationError("username, password, name and email are required")
	}
	return nil
}

type HostPatch struct {
	Username       *string `json:"username,omitempty"`
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	PhoneNumber    *string `json:"phoneNumber,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
	About          *string `json:"about,omitempty"`
}
