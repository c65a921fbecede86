package users

import (
	"strings"
	"time"

	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/jrsteele09/boutik-admin/units"
	"golang.org/x/crypto/bcrypt"
)

// Role is a backend role attached to a user
type Role struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Permission  []string `json:"permission,omitempty"`
}

type User struct {
	ID           int                 `json:"id"`                     // Backend identifier
	Email        string              `json:"email"`                  // Login and contact address
	Name         *string             `json:"name,omitempty"`         // Given name
	LastName     string              `json:"last_name"`              // Family name
	Phone        *string             `json:"phone,omitempty"`        // Contact number
	IsActive     bool                `json:"is_active"`              // Can sign in
	IsSuperuser  bool                `json:"is_superuser"`           // Administrator of the platform
	IsOwner      bool                `json:"is_owner"`               // Owns points of sale
	CreatedAt    *time.Time          `json:"created_at,omitempty"`   // Registration time
	Roles        []Role              `json:"roles,omitempty"`        // Assigned roles
	OwnedAreas   []units.PointOfSale `json:"owned_areas,omitempty"`  // Points of sale owned
	PasswordHash string              `json:"-"`                      // Never serialized
}

// Validate checks the fields the dashboard relies on after decoding a user payload
func (u *User) Validate() error {
	if u.ID <= 0 {
		return &errors.ValidationError{Field: "id", Reason: "must be positive"}
	}
	if !IsEmail(u.Email) {
		return &errors.ValidationError{Field: "email", Reason: "invalid email address"}
	}
	return nil
}

// FullName joins the given and family names
func (u *User) FullName() string {
	if u.Name == nil || *u.Name == "" {
		return u.LastName
	}
	return strings.TrimSpace(*u.Name + " " + u.LastName)
}

// HasRole reports whether the user holds the named role
func (u *User) HasRole(name RoleName) bool {
	for _, r := range u.Roles {
		if RoleName(r.Name) == name {
			return true
		}
	}
	return false
}

// PrimaryRole returns the first assigned role, empty when the user has none
func (u *User) PrimaryRole() RoleName {
	if len(u.Roles) == 0 {
		return ""
	}
	return RoleName(u.Roles[0].Name)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CheckPassword checks a plain password against the user's stored hash
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}
