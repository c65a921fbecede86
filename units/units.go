package units

import (
	"strings"
	"time"

	"github.com/jrsteele09/boutik-admin/internal/errors"
)

// PointOfSale is a retail unit (an "area" on the backend) optionally owned by an owner.
type PointOfSale struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Location  *string    `json:"location,omitempty"`
	OwnerID   *int       `json:"owner_id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Create is the payload for a new point of sale
type Create struct {
	Name     string  `json:"name"`
	Location *string `json:"location,omitempty"`
	OwnerID  *int    `json:"owner_id,omitempty"`
}

// Update is a partial update; nil fields are left unchanged
type Update struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
}

func (p PointOfSale) Validate() error {
	if p.ID <= 0 {
		return &errors.ValidationError{Field: "id", Reason: "must be positive"}
	}
	if strings.TrimSpace(p.Name) == "" {
		return &errors.ValidationError{Field: "name", Reason: "is required"}
	}
	return nil
}

func (c Create) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &errors.ValidationError{Field: "name", Reason: "is required"}
	}
	if c.OwnerID != nil && *c.OwnerID <= 0 {
		return &errors.ValidationError{Field: "owner_id", Reason: "must be positive"}
	}
	return nil
}

func (u Update) Validate() error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return &errors.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return nil
}

// Apply copies the set fields of u onto p
func (u Update) Apply(p *PointOfSale) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Location != nil {
		p.Location = u.Location
	}
}
