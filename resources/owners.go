package resources

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jrsteele09/boutik-admin/client"
	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/jrsteele09/boutik-admin/listview"
	"github.com/jrsteele09/boutik-admin/users"
)

const (
	ownersListPath = "/unit/owners-list"
	ownersPath     = "/unit/owners"
)

// OwnersPage is a page of owners with the backend's aggregate counts
type OwnersPage struct {
	Page[*users.User]
	TotalActive int
	TotalPOS    int
}

func (p *OwnersPage) UnmarshalJSON(b []byte) error {
	if err := p.Page.UnmarshalJSON(b); err != nil {
		return err
	}
	var totals struct {
		TotalActive int `json:"total_active"`
		TotalPOS    int `json:"total_pos"`
	}
	// a bare array carries no aggregates
	if err := json.Unmarshal(b, &totals); err == nil {
		p.TotalActive, p.TotalPOS = totals.TotalActive, totals.TotalPOS
	}
	return nil
}

func (p OwnersPage) MarshalJSON() ([]byte, error) {
	data := p.Data
	if data == nil {
		data = []*users.User{}
	}
	return json.Marshal(struct {
		Data        []*users.User `json:"data"`
		Total       int           `json:"total"`
		TotalActive int           `json:"total_active"`
		TotalPOS    int           `json:"total_pos"`
	}{data, p.Total, p.TotalActive, p.TotalPOS})
}

// OwnerCreate registers a new owner account
type OwnerCreate struct {
	Email    string  `json:"email"`
	Name     *string `json:"name,omitempty"`
	LastName string  `json:"last_name"`
	Phone    *string `json:"phone,omitempty"`
	Password string  `json:"password"`
	IsActive bool    `json:"is_active"`
	IsOwner  bool    `json:"is_owner"`
	// always false: owners are never administrators
	IsSuperuser bool `json:"is_superuser"`
}

func (o OwnerCreate) Validate() error {
	if err := users.ValidateEmail("email", o.Email); err != nil {
		return err
	}
	if err := users.ValidateName("last_name", o.LastName); err != nil {
		return err
	}
	if o.Name != nil && *o.Name != "" {
		if err := users.ValidateName("name", *o.Name); err != nil {
			return err
		}
	}
	return users.ValidatePasswordStrength(o.Password)
}

// OwnerUpdate changes the set fields of an owner
type OwnerUpdate struct {
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	LastName *string `json:"last_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (o OwnerUpdate) Validate() error {
	if o.Email != nil {
		if err := users.ValidateEmail("email", *o.Email); err != nil {
			return err
		}
	}
	if o.LastName != nil {
		if err := users.ValidateName("last_name", *o.LastName); err != nil {
			return err
		}
	}
	if o.Name != nil && *o.Name != "" {
		if err := users.ValidateName("name", *o.Name); err != nil {
			return err
		}
	}
	if o.Password != nil {
		return users.ValidatePasswordStrength(*o.Password)
	}
	return nil
}

// Apply copies the set fields onto u. Password is handled by the caller.
func (o OwnerUpdate) Apply(u *users.User) {
	if o.Email != nil {
		u.Email = *o.Email
	}
	if o.Name != nil {
		u.Name = o.Name
	}
	if o.LastName != nil {
		u.LastName = *o.LastName
	}
	if o.Phone != nil {
		u.Phone = o.Phone
	}
	if o.IsActive != nil {
		u.IsActive = *o.IsActive
	}
}

type Owners struct {
	client *client.Client
}

func NewOwners(c *client.Client) *Owners {
	return &Owners{client: c}
}

// List fetches a page of owners. Sorting is limited to id, last_name and created_at.
func (o *Owners) List(ctx context.Context, p listview.Params) (OwnersPage, error) {
	if p.SortBy != "" && !users.SortField(p.SortBy).Valid() {
		return OwnersPage{}, &errors.ValidationError{Field: "sort_by", Reason: "cannot sort owners by " + p.SortBy}
	}
	return client.Get[OwnersPage](ctx, o.client, ownersListPath, p.Values())
}

func (o *Owners) Create(ctx context.Context, in OwnerCreate) (*users.User, error) {
	in.IsOwner = true
	in.IsSuperuser = false
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return client.Call[*users.User](ctx, o.client, client.Request{Method: http.MethodPost, URL: ownersPath, Body: in})
}

func (o *Owners) Update(ctx context.Context, id int, in OwnerUpdate) (*users.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return client.Call[*users.User](ctx, o.client, client.Request{
		Method: http.MethodPut,
		URL:    ownersPath + "/" + strconv.Itoa(id),
		Body:   in,
	})
}
