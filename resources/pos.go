package resources

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jrsteele09/boutik-admin/client"
	"github.com/jrsteele09/boutik-admin/units"
)

const unitPath = "/unit/"

type PointsOfSale struct {
	client *client.Client
}

func NewPointsOfSale(c *client.Client) *PointsOfSale {
	return &PointsOfSale{client: c}
}

// ListByOwner fetches every point of sale of an owner; the endpoint answers a bare array
func (p *PointsOfSale) ListByOwner(ctx context.Context, ownerID int) (Page[units.PointOfSale], error) {
	return client.Get[Page[units.PointOfSale]](ctx, p.client, ownersPath+"/"+strconv.Itoa(ownerID)+"/pos", nil)
}

func (p *PointsOfSale) Create(ctx context.Context, in units.Create) (*units.PointOfSale, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return client.Call[*units.PointOfSale](ctx, p.client, client.Request{Method: http.MethodPost, URL: unitPath, Body: in})
}

func (p *PointsOfSale) Update(ctx context.Context, id int, in units.Update) (*units.PointOfSale, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return client.Call[*units.PointOfSale](ctx, p.client, client.Request{
		Method: http.MethodPut,
		URL:    unitPath + strconv.Itoa(id),
		Body:   in,
	})
}

func (p *PointsOfSale) Delete(ctx context.Context, id int) error {
	return p.client.Do(ctx, client.Request{Method: http.MethodDelete, URL: unitPath + strconv.Itoa(id)}, nil)
}
