// Package resources binds the backend's owners and points of sale endpoints.
package resources

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/jrsteele09/boutik-admin/client"
	"github.com/jrsteele09/boutik-admin/internal/errors"
)

// Page is one page of a list endpoint. It decodes both {"data": [...], "total": n}
// and a bare array, whose total is its length.
type Page[T any] struct {
	Data  []T
	Total int
}

type pageEnvelope[T any] struct {
	Data  *[]T `json:"data"`
	Total *int `json:"total"`
	Count *int `json:"count"`
}

func (p *Page[T]) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		p.Data, p.Total = items, len(items)
		return nil
	}

	var env pageEnvelope[T]
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return err
	}
	if env.Data == nil {
		return fmt.Errorf("list payload has no data field")
	}
	p.Data = *env.Data
	switch {
	case env.Total != nil:
		p.Total = *env.Total
	case env.Count != nil:
		p.Total = *env.Count
	default:
		p.Total = len(p.Data)
	}
	return nil
}

func (p Page[T]) MarshalJSON() ([]byte, error) {
	data := p.Data
	if data == nil {
		data = []T{}
	}
	return json.Marshal(struct {
		Data  []T `json:"data"`
		Total int `json:"total"`
	}{data, p.Total})
}

// Validate checks every item that can validate itself
func (p Page[T]) Validate() error {
	if p.Total < 0 {
		return &errors.ValidationError{Field: "total", Reason: "must not be negative"}
	}
	for i, item := range p.Data {
		if rv := reflect.ValueOf(any(item)); !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
			return &errors.ValidationError{Field: fmt.Sprintf("data[%d]", i), Reason: "null item"}
		}
		v, ok := any(item).(client.Validator)
		if !ok {
			v, ok = any(&item).(client.Validator)
		}
		if !ok {
			continue
		}
		if err := v.Validate(); err != nil {
			return &errors.ValidationError{Field: fmt.Sprintf("data[%d]", i), Reason: "invalid item", Err: err}
		}
	}
	return nil
}
