package client

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/jrsteele09/boutik-admin/internal/utils"
)

// Validator is implemented by response types that can check their own shape
type Validator interface {
	Validate() error
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// ErrorFromResponse normalizes a non-2xx response, reading the backend's
// {"detail": "..."} or {"detail": [{"loc": [...], "msg": "..."}]} body when present.
func ErrorFromResponse(status int, raw []byte) errors.Error {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return errors.FromStatus(status, "")
	}

	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err == nil {
		return errors.FromStatus(status, detail)
	}

	var fields []fieldError
	if err := json.Unmarshal(body.Detail, &fields); err == nil && len(fields) > 0 {
		e := errors.FromStatus(status, fields[0].Msg)
		if ve, ok := e.(*errors.ValidationError); ok {
			ve.Field = fieldName(fields[0].Loc)
		}
		return e
	}
	return errors.FromStatus(status, "")
}

// fieldName drops the leading "body"/"query" segment of a location
func fieldName(loc []any) string {
	parts := utils.ToStringSlice(loc)
	if len(parts) > 1 {
		switch parts[0] {
		case "body", "query", "path":
			parts = parts[1:]
		}
	}
	return strings.Join(parts, ".")
}

func validate(out any) error {
	v, ok := out.(Validator)
	if !ok {
		rv := reflect.ValueOf(out)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return nil
		}
		elem := rv.Elem()
		if elem.Kind() == reflect.Pointer && elem.IsNil() {
			return &errors.ValidationError{Reason: "empty response body", Err: errors.ErrMalformedResponse}
		}
		if v, ok = elem.Interface().(Validator); !ok {
			return nil
		}
	}
	if err := v.Validate(); err != nil {
		var ve *errors.ValidationError
		if errors.As(err, &ve) {
			return ve
		}
		return &errors.ValidationError{Reason: "invalid response", Err: err}
	}
	return nil
}
