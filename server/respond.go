package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/rs/zerolog/log"
)

// fieldError is one entry of a 422 detail list
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("[Server writeJSON] encode response")
	}
}

// writeDetail writes the backend's {"detail": "..."} error body
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeValidation writes a 422 whose detail locates the rejected field under source
// (body, query or path)
func writeValidation(w http.ResponseWriter, source string, verr *errors.ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string][]fieldError{
		"detail": {{Loc: []string{source, verr.Field}, Msg: verr.Reason, Type: "value_error"}},
	})
}

// writeError maps a store or validation error onto a response
func writeError(w http.ResponseWriter, source string, err error) {
	var verr *errors.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidation(w, source, verr)
	case errors.Is(err, errors.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Not found")
	case errors.Is(err, errors.ErrInvalidInput):
		writeDetail(w, http.StatusBadRequest, err.Error())
	default:
		log.Err(err).Msg("[Server writeError] unexpected error")
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// decodeBody reads a JSON body into v, answering 422 when it cannot
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeValidation(w, "body", &errors.ValidationError{Field: "body", Reason: "invalid JSON body"})
		return false
	}
	return true
}
