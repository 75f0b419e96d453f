// internal/app/system/httpjson/httpjson.go

// Package httpjson centralizes JSON request/response handling for the
// API handlers: one place for content types, error envelopes, and body
// decoding with validation.
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate is shared; validator instances cache struct metadata.
var validate = validator.New()

// errorResponse matches the original API's error envelope: {"msg": "..."}.
type errorResponse struct {
	Msg string `json:"msg"`
}

// Write encodes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the {"msg": ...} error envelope.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, errorResponse{Msg: msg})
}

// Decode reads the request body into dst and runs struct validation.
// The returned error is safe to echo to the client.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("invalid field %q (%s)", f.Field(), f.Tag())
		}
		return errors.New("invalid request body")
	}
	return nil
}
