package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rjinka/mytennisteam/internal/app/system/auth"
	"github.com/rjinka/mytennisteam/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithUser adds the user to the request context, bypassing the token
// middleware.
func WithUser(r *http.Request, u models.User) *http.Request {
	return auth.WithTestUser(r, &auth.AuthUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		IsSuperAdmin: u.IsSuperAdmin,
	})
}

// RandomUser returns an account that exists only in memory, for tests
// that just need someone in the request context.
func RandomUser() models.User {
	return models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Test Player",
		Email: "player@test.com",
	}
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewJSONRequest creates a request whose body is the JSON encoding of v.
func NewJSONRequest(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()

	var body io.Reader
	if v != nil {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// DecodeJSON decodes the response body into dst.
func (r *ResponseRecorder) DecodeJSON(t *testing.T, dst any) {
	t.Helper()
	if err := json.Unmarshal(r.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response body %q: %v", r.Body.String(), err)
	}
}

// AssertErrorMsg checks the {"msg": ...} error envelope.
func (r *ResponseRecorder) AssertErrorMsg(t *testing.T, expected string) {
	t.Helper()
	var envelope struct {
		Msg string `json:"msg"`
	}
	r.DecodeJSON(t, &envelope)
	if envelope.Msg != expected {
		t.Errorf("error msg: got %q, want %q", envelope.Msg, expected)
	}
}
