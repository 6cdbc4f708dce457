package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeValidator struct {
	claims *Claims
	err    error
}

func (f *fakeValidator) ValidateToken(tokenString string) (*Claims, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.claims, nil
}

func TestRequireAuth_DisabledPassesThrough(t *testing.T) {
	m := NewMiddleware(&fakeValidator{err: errors.New("should not be called")}, false, zap.NewNop())

	called := false
	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/pantry", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	m := NewMiddleware(&fakeValidator{claims: &Claims{}}, true, zap.NewNop())

	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/pantry", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	m := NewMiddleware(&fakeValidator{err: errors.New("bad signature")}, true, zap.NewNop())

	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/pantry", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ValidTokenSetsContext(t *testing.T) {
	want := &Claims{HouseholdID: "hh-123", Email: "shopper@example.com"}
	m := NewMiddleware(&fakeValidator{claims: want}, true, zap.NewNop())

	var gotClaims *Claims
	var gotToken string
	handler := m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		require.True(t, ok)
		gotClaims = claims

		token, ok := GetToken(r.Context())
		require.True(t, ok)
		gotToken = token

		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/pantry", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hh-123", gotClaims.HouseholdID)
	assert.Equal(t, "shopper@example.com", gotClaims.Email)
	assert.Equal(t, "abc.def.ghi", gotToken)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"valid bearer", "Bearer tok123", "tok123", true},
		{"empty header", "", "", false},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "", false},
		{"bearer without token", "Bearer ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			got, ok := bearerToken(req)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
