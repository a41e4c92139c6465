package appMiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	verifier, err := NewTokenVerifier("s3cret", "")
	require.NoError(t, err)
	handler := Authenticate(verifier)(okHandler())

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{"valid token", "Bearer s3cret", http.StatusOK, ""},
		{"lowercase scheme", "bearer s3cret", http.StatusOK, ""},
		{"missing header", "", http.StatusUnauthorized, "Unauthorized - Missing token"},
		{"scheme only", "Bearer", http.StatusUnauthorized, "Unauthorized - Missing token"},
		{"wrong scheme", "Basic s3cret", http.StatusUnauthorized, "Unauthorized - Missing token"},
		{"wrong token", "Bearer nope", http.StatusUnauthorized, "Unauthorized - Invalid token"},
		{"token prefix", "Bearer s3cre", http.StatusUnauthorized, "Unauthorized - Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/distance", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				assert.JSONEq(t, `{"error": "`+tt.wantError+`"}`, w.Body.String())
			}
		})
	}
}

func TestTokenVerifier(t *testing.T) {
	t.Run("Empty token rejected", func(t *testing.T) {
		_, err := NewTokenVerifier("", "")
		assert.Error(t, err)
	})

	t.Run("Invalid hash rejected", func(t *testing.T) {
		_, err := NewTokenVerifier("", "not-a-hash")
		assert.Error(t, err)
	})

	t.Run("Bcrypt hash", func(t *testing.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
		require.NoError(t, err)

		v, err := NewTokenVerifier("ignored", string(hash))
		require.NoError(t, err)
		assert.True(t, v.Verify("s3cret"))
		assert.False(t, v.Verify("ignored"))
	})
}
