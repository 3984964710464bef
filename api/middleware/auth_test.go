package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgAuth "github.com/fieldtechhq/fieldserve-backend/pkg/auth"
	"github.com/fieldtechhq/fieldserve-backend/pkg/config"
	"github.com/fieldtechhq/fieldserve-backend/pkg/db/models"
)

type stubResolver struct {
	known map[uuid.UUID]*models.Technician
	err   error
}

func (s *stubResolver) FindByID(_ context.Context, id uuid.UUID) (*models.Technician, error) {
	if s.err != nil {
		return nil, s.err
	}
	tech, ok := s.known[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return tech, nil
}

func authTestJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "fieldserve-test",
		ExpirationMinutes: 60,
	}
}

func mintTestToken(t *testing.T, technicianID uuid.UUID) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(authTestJWTConfig(), time.Now().UTC(), technicianID)
	require.NoError(t, err)
	return token
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler := Auth(authTestJWTConfig(), &stubResolver{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tickets/my-tickets", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	handler := Auth(authTestJWTConfig(), &stubResolver{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tickets/my-tickets", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthSeedsTechnicianIDIntoContext(t *testing.T) {
	techID := uuid.New()
	resolver := &stubResolver{known: map[uuid.UUID]*models.Technician{
		techID: {ID: techID, Username: "mike.r"},
	}}

	var seenID uuid.UUID
	handler := Auth(authTestJWTConfig(), resolver, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = TechnicianIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tickets/my-tickets", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, techID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, techID, seenID)
}

func TestAuthRejectsDeletedTechnician(t *testing.T) {
	techID := uuid.New()
	handler := Auth(authTestJWTConfig(), &stubResolver{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tickets/my-tickets", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, techID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	techID := uuid.New()
	expired, err := pkgAuth.MintAccessToken(authTestJWTConfig(), time.Now().UTC().Add(-2*time.Hour), techID)
	require.NoError(t, err)

	handler := Auth(authTestJWTConfig(), &stubResolver{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tickets/my-tickets", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
