package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldtechhq/fieldserve-backend/internal/qr"
	"github.com/fieldtechhq/fieldserve-backend/pkg/config"
	"github.com/fieldtechhq/fieldserve-backend/pkg/logger"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	qrService, err := qr.NewService(config.QRConfig{
		ReviewURL: "https://search.google.com/local/writereview?placeid=test",
		ImageSize: 64,
	})
	require.NoError(t, err)

	return NewRouter(RouterParams{
		Config:    &config.Config{},
		Logger:    logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		QRService: qrService,
	})
}

func TestGoogleReviewQRServedWithoutAuthentication(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/qr/google-review", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Success bool `json:"success"`
		Data    struct {
			QRCode    string `json:"qr_code"`
			ReviewURL string `json:"review_url"`
			Message   string `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	assert.True(t, strings.HasPrefix(payload.Data.QRCode, "data:image/png;base64,"))
	assert.NotEmpty(t, payload.Data.ReviewURL)
}

func TestTicketRoutesRejectMissingBearerToken(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tickets/my-tickets", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
