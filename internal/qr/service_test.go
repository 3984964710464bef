package qr

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldtechhq/fieldserve-backend/pkg/config"
)

func TestGoogleReviewProducesPNGDataURL(t *testing.T) {
	svc, err := NewService(config.QRConfig{
		ReviewURL: "https://search.google.com/local/writereview?placeid=test",
		ImageSize: 256,
	})
	require.NoError(t, err)

	out, err := svc.GoogleReview()
	require.NoError(t, err)

	assert.Equal(t, "https://search.google.com/local/writereview?placeid=test", out.ReviewURL)
	assert.NotEmpty(t, out.Message)
	require.True(t, strings.HasPrefix(out.QRCode, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(out.QRCode, "data:image/png;base64,"))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
}

func TestNewServiceRejectsBadConfig(t *testing.T) {
	_, err := NewService(config.QRConfig{ImageSize: 256})
	assert.Error(t, err)

	_, err = NewService(config.QRConfig{ReviewURL: "https://example.com", ImageSize: 0})
	assert.Error(t, err)
}
