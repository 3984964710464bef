// Package qr renders QR codes for customer-facing links, currently the
// Google review page handed to customers after a job is signed off.
package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/fieldtechhq/fieldserve-backend/pkg/config"
	pkgerrors "github.com/fieldtechhq/fieldserve-backend/pkg/errors"
)

const reviewPrompt = "Scan this QR code to leave us a Google review!"

// ReviewQR carries the rendered code and the link it encodes.
type ReviewQR struct {
	QRCode    string `json:"qr_code"`
	ReviewURL string `json:"review_url"`
	Message   string `json:"message"`
}

// Service renders review QR codes from the configured review URL.
type Service struct {
	cfg config.QRConfig
}

// NewService constructs the QR service.
func NewService(cfg config.QRConfig) (*Service, error) {
	if cfg.ReviewURL == "" {
		return nil, fmt.Errorf("review url is required")
	}
	if cfg.ImageSize <= 0 {
		return nil, fmt.Errorf("image size must be positive")
	}
	return &Service{cfg: cfg}, nil
}

// GoogleReview encodes the review URL as a PNG data URL.
func (s *Service) GoogleReview() (*ReviewQR, error) {
	png, err := qrcode.Encode(s.cfg.ReviewURL, qrcode.Medium, s.cfg.ImageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode qr code")
	}
	return &ReviewQR{
		QRCode:    "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		ReviewURL: s.cfg.ReviewURL,
		Message:   reviewPrompt,
	}, nil
}
