package controllers

import (
	"net/http"

	"github.com/fieldtechhq/fieldserve-backend/api/responses"
	"github.com/fieldtechhq/fieldserve-backend/internal/qr"
	pkgerrors "github.com/fieldtechhq/fieldserve-backend/pkg/errors"
	"github.com/fieldtechhq/fieldserve-backend/pkg/logger"
)

// QRGoogleReview returns the review link rendered as a QR code.
func QRGoogleReview(svc *qr.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "qr service unavailable"))
			return
		}

		out, err := svc.GoogleReview()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, out)
	}
}
