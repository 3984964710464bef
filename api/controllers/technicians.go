package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fieldtechhq/fieldserve-backend/api/middleware"
	"github.com/fieldtechhq/fieldserve-backend/api/responses"
	"github.com/fieldtechhq/fieldserve-backend/internal/technicians"
	"github.com/fieldtechhq/fieldserve-backend/pkg/db/models"
	pkgerrors "github.com/fieldtechhq/fieldserve-backend/pkg/errors"
	"github.com/fieldtechhq/fieldserve-backend/pkg/logger"
)

type technicianFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Technician, error)
}

// TechnicianMe returns the authenticated technician's profile.
func TechnicianMe(repo technicianFinder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "technician repository unavailable"))
			return
		}

		techID := middleware.TechnicianIDFromContext(r.Context())
		if techID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		tech, err := repo.FindByID(r.Context(), techID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "account unavailable"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load technician"))
			return
		}

		responses.WriteSuccess(w, technicians.FromModel(tech))
	}
}
