package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fieldtechhq/fieldserve-backend/api/responses"
	pkgAuth "github.com/fieldtechhq/fieldserve-backend/pkg/auth"
	"github.com/fieldtechhq/fieldserve-backend/pkg/config"
	"github.com/fieldtechhq/fieldserve-backend/pkg/db/models"
	pkgerrors "github.com/fieldtechhq/fieldserve-backend/pkg/errors"
	"github.com/fieldtechhq/fieldserve-backend/pkg/logger"
)

// TechnicianResolver re-checks the token subject against the database so a
// deleted account's still-valid token stops working immediately.
type TechnicianResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Technician, error)
}

// Auth validates a bearer token and seeds the request context with the
// technician id.
func Auth(cfg config.JWTConfig, resolver TechnicianResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if claims.TechnicianID == uuid.Nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token"))
				return
			}

			if resolver != nil {
				if _, err := resolver.FindByID(r.Context(), claims.TechnicianID); err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "account unavailable"))
						return
					}
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve technician"))
					return
				}
			}

			ctx := WithTechnicianID(r.Context(), claims.TechnicianID)
			if logg != nil {
				ctx = logg.WithTechnicianID(ctx, claims.TechnicianID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
