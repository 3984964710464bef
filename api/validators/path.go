package validators

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/fieldtechhq/fieldserve-backend/pkg/errors"
)

// ParsePathUUID reads a chi URL parameter and requires it to be a UUID.
// Malformed ids read as missing resources so URL probing learns nothing.
func ParsePathUUID(r *http.Request, key, notFoundMessage string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, notFoundMessage)
	}
	return id, nil
}
