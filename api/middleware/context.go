package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const ctxTechnicianID contextKey = "technician_id"

// TechnicianIDFromContext returns the authenticated technician's id, or
// uuid.Nil when the request was not authenticated.
func TechnicianIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxTechnicianID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

// WithTechnicianID injects the technician identifier into the context.
func WithTechnicianID(ctx context.Context, technicianID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxTechnicianID, technicianID)
}
