package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenClaims represents the typed JWT issued to technicians. The token
// carries only the technician id; everything else is re-resolved per request.
type AccessTokenClaims struct {
	TechnicianID uuid.UUID `json:"technician_id"`
	jwt.RegisteredClaims
}
