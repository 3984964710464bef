package auth

import (
	"github.com/fieldtechhq/fieldserve-backend/internal/technicians"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the token and technician produced by a successful login.
type LoginResponse struct {
	Token      string                     `json:"token"`
	Technician *technicians.TechnicianDTO `json:"technician"`
}
