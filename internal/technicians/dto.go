package technicians

import (
	"time"

	"github.com/google/uuid"

	"github.com/fieldtechhq/fieldserve-backend/pkg/db/models"
)

// TechnicianDTO is the public representation of a technician. The password
// hash never leaves the service layer.
type TechnicianDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	PhotoURL  *string   `json:"photo_url,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModel maps a technician row to its DTO.
func FromModel(m *models.Technician) *TechnicianDTO {
	if m == nil {
		return nil
	}
	return &TechnicianDTO{
		ID:        m.ID,
		Name:      m.Name,
		Username:  m.Username,
		Email:     m.Email,
		Phone:     m.Phone,
		PhotoURL:  m.PhotoURL,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
