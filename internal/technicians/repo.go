package technicians

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fieldtechhq/fieldserve-backend/pkg/db/models"
)

// Repository exposes technician persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a technicians repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a technician by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Technician, error) {
	var tech models.Technician
	if err := r.db.WithContext(ctx).First(&tech, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tech, nil
}

// FindByUsername retrieves the technician matching the provided username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.Technician, error) {
	var tech models.Technician
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&tech).Error; err != nil {
		return nil, err
	}
	return &tech, nil
}
