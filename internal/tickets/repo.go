package tickets

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fieldtechhq/fieldserve-backend/pkg/db/models"
	"github.com/fieldtechhq/fieldserve-backend/pkg/enums"
)

// Repository exposes ticket persistence operations. Every lookup is scoped to
// the owning technician so a foreign ticket id behaves exactly like a missing
// one.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a tickets repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Transaction runs fn against a repo bound to a database transaction.
func (r *Repository) Transaction(ctx context.Context, fn func(tx ticketRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// FindOwned loads a ticket by id only when it belongs to the technician.
func (r *Repository) FindOwned(ctx context.Context, ticketID, technicianID uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Where("id = ? AND technician_id = ?", ticketID, technicianID).
		First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// FindOwnedWithTechnician loads an owned ticket together with the assigned
// technician row, for the detail view.
func (r *Repository) FindOwnedWithTechnician(ctx context.Context, ticketID, technicianID uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.WithContext(ctx).
		Preload("Technician").
		Where("id = ? AND technician_id = ?", ticketID, technicianID).
		First(&ticket).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ListByTechnician returns the technician's tickets ordered by schedule.
func (r *Repository) ListByTechnician(ctx context.Context, technicianID uuid.UUID) ([]models.Ticket, error) {
	var list []models.Ticket
	err := r.db.WithContext(ctx).
		Where("technician_id = ?", technicianID).
		Order("scheduled_date ASC, scheduled_time ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// FindWorkLog returns the ticket's work log, or gorm.ErrRecordNotFound when
// none has been submitted yet.
func (r *Repository) FindWorkLog(ctx context.Context, ticketID uuid.UUID) (*models.TicketWorkLog, error) {
	var log models.TicketWorkLog
	if err := r.db.WithContext(ctx).Where("ticket_id = ?", ticketID).First(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// UpsertWorkLog inserts the log or, when the ticket already has one, replaces
// its description in place.
func (r *Repository) UpsertWorkLog(ctx context.Context, log *models.TicketWorkLog) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ticket_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"work_description", "updated_at"}),
		}).
		Create(log).Error
}

// ListMedia returns the ticket's media rows in upload order.
func (r *Repository) ListMedia(ctx context.Context, ticketID uuid.UUID) ([]models.TicketMedia, error) {
	var list []models.TicketMedia
	err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// CreateMedia inserts the batch of media rows.
func (r *Repository) CreateMedia(ctx context.Context, media []*models.TicketMedia) error {
	if len(media) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(media).Error
}

// ListSignatures returns the ticket's signatures, start slot first.
func (r *Repository) ListSignatures(ctx context.Context, ticketID uuid.UUID) ([]models.TicketSignature, error) {
	var list []models.TicketSignature
	err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("slot DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// UpsertSignature inserts the signature or replaces the one already captured
// for the same slot.
func (r *Repository) UpsertSignature(ctx context.Context, sig *models.TicketSignature) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ticket_id"}, {Name: "slot"}},
			DoUpdates: clause.AssignmentColumns([]string{"signed_by_name", "signature_image", "signed_at"}),
		}).
		Create(sig).Error
}

// UpdateStatus writes the ticket's status column.
func (r *Repository) UpdateStatus(ctx context.Context, ticketID uuid.UUID, status enums.TicketStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ?", ticketID).
		Update("status", status).Error
}

// DeleteTicket removes the ticket and its dependents. Child rows are deleted
// explicitly so the behavior does not depend on the database enforcing
// cascades.
func (r *Repository) DeleteTicket(ctx context.Context, ticketID uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("ticket_id = ?", ticketID).Delete(&models.TicketWorkLog{}).Error; err != nil {
		return err
	}
	if err := db.Where("ticket_id = ?", ticketID).Delete(&models.TicketMedia{}).Error; err != nil {
		return err
	}
	if err := db.Where("ticket_id = ?", ticketID).Delete(&models.TicketSignature{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", ticketID).Delete(&models.Ticket{}).Error
}
