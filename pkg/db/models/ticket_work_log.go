package models

import (
	"time"

	"github.com/google/uuid"
)

// TicketWorkLog holds the single free-text log of work performed on a ticket.
// The unique index on ticket_id is what keeps "create then update" from ever
// producing a second row.
type TicketWorkLog struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TicketID        uuid.UUID `gorm:"column:ticket_id;type:uuid;not null;uniqueIndex"`
	WorkDescription string    `gorm:"column:work_description;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Ticket *Ticket `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
}
