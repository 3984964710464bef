package models

import (
	"time"

	"github.com/fieldtechhq/fieldserve-backend/pkg/enums"
	"github.com/google/uuid"
)

// TicketSignature stores one captured customer signature. Each ticket has two
// independent slots (start, completion); the composite unique index gives each
// slot insert-or-replace semantics.
type TicketSignature struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TicketID       uuid.UUID           `gorm:"column:ticket_id;type:uuid;not null;uniqueIndex:idx_ticket_signatures_ticket_slot"`
	Slot           enums.SignatureSlot `gorm:"column:slot;not null;uniqueIndex:idx_ticket_signatures_ticket_slot"`
	SignedByName   string              `gorm:"column:signed_by_name;not null"`
	SignatureImage string              `gorm:"column:signature_image;not null"`
	SignedAt       time.Time           `gorm:"column:signed_at;autoCreateTime"`

	Ticket *Ticket `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
}
