package models

import (
	"time"

	"github.com/fieldtechhq/fieldserve-backend/pkg/enums"
	"github.com/google/uuid"
)

// TicketMedia is one uploaded evidence file. Rows are append-only.
type TicketMedia struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TicketID     uuid.UUID       `gorm:"column:ticket_id;type:uuid;not null;index"`
	MediaType    enums.MediaType `gorm:"column:media_type;not null"`
	FileURL      string          `gorm:"column:file_url;not null"`
	FilePath     string          `gorm:"column:file_path;not null"`
	OriginalName *string         `gorm:"column:original_name"`
	FileSize     *int64          `gorm:"column:file_size"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`

	Ticket *Ticket `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
}
