package models

import (
	"time"

	"github.com/fieldtechhq/fieldserve-backend/pkg/enums"
	"github.com/google/uuid"
)

// Ticket is a unit of field work assigned to exactly one technician.
type Ticket struct {
	ID              uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TicketNumber    string             `gorm:"column:ticket_number;not null;uniqueIndex"`
	TechnicianID    uuid.UUID          `gorm:"column:technician_id;type:uuid;not null;index"`
	CustomerName    string             `gorm:"column:customer_name;not null"`
	CustomerAddress string             `gorm:"column:customer_address;not null"`
	CustomerPhone   *string            `gorm:"column:customer_phone"`
	JobLocation     string             `gorm:"column:job_location;not null"`
	WorkToDo        string             `gorm:"column:work_to_do;not null"`
	ScheduledDate   time.Time          `gorm:"column:scheduled_date;type:date;not null"`
	ScheduledTime   string             `gorm:"column:scheduled_time;not null"`
	Status          enums.TicketStatus `gorm:"column:status;not null;default:Assigned;index"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime"`

	Technician *Technician `gorm:"foreignKey:TechnicianID;constraint:OnDelete:CASCADE"`
}
