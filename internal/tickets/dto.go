package tickets

import (
	"time"

	"github.com/google/uuid"

	"github.com/fieldtechhq/fieldserve-backend/internal/technicians"
	"github.com/fieldtechhq/fieldserve-backend/pkg/db/models"
	"github.com/fieldtechhq/fieldserve-backend/pkg/enums"
)

const scheduledDateLayout = "2006-01-02"

// TicketDTO is the public representation of a ticket.
type TicketDTO struct {
	ID              uuid.UUID          `json:"id"`
	TicketNumber    string             `json:"ticket_number"`
	TechnicianID    uuid.UUID          `json:"technician_id"`
	CustomerName    string             `json:"customer_name"`
	CustomerAddress string             `json:"customer_address"`
	CustomerPhone   *string            `json:"customer_phone,omitempty"`
	JobLocation     string             `json:"job_location"`
	WorkToDo        string             `json:"work_to_do"`
	ScheduledDate   string             `json:"scheduled_date"`
	ScheduledTime   string             `json:"scheduled_time"`
	Status          enums.TicketStatus `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// WorkLogDTO is the single work log attached to a ticket.
type WorkLogDTO struct {
	ID              uuid.UUID `json:"id"`
	TicketID        uuid.UUID `json:"ticket_id"`
	WorkDescription string    `json:"work_description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MediaDTO is one uploaded evidence file.
type MediaDTO struct {
	ID           uuid.UUID       `json:"id"`
	TicketID     uuid.UUID       `json:"ticket_id"`
	MediaType    enums.MediaType `json:"media_type"`
	FileURL      string          `json:"file_url"`
	OriginalName *string         `json:"original_name,omitempty"`
	FileSize     *int64          `json:"file_size,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SignatureDTO is one captured customer signature.
type SignatureDTO struct {
	ID             uuid.UUID           `json:"id"`
	TicketID       uuid.UUID           `json:"ticket_id"`
	Slot           enums.SignatureSlot `json:"slot"`
	SignedByName   string              `json:"signed_by_name"`
	SignatureImage string              `json:"signature_image"`
	SignedAt       time.Time           `json:"signed_at"`
}

// TicketDetail aggregates a ticket with the assigned technician, its work
// log, media, and both signature slots.
type TicketDetail struct {
	Ticket         TicketDTO                  `json:"ticket"`
	Technician     *technicians.TechnicianDTO `json:"technician,omitempty"`
	WorkLog        *WorkLogDTO                `json:"work_log"`
	Media          []MediaDTO                 `json:"media"`
	Signature      *SignatureDTO              `json:"signature"`
	StartSignature *SignatureDTO              `json:"start_signature"`
}

// WorkLogInput is the body of the work log submission endpoint.
type WorkLogInput struct {
	WorkDescription string `json:"work_description" validate:"required"`
}

// WorkLogResult reports the persisted log and the ticket status after any
// automatic transition.
type WorkLogResult struct {
	WorkLog      WorkLogDTO         `json:"work_log"`
	TicketStatus enums.TicketStatus `json:"ticket_status"`
}

// MediaFileInput describes a file already written to storage and awaiting a
// database row.
type MediaFileInput struct {
	OriginalName string
	ContentType  string
	Size         int64
	FileURL      string
	FilePath     string
}

// SignatureInput is the body of the signature capture endpoint. An empty
// signature type selects the completion slot.
type SignatureInput struct {
	SignedByName   string `json:"signed_by_name" validate:"required"`
	SignatureImage string `json:"signature_image" validate:"required"`
	Slot           string `json:"signature_type"`
}

// SignatureResult reports the stored signature and the status the capture
// forced onto the ticket.
type SignatureResult struct {
	Signature    SignatureDTO       `json:"signature"`
	TicketStatus enums.TicketStatus `json:"ticket_status"`
}

// StatusInput is the body of the status override endpoint.
type StatusInput struct {
	Status string `json:"status" validate:"required"`
}

// StatusChange reports a status override together with the value it replaced.
type StatusChange struct {
	TicketID       uuid.UUID          `json:"ticket_id"`
	PreviousStatus enums.TicketStatus `json:"previous_status"`
	Status         enums.TicketStatus `json:"status"`
}

func ticketFromModel(m *models.Ticket) TicketDTO {
	return TicketDTO{
		ID:              m.ID,
		TicketNumber:    m.TicketNumber,
		TechnicianID:    m.TechnicianID,
		CustomerName:    m.CustomerName,
		CustomerAddress: m.CustomerAddress,
		CustomerPhone:   m.CustomerPhone,
		JobLocation:     m.JobLocation,
		WorkToDo:        m.WorkToDo,
		ScheduledDate:   m.ScheduledDate.Format(scheduledDateLayout),
		ScheduledTime:   m.ScheduledTime,
		Status:          m.Status,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func workLogFromModel(m *models.TicketWorkLog) *WorkLogDTO {
	if m == nil {
		return nil
	}
	return &WorkLogDTO{
		ID:              m.ID,
		TicketID:        m.TicketID,
		WorkDescription: m.WorkDescription,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func mediaFromModel(m *models.TicketMedia) MediaDTO {
	return MediaDTO{
		ID:           m.ID,
		TicketID:     m.TicketID,
		MediaType:    m.MediaType,
		FileURL:      m.FileURL,
		OriginalName: m.OriginalName,
		FileSize:     m.FileSize,
		CreatedAt:    m.CreatedAt,
	}
}

func signatureFromModel(m *models.TicketSignature) SignatureDTO {
	return SignatureDTO{
		ID:             m.ID,
		TicketID:       m.TicketID,
		Slot:           m.Slot,
		SignedByName:   m.SignedByName,
		SignatureImage: m.SignatureImage,
		SignedAt:       m.SignedAt,
	}
}
