package tickets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fieldtechhq/fieldserve-backend/internal/technicians"
	"github.com/fieldtechhq/fieldserve-backend/pkg/db/models"
	"github.com/fieldtechhq/fieldserve-backend/pkg/enums"
	pkgerrors "github.com/fieldtechhq/fieldserve-backend/pkg/errors"
)

const ticketNotFoundMessage = "ticket not found"

// Service defines the behavior needed by the tickets controller.
type Service interface {
	ListMyTickets(ctx context.Context, technicianID uuid.UUID) ([]TicketDTO, error)
	GetTicketDetail(ctx context.Context, ticketID, technicianID uuid.UUID) (*TicketDetail, error)
	SubmitWorkLog(ctx context.Context, ticketID, technicianID uuid.UUID, input WorkLogInput) (*WorkLogResult, error)
	AttachMedia(ctx context.Context, ticketID, technicianID uuid.UUID, files []MediaFileInput) ([]MediaDTO, error)
	CaptureSignature(ctx context.Context, ticketID, technicianID uuid.UUID, input SignatureInput) (*SignatureResult, error)
	SetStatus(ctx context.Context, ticketID, technicianID uuid.UUID, input StatusInput) (*StatusChange, error)
	DeleteTicket(ctx context.Context, ticketID, technicianID uuid.UUID) error
}

type ticketRepository interface {
	Transaction(ctx context.Context, fn func(tx ticketRepository) error) error
	FindOwned(ctx context.Context, ticketID, technicianID uuid.UUID) (*models.Ticket, error)
	FindOwnedWithTechnician(ctx context.Context, ticketID, technicianID uuid.UUID) (*models.Ticket, error)
	ListByTechnician(ctx context.Context, technicianID uuid.UUID) ([]models.Ticket, error)
	FindWorkLog(ctx context.Context, ticketID uuid.UUID) (*models.TicketWorkLog, error)
	UpsertWorkLog(ctx context.Context, log *models.TicketWorkLog) error
	ListMedia(ctx context.Context, ticketID uuid.UUID) ([]models.TicketMedia, error)
	CreateMedia(ctx context.Context, media []*models.TicketMedia) error
	ListSignatures(ctx context.Context, ticketID uuid.UUID) ([]models.TicketSignature, error)
	UpsertSignature(ctx context.Context, sig *models.TicketSignature) error
	UpdateStatus(ctx context.Context, ticketID uuid.UUID, status enums.TicketStatus) error
	DeleteTicket(ctx context.Context, ticketID uuid.UUID) error
}

type service struct {
	repo ticketRepository
}

// NewService constructs the ticket lifecycle service.
func NewService(repo ticketRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ticket repository is required")
	}
	return &service{repo: repo}, nil
}

// ListMyTickets returns the technician's tickets ordered by scheduled date
// and time.
func (s *service) ListMyTickets(ctx context.Context, technicianID uuid.UUID) ([]TicketDTO, error) {
	rows, err := s.repo.ListByTechnician(ctx, technicianID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list tickets")
	}
	out := make([]TicketDTO, 0, len(rows))
	for i := range rows {
		out = append(out, ticketFromModel(&rows[i]))
	}
	return out, nil
}

// GetTicketDetail loads a ticket with the assigned technician, its work log,
// media, and both signature slots.
func (s *service) GetTicketDetail(ctx context.Context, ticketID, technicianID uuid.UUID) (*TicketDetail, error) {
	ticket, err := s.repo.FindOwnedWithTechnician(ctx, ticketID, technicianID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, ticketNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup ticket")
	}

	detail := &TicketDetail{
		Ticket:     ticketFromModel(ticket),
		Technician: technicians.FromModel(ticket.Technician),
	}

	log, err := s.repo.FindWorkLog(ctx, ticketID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load work log")
	}
	detail.WorkLog = workLogFromModel(log)

	media, err := s.repo.ListMedia(ctx, ticketID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load media")
	}
	detail.Media = make([]MediaDTO, 0, len(media))
	for i := range media {
		detail.Media = append(detail.Media, mediaFromModel(&media[i]))
	}

	sigs, err := s.repo.ListSignatures(ctx, ticketID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load signatures")
	}
	for i := range sigs {
		dto := signatureFromModel(&sigs[i])
		switch sigs[i].Slot {
		case enums.SignatureSlotStart:
			detail.StartSignature = &dto
		default:
			detail.Signature = &dto
		}
	}

	return detail, nil
}

// SubmitWorkLog records (or replaces) the ticket's work log. Submitting the
// first log against a freshly assigned ticket moves it to In Progress; later
// submissions leave the status alone.
func (s *service) SubmitWorkLog(ctx context.Context, ticketID, technicianID uuid.UUID, input WorkLogInput) (*WorkLogResult, error) {
	if strings.TrimSpace(input.WorkDescription) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "work description is required")
	}

	var result WorkLogResult
	err := s.repo.Transaction(ctx, func(tx ticketRepository) error {
		ticket, err := s.findOwned(ctx, tx, ticketID, technicianID)
		if err != nil {
			return err
		}

		log := &models.TicketWorkLog{
			TicketID:        ticketID,
			WorkDescription: input.WorkDescription,
		}
		if err := tx.UpsertWorkLog(ctx, log); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save work log")
		}

		status := ticket.Status
		if status == enums.TicketStatusAssigned {
			status = enums.TicketStatusInProgress
			if err := tx.UpdateStatus(ctx, ticketID, status); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update ticket status")
			}
		}

		saved, err := tx.FindWorkLog(ctx, ticketID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload work log")
		}
		result = WorkLogResult{WorkLog: *workLogFromModel(saved), TicketStatus: status}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AttachMedia records the uploaded files against the ticket. The rows go in
// as one batch inside a transaction so a failure leaves nothing behind.
func (s *service) AttachMedia(ctx context.Context, ticketID, technicianID uuid.UUID, files []MediaFileInput) ([]MediaDTO, error) {
	if len(files) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no files uploaded")
	}

	var out []MediaDTO
	err := s.repo.Transaction(ctx, func(tx ticketRepository) error {
		if _, err := s.findOwned(ctx, tx, ticketID, technicianID); err != nil {
			return err
		}

		rows := make([]*models.TicketMedia, 0, len(files))
		for _, f := range files {
			row := &models.TicketMedia{
				TicketID:  ticketID,
				MediaType: enums.MediaTypeFromContentType(f.ContentType),
				FileURL:   f.FileURL,
				FilePath:  f.FilePath,
			}
			if f.OriginalName != "" {
				row.OriginalName = &f.OriginalName
			}
			if f.Size > 0 {
				row.FileSize = &f.Size
			}
			rows = append(rows, row)
		}
		if err := tx.CreateMedia(ctx, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save media")
		}

		out = make([]MediaDTO, 0, len(rows))
		for _, row := range rows {
			out = append(out, mediaFromModel(row))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CaptureSignature stores the signature for its slot, replacing any earlier
// capture for the same slot, and forces the ticket status: a start signature
// puts the ticket In Progress, a completion signature marks it Signed.
func (s *service) CaptureSignature(ctx context.Context, ticketID, technicianID uuid.UUID, input SignatureInput) (*SignatureResult, error) {
	if strings.TrimSpace(input.SignedByName) == "" || strings.TrimSpace(input.SignatureImage) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "signer name and signature image are required")
	}

	slot, err := enums.ParseSignatureSlot(input.Slot)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	status := enums.TicketStatusSigned
	if slot == enums.SignatureSlotStart {
		status = enums.TicketStatusInProgress
	}

	var result SignatureResult
	err = s.repo.Transaction(ctx, func(tx ticketRepository) error {
		if _, err := s.findOwned(ctx, tx, ticketID, technicianID); err != nil {
			return err
		}

		sig := &models.TicketSignature{
			TicketID:       ticketID,
			Slot:           slot,
			SignedByName:   input.SignedByName,
			SignatureImage: input.SignatureImage,
		}
		if err := tx.UpsertSignature(ctx, sig); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save signature")
		}
		if err := tx.UpdateStatus(ctx, ticketID, status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update ticket status")
		}

		result = SignatureResult{Signature: signatureFromModel(sig), TicketStatus: status}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SetStatus overrides the ticket status with any valid lifecycle value.
func (s *service) SetStatus(ctx context.Context, ticketID, technicianID uuid.UUID, input StatusInput) (*StatusChange, error) {
	status, err := enums.ParseTicketStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	ticket, err := s.findOwned(ctx, s.repo, ticketID, technicianID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, ticketID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update ticket status")
	}

	return &StatusChange{
		TicketID:       ticketID,
		PreviousStatus: ticket.Status,
		Status:         status,
	}, nil
}

// DeleteTicket removes the ticket and everything recorded against it.
func (s *service) DeleteTicket(ctx context.Context, ticketID, technicianID uuid.UUID) error {
	return s.repo.Transaction(ctx, func(tx ticketRepository) error {
		if _, err := s.findOwned(ctx, tx, ticketID, technicianID); err != nil {
			return err
		}
		if err := tx.DeleteTicket(ctx, ticketID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete ticket")
		}
		return nil
	})
}

func (s *service) findOwned(ctx context.Context, repo ticketRepository, ticketID, technicianID uuid.UUID) (*models.Ticket, error) {
	ticket, err := repo.FindOwned(ctx, ticketID, technicianID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, ticketNotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup ticket")
	}
	return ticket, nil
}
