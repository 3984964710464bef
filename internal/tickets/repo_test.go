package tickets

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fieldtechhq/fieldserve-backend/pkg/db/models"
	"github.com/fieldtechhq/fieldserve-backend/pkg/enums"
)

func setupTicketsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	technicians := `
CREATE TABLE IF NOT EXISTS technicians (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  phone TEXT,
  photo_url TEXT,
  role TEXT NOT NULL DEFAULT 'technician',
  created_at DATETIME,
  updated_at DATETIME
);`
	tickets := `
CREATE TABLE IF NOT EXISTS tickets (
  id TEXT PRIMARY KEY,
  ticket_number TEXT NOT NULL UNIQUE,
  technician_id TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_address TEXT NOT NULL,
  customer_phone TEXT,
  job_location TEXT NOT NULL,
  work_to_do TEXT NOT NULL,
  scheduled_date DATETIME NOT NULL,
  scheduled_time TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'Assigned',
  created_at DATETIME,
  updated_at DATETIME
);`
	workLogs := `
CREATE TABLE IF NOT EXISTS ticket_work_logs (
  id TEXT PRIMARY KEY,
  ticket_id TEXT NOT NULL UNIQUE,
  work_description TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	media := `
CREATE TABLE IF NOT EXISTS ticket_media (
  id TEXT PRIMARY KEY,
  ticket_id TEXT NOT NULL,
  media_type TEXT NOT NULL,
  file_url TEXT NOT NULL,
  file_path TEXT NOT NULL,
  original_name TEXT,
  file_size INTEGER,
  created_at DATETIME
);`
	signatures := `
CREATE TABLE IF NOT EXISTS ticket_signatures (
  id TEXT PRIMARY KEY,
  ticket_id TEXT NOT NULL,
  slot TEXT NOT NULL,
  signed_by_name TEXT NOT NULL,
  signature_image TEXT NOT NULL,
  signed_at DATETIME,
  UNIQUE (ticket_id, slot)
);`
	require.NoError(t, db.Exec(technicians).Error)
	require.NoError(t, db.Exec(tickets).Error)
	require.NoError(t, db.Exec(workLogs).Error)
	require.NoError(t, db.Exec(media).Error)
	require.NoError(t, db.Exec(signatures).Error)
	return db
}

func newTicket(t *testing.T, db *gorm.DB, technicianID uuid.UUID, scheduledDate time.Time, scheduledTime string) *models.Ticket {
	t.Helper()

	ticket := &models.Ticket{
		ID:              uuid.New(),
		TicketNumber:    "TKT-" + uuid.NewString()[:8],
		TechnicianID:    technicianID,
		CustomerName:    "Dana Fuller",
		CustomerAddress: "42 Harbor Rd",
		JobLocation:     "Basement utility room",
		WorkToDo:        "Replace water heater element",
		ScheduledDate:   scheduledDate,
		ScheduledTime:   scheduledTime,
		Status:          enums.TicketStatusAssigned,
	}
	require.NoError(t, db.Create(ticket).Error)
	return ticket
}

func TestRepositoryFindOwnedScopesByTechnician(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	ticket := newTicket(t, db, owner, time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC), "09:00")

	found, err := repo.FindOwned(ctx, ticket.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, found.ID)

	_, err = repo.FindOwned(ctx, ticket.ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryFindOwnedWithTechnicianPreloads(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	tech := &models.Technician{
		ID:           uuid.New(),
		Name:         "Mike Rodriguez",
		Username:     "mike.rodriguez",
		PasswordHash: "x",
		Email:        "mike.rodriguez@fieldserve.dev",
		Role:         "technician",
	}
	require.NoError(t, db.Create(tech).Error)
	ticket := newTicket(t, db, tech.ID, time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC), "09:00")

	found, err := repo.FindOwnedWithTechnician(ctx, ticket.ID, tech.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Technician)
	assert.Equal(t, "mike.rodriguez", found.Technician.Username)

	_, err = repo.FindOwnedWithTechnician(ctx, ticket.ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListByTechnicianOrdersBySchedule(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	techID := uuid.New()
	day1 := time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)
	late := newTicket(t, db, techID, day2, "08:00")
	earlySameDay := newTicket(t, db, techID, day1, "08:00")
	lateSameDay := newTicket(t, db, techID, day1, "14:30")
	newTicket(t, db, uuid.New(), day1, "07:00")

	list, err := repo.ListByTechnician(ctx, techID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, earlySameDay.ID, list[0].ID)
	assert.Equal(t, lateSameDay.ID, list[1].ID)
	assert.Equal(t, late.ID, list[2].ID)
}

func TestRepositoryUpsertWorkLogKeepsSingleRow(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ticket := newTicket(t, db, uuid.New(), time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC), "09:00")

	first := &models.TicketWorkLog{ID: uuid.New(), TicketID: ticket.ID, WorkDescription: "first pass"}
	require.NoError(t, repo.UpsertWorkLog(ctx, first))

	second := &models.TicketWorkLog{ID: uuid.New(), TicketID: ticket.ID, WorkDescription: "second pass"}
	require.NoError(t, repo.UpsertWorkLog(ctx, second))

	saved, err := repo.FindWorkLog(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "second pass", saved.WorkDescription)
	assert.Equal(t, first.ID, saved.ID)

	var count int64
	require.NoError(t, db.Model(&models.TicketWorkLog{}).Where("ticket_id = ?", ticket.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepositoryUpsertSignatureLatestWinsPerSlot(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ticket := newTicket(t, db, uuid.New(), time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC), "09:00")

	require.NoError(t, repo.UpsertSignature(ctx, &models.TicketSignature{
		ID:             uuid.New(),
		TicketID:       ticket.ID,
		Slot:           enums.SignatureSlotCompletion,
		SignedByName:   "Dana Fuller",
		SignatureImage: "data:image/png;base64,AAAA",
	}))
	require.NoError(t, repo.UpsertSignature(ctx, &models.TicketSignature{
		ID:             uuid.New(),
		TicketID:       ticket.ID,
		Slot:           enums.SignatureSlotCompletion,
		SignedByName:   "D. Fuller",
		SignatureImage: "data:image/png;base64,BBBB",
	}))
	require.NoError(t, repo.UpsertSignature(ctx, &models.TicketSignature{
		ID:             uuid.New(),
		TicketID:       ticket.ID,
		Slot:           enums.SignatureSlotStart,
		SignedByName:   "Dana Fuller",
		SignatureImage: "data:image/png;base64,CCCC",
	}))

	sigs, err := repo.ListSignatures(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, sigs, 2)

	bySlot := map[enums.SignatureSlot]models.TicketSignature{}
	for _, sig := range sigs {
		bySlot[sig.Slot] = sig
	}
	assert.Equal(t, "D. Fuller", bySlot[enums.SignatureSlotCompletion].SignedByName)
	assert.Equal(t, "data:image/png;base64,CCCC", bySlot[enums.SignatureSlotStart].SignatureImage)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	ticket := newTicket(t, db, owner, time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC), "09:00")

	require.NoError(t, repo.UpdateStatus(ctx, ticket.ID, enums.TicketStatusInProgress))

	found, err := repo.FindOwned(ctx, ticket.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, enums.TicketStatusInProgress, found.Status)
}

func TestRepositoryDeleteTicketRemovesChildren(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	ticket := newTicket(t, db, owner, time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC), "09:00")

	require.NoError(t, repo.UpsertWorkLog(ctx, &models.TicketWorkLog{
		ID: uuid.New(), TicketID: ticket.ID, WorkDescription: "notes",
	}))
	require.NoError(t, repo.CreateMedia(ctx, []*models.TicketMedia{
		{ID: uuid.New(), TicketID: ticket.ID, MediaType: enums.MediaTypePhoto, FileURL: "/uploads/a.jpg", FilePath: "uploads/a.jpg"},
		{ID: uuid.New(), TicketID: ticket.ID, MediaType: enums.MediaTypeVideo, FileURL: "/uploads/b.mp4", FilePath: "uploads/b.mp4"},
	}))
	require.NoError(t, repo.UpsertSignature(ctx, &models.TicketSignature{
		ID:             uuid.New(),
		TicketID:       ticket.ID,
		Slot:           enums.SignatureSlotCompletion,
		SignedByName:   "Dana Fuller",
		SignatureImage: "data:image/png;base64,AAAA",
	}))

	require.NoError(t, repo.Transaction(ctx, func(tx ticketRepository) error {
		return tx.DeleteTicket(ctx, ticket.ID)
	}))

	_, err := repo.FindOwned(ctx, ticket.ID, owner)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var logs, mediaRows, sigRows int64
	require.NoError(t, db.Model(&models.TicketWorkLog{}).Where("ticket_id = ?", ticket.ID).Count(&logs).Error)
	require.NoError(t, db.Model(&models.TicketMedia{}).Where("ticket_id = ?", ticket.ID).Count(&mediaRows).Error)
	require.NoError(t, db.Model(&models.TicketSignature{}).Where("ticket_id = ?", ticket.ID).Count(&sigRows).Error)
	assert.Zero(t, logs)
	assert.Zero(t, mediaRows)
	assert.Zero(t, sigRows)
}

func TestRepositoryTransactionRollsBackOnError(t *testing.T) {
	db := setupTicketsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ticket := newTicket(t, db, uuid.New(), time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC), "09:00")

	err := repo.Transaction(ctx, func(tx ticketRepository) error {
		if err := tx.UpsertWorkLog(ctx, &models.TicketWorkLog{
			ID: uuid.New(), TicketID: ticket.ID, WorkDescription: "will roll back",
		}); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = repo.FindWorkLog(ctx, ticket.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
