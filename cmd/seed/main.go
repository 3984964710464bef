// Seeds the database with demo technicians and tickets for local development.
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm/clause"

	"github.com/fieldtechhq/fieldserve-backend/pkg/config"
	"github.com/fieldtechhq/fieldserve-backend/pkg/db"
	"github.com/fieldtechhq/fieldserve-backend/pkg/db/models"
	"github.com/fieldtechhq/fieldserve-backend/pkg/enums"
	"github.com/fieldtechhq/fieldserve-backend/pkg/logger"
	"github.com/fieldtechhq/fieldserve-backend/pkg/security"
)

const demoPassword = "password123"

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	if cfg.App.IsProd() {
		logg.Warn(ctx, "refusing to seed a prod environment")
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	hash, err := security.HashPassword(demoPassword, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash demo password", err)
		os.Exit(1)
	}

	gdb := dbClient.DB().WithContext(ctx)

	phone1 := "555-0101"
	phone2 := "555-0102"
	techs := []*models.Technician{
		{
			Name:         "Mike Rodriguez",
			Username:     "mike.rodriguez",
			PasswordHash: hash,
			Email:        "mike.rodriguez@fieldserve.dev",
			Phone:        &phone1,
			Role:         "technician",
		},
		{
			Name:         "Sarah Johnson",
			Username:     "sarah.johnson",
			PasswordHash: hash,
			Email:        "sarah.johnson@fieldserve.dev",
			Phone:        &phone2,
			Role:         "technician",
		},
	}
	for _, tech := range techs {
		err := gdb.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoNothing: true,
		}).Create(tech).Error
		if err != nil {
			logg.Error(ctx, "failed to seed technician", err)
			os.Exit(1)
		}
		if tech.ID == uuid.Nil {
			// row existed already, load it so tickets attach to the right id
			if err := gdb.Where("username = ?", tech.Username).First(tech).Error; err != nil {
				logg.Error(ctx, "failed to load seeded technician", err)
				os.Exit(1)
			}
		}
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	customerPhone := "555-0199"
	seedTickets := []*models.Ticket{
		{
			TicketNumber:    "TKT-2025-001",
			TechnicianID:    techs[0].ID,
			CustomerName:    "Dana Fuller",
			CustomerAddress: "42 Harbor Rd, Portsmouth",
			CustomerPhone:   &customerPhone,
			JobLocation:     "Basement utility room",
			WorkToDo:        "Replace water heater element and flush tank",
			ScheduledDate:   today,
			ScheduledTime:   "09:00",
			Status:          enums.TicketStatusAssigned,
		},
		{
			TicketNumber:    "TKT-2025-002",
			TechnicianID:    techs[0].ID,
			CustomerName:    "Luis Ortega",
			CustomerAddress: "18 Mill Street, Dover",
			JobLocation:     "Rooftop HVAC unit 3",
			WorkToDo:        "Quarterly maintenance and filter swap",
			ScheduledDate:   today,
			ScheduledTime:   "13:30",
			Status:          enums.TicketStatusInProgress,
		},
		{
			TicketNumber:    "TKT-2025-003",
			TechnicianID:    techs[1].ID,
			CustomerName:    "Priya Natarajan",
			CustomerAddress: "7 Beacon Ave, Exeter",
			JobLocation:     "Garage electrical panel",
			WorkToDo:        "Diagnose tripping breaker on circuit 12",
			ScheduledDate:   today.AddDate(0, 0, 1),
			ScheduledTime:   "08:15",
			Status:          enums.TicketStatusAssigned,
		},
	}
	for _, ticket := range seedTickets {
		err := gdb.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ticket_number"}},
			DoNothing: true,
		}).Create(ticket).Error
		if err != nil {
			logg.Error(ctx, "failed to seed ticket", err)
			os.Exit(1)
		}
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"technicians": len(techs),
		"tickets":     len(seedTickets),
	})
	logg.Info(ctx, "seed completed")
}
