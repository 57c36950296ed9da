// Package services holds the background services that run next to the state
// controllers: the overdue sweep and the remote catalog sync. Unlike the
// controllers they own no UI snapshot; their results land in the store and
// the notification inbox.
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// overdueSchedule runs the sweep every morning at 06:00
const overdueSchedule = "0 6 * * *"

// ReminderService flips Active loans past their due date to Overdue and
// drops a REMINDER notification into the borrower's inbox.
type ReminderService struct {
	loanRepo   repositories.LoanRepository
	notifyRepo repositories.NotificationRepository
	cron       *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(loanRepo repositories.LoanRepository, notifyRepo repositories.NotificationRepository) *ReminderService {
	return &ReminderService{
		loanRepo:   loanRepo,
		notifyRepo: notifyRepo,
		cron:       cron.New(),
	}
}

// Start schedules the daily sweep
func (s *ReminderService) Start() error {
	_, err := s.cron.AddFunc(overdueSchedule, func() {
		if _, err := s.SweepOverdue(context.Background(), time.Now()); err != nil {
			log.Printf("❌ Overdue sweep failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("🚀 ReminderService started")
	return nil
}

// Stop stops the scheduler; a running sweep finishes on its own
func (s *ReminderService) Stop() {
	s.cron.Stop()
	log.Println("🛑 ReminderService stopped")
}

// SweepOverdue marks every Active loan past due as Overdue and writes one
// reminder per flipped loan. Returns how many loans were flipped. A failure
// on one loan skips it; the sweep picks it up again on the next run.
func (s *ReminderService) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	loans, err := s.loanRepo.ListDuePastDate(ctx, now)
	if err != nil {
		return 0, err
	}

	flipped := 0
	for _, loan := range loans {
		if err := s.loanRepo.SetStatus(ctx, loan.ID, domain.LoanOverdue); err != nil {
			log.Printf("❌ Failed to flip loan %d to overdue: %v", loan.ID, err)
			continue
		}

		title := "your borrowed book"
		if loan.Book != nil {
			title = fmt.Sprintf("%q", loan.Book.Title)
		}
		loanID := loan.ID
		notification := &models.Notification{
			UserID:  loan.UserID,
			LoanID:  &loanID,
			Title:   "Loan overdue",
			Message: fmt.Sprintf("The loan for %s was due on %s. Please return it.", title, loan.DueDate.Format("2006-01-02")),
			Type:    domain.NotifyReminder,
		}
		if err := s.notifyRepo.Create(ctx, notification); err != nil {
			log.Printf("⚠️ Failed to write overdue reminder for loan %d: %v", loan.ID, err)
		}
		flipped++
	}

	if flipped > 0 {
		log.Printf("📅 Overdue sweep flipped %d loans", flipped)
	}
	return flipped, nil
}
