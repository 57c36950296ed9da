package services

import (
	"context"
	"testing"
	"time"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func seedLoanDue(t *testing.T, db *gorm.DB, userID, bookID uint, due time.Time, status domain.LoanStatus) *models.Loan {
	t.Helper()
	loan := &models.Loan{
		UserID:   userID,
		BookID:   bookID,
		LoanDate: due.AddDate(0, 0, -7),
		DueDate:  due,
		Status:   status,
	}
	require.NoError(t, db.Create(loan).Error)
	return loan
}

func TestSweepOverdue(t *testing.T) {
	db := setupTestDB(t)

	user := &models.User{Name: "Jane Doe", Email: "jane@gmail.com", PasswordHash: "x", Role: domain.RoleUser, Status: domain.UserActive}
	require.NoError(t, db.Create(user).Error)
	book := &models.Book{Title: "Dune", Author: "Herbert", ISBN: "isbn-1", Category: "Fiction", Status: domain.BookLoaned, InventoryCode: "INV-1"}
	require.NoError(t, db.Create(book).Error)
	onTime := &models.Book{Title: "Later", Author: "X", ISBN: "isbn-2", Category: "Fiction", Status: domain.BookLoaned, InventoryCode: "INV-2"}
	require.NoError(t, db.Create(onTime).Error)

	now := time.Now()
	overdue := seedLoanDue(t, db, user.ID, book.ID, now.AddDate(0, 0, -2), domain.LoanActive)
	current := seedLoanDue(t, db, user.ID, onTime.ID, now.AddDate(0, 0, 5), domain.LoanActive)

	svc := NewReminderService(
		repositories.NewLoanRepository(db),
		repositories.NewNotificationRepository(db))

	flipped, err := svc.SweepOverdue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, flipped)

	var stored models.Loan
	require.NoError(t, db.First(&stored, overdue.ID).Error)
	assert.Equal(t, domain.LoanOverdue, stored.Status)

	stored = models.Loan{}
	require.NoError(t, db.First(&stored, current.ID).Error)
	assert.Equal(t, domain.LoanActive, stored.Status)

	// One reminder landed in the borrower's inbox
	var reminders []*models.Notification
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&reminders).Error)
	require.Len(t, reminders, 1)
	assert.Equal(t, domain.NotifyReminder, reminders[0].Type)
	require.NotNil(t, reminders[0].LoanID)
	assert.Equal(t, overdue.ID, *reminders[0].LoanID)

	// A second sweep finds nothing left to flip
	flipped, err = svc.SweepOverdue(context.Background(), now)
	require.NoError(t, err)
	assert.Zero(t, flipped)
}
