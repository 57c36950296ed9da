package repositories

import (
	"testing"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/core/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory store with the full schema
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

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Jane Doe",
		Email:        email,
		Phone:        "12345678",
		PasswordHash: "x",
		Role:         domain.RoleUser,
		Status:       domain.UserActive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedBook(t *testing.T, db *gorm.DB, title, isbn string, status domain.BookStatus) *models.Book {
	t.Helper()
	book := &models.Book{
		Title:         title,
		Author:        "Some Author",
		ISBN:          isbn,
		Category:      "Fiction",
		Status:        status,
		InventoryCode: "INV-" + isbn,
		DailyFee:      2.5,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}
