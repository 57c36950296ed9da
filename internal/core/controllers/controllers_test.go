package controllers

import (
	"path/filepath"
	"testing"
	"time"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/config"
	"bookhive/internal/core/domain"
	"bookhive/internal/pkg/password"
	"bookhive/internal/pkg/prefs"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// waitFor is the ceiling for async state folds in tests
const waitFor = 3 * time.Second

const tick = 10 * time.Millisecond

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

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test_secret",
			SessionTokenMins: 60,
		},
	}
}

func testPrefs(t *testing.T) *prefs.Store {
	t.Helper()
	store, err := prefs.Open(filepath.Join(t.TempDir(), "prefs.json"))
	require.NoError(t, err)
	return store
}

// seedAccount stores a user with a real bcrypt hash for login tests
func seedAccount(t *testing.T, db *gorm.DB, email, plain string, role domain.Role, status domain.UserStatus) *models.User {
	t.Helper()
	hash, err := password.Hash(plain)
	require.NoError(t, err)

	user := &models.User{
		Name:         "Jane Doe",
		Email:        email,
		Phone:        "12345678",
		PasswordHash: hash,
		Role:         role,
		Status:       status,
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
		DailyFee:      2.0,
		CoverURL:      "https://covers/" + isbn + ".jpg",
		HomeSection:   "featured",
	}
	require.NoError(t, db.Create(book).Error)
	return book
}
