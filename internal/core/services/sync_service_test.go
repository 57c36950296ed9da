package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/adapters/remote"
	"bookhive/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncCatalog(t *testing.T) {
	db := setupTestDB(t)

	// A local copy of isbn-1 is out on loan; the sync must not flip it back
	local := &models.Book{
		Title: "Old Title", Author: "Herbert", ISBN: "isbn-1",
		Category: "Fiction", Status: domain.BookLoaned, InventoryCode: "INV-1",
	}
	require.NoError(t, db.Create(local).Error)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/books", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": []map[string]interface{}{
				{"title": "Dune", "author": "Herbert", "isbn": "isbn-1", "category": "Fiction", "daily_fee": 2.5},
				{"title": "Hyperion", "author": "Simmons", "isbn": "isbn-2", "category": "Fiction", "daily_fee": 1.5},
			},
		})
	}))
	defer server.Close()

	client := remote.NewClient(server.URL, func() string { return "tok-1" })
	svc := NewSyncService(remote.NewBookGateway(client), repositories.NewBookRepository(db))

	synced, err := svc.SyncCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, synced)

	var updated models.Book
	require.NoError(t, db.Where("isbn = ?", "isbn-1").First(&updated).Error)
	assert.Equal(t, "Dune", updated.Title)
	assert.Equal(t, domain.BookLoaned, updated.Status, "local loan status survives the sync")

	var fresh models.Book
	require.NoError(t, db.Where("isbn = ?", "isbn-2").First(&fresh).Error)
	assert.Equal(t, "Hyperion", fresh.Title)
	assert.Equal(t, domain.BookAvailable, fresh.Status)
}

func TestSyncCatalogRemoteDown(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.Book{
		Title: "Kept", Author: "X", ISBN: "isbn-1",
		Category: "Fiction", Status: domain.BookAvailable, InventoryCode: "INV-1",
	}).Error)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := remote.NewClient(server.URL, func() string { return "" })
	svc := NewSyncService(remote.NewBookGateway(client), repositories.NewBookRepository(db))

	_, err := svc.SyncCatalog(context.Background())
	require.Error(t, err)

	// The local catalog is untouched on failure
	var count int64
	require.NoError(t, db.Model(&models.Book{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
