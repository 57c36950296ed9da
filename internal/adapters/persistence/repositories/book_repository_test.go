package repositories

import (
	"context"
	"testing"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookSearchMatchesTitleAndAuthor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	seedBook(t, db, "Dune", "isbn-1", domain.BookAvailable)
	tolkien := &models.Book{
		Title: "The Hobbit", Author: "Tolkien", ISBN: "isbn-2",
		Category: "Fantasy", Status: domain.BookAvailable, InventoryCode: "INV-2",
	}
	require.NoError(t, db.Create(tolkien).Error)

	byTitle, err := repo.Search(ctx, "dun")
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Dune", byTitle[0].Title)

	byAuthor, err := repo.Search(ctx, "Tolkien")
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "The Hobbit", byAuthor[0].Title)

	none, err := repo.Search(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBookListByCategory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookRepository(db)

	seedBook(t, db, "A", "isbn-1", domain.BookAvailable)
	seedBook(t, db, "B", "isbn-2", domain.BookAvailable)
	other := &models.Book{
		Title: "C", Author: "X", ISBN: "isbn-3",
		Category: "History", Status: domain.BookAvailable, InventoryCode: "INV-3",
	}
	require.NoError(t, db.Create(other).Error)

	grouped, err := repo.ListByCategory(context.Background())
	require.NoError(t, err)
	assert.Len(t, grouped, 2)
	assert.Len(t, grouped["Fiction"], 2)
	assert.Len(t, grouped["History"], 1)
}

func TestBookUpsertPreservesStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	local := seedBook(t, db, "Dune", "isbn-1", domain.BookLoaned)

	incoming := &models.Book{
		Title: "Dune (revised)", Author: "Herbert", ISBN: "isbn-1",
		Category: "Fiction", Status: domain.BookAvailable,
		InventoryCode: "INV-new", DailyFee: 3.0,
	}
	require.NoError(t, repo.Upsert(ctx, incoming))

	stored, err := repo.GetByID(ctx, local.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune (revised)", stored.Title)
	assert.Equal(t, 3.0, stored.DailyFee)
	// The in-flight loan status must survive the sync
	assert.Equal(t, domain.BookLoaned, stored.Status)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestBookListHomeCovers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBookRepository(db)

	withCover := &models.Book{
		Title: "A", Author: "X", ISBN: "isbn-1", Category: "Fiction",
		Status: domain.BookAvailable, InventoryCode: "INV-1",
		CoverURL: "https://covers/1.jpg", HomeSection: "featured",
	}
	require.NoError(t, db.Create(withCover).Error)
	seedBook(t, db, "B", "isbn-2", domain.BookAvailable) // no cover, no section

	covers, err := repo.ListHomeCovers(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, covers, 1)
	assert.Equal(t, "A", covers[0].Title)
}
