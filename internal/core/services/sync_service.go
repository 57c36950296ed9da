package services

import (
	"context"
	"log"
	"time"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/adapters/remote"
	"bookhive/internal/core/domain"

	"github.com/google/uuid"
)

// SyncService pulls the catalog from the remote book service and upserts it
// into the local store. Remote failure leaves the local catalog untouched;
// callers surface the error as a message and keep rendering local data.
type SyncService struct {
	books    *remote.BookGateway
	bookRepo repositories.BookRepository
}

// NewSyncService creates a new sync service
func NewSyncService(books *remote.BookGateway, bookRepo repositories.BookRepository) *SyncService {
	return &SyncService{
		books:    books,
		bookRepo: bookRepo,
	}
}

// SyncCatalog fetches the remote catalog and upserts every row by ISBN.
// Local book status is preserved so an in-flight loan survives the refresh.
// Returns how many rows were synced.
func (s *SyncService) SyncCatalog(ctx context.Context) (int, error) {
	dtos, err := s.books.ListBooks(ctx)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, dto := range dtos {
		book := dtoToBook(dto)
		if err := s.bookRepo.Upsert(ctx, book); err != nil {
			log.Printf("⚠️ Failed to upsert book %q: %v", dto.Title, err)
			continue
		}
		synced++
	}

	log.Printf("✅ Catalog sync: %d of %d books upserted", synced, len(dtos))
	return synced, nil
}

func dtoToBook(dto remote.BookDTO) *models.Book {
	publishDate, _ := time.Parse("2006-01-02", dto.PublishDate)
	return &models.Book{
		Title:         dto.Title,
		Author:        dto.Author,
		ISBN:          dto.ISBN,
		CategoryID:    dto.CategoryID,
		Category:      dto.Category,
		Publisher:     dto.Publisher,
		PublishDate:   publishDate,
		Status:        domain.BookAvailable,
		InventoryCode: "INV-" + uuid.New().String()[:8],
		CoverURL:      dto.CoverURL,
		DailyFee:      dto.DailyFee,
		HomeSection:   dto.HomeSection,
	}
}
