package repositories

import (
	"context"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// bookRepository implements BookRepository interface
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create creates a new book
func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// GetByID gets a book by ID
func (r *bookRepository) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Update updates a book
func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

// UpdateStatus updates only the status column
func (r *bookRepository) UpdateStatus(ctx context.Context, id uint, status domain.BookStatus) error {
	return r.db.WithContext(ctx).Model(&models.Book{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete hard deletes a book; loans cascade per schema
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Book{}, id).Error
}

// List lists books with pagination
func (r *bookRepository) List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error) {
	var books []*models.Book
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Order("title").Find(&books).Error; err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

// ListByCategory returns all books grouped by category name
func (r *bookRepository) ListByCategory(ctx context.Context) (map[string][]*models.Book, error) {
	var books []*models.Book
	err := r.db.WithContext(ctx).Order("category, title").Find(&books).Error
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]*models.Book)
	for _, b := range books {
		grouped[b.Category] = append(grouped[b.Category], b)
	}
	return grouped, nil
}

// ListHomeCovers returns the books shown in the home cover rotation
func (r *bookRepository) ListHomeCovers(ctx context.Context, limit int) ([]*models.Book, error) {
	var books []*models.Book
	err := r.db.WithContext(ctx).
		Where("home_section <> '' AND cover_url <> ''").
		Order("id").
		Limit(limit).
		Find(&books).Error
	return books, err
}

// Search finds books whose title or author contains the query
func (r *bookRepository) Search(ctx context.Context, query string) ([]*models.Book, error) {
	var books []*models.Book
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("title LIKE ? OR author LIKE ?", pattern, pattern).
		Order("title").
		Find(&books).Error
	return books, err
}

// Upsert inserts a book or updates the existing row with the same ISBN.
// Used by the catalog sync; status is left alone so a local loan flip
// survives a refresh from the remote catalog.
func (r *bookRepository) Upsert(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "isbn"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "author", "category_id", "category", "publisher",
			"publish_date", "cover_url", "daily_fee", "home_section",
		}),
	}).Create(book).Error
}

// Count counts all books
func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&count).Error
	return count, err
}

// CountByStatus counts books in one status
func (r *bookRepository) CountByStatus(ctx context.Context, status domain.BookStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
