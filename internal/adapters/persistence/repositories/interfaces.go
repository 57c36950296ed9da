package repositories

import (
	"context"
	"time"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/core/domain"
)

// UserRepository defines user repository interface.
// Email lookups are case-insensitive; the email column is the login key.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// BookRepository defines book repository interface
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	UpdateStatus(ctx context.Context, id uint, status domain.BookStatus) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error)
	ListByCategory(ctx context.Context) (map[string][]*models.Book, error)
	ListHomeCovers(ctx context.Context, limit int) ([]*models.Book, error)
	Search(ctx context.Context, query string) ([]*models.Book, error)
	Upsert(ctx context.Context, book *models.Book) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.BookStatus) (int64, error)
}

// LoanRepository defines loan repository interface.
// ConfirmLoan and MarkReturned pair the loan write with the book status flip
// in a single transaction.
type LoanRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	ConfirmLoan(ctx context.Context, loan *models.Loan) error
	MarkReturned(ctx context.Context, id uint, returnedAt time.Time) error
	ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error)
	ListAll(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error)
	ListDuePastDate(ctx context.Context, now time.Time) ([]*models.Loan, error)
	SetStatus(ctx context.Context, id uint, status domain.LoanStatus) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, statuses ...domain.LoanStatus) (int64, error)
	TopBooks(ctx context.Context, limit int) ([]*BookLoanCount, error)
	TopUsers(ctx context.Context, limit int) ([]*UserLoanCount, error)
}

// NotificationRepository defines notification repository interface.
// Reads and writes are always scoped to the owning user.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID uint) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID uint, readAt time.Time) error
	MarkAllRead(ctx context.Context, userID uint, readAt time.Time) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

// BookLoanCount is a report row: how often a book has been loaned
type BookLoanCount struct {
	BookID    uint   `json:"book_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	LoanCount int64  `json:"loan_count"`
}

// UserLoanCount is a report row: how many loans a user has placed
type UserLoanCount struct {
	UserID    uint   `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	LoanCount int64  `json:"loan_count"`
}
