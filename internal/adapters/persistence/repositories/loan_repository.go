package repositories

import (
	"context"
	"time"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/core/domain"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// GetByID gets a loan by ID with borrower and book preloaded
func (r *loanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book").
		Where("id = ?", id).
		First(&loan).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// ConfirmLoan inserts the loan row and flips the book from Available to
// Loaned in one transaction. The status flip is a guarded update; when it
// touches no row the book was not Available and nothing is written.
func (r *loanRepository) ConfirmLoan(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Book{}).
			Where("id = ? AND status = ?", loan.BookID, domain.BookAvailable).
			Update("status", domain.BookLoaned)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrBookUnavailable
		}
		return tx.Create(loan).Error
	})
}

// MarkReturned closes the loan and puts the book back to Available in one
// transaction. Returns ErrLoanAlreadyReturned for a loan that is not open.
func (r *loanRepository) MarkReturned(ctx context.Context, id uint, returnedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var loan models.Loan
		if err := tx.Where("id = ?", id).First(&loan).Error; err != nil {
			return err
		}
		if loan.Status != domain.LoanActive && loan.Status != domain.LoanOverdue {
			return domain.ErrLoanAlreadyReturned
		}

		updates := map[string]interface{}{
			"status":      domain.LoanReturned,
			"return_date": returnedAt,
		}
		if err := tx.Model(&models.Loan{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Model(&models.Book{}).
			Where("id = ? AND status = ?", loan.BookID, domain.BookLoaned).
			Update("status", domain.BookAvailable).Error
	})
}

// ListByUser lists one user's loans, newest first, with books preloaded
func (r *loanRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("loan_date DESC").
		Find(&loans).Error
	return loans, err
}

// ListAll lists loans with pagination, borrowers and books preloaded
func (r *loanRepository) ListAll(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	var loans []*models.Loan
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Loan{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book").
		Offset(offset).Limit(limit).
		Order("loan_date DESC").
		Find(&loans).Error
	if err != nil {
		return nil, 0, err
	}

	return loans, total, nil
}

// ListDuePastDate lists Active loans whose due date has passed
func (r *loanRepository) ListDuePastDate(ctx context.Context, now time.Time) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("status = ? AND due_date < ?", domain.LoanActive, now).
		Find(&loans).Error
	return loans, err
}

// SetStatus updates only the loan status
func (r *loanRepository) SetStatus(ctx context.Context, id uint, status domain.LoanStatus) error {
	return r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Count counts all loans
func (r *loanRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).Count(&count).Error
	return count, err
}

// CountByStatus counts loans in any of the given statuses
func (r *loanRepository) CountByStatus(ctx context.Context, statuses ...domain.LoanStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("status IN ?", statuses).
		Count(&count).Error
	return count, err
}

// TopBooks returns the most-loaned books
func (r *loanRepository) TopBooks(ctx context.Context, limit int) ([]*BookLoanCount, error) {
	var rows []*BookLoanCount
	err := r.db.WithContext(ctx).Table("loans").
		Select("loans.book_id, books.title, books.author, COUNT(*) as loan_count").
		Joins("JOIN books ON books.id = loans.book_id").
		Group("loans.book_id, books.title, books.author").
		Order("loan_count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// TopUsers returns the users with the most loans
func (r *loanRepository) TopUsers(ctx context.Context, limit int) ([]*UserLoanCount, error) {
	var rows []*UserLoanCount
	err := r.db.WithContext(ctx).Table("loans").
		Select("loans.user_id, users.name, users.email, COUNT(*) as loan_count").
		Joins("JOIN users ON users.id = loans.user_id").
		Group("loans.user_id, users.name, users.email").
		Order("loan_count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
