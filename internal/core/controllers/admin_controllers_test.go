package controllers

import (
	"testing"
	"time"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedLoan(t *testing.T, db *gorm.DB, userID, bookID uint, status domain.LoanStatus) *models.Loan {
	t.Helper()
	now := time.Now()
	loan := &models.Loan{
		UserID:   userID,
		BookID:   bookID,
		LoanDate: now,
		DueDate:  now.AddDate(0, 0, 7),
		Status:   status,
		Price:    14,
	}
	require.NoError(t, db.Create(loan).Error)
	return loan
}

func TestDashboardRefreshCounts(t *testing.T) {
	db := setupTestDB(t)
	user := seedAccount(t, db, "jane@gmail.com", "Abcdef1!", domain.RoleUser, domain.UserActive)
	b1 := seedBook(t, db, "A", "isbn-1", domain.BookLoaned)
	b2 := seedBook(t, db, "B", "isbn-2", domain.BookLoaned)
	b3 := seedBook(t, db, "C", "isbn-3", domain.BookAvailable)

	seedLoan(t, db, user.ID, b1.ID, domain.LoanActive)
	seedLoan(t, db, user.ID, b2.ID, domain.LoanOverdue)
	seedLoan(t, db, user.ID, b3.ID, domain.LoanReturned)

	c := NewAdminDashboardController(
		repositories.NewBookRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewLoanRepository(db))
	defer c.Close()

	c.Refresh()
	require.Eventually(t, func() bool {
		return c.State().TotalLoans == 3
	}, waitFor, tick)

	state := c.State()
	assert.EqualValues(t, 3, state.TotalBooks)
	assert.EqualValues(t, 1, state.TotalUsers)
	assert.EqualValues(t, 2, state.ActiveLoans, "active plus overdue")
	assert.Empty(t, state.Error)
}

func TestAdminBookAddAndDelete(t *testing.T) {
	db := setupTestDB(t)
	c := NewAdminBookController(repositories.NewBookRepository(db))
	defer c.Close()

	c.AddBook(AddBookInput{
		Title:    "Dune",
		Author:   "Frank Herbert",
		ISBN:     "isbn-1",
		Category: "Fiction",
		DailyFee: 2.0,
	})

	require.Eventually(t, func() bool {
		return len(c.State().Books) == 1
	}, waitFor, tick)

	book := c.State().Books[0]
	assert.Equal(t, domain.BookAvailable, book.Status)
	assert.NotEmpty(t, book.InventoryCode)

	c.DeleteBook(book.ID)
	require.Eventually(t, func() bool {
		return len(c.State().Books) == 0
	}, waitFor, tick)
}

func TestAdminBookAddRejectsBadInput(t *testing.T) {
	db := setupTestDB(t)
	c := NewAdminBookController(repositories.NewBookRepository(db))
	defer c.Close()

	c.AddBook(AddBookInput{Author: "No Title", ISBN: "x", Category: "Fiction"})
	assert.NotEmpty(t, c.State().FormError)

	var count int64
	require.NoError(t, db.Model(&models.Book{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	c.ClearFormError()
	assert.Empty(t, c.State().FormError)
}

func TestAdminBookSetStatus(t *testing.T) {
	db := setupTestDB(t)
	book := seedBook(t, db, "Dune", "isbn-1", domain.BookAvailable)

	c := NewAdminBookController(repositories.NewBookRepository(db))
	defer c.Close()

	c.SetBookStatus(book.ID, domain.BookDamaged)
	require.Eventually(t, func() bool {
		books := c.State().Books
		return len(books) == 1 && books[0].Status == domain.BookDamaged
	}, waitFor, tick)
}

func TestAdminLoanRefreshAndMarkReturned(t *testing.T) {
	db := setupTestDB(t)
	user := seedAccount(t, db, "jane@gmail.com", "Abcdef1!", domain.RoleUser, domain.UserActive)
	book := seedBook(t, db, "Dune", "isbn-1", domain.BookLoaned)
	loan := seedLoan(t, db, user.ID, book.ID, domain.LoanActive)

	c := NewAdminLoanController(repositories.NewLoanRepository(db))
	defer c.Close()

	c.Refresh()
	require.Eventually(t, func() bool {
		return len(c.State().Loans) == 1
	}, waitFor, tick)

	// Borrower and book info ride along for the oversight table
	row := c.State().Loans[0]
	assert.Equal(t, "Jane Doe", row.UserName)
	assert.Equal(t, "Dune", row.BookTitle)

	c.MarkReturned(loan.ID)
	require.Eventually(t, func() bool {
		loans := c.State().Loans
		return len(loans) == 1 && loans[0].Status == domain.LoanReturned
	}, waitFor, tick)

	var stored models.Book
	require.NoError(t, db.First(&stored, book.ID).Error)
	assert.Equal(t, domain.BookAvailable, stored.Status)
}

func TestAdminLoadUserLoans(t *testing.T) {
	db := setupTestDB(t)
	jane := seedAccount(t, db, "jane@gmail.com", "Abcdef1!", domain.RoleUser, domain.UserActive)
	john := seedAccount(t, db, "john@gmail.com", "Abcdef1!", domain.RoleUser, domain.UserActive)
	book := seedBook(t, db, "Dune", "isbn-1", domain.BookLoaned)
	seedLoan(t, db, jane.ID, book.ID, domain.LoanActive)

	c := NewAdminLoanController(repositories.NewLoanRepository(db))
	defer c.Close()

	c.LoadUserLoans(jane.ID)
	require.Eventually(t, func() bool {
		state := c.UserLoansState()
		return !state.IsLoading && len(state.Loans) == 1
	}, waitFor, tick)

	c.LoadUserLoans(john.ID)
	require.Eventually(t, func() bool {
		state := c.UserLoansState()
		return state.UserID == john.ID && !state.IsLoading
	}, waitFor, tick)
	assert.Empty(t, c.UserLoansState().Loans)
}

func TestAdminUserBlockAndRole(t *testing.T) {
	db := setupTestDB(t)
	user := seedAccount(t, db, "jane@gmail.com", "Abcdef1!", domain.RoleUser, domain.UserActive)

	c := NewAdminUserController(repositories.NewUserRepository(db))
	defer c.Close()

	c.SetUserStatus(user.ID, domain.UserBlocked)
	require.Eventually(t, func() bool {
		users := c.State().Users
		return len(users) == 1 && users[0].Status == domain.UserBlocked
	}, waitFor, tick)

	c.SetUserRole(user.ID, domain.RoleAdmin)
	require.Eventually(t, func() bool {
		users := c.State().Users
		return len(users) == 1 && users[0].Role == domain.RoleAdmin
	}, waitFor, tick)
}

func TestReportRefresh(t *testing.T) {
	db := setupTestDB(t)
	user := seedAccount(t, db, "jane@gmail.com", "Abcdef1!", domain.RoleUser, domain.UserActive)
	popular := seedBook(t, db, "Popular", "isbn-1", domain.BookLoaned)
	seedBook(t, db, "Shelf", "isbn-2", domain.BookAvailable)
	seedBook(t, db, "Broken", "isbn-3", domain.BookDamaged)

	seedLoan(t, db, user.ID, popular.ID, domain.LoanReturned)
	seedLoan(t, db, user.ID, popular.ID, domain.LoanActive)

	c := NewReportController(
		repositories.NewLoanRepository(db),
		repositories.NewBookRepository(db))
	defer c.Close()

	c.Refresh()
	require.Eventually(t, func() bool {
		return len(c.State().TopBooks) > 0
	}, waitFor, tick)

	state := c.State()
	assert.Equal(t, popular.ID, state.TopBooks[0].BookID)
	assert.EqualValues(t, 2, state.TopBooks[0].LoanCount)
	assert.Equal(t, user.ID, state.TopUsers[0].UserID)
	assert.EqualValues(t, 1, state.Split.Available)
	assert.EqualValues(t, 1, state.Split.Loaned)
	assert.EqualValues(t, 1, state.Split.Damaged)
}
