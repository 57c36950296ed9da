package controllers

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/core/domain"

	"github.com/google/uuid"
)

// adminListLimit bounds the admin list views
const adminListLimit = 200

// AddBookInput carries the new-book form fields
type AddBookInput struct {
	Title       string
	Author      string
	ISBN        string
	CategoryID  uint
	Category    string
	Publisher   string
	PublishDate time.Time
	CoverURL    string
	DailyFee    float64
	HomeSection string
}

// AdminBooksState is the immutable admin book-management snapshot
type AdminBooksState struct {
	Books     []*models.Book
	Total     int64
	IsLoading bool
	FormError string
	Error     string
}

// AdminBookController owns catalog CRUD for the admin role. Every write is
// followed by a list refresh.
type AdminBookController struct {
	lifetime

	bookRepo repositories.BookRepository

	mu    sync.Mutex
	state AdminBooksState
}

// NewAdminBookController creates a new admin book controller
func NewAdminBookController(bookRepo repositories.BookRepository) *AdminBookController {
	return &AdminBookController{
		lifetime: newLifetime(),
		bookRepo: bookRepo,
	}
}

// State returns a copy of the current snapshot
func (c *AdminBookController) State() AdminBooksState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Refresh reloads the book list
func (c *AdminBookController) Refresh() {
	c.mu.Lock()
	c.state.IsLoading = true
	c.mu.Unlock()

	c.launch(func(ctx context.Context) {
		books, total, err := c.bookRepo.List(ctx, 0, adminListLimit)

		c.mu.Lock()
		defer c.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		c.state.IsLoading = false
		if err != nil {
			c.state.Error = errMessage(err)
			return
		}
		c.state.Error = ""
		c.state.Books = books
		c.state.Total = total
	})
}

// AddBook validates the form, creates the book as Available with a fresh
// inventory code, then refreshes the list.
func (c *AdminBookController) AddBook(input AddBookInput) {
	if msg := validateBookInput(input); msg != "" {
		c.mu.Lock()
		c.state.FormError = msg
		c.mu.Unlock()
		return
	}

	c.launch(func(ctx context.Context) {
		book := &models.Book{
			Title:         strings.TrimSpace(input.Title),
			Author:        strings.TrimSpace(input.Author),
			ISBN:          strings.TrimSpace(input.ISBN),
			CategoryID:    input.CategoryID,
			Category:      strings.TrimSpace(input.Category),
			Publisher:     strings.TrimSpace(input.Publisher),
			PublishDate:   input.PublishDate,
			Status:        domain.BookAvailable,
			InventoryCode: "INV-" + uuid.New().String()[:8],
			CoverURL:      input.CoverURL,
			DailyFee:      input.DailyFee,
			HomeSection:   input.HomeSection,
		}

		err := c.bookRepo.Create(ctx, book)

		c.mu.Lock()
		if ctx.Err() != nil {
			c.mu.Unlock()
			return
		}
		if err != nil {
			c.state.FormError = errMessage(err)
			c.mu.Unlock()
			return
		}
		c.state.FormError = ""
		c.mu.Unlock()

		log.Printf("✅ Book added: %s (%s)", book.Title, book.InventoryCode)
		c.Refresh()
	})
}

// DeleteBook removes a book and refreshes the list
func (c *AdminBookController) DeleteBook(id uint) {
	c.launch(func(ctx context.Context) {
		if err := c.bookRepo.Delete(ctx, id); err != nil {
			c.setError(ctx, err)
			return
		}
		log.Printf("🗑️ Book deleted: id=%d", id)
		c.Refresh()
	})
}

// SetBookStatus marks a book Damaged, Retired or back to Available and
// refreshes the list.
func (c *AdminBookController) SetBookStatus(id uint, status domain.BookStatus) {
	c.launch(func(ctx context.Context) {
		if err := c.bookRepo.UpdateStatus(ctx, id, status); err != nil {
			c.setError(ctx, err)
			return
		}
		c.Refresh()
	})
}

// ClearFormError clears the add-book form error
func (c *AdminBookController) ClearFormError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.FormError = ""
}

func (c *AdminBookController) setError(ctx context.Context, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	c.state.Error = errMessage(err)
}

// validateBookInput checks the required new-book fields
func validateBookInput(input AddBookInput) string {
	switch {
	case strings.TrimSpace(input.Title) == "":
		return "Title is required"
	case strings.TrimSpace(input.Author) == "":
		return "Author is required"
	case strings.TrimSpace(input.ISBN) == "":
		return "ISBN is required"
	case strings.TrimSpace(input.Category) == "":
		return "Category is required"
	case input.DailyFee < 0:
		return "Daily fee must not be negative"
	}
	return ""
}
