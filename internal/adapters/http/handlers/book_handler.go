package handlers

import (
	"time"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/core/domain"
	"bookhive/internal/pkg/pagination"
	"bookhive/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// BookHandler handles catalog endpoints
type BookHandler struct {
	bookRepo repositories.BookRepository
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookRepo repositories.BookRepository) *BookHandler {
	return &BookHandler{bookRepo: bookRepo}
}

// List handles GET /api/v1/books
func (h *BookHandler) List(c *fiber.Ctx) error {
	// Search short-circuits pagination; results are small by design
	if query := c.Query("q"); query != "" {
		books, err := h.bookRepo.Search(c.Context(), query)
		if err != nil {
			return response.InternalServerError(c, "failed to search books")
		}
		return response.Success(c, "", books)
	}

	params := pagination.GetParams(c)
	books, total, err := h.bookRepo.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "failed to list books")
	}

	return response.Paginated(c, books, pagination.GetMeta(params, total))
}

// Get handles GET /api/v1/books/:id
func (h *BookHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid book id")
	}

	book, err := h.bookRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "book not found")
	}
	return response.Success(c, "", book)
}

// Sections handles GET /api/v1/books/sections
func (h *BookHandler) Sections(c *fiber.Ctx) error {
	sections, err := h.bookRepo.ListByCategory(c.Context())
	if err != nil {
		return response.InternalServerError(c, "failed to list sections")
	}
	return response.Success(c, "", sections)
}

// CreateBookRequest is the admin book creation payload
type CreateBookRequest struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	ISBN        string  `json:"isbn"`
	CategoryID  uint    `json:"category_id"`
	Category    string  `json:"category"`
	Publisher   string  `json:"publisher"`
	PublishDate string  `json:"publish_date"`
	CoverURL    string  `json:"cover_url"`
	DailyFee    float64 `json:"daily_fee"`
	HomeSection string  `json:"home_section"`
}

// Create handles POST /api/v1/admin/books
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var req CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Title == "" || req.Author == "" {
		return response.BadRequest(c, "title and author are required")
	}
	if req.DailyFee < 0 {
		return response.BadRequest(c, "daily fee must not be negative")
	}

	publishDate, _ := time.Parse("2006-01-02", req.PublishDate)
	book := &models.Book{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		CategoryID:    req.CategoryID,
		Category:      req.Category,
		Publisher:     req.Publisher,
		PublishDate:   publishDate,
		Status:        domain.BookAvailable,
		InventoryCode: "INV-" + uuid.New().String()[:8],
		CoverURL:      req.CoverURL,
		DailyFee:      req.DailyFee,
		HomeSection:   req.HomeSection,
	}
	if err := h.bookRepo.Create(c.Context(), book); err != nil {
		return response.InternalServerError(c, "failed to create book")
	}

	return response.Created(c, "Book created", book)
}

// UpdateStatusRequest is the admin status change payload
type UpdateStatusRequest struct {
	Status domain.BookStatus `json:"status"`
}

// UpdateStatus handles PATCH /api/v1/admin/books/:id/status
func (h *BookHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid book id")
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	switch req.Status {
	case domain.BookAvailable, domain.BookLoaned, domain.BookDamaged, domain.BookRetired:
	default:
		return response.BadRequest(c, "invalid book status")
	}

	if err := h.bookRepo.UpdateStatus(c.Context(), uint(id), req.Status); err != nil {
		return response.InternalServerError(c, "failed to update status")
	}
	return response.Success(c, "Status updated", nil)
}

// Delete handles DELETE /api/v1/admin/books/:id
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid book id")
	}

	if err := h.bookRepo.Delete(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "failed to delete book")
	}
	return response.Success(c, "Book deleted", nil)
}
