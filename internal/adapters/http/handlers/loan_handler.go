package handlers

import (
	"errors"
	"fmt"
	"time"

	"bookhive/internal/adapters/http/middleware"
	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/core/domain"
	"bookhive/internal/pkg/pagination"
	"bookhive/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loanRepo   repositories.LoanRepository
	bookRepo   repositories.BookRepository
	notifyRepo repositories.NotificationRepository
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanRepo repositories.LoanRepository, bookRepo repositories.BookRepository, notifyRepo repositories.NotificationRepository) *LoanHandler {
	return &LoanHandler{
		loanRepo:   loanRepo,
		bookRepo:   bookRepo,
		notifyRepo: notifyRepo,
	}
}

// CreateLoanRequest is the borrow payload
type CreateLoanRequest struct {
	BookID uint `json:"book_id"`
	Days   int  `json:"days"`
}

// Create handles POST /api/v1/loans
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var req CreateLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Days < domain.MinLoanDays || req.Days > domain.MaxLoanDays {
		return response.BadRequest(c, fmt.Sprintf("days must be between %d and %d", domain.MinLoanDays, domain.MaxLoanDays))
	}

	book, err := h.bookRepo.GetByID(c.Context(), req.BookID)
	if err != nil {
		return response.NotFound(c, "book not found")
	}

	userID := middleware.UserID(c)
	now := time.Now()
	loan := &models.Loan{
		UserID:   userID,
		BookID:   book.ID,
		LoanDate: now,
		DueDate:  now.AddDate(0, 0, req.Days),
		Status:   domain.LoanActive,
		Price:    float64(req.Days) * book.DailyFee,
	}

	// ConfirmLoan flips the book to Loaned and inserts the row in one
	// transaction; a copy grabbed in between surfaces as unavailable.
	if err := h.loanRepo.ConfirmLoan(c.Context(), loan); err != nil {
		if errors.Is(err, domain.ErrBookUnavailable) {
			return response.Conflict(c, domain.ErrBookUnavailable.Error())
		}
		return response.InternalServerError(c, "failed to confirm loan")
	}

	loanID := loan.ID
	notification := &models.Notification{
		UserID:  userID,
		LoanID:  &loanID,
		Title:   "Loan confirmed",
		Message: fmt.Sprintf("You borrowed %q until %s.", book.Title, loan.DueDate.Format("2006-01-02")),
		Type:    domain.NotifyInfo,
	}
	// Best effort; the loan stands even if the inbox write fails
	_ = h.notifyRepo.Create(c.Context(), notification)

	return response.Created(c, "Loan confirmed", loan.ToResponse())
}

// ListMine handles GET /api/v1/loans/me
func (h *LoanHandler) ListMine(c *fiber.Ctx) error {
	loans, err := h.loanRepo.ListByUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return response.InternalServerError(c, "failed to list loans")
	}

	out := make([]*models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		out = append(out, loan.ToResponse())
	}
	return response.Success(c, "", out)
}

// ListAll handles GET /api/v1/admin/loans
func (h *LoanHandler) ListAll(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	loans, total, err := h.loanRepo.ListAll(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "failed to list loans")
	}

	out := make([]*models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		out = append(out, loan.ToResponse())
	}
	return response.Paginated(c, out, pagination.GetMeta(params, total))
}

// MarkReturned handles PATCH /api/v1/admin/loans/:id/return
func (h *LoanHandler) MarkReturned(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid loan id")
	}

	if err := h.loanRepo.MarkReturned(c.Context(), uint(id), time.Now()); err != nil {
		if errors.Is(err, domain.ErrLoanAlreadyReturned) {
			return response.Conflict(c, domain.ErrLoanAlreadyReturned.Error())
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "loan not found")
		}
		return response.InternalServerError(c, "failed to mark loan returned")
	}
	return response.Success(c, "Loan returned", nil)
}
