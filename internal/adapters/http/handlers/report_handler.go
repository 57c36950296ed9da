package handlers

import (
	"strconv"

	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/core/domain"
	"bookhive/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// maxTopN caps the top-N report size
const maxTopN = 50

// ReportHandler handles admin report endpoints
type ReportHandler struct {
	userRepo repositories.UserRepository
	bookRepo repositories.BookRepository
	loanRepo repositories.LoanRepository
}

// NewReportHandler creates a new report handler
func NewReportHandler(userRepo repositories.UserRepository, bookRepo repositories.BookRepository, loanRepo repositories.LoanRepository) *ReportHandler {
	return &ReportHandler{
		userRepo: userRepo,
		bookRepo: bookRepo,
		loanRepo: loanRepo,
	}
}

// Summary handles GET /api/v1/admin/reports/summary
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	ctx := c.Context()

	totalBooks, err := h.bookRepo.Count(ctx)
	if err != nil {
		return response.InternalServerError(c, "failed to count books")
	}
	totalUsers, err := h.userRepo.Count(ctx)
	if err != nil {
		return response.InternalServerError(c, "failed to count users")
	}
	activeLoans, err := h.loanRepo.CountByStatus(ctx, domain.LoanActive, domain.LoanOverdue)
	if err != nil {
		return response.InternalServerError(c, "failed to count active loans")
	}
	totalLoans, err := h.loanRepo.Count(ctx)
	if err != nil {
		return response.InternalServerError(c, "failed to count loans")
	}

	return response.Success(c, "", fiber.Map{
		"total_books":  totalBooks,
		"total_users":  totalUsers,
		"active_loans": activeLoans,
		"total_loans":  totalLoans,
	})
}

// TopBooks handles GET /api/v1/admin/reports/top-books
func (h *ReportHandler) TopBooks(c *fiber.Ctx) error {
	rows, err := h.loanRepo.TopBooks(c.Context(), topN(c))
	if err != nil {
		return response.InternalServerError(c, "failed to compute top books")
	}
	return response.Success(c, "", rows)
}

// TopUsers handles GET /api/v1/admin/reports/top-users
func (h *ReportHandler) TopUsers(c *fiber.Ctx) error {
	rows, err := h.loanRepo.TopUsers(c.Context(), topN(c))
	if err != nil {
		return response.InternalServerError(c, "failed to compute top users")
	}
	return response.Success(c, "", rows)
}

// StatusSplit handles GET /api/v1/admin/reports/status-split
func (h *ReportHandler) StatusSplit(c *fiber.Ctx) error {
	ctx := c.Context()

	available, err := h.bookRepo.CountByStatus(ctx, domain.BookAvailable)
	if err != nil {
		return response.InternalServerError(c, "failed to count available books")
	}
	loaned, err := h.bookRepo.CountByStatus(ctx, domain.BookLoaned)
	if err != nil {
		return response.InternalServerError(c, "failed to count loaned books")
	}
	damaged, err := h.bookRepo.CountByStatus(ctx, domain.BookDamaged)
	if err != nil {
		return response.InternalServerError(c, "failed to count damaged books")
	}

	return response.Success(c, "", fiber.Map{
		"available": available,
		"loaned":    loaned,
		"damaged":   damaged,
	})
}

func topN(c *fiber.Ctx) int {
	n, _ := strconv.Atoi(c.Query("limit", "5"))
	if n < 1 {
		n = 5
	}
	if n > maxTopN {
		n = maxTopN
	}
	return n
}
