package controllers

import (
	"context"
	"sync"

	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/core/domain"
)

// DashboardState is the immutable admin dashboard snapshot. The four counts
// come from independent queries, recomputed on every refresh — nothing is
// cached.
type DashboardState struct {
	TotalBooks  int64
	TotalUsers  int64
	ActiveLoans int64
	TotalLoans  int64
	IsLoading   bool
	Error       string
}

// AdminDashboardController owns the read-only aggregate counts
type AdminDashboardController struct {
	lifetime

	bookRepo repositories.BookRepository
	userRepo repositories.UserRepository
	loanRepo repositories.LoanRepository

	mu    sync.Mutex
	state DashboardState
}

// NewAdminDashboardController creates a new dashboard controller
func NewAdminDashboardController(
	bookRepo repositories.BookRepository,
	userRepo repositories.UserRepository,
	loanRepo repositories.LoanRepository,
) *AdminDashboardController {
	return &AdminDashboardController{
		lifetime: newLifetime(),
		bookRepo: bookRepo,
		userRepo: userRepo,
		loanRepo: loanRepo,
	}
}

// State returns a copy of the current dashboard snapshot
func (c *AdminDashboardController) State() DashboardState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Refresh recomputes all counts
func (c *AdminDashboardController) Refresh() {
	c.mu.Lock()
	c.state.IsLoading = true
	c.mu.Unlock()

	c.launch(func(ctx context.Context) {
		var firstErr error
		keep := func(err error) {
			if err != nil && firstErr == nil {
				firstErr = err
			}
		}

		books, err := c.bookRepo.Count(ctx)
		keep(err)
		users, err := c.userRepo.Count(ctx)
		keep(err)
		active, err := c.loanRepo.CountByStatus(ctx, domain.LoanActive, domain.LoanOverdue)
		keep(err)
		loans, err := c.loanRepo.Count(ctx)
		keep(err)

		c.mu.Lock()
		defer c.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		c.state.IsLoading = false
		if firstErr != nil {
			c.state.Error = errMessage(firstErr)
			return
		}
		c.state.Error = ""
		c.state.TotalBooks = books
		c.state.TotalUsers = users
		c.state.ActiveLoans = active
		c.state.TotalLoans = loans
	})
}
