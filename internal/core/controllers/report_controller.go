package controllers

import (
	"context"
	"sync"

	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/core/domain"
)

// DefaultTopN is how many rows the top-books/top-users rankings carry
const DefaultTopN = 5

// StatusSplit is the three-way book status breakdown for chart rendering
type StatusSplit struct {
	Available int64 `json:"available"`
	Loaned    int64 `json:"loaned"`
	Damaged   int64 `json:"damaged"`
}

// ReportState is the immutable reporting snapshot. Rankings are computed
// over the full loan and book tables on every refresh — fine at the data
// volumes this app is meant for.
type ReportState struct {
	TopBooks  []*repositories.BookLoanCount
	TopUsers  []*repositories.UserLoanCount
	Split     StatusSplit
	IsLoading bool
	Error     string
}

// ReportController owns the admin reporting view
type ReportController struct {
	lifetime

	loanRepo repositories.LoanRepository
	bookRepo repositories.BookRepository
	topN     int

	mu    sync.Mutex
	state ReportState
}

// NewReportController creates a new report controller
func NewReportController(loanRepo repositories.LoanRepository, bookRepo repositories.BookRepository) *ReportController {
	return &ReportController{
		lifetime: newLifetime(),
		loanRepo: loanRepo,
		bookRepo: bookRepo,
		topN:     DefaultTopN,
	}
}

// State returns a copy of the current snapshot
func (c *ReportController) State() ReportState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Refresh recomputes the rankings and the status split
func (c *ReportController) Refresh() {
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

		topBooks, err := c.loanRepo.TopBooks(ctx, c.topN)
		keep(err)
		topUsers, err := c.loanRepo.TopUsers(ctx, c.topN)
		keep(err)

		var split StatusSplit
		split.Available, err = c.bookRepo.CountByStatus(ctx, domain.BookAvailable)
		keep(err)
		split.Loaned, err = c.bookRepo.CountByStatus(ctx, domain.BookLoaned)
		keep(err)
		split.Damaged, err = c.bookRepo.CountByStatus(ctx, domain.BookDamaged)
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
		c.state.TopBooks = topBooks
		c.state.TopUsers = topUsers
		c.state.Split = split
	})
}
