package controllers

import (
	"context"
	"log"
	"sync"
	"time"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/adapters/persistence/repositories"
)

// AdminLoansState is the immutable loan-oversight snapshot
type AdminLoansState struct {
	Loans     []*models.LoanResponse
	Total     int64
	IsLoading bool
	Error     string
}

// UserLoansState is the per-user loan detail sub-state
type UserLoansState struct {
	UserID    uint
	Loans     []*models.LoanResponse
	IsLoading bool
	Error     string
}

// AdminLoanController owns loan oversight for the admin role: the full loan
// list, the mark-returned transition and the per-user detail lookup.
type AdminLoanController struct {
	lifetime

	loanRepo repositories.LoanRepository

	mu        sync.Mutex
	state     AdminLoansState
	userLoans UserLoansState
}

// NewAdminLoanController creates a new admin loan controller
func NewAdminLoanController(loanRepo repositories.LoanRepository) *AdminLoanController {
	return &AdminLoanController{
		lifetime: newLifetime(),
		loanRepo: loanRepo,
	}
}

// State returns a copy of the loan list snapshot
func (c *AdminLoanController) State() AdminLoansState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// UserLoansState returns a copy of the per-user detail snapshot
func (c *AdminLoanController) UserLoansState() UserLoansState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userLoans
}

// Refresh reloads the loan list with borrower and book info
func (c *AdminLoanController) Refresh() {
	c.mu.Lock()
	c.state.IsLoading = true
	c.mu.Unlock()

	c.launch(func(ctx context.Context) {
		loans, total, err := c.loanRepo.ListAll(ctx, 0, adminListLimit)

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
		c.state.Loans = toLoanResponses(loans)
		c.state.Total = total
	})
}

// MarkReturned closes a loan (return date set, book back to Available, both
// in one transaction) and refreshes the list.
func (c *AdminLoanController) MarkReturned(loanID uint) {
	c.launch(func(ctx context.Context) {
		if err := c.loanRepo.MarkReturned(ctx, loanID, time.Now()); err != nil {
			c.setError(ctx, err)
			return
		}
		log.Printf("✅ Loan marked returned: id=%d", loanID)
		c.Refresh()
	})
}

// LoadUserLoans loads the loan history of one user
func (c *AdminLoanController) LoadUserLoans(userID uint) {
	c.mu.Lock()
	c.userLoans = UserLoansState{UserID: userID, IsLoading: true}
	c.mu.Unlock()

	c.launch(func(ctx context.Context) {
		loans, err := c.loanRepo.ListByUser(ctx, userID)

		c.mu.Lock()
		defer c.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		c.userLoans.IsLoading = false
		if err != nil {
			c.userLoans.Error = errMessage(err)
			return
		}
		c.userLoans.Loans = toLoanResponses(loans)
	})
}

func (c *AdminLoanController) setError(ctx context.Context, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	c.state.Error = errMessage(err)
}

func toLoanResponses(loans []*models.Loan) []*models.LoanResponse {
	responses := make([]*models.LoanResponse, len(loans))
	for i, l := range loans {
		responses[i] = l.ToResponse()
	}
	return responses
}
