package controllers

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/core/domain"
)

// DefaultLoanDays is the day count a freshly added cart item starts with
const DefaultLoanDays = 7

// CartState is the immutable cart snapshot
type CartState struct {
	Items        []domain.CartItem
	Total        float64
	IsConfirming bool
	Error        string
}

// CartController owns the in-memory checkout collection for one signed-in
// user. Items are keyed by book identity and exist only for the lifetime of
// the controller; nothing is persisted until a confirm succeeds.
type CartController struct {
	lifetime

	userID     uint
	loanRepo   repositories.LoanRepository
	notifyRepo repositories.NotificationRepository

	mu    sync.Mutex
	items map[uint]*domain.CartItem
	order []uint // insertion order for stable snapshots
	state CartState
}

// NewCartController creates a cart for the given user
func NewCartController(userID uint, loanRepo repositories.LoanRepository, notifyRepo repositories.NotificationRepository) *CartController {
	return &CartController{
		lifetime:   newLifetime(),
		userID:     userID,
		loanRepo:   loanRepo,
		notifyRepo: notifyRepo,
		items:      make(map[uint]*domain.CartItem),
	}
}

// State returns a copy of the current cart snapshot
func (c *CartController) State() CartState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Add puts a book into the cart with the default day count. Adding a book
// that is already in the cart is a no-op.
func (c *CartController) Add(book *models.Book) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[book.ID]; ok {
		return
	}

	item := &domain.CartItem{
		BookID:   book.ID,
		Title:    book.Title,
		CoverURL: book.CoverURL,
		DailyFee: book.DailyFee,
		Days:     DefaultLoanDays,
	}
	item.Price = item.DailyFee * float64(item.Days)

	c.items[book.ID] = item
	c.order = append(c.order, book.ID)
	c.refreshStateLocked()
}

// Remove takes a book out of the cart
func (c *CartController) Remove(bookID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[bookID]; !ok {
		return
	}
	delete(c.items, bookID)
	for i, id := range c.order {
		if id == bookID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.refreshStateLocked()
}

// SetDays adjusts the loan duration of one item, clamped to the 1–30 range,
// and recomputes its price.
func (c *CartController) SetDays(bookID uint, days int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[bookID]
	if !ok {
		return
	}
	if days < domain.MinLoanDays {
		days = domain.MinLoanDays
	}
	if days > domain.MaxLoanDays {
		days = domain.MaxLoanDays
	}
	item.Days = days
	item.Price = item.DailyFee * float64(days)
	c.refreshStateLocked()
}

// ConfirmItem turns one cart item into a persisted loan. The loan insert and
// the book status flip share one transaction; a book that is no longer
// Available rejects the confirm and the item stays in the cart.
func (c *CartController) ConfirmItem(bookID uint) {
	c.mu.Lock()
	if c.state.IsConfirming {
		c.mu.Unlock()
		return
	}
	item, ok := c.items[bookID]
	if !ok {
		c.mu.Unlock()
		return
	}
	snapshot := *item
	c.state.IsConfirming = true
	c.mu.Unlock()

	c.launch(func(ctx context.Context) {
		err := c.confirmOne(ctx, snapshot)

		c.mu.Lock()
		defer c.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		c.state.IsConfirming = false
		if err != nil {
			c.state.Error = errMessage(err)
			return
		}
		c.removeLocked(bookID)
		c.refreshStateLocked()
	})
}

// ConfirmAll confirms every cart item in insertion order, stopping at the
// first failure. Items confirmed before the failure stay confirmed; the
// failing item and everything after it remain in the cart.
func (c *CartController) ConfirmAll() {
	c.mu.Lock()
	if c.state.IsConfirming {
		c.mu.Unlock()
		return
	}
	pending := make([]domain.CartItem, 0, len(c.order))
	for _, id := range c.order {
		pending = append(pending, *c.items[id])
	}
	c.state.IsConfirming = true
	c.mu.Unlock()

	c.launch(func(ctx context.Context) {
		var failed error
		confirmed := make([]uint, 0, len(pending))
		for _, item := range pending {
			if err := c.confirmOne(ctx, item); err != nil {
				failed = err
				break
			}
			confirmed = append(confirmed, item.BookID)
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		c.state.IsConfirming = false
		for _, id := range confirmed {
			c.removeLocked(id)
		}
		if failed != nil {
			c.state.Error = errMessage(failed)
		}
		c.refreshStateLocked()
	})
}

// ClearError clears the last confirm error
func (c *CartController) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Error = ""
}

// confirmOne writes the loan row for one item and drops an INFO notification
// into the borrower's inbox. Notification failure is logged, not surfaced;
// the loan itself already committed.
func (c *CartController) confirmOne(ctx context.Context, item domain.CartItem) error {
	now := time.Now()
	loan := &models.Loan{
		UserID:   c.userID,
		BookID:   item.BookID,
		LoanDate: now,
		DueDate:  now.AddDate(0, 0, item.Days),
		Status:   domain.LoanActive,
		Price:    item.Price,
	}

	if err := c.loanRepo.ConfirmLoan(ctx, loan); err != nil {
		return err
	}

	notification := &models.Notification{
		UserID:  c.userID,
		LoanID:  &loan.ID,
		Title:   "Loan confirmed",
		Message: fmt.Sprintf("You borrowed %q until %s.", item.Title, loan.DueDate.Format("2006-01-02")),
		Type:    domain.NotifyInfo,
	}
	if err := c.notifyRepo.Create(ctx, notification); err != nil {
		log.Printf("⚠️ Failed to write loan notification: %v", err)
	}

	log.Printf("✅ Loan confirmed: user=%d book=%d days=%d", c.userID, item.BookID, item.Days)
	return nil
}

// removeLocked drops an item without touching the snapshot; callers hold c.mu
func (c *CartController) removeLocked(bookID uint) {
	delete(c.items, bookID)
	for i, id := range c.order {
		if id == bookID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// refreshStateLocked rebuilds the snapshot item list; callers hold c.mu
func (c *CartController) refreshStateLocked() {
	items := make([]domain.CartItem, 0, len(c.order))
	var total float64
	for _, id := range c.order {
		items = append(items, *c.items[id])
		total += c.items[id].Price
	}
	c.state.Items = items
	c.state.Total = total
}

// snapshotLocked returns the current snapshot; callers hold c.mu
func (c *CartController) snapshotLocked() CartState {
	return c.state
}
