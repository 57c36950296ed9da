package controllers

import (
	"context"
	"sync"
	"time"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/adapters/persistence/repositories"
)

// DefaultRotationInterval is how often the home cover rotation advances
const DefaultRotationInterval = 5 * time.Second

// maxHomeCovers caps the cover rotation carousel
const maxHomeCovers = 10

// HomeState is the immutable home/catalog snapshot
type HomeState struct {
	Covers     []*models.Book
	CoverIndex int
	Sections   map[string][]*models.Book
	IsLoading  bool
	Error      string
}

// SearchState is the immutable search snapshot. HasSearched distinguishes
// "never searched" from "searched, zero results".
type SearchState struct {
	Query       string
	Results     []*models.Book
	IsLoading   bool
	HasSearched bool
	Error       string
}

// CatalogController owns the home screen and search sub-states. The cover
// rotation runs on a ticker goroutine bound to the controller lifetime and
// stops when the controller is closed.
type CatalogController struct {
	lifetime

	bookRepo repositories.BookRepository
	interval time.Duration

	mu     sync.Mutex
	home   HomeState
	search SearchState
}

// NewCatalogController creates the controller and starts the cover rotation
func NewCatalogController(bookRepo repositories.BookRepository, interval time.Duration) *CatalogController {
	if interval <= 0 {
		interval = DefaultRotationInterval
	}
	c := &CatalogController{
		lifetime: newLifetime(),
		bookRepo: bookRepo,
		interval: interval,
	}
	c.home.Sections = make(map[string][]*models.Book)

	go c.runRotation()
	return c
}

// HomeState returns a copy of the current home snapshot
func (c *CatalogController) HomeState() HomeState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.home
}

// SearchState returns a copy of the current search snapshot
func (c *CatalogController) SearchState() SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

// Refresh reloads the cover carousel and the books-by-category grouping
func (c *CatalogController) Refresh() {
	c.mu.Lock()
	c.home.IsLoading = true
	c.mu.Unlock()

	c.launch(func(ctx context.Context) {
		covers, coverErr := c.bookRepo.ListHomeCovers(ctx, maxHomeCovers)
		sections, sectionErr := c.bookRepo.ListByCategory(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		c.home.IsLoading = false
		if coverErr != nil {
			c.home.Error = errMessage(coverErr)
			return
		}
		if sectionErr != nil {
			c.home.Error = errMessage(sectionErr)
			return
		}
		c.home.Error = ""
		c.home.Covers = covers
		c.home.Sections = sections
		if c.home.CoverIndex >= len(covers) {
			c.home.CoverIndex = 0
		}
	})
}

// SetSearchQuery updates the query text without searching
func (c *CatalogController) SetSearchQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search.Query = query
}

// Search runs the catalog search for the current query
func (c *CatalogController) Search() {
	c.mu.Lock()
	query := c.search.Query
	c.search.IsLoading = true
	c.mu.Unlock()

	c.launch(func(ctx context.Context) {
		results, err := c.bookRepo.Search(ctx, query)

		c.mu.Lock()
		defer c.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		c.search.IsLoading = false
		c.search.HasSearched = true
		if err != nil {
			c.search.Error = errMessage(err)
			return
		}
		c.search.Error = ""
		c.search.Results = results
	})
}

// runRotation advances the cover index on a fixed interval until Close
func (c *CatalogController) runRotation() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			if n := len(c.home.Covers); n > 0 {
				c.home.CoverIndex = (c.home.CoverIndex + 1) % n
			}
			c.mu.Unlock()
		case <-c.ctx.Done():
			return
		}
	}
}
