package controllers

import (
	"testing"
	"time"

	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRefreshLoadsCoversAndSections(t *testing.T) {
	db := setupTestDB(t)
	seedBook(t, db, "A", "isbn-1", domain.BookAvailable)
	seedBook(t, db, "B", "isbn-2", domain.BookAvailable)

	c := NewCatalogController(repositories.NewBookRepository(db), time.Hour)
	defer c.Close()

	c.Refresh()

	require.Eventually(t, func() bool {
		state := c.HomeState()
		return !state.IsLoading && len(state.Covers) == 2
	}, waitFor, tick)

	state := c.HomeState()
	assert.Empty(t, state.Error)
	assert.Len(t, state.Sections["Fiction"], 2)
	assert.Zero(t, state.CoverIndex)
}

func TestCatalogRotationAdvancesAndStopsOnClose(t *testing.T) {
	db := setupTestDB(t)
	seedBook(t, db, "A", "isbn-1", domain.BookAvailable)
	seedBook(t, db, "B", "isbn-2", domain.BookAvailable)
	seedBook(t, db, "C", "isbn-3", domain.BookAvailable)

	c := NewCatalogController(repositories.NewBookRepository(db), 20*time.Millisecond)
	defer c.Close()

	c.Refresh()
	require.Eventually(t, func() bool {
		return len(c.HomeState().Covers) == 3
	}, waitFor, tick)

	// The ticker advances the index and wraps around
	require.Eventually(t, func() bool {
		return c.HomeState().CoverIndex != 0
	}, waitFor, tick)

	c.Close()
	frozen := c.HomeState().CoverIndex
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, frozen, c.HomeState().CoverIndex, "rotation must stop after Close")
}

func TestCatalogSearch(t *testing.T) {
	db := setupTestDB(t)
	seedBook(t, db, "Dune", "isbn-1", domain.BookAvailable)

	c := NewCatalogController(repositories.NewBookRepository(db), time.Hour)
	defer c.Close()

	assert.False(t, c.SearchState().HasSearched, "no search ran yet")

	c.SetSearchQuery("dun")
	c.Search()

	require.Eventually(t, func() bool {
		return c.SearchState().HasSearched
	}, waitFor, tick)

	state := c.SearchState()
	assert.Empty(t, state.Error)
	require.Len(t, state.Results, 1)
	assert.Equal(t, "Dune", state.Results[0].Title)
}

func TestCatalogSearchZeroResults(t *testing.T) {
	db := setupTestDB(t)
	seedBook(t, db, "Dune", "isbn-1", domain.BookAvailable)

	c := NewCatalogController(repositories.NewBookRepository(db), time.Hour)
	defer c.Close()

	c.SetSearchQuery("zzz")
	c.Search()

	require.Eventually(t, func() bool {
		return c.SearchState().HasSearched
	}, waitFor, tick)

	// Zero results is distinguishable from "never searched"
	state := c.SearchState()
	assert.Empty(t, state.Results)
	assert.True(t, state.HasSearched)
	assert.Empty(t, state.Error)
}
