package controllers

import (
	"context"
	"sync"
	"time"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/adapters/persistence/repositories"
)

// InboxState is the immutable notification inbox snapshot
type InboxState struct {
	Items       []*models.Notification
	UnreadCount int64
	IsLoading   bool
	Error       string
}

// NotificationController owns the inbox for one signed-in user
type NotificationController struct {
	lifetime

	userID     uint
	notifyRepo repositories.NotificationRepository

	mu    sync.Mutex
	state InboxState
}

// NewNotificationController creates an inbox controller for the given user
func NewNotificationController(userID uint, notifyRepo repositories.NotificationRepository) *NotificationController {
	return &NotificationController{
		lifetime:   newLifetime(),
		userID:     userID,
		notifyRepo: notifyRepo,
	}
}

// State returns a copy of the current inbox snapshot
func (c *NotificationController) State() InboxState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Refresh reloads the inbox, newest first
func (c *NotificationController) Refresh() {
	c.mu.Lock()
	c.state.IsLoading = true
	c.mu.Unlock()

	c.launch(func(ctx context.Context) {
		items, listErr := c.notifyRepo.ListByUser(ctx, c.userID)
		unread, countErr := c.notifyRepo.CountUnread(ctx, c.userID)

		c.mu.Lock()
		defer c.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		c.state.IsLoading = false
		if listErr != nil {
			c.state.Error = errMessage(listErr)
			return
		}
		if countErr != nil {
			c.state.Error = errMessage(countErr)
			return
		}
		c.state.Error = ""
		c.state.Items = items
		c.state.UnreadCount = unread
	})
}

// MarkRead marks one of the user's notifications as read and refreshes
// the inbox
func (c *NotificationController) MarkRead(id uint) {
	c.launch(func(ctx context.Context) {
		if err := c.notifyRepo.MarkRead(ctx, id, c.userID, time.Now()); err != nil {
			c.setError(ctx, err)
			return
		}
		c.Refresh()
	})
}

// MarkAllRead marks the whole inbox as read and refreshes it
func (c *NotificationController) MarkAllRead() {
	c.launch(func(ctx context.Context) {
		if err := c.notifyRepo.MarkAllRead(ctx, c.userID, time.Now()); err != nil {
			c.setError(ctx, err)
			return
		}
		c.Refresh()
	})
}

func (c *NotificationController) setError(ctx context.Context, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	c.state.Error = errMessage(err)
}
