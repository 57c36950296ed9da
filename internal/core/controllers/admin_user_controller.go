package controllers

import (
	"context"
	"log"
	"sync"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/core/domain"
)

// AdminUsersState is the immutable user-management snapshot
type AdminUsersState struct {
	Users     []*models.UserResponse
	Total     int64
	IsLoading bool
	Error     string
}

// AdminUserController owns user administration: listing, block/unblock and
// role changes. Blocked users fail closed at login.
type AdminUserController struct {
	lifetime

	userRepo repositories.UserRepository

	mu    sync.Mutex
	state AdminUsersState
}

// NewAdminUserController creates a new admin user controller
func NewAdminUserController(userRepo repositories.UserRepository) *AdminUserController {
	return &AdminUserController{
		lifetime: newLifetime(),
		userRepo: userRepo,
	}
}

// State returns a copy of the current snapshot
func (c *AdminUserController) State() AdminUsersState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Refresh reloads the user list
func (c *AdminUserController) Refresh() {
	c.mu.Lock()
	c.state.IsLoading = true
	c.mu.Unlock()

	c.launch(func(ctx context.Context) {
		users, total, err := c.userRepo.List(ctx, 0, adminListLimit)

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
		c.state.Total = total
		c.state.Users = make([]*models.UserResponse, len(users))
		for i, u := range users {
			c.state.Users[i] = u.ToResponse()
		}
	})
}

// SetUserStatus blocks or unblocks an account and refreshes the list
func (c *AdminUserController) SetUserStatus(id uint, status domain.UserStatus) {
	c.launch(func(ctx context.Context) {
		user, err := c.userRepo.GetByID(ctx, id)
		if err != nil {
			c.setError(ctx, err)
			return
		}
		user.Status = status
		if err := c.userRepo.Update(ctx, user); err != nil {
			c.setError(ctx, err)
			return
		}
		log.Printf("✅ User %d status set to %s", id, status)
		c.Refresh()
	})
}

// SetUserRole changes an account's role and refreshes the list
func (c *AdminUserController) SetUserRole(id uint, role domain.Role) {
	c.launch(func(ctx context.Context) {
		user, err := c.userRepo.GetByID(ctx, id)
		if err != nil {
			c.setError(ctx, err)
			return
		}
		user.Role = role
		if err := c.userRepo.Update(ctx, user); err != nil {
			c.setError(ctx, err)
			return
		}
		log.Printf("✅ User %d role set to %s", id, role)
		c.Refresh()
	})
}

func (c *AdminUserController) setError(ctx context.Context, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	c.state.Error = errMessage(err)
}
