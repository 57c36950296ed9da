package handlers

import (
	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/core/domain"
	"bookhive/internal/pkg/pagination"
	"bookhive/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles admin user management endpoints
type UserHandler struct {
	userRepo repositories.UserRepository
}

// NewUserHandler creates a new user handler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// List handles GET /api/v1/admin/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	users, total, err := h.userRepo.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "failed to list users")
	}

	out := make([]*models.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, user.ToResponse())
	}
	return response.Paginated(c, out, pagination.GetMeta(params, total))
}

// SetStatusRequest is the block/unblock payload
type SetStatusRequest struct {
	Status domain.UserStatus `json:"status"`
}

// SetStatus handles PATCH /api/v1/admin/users/:id/status
func (h *UserHandler) SetStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid user id")
	}

	var req SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Status != domain.UserActive && req.Status != domain.UserBlocked {
		return response.BadRequest(c, "invalid user status")
	}

	user, err := h.userRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "user not found")
	}

	user.Status = req.Status
	if err := h.userRepo.Update(c.Context(), user); err != nil {
		return response.InternalServerError(c, "failed to update user status")
	}
	return response.Success(c, "User status updated", user.ToResponse())
}

// SetRoleRequest is the role change payload
type SetRoleRequest struct {
	Role domain.Role `json:"role"`
}

// SetRole handles PATCH /api/v1/admin/users/:id/role
func (h *UserHandler) SetRole(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "invalid user id")
	}

	var req SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Role != domain.RoleUser && req.Role != domain.RoleAdmin {
		return response.BadRequest(c, "invalid role")
	}

	user, err := h.userRepo.GetByID(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "user not found")
	}

	user.Role = req.Role
	if err := h.userRepo.Update(c.Context(), user); err != nil {
		return response.InternalServerError(c, "failed to update user role")
	}
	return response.Success(c, "User role updated", user.ToResponse())
}
