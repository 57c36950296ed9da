package handlers

import (
	"log"
	"strings"
	"time"

	"bookhive/internal/adapters/http/middleware"
	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/config"
	"bookhive/internal/core/domain"
	"bookhive/internal/pkg/jwt"
	"bookhive/internal/pkg/password"
	"bookhive/internal/pkg/response"
	"bookhive/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration, login and profile endpoints
type AuthHandler struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userRepo repositories.UserRepository, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	// 1. Validate every field with the same rules the app forms use
	if msg := validation.ValidateName(req.Name); msg != "" {
		return response.BadRequest(c, msg)
	}
	if msg := validation.ValidateEmail(req.Email); msg != "" {
		return response.BadRequest(c, msg)
	}
	if msg := validation.ValidatePhone(req.Phone); msg != "" {
		return response.BadRequest(c, msg)
	}
	if msg := validation.ValidateStrongPassword(req.Password); msg != "" {
		return response.BadRequest(c, msg)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 2. Reject duplicate emails (case-insensitive)
	exists, err := h.userRepo.ExistsByEmail(c.Context(), email)
	if err != nil {
		return response.InternalServerError(c, "failed to check email")
	}
	if exists {
		return response.Conflict(c, domain.ErrEmailTaken.Error())
	}

	// 3. Hash the password and create the account with the USER role
	hash, err := password.Hash(req.Password)
	if err != nil {
		return response.InternalServerError(c, "failed to hash password")
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Status:       domain.UserActive,
	}
	if err := h.userRepo.Create(c.Context(), user); err != nil {
		return response.InternalServerError(c, "failed to create user")
	}

	log.Printf("✅ User registered: %s", email)
	return response.Created(c, "Registration successful", user.ToResponse())
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "email and password are required")
	}

	// 1. Look up the account; a miss and a bad password are the same error
	user, err := h.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return response.Unauthorized(c, domain.ErrInvalidCredentials.Error())
	}

	// 2. Blocked accounts fail closed even with the right password
	if user.Status == domain.UserBlocked {
		return response.Forbidden(c, domain.ErrAccountBlocked.Error())
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		return response.Unauthorized(c, domain.ErrInvalidCredentials.Error())
	}

	// 3. Issue the session token; the role comes from the stored row
	token, err := jwt.GenerateSessionToken(user.ID, user.Email, string(user.Role), h.cfg.JWT.Secret, h.cfg.JWT.SessionTokenMins)
	if err != nil {
		return response.InternalServerError(c, "failed to generate token")
	}

	return response.Success(c, "Login successful", fiber.Map{
		"token":      token,
		"expires_at": jwt.GetExpiryTime(h.cfg.JWT.SessionTokenMins).Format(time.RFC3339),
		"user":       user.ToResponse(),
	})
}

// Me handles GET /api/v1/users/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.userRepo.GetByID(c.Context(), middleware.UserID(c))
	if err != nil {
		return response.NotFound(c, "user not found")
	}
	return response.Success(c, "", user.ToResponse())
}

// UpdateProfileRequest is the profile update payload
type UpdateProfileRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	ProfilePicture string `json:"profile_picture"`
}

// UpdateMe handles PUT /api/v1/users/me
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if msg := validation.ValidateName(req.Name); msg != "" {
		return response.BadRequest(c, msg)
	}
	if msg := validation.ValidatePhone(req.Phone); msg != "" {
		return response.BadRequest(c, msg)
	}

	user, err := h.userRepo.GetByID(c.Context(), middleware.UserID(c))
	if err != nil {
		return response.NotFound(c, "user not found")
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Phone = req.Phone
	if req.ProfilePicture != "" {
		user.ProfilePicture = req.ProfilePicture
	}
	if err := h.userRepo.Update(c.Context(), user); err != nil {
		return response.InternalServerError(c, "failed to update profile")
	}

	return response.Success(c, "Profile updated", user.ToResponse())
}

// ChangePasswordRequest is the password change payload
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword handles POST /api/v1/users/me/password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	user, err := h.userRepo.GetByID(c.Context(), middleware.UserID(c))
	if err != nil {
		return response.NotFound(c, "user not found")
	}

	if !password.Verify(req.OldPassword, user.PasswordHash) {
		return response.BadRequest(c, domain.ErrWrongPassword.Error())
	}
	if msg := validation.ValidateStrongPassword(req.NewPassword); msg != "" {
		return response.BadRequest(c, msg)
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return response.InternalServerError(c, "failed to hash password")
	}
	user.PasswordHash = hash
	if err := h.userRepo.Update(c.Context(), user); err != nil {
		return response.InternalServerError(c, "failed to update password")
	}

	return response.Success(c, "Password changed", nil)
}
