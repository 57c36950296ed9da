package controllers

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/config"
	"bookhive/internal/core/domain"
	"bookhive/internal/pkg/jwt"
	"bookhive/internal/pkg/password"
	"bookhive/internal/pkg/prefs"
	"bookhive/internal/pkg/validation"

	"gorm.io/gorm"
)

// LoginResult is the terminal outcome of a login submission. Callers must
// clear it before resubmitting.
type LoginResult struct {
	Role  domain.Role
	Token string
	Err   string
}

// LoginState is the immutable login snapshot
type LoginState struct {
	Email         string
	Password      string
	EmailError    string
	PasswordError string
	CanSubmit     bool
	IsSubmitting  bool
	Result        *LoginResult
}

// RegisterResult is the terminal outcome of a registration submission
type RegisterResult struct {
	UserID uint
	Err    string
}

// RegisterState is the immutable registration snapshot
type RegisterState struct {
	Name          string
	Email         string
	Phone         string
	Password      string
	Confirm       string
	NameError     string
	EmailError    string
	PhoneError    string
	PasswordError string
	ConfirmError  string
	CanSubmit     bool
	IsSubmitting  bool
	Result        *RegisterResult
}

// AuthController owns the login and registration flows. The two sub-flows
// are independent snapshots; the IsSubmitting flag on each is the only
// guard against duplicate concurrent submissions.
type AuthController struct {
	lifetime

	userRepo repositories.UserRepository
	session  *prefs.Store
	cfg      *config.Config

	mu       sync.Mutex
	login    LoginState
	register RegisterState
}

// NewAuthController creates a new auth controller
func NewAuthController(userRepo repositories.UserRepository, session *prefs.Store, cfg *config.Config) *AuthController {
	return &AuthController{
		lifetime: newLifetime(),
		userRepo: userRepo,
		session:  session,
		cfg:      cfg,
	}
}

// LoginState returns a copy of the current login snapshot
func (c *AuthController) LoginState() LoginState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.login
}

// RegisterState returns a copy of the current registration snapshot
func (c *AuthController) RegisterState() RegisterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.register
}

// SetLoginEmail updates the login email and re-validates
func (c *AuthController) SetLoginEmail(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.login.Email = email
	c.login.EmailError = validation.ValidateEmail(email)
	c.recomputeLoginLocked()
}

// SetLoginPassword updates the login password and re-validates
func (c *AuthController) SetLoginPassword(pw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.login.Password = pw
	if pw == "" {
		c.login.PasswordError = "Password is required"
	} else {
		c.login.PasswordError = ""
	}
	c.recomputeLoginLocked()
}

// ClearLoginResult clears the login outcome so the form can be resubmitted
func (c *AuthController) ClearLoginResult() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.login.Result = nil
}

// SubmitLogin dispatches the login attempt. A no-op while the snapshot
// cannot be submitted or a submission is already in flight.
func (c *AuthController) SubmitLogin() {
	c.mu.Lock()
	if !c.login.CanSubmit || c.login.IsSubmitting {
		c.mu.Unlock()
		return
	}
	c.login.IsSubmitting = true
	email, pw := c.login.Email, c.login.Password
	c.mu.Unlock()

	c.launch(func(ctx context.Context) {
		result := c.performLogin(ctx, email, pw)

		c.mu.Lock()
		defer c.mu.Unlock()
		if ctx.Err() != nil {
			return // controller closed, drop the late result
		}
		c.login.IsSubmitting = false
		c.login.Result = result
	})
}

// performLogin checks the stored user record. The role comes from the row
// itself; the administrator account exists only through the seeder. Blocked
// accounts fail closed even with the correct password.
func (c *AuthController) performLogin(ctx context.Context, email, pw string) *LoginResult {
	user, err := c.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &LoginResult{Err: domain.ErrInvalidCredentials.Error()}
		}
		return &LoginResult{Err: errMessage(err)}
	}

	if user.Status == domain.UserBlocked {
		return &LoginResult{Err: domain.ErrAccountBlocked.Error()}
	}

	if !password.Verify(pw, user.PasswordHash) {
		return &LoginResult{Err: domain.ErrInvalidCredentials.Error()}
	}

	token, err := jwt.GenerateSessionToken(user.ID, user.Email, string(user.Role), c.cfg.JWT.Secret, c.cfg.JWT.SessionTokenMins)
	if err != nil {
		return &LoginResult{Err: errMessage(err)}
	}

	if err := c.session.SaveSession(prefs.Session{
		Token: token,
		Role:  string(user.Role),
		Email: user.Email,
	}); err != nil {
		log.Printf("⚠️ Failed to persist session: %v", err)
	}

	log.Printf("✅ User logged in: %s", user.Email)
	return &LoginResult{Role: user.Role, Token: token}
}

// SetRegisterName updates the registration name and re-validates
func (c *AuthController) SetRegisterName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.register.Name = name
	c.register.NameError = validation.ValidateName(name)
	c.recomputeRegisterLocked()
}

// SetRegisterEmail updates the registration email and re-validates
func (c *AuthController) SetRegisterEmail(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.register.Email = email
	c.register.EmailError = validation.ValidateEmail(email)
	c.recomputeRegisterLocked()
}

// SetRegisterPhone updates the registration phone and re-validates
func (c *AuthController) SetRegisterPhone(phone string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.register.Phone = phone
	c.register.PhoneError = validation.ValidatePhone(phone)
	c.recomputeRegisterLocked()
}

// SetRegisterPassword updates the registration password and re-validates
// both the password and its confirmation.
func (c *AuthController) SetRegisterPassword(pw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.register.Password = pw
	c.register.PasswordError = validation.ValidateStrongPassword(pw)
	if c.register.Confirm != "" {
		c.register.ConfirmError = validation.ValidateConfirmation(pw, c.register.Confirm)
	}
	c.recomputeRegisterLocked()
}

// SetRegisterConfirm updates the password confirmation and re-validates
func (c *AuthController) SetRegisterConfirm(confirm string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.register.Confirm = confirm
	c.register.ConfirmError = validation.ValidateConfirmation(c.register.Password, confirm)
	c.recomputeRegisterLocked()
}

// ClearRegisterResult clears the registration outcome
func (c *AuthController) ClearRegisterResult() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.register.Result = nil
}

// SubmitRegister dispatches the registration attempt. A no-op while the
// snapshot cannot be submitted or a submission is already in flight.
func (c *AuthController) SubmitRegister() {
	c.mu.Lock()
	if !c.register.CanSubmit || c.register.IsSubmitting {
		c.mu.Unlock()
		return
	}
	c.register.IsSubmitting = true
	snap := c.register
	c.mu.Unlock()

	c.launch(func(ctx context.Context) {
		result := c.performRegister(ctx, snap)

		c.mu.Lock()
		defer c.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		c.register.IsSubmitting = false
		c.register.Result = result
	})
}

// performRegister checks for a duplicate email (case-insensitive) and
// persists the new user with a bcrypt hash, role USER, status active.
func (c *AuthController) performRegister(ctx context.Context, snap RegisterState) *RegisterResult {
	exists, err := c.userRepo.ExistsByEmail(ctx, snap.Email)
	if err != nil {
		return &RegisterResult{Err: errMessage(err)}
	}
	if exists {
		return &RegisterResult{Err: domain.ErrEmailTaken.Error()}
	}

	hash, err := password.Hash(snap.Password)
	if err != nil {
		return &RegisterResult{Err: errMessage(err)}
	}

	user := &models.User{
		Name:         strings.TrimSpace(snap.Name),
		Email:        strings.ToLower(strings.TrimSpace(snap.Email)),
		Phone:        strings.TrimSpace(snap.Phone),
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Status:       domain.UserActive,
	}

	if err := c.userRepo.Create(ctx, user); err != nil {
		return &RegisterResult{Err: errMessage(err)}
	}

	log.Printf("✅ User registered: %s", user.Email)
	return &RegisterResult{UserID: user.ID}
}

// Logout clears the persisted session
func (c *AuthController) Logout() error {
	return c.session.Clear()
}

// recomputeLoginLocked derives CanSubmit: all required fields non-blank and
// no field carries an error. Callers hold c.mu.
func (c *AuthController) recomputeLoginLocked() {
	c.login.CanSubmit = c.login.Email != "" &&
		c.login.Password != "" &&
		c.login.EmailError == "" &&
		c.login.PasswordError == ""
}

// recomputeRegisterLocked derives CanSubmit for the registration flow.
// Callers hold c.mu.
func (c *AuthController) recomputeRegisterLocked() {
	r := &c.register
	r.CanSubmit = r.Name != "" && r.Email != "" && r.Phone != "" &&
		r.Password != "" && r.Confirm != "" &&
		r.NameError == "" && r.EmailError == "" && r.PhoneError == "" &&
		r.PasswordError == "" && r.ConfirmError == ""
}
