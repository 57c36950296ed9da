package controllers

import (
	"context"
	"strings"
	"sync"

	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/core/domain"
	"bookhive/internal/pkg/password"
	"bookhive/internal/pkg/validation"
)

// ProfileState is the immutable account-settings snapshot
type ProfileState struct {
	Name           string
	Phone          string
	ProfilePicture string
	NameError      string
	PhoneError     string
	CanSave        bool
	IsSaving       bool
	Saved          bool
	Error          string
}

// PasswordChangeResult is the terminal outcome of a password change
type PasswordChangeResult struct {
	Err string
}

// PasswordChangeState is the immutable change-password snapshot
type PasswordChangeState struct {
	Old          string
	New          string
	Confirm      string
	NewError     string
	ConfirmError string
	CanSubmit    bool
	IsSubmitting bool
	Result       *PasswordChangeResult
}

// AccountController owns the account-settings flow for one signed-in user
type AccountController struct {
	lifetime

	userID   uint
	userRepo repositories.UserRepository

	mu       sync.Mutex
	profile  ProfileState
	pwChange PasswordChangeState
}

// NewAccountController creates an account controller for the given user
func NewAccountController(userID uint, userRepo repositories.UserRepository) *AccountController {
	return &AccountController{
		lifetime: newLifetime(),
		userID:   userID,
		userRepo: userRepo,
	}
}

// ProfileState returns a copy of the current profile snapshot
func (c *AccountController) ProfileState() ProfileState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

// PasswordChangeState returns a copy of the change-password snapshot
func (c *AccountController) PasswordChangeState() PasswordChangeState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pwChange
}

// Load populates the profile snapshot from the stored user row
func (c *AccountController) Load() {
	c.launch(func(ctx context.Context) {
		user, err := c.userRepo.GetByID(ctx, c.userID)

		c.mu.Lock()
		defer c.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			c.profile.Error = errMessage(err)
			return
		}
		c.profile.Name = user.Name
		c.profile.Phone = user.Phone
		c.profile.ProfilePicture = user.ProfilePicture
		c.profile.Error = ""
		c.recomputeProfileLocked()
	})
}

// SetName updates the profile name and re-validates
func (c *AccountController) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile.Name = name
	c.profile.NameError = validation.ValidateName(name)
	c.profile.Saved = false
	c.recomputeProfileLocked()
}

// SetPhone updates the profile phone and re-validates
func (c *AccountController) SetPhone(phone string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile.Phone = phone
	c.profile.PhoneError = validation.ValidatePhone(phone)
	c.profile.Saved = false
	c.recomputeProfileLocked()
}

// SetProfilePicture updates the profile picture reference
func (c *AccountController) SetProfilePicture(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile.ProfilePicture = url
	c.profile.Saved = false
}

// Save persists the edited profile fields. A no-op while the snapshot
// cannot be saved or a save is already in flight.
func (c *AccountController) Save() {
	c.mu.Lock()
	if !c.profile.CanSave || c.profile.IsSaving {
		c.mu.Unlock()
		return
	}
	c.profile.IsSaving = true
	snap := c.profile
	c.mu.Unlock()

	c.launch(func(ctx context.Context) {
		err := c.performSave(ctx, snap)

		c.mu.Lock()
		defer c.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		c.profile.IsSaving = false
		if err != nil {
			c.profile.Error = errMessage(err)
			return
		}
		c.profile.Error = ""
		c.profile.Saved = true
	})
}

func (c *AccountController) performSave(ctx context.Context, snap ProfileState) error {
	user, err := c.userRepo.GetByID(ctx, c.userID)
	if err != nil {
		return err
	}
	user.Name = strings.TrimSpace(snap.Name)
	user.Phone = strings.TrimSpace(snap.Phone)
	user.ProfilePicture = snap.ProfilePicture
	return c.userRepo.Update(ctx, user)
}

// SetOldPassword updates the current-password field
func (c *AccountController) SetOldPassword(pw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pwChange.Old = pw
	c.recomputePasswordLocked()
}

// SetNewPassword updates the new password and re-validates strength
func (c *AccountController) SetNewPassword(pw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pwChange.New = pw
	c.pwChange.NewError = validation.ValidateStrongPassword(pw)
	if c.pwChange.Confirm != "" {
		c.pwChange.ConfirmError = validation.ValidateConfirmation(pw, c.pwChange.Confirm)
	}
	c.recomputePasswordLocked()
}

// SetConfirmPassword updates the confirmation and re-validates
func (c *AccountController) SetConfirmPassword(pw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pwChange.Confirm = pw
	c.pwChange.ConfirmError = validation.ValidateConfirmation(c.pwChange.New, pw)
	c.recomputePasswordLocked()
}

// ClearPasswordResult clears the change-password outcome
func (c *AccountController) ClearPasswordResult() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pwChange.Result = nil
}

// SubmitPasswordChange verifies the old password and stores the new hash.
// A no-op while the snapshot cannot be submitted or a submission is in
// flight.
func (c *AccountController) SubmitPasswordChange() {
	c.mu.Lock()
	if !c.pwChange.CanSubmit || c.pwChange.IsSubmitting {
		c.mu.Unlock()
		return
	}
	c.pwChange.IsSubmitting = true
	oldPw, newPw := c.pwChange.Old, c.pwChange.New
	c.mu.Unlock()

	c.launch(func(ctx context.Context) {
		result := c.performPasswordChange(ctx, oldPw, newPw)

		c.mu.Lock()
		defer c.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		c.pwChange.IsSubmitting = false
		c.pwChange.Result = result
	})
}

func (c *AccountController) performPasswordChange(ctx context.Context, oldPw, newPw string) *PasswordChangeResult {
	user, err := c.userRepo.GetByID(ctx, c.userID)
	if err != nil {
		return &PasswordChangeResult{Err: errMessage(err)}
	}

	if !password.Verify(oldPw, user.PasswordHash) {
		return &PasswordChangeResult{Err: domain.ErrWrongPassword.Error()}
	}

	hash, err := password.Hash(newPw)
	if err != nil {
		return &PasswordChangeResult{Err: errMessage(err)}
	}

	user.PasswordHash = hash
	if err := c.userRepo.Update(ctx, user); err != nil {
		return &PasswordChangeResult{Err: errMessage(err)}
	}
	return &PasswordChangeResult{}
}

// recomputeProfileLocked derives CanSave; callers hold c.mu
func (c *AccountController) recomputeProfileLocked() {
	c.profile.CanSave = c.profile.Name != "" && c.profile.Phone != "" &&
		c.profile.NameError == "" && c.profile.PhoneError == ""
}

// recomputePasswordLocked derives CanSubmit; callers hold c.mu
func (c *AccountController) recomputePasswordLocked() {
	p := &c.pwChange
	p.CanSubmit = p.Old != "" && p.New != "" && p.Confirm != "" &&
		p.NewError == "" && p.ConfirmError == ""
}
