package controllers

import (
	"testing"

	"bookhive/internal/adapters/persistence/models"
	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/core/domain"
	"bookhive/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountLoadAndSave(t *testing.T) {
	db := setupTestDB(t)
	user := seedAccount(t, db, "jane@gmail.com", "Abcdef1!", domain.RoleUser, domain.UserActive)

	c := NewAccountController(user.ID, repositories.NewUserRepository(db))
	defer c.Close()

	c.Load()
	require.Eventually(t, func() bool {
		return c.ProfileState().Name != ""
	}, waitFor, tick)

	state := c.ProfileState()
	assert.Equal(t, "Jane Doe", state.Name)
	assert.Equal(t, "12345678", state.Phone)
	assert.True(t, state.CanSave)

	c.SetName("Janet Doe")
	c.SetPhone("87654321")
	c.Save()

	require.Eventually(t, func() bool {
		return c.ProfileState().Saved
	}, waitFor, tick)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "Janet Doe", stored.Name)
	assert.Equal(t, "87654321", stored.Phone)
}

func TestAccountSaveBlockedByValidation(t *testing.T) {
	db := setupTestDB(t)
	user := seedAccount(t, db, "jane@gmail.com", "Abcdef1!", domain.RoleUser, domain.UserActive)

	c := NewAccountController(user.ID, repositories.NewUserRepository(db))
	defer c.Close()

	c.SetName("Jane42")
	c.SetPhone("12345678")
	state := c.ProfileState()
	assert.NotEmpty(t, state.NameError)
	assert.False(t, state.CanSave)

	// Save is a no-op while the form is invalid
	c.Save()
	assert.False(t, c.ProfileState().IsSaving)
}

func TestAccountPasswordChange(t *testing.T) {
	db := setupTestDB(t)
	user := seedAccount(t, db, "jane@gmail.com", "Abcdef1!", domain.RoleUser, domain.UserActive)

	c := NewAccountController(user.ID, repositories.NewUserRepository(db))
	defer c.Close()

	c.SetOldPassword("Abcdef1!")
	c.SetNewPassword("Newpass2@")
	c.SetConfirmPassword("Newpass2@")
	require.True(t, c.PasswordChangeState().CanSubmit)

	c.SubmitPasswordChange()
	require.Eventually(t, func() bool {
		return c.PasswordChangeState().Result != nil
	}, waitFor, tick)
	assert.Empty(t, c.PasswordChangeState().Result.Err)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.True(t, password.Verify("Newpass2@", stored.PasswordHash))
	assert.False(t, password.Verify("Abcdef1!", stored.PasswordHash))
}

func TestAccountPasswordChangeWrongOldPassword(t *testing.T) {
	db := setupTestDB(t)
	user := seedAccount(t, db, "jane@gmail.com", "Abcdef1!", domain.RoleUser, domain.UserActive)

	c := NewAccountController(user.ID, repositories.NewUserRepository(db))
	defer c.Close()

	c.SetOldPassword("Wrong999!")
	c.SetNewPassword("Newpass2@")
	c.SetConfirmPassword("Newpass2@")
	c.SubmitPasswordChange()

	require.Eventually(t, func() bool {
		return c.PasswordChangeState().Result != nil
	}, waitFor, tick)
	assert.Equal(t, domain.ErrWrongPassword.Error(), c.PasswordChangeState().Result.Err)

	// The stored hash is untouched
	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.True(t, password.Verify("Abcdef1!", stored.PasswordHash))
}

func TestAccountPasswordChangeWeakNewPassword(t *testing.T) {
	db := setupTestDB(t)
	user := seedAccount(t, db, "jane@gmail.com", "Abcdef1!", domain.RoleUser, domain.UserActive)

	c := NewAccountController(user.ID, repositories.NewUserRepository(db))
	defer c.Close()

	c.SetOldPassword("Abcdef1!")
	c.SetNewPassword("weak")
	c.SetConfirmPassword("weak")

	state := c.PasswordChangeState()
	assert.NotEmpty(t, state.NewError)
	assert.False(t, state.CanSubmit)
}
