package services

import (
	"context"
	"testing"

	"github.com/mealtracker/meal-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFirstAdminOnlyOnce(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	exists, err := svc.Users.AdminExists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.Users.CreateFirstAdmin(ctx, "boss", "boss@example.com", "secret1", "secret2")
	assert.True(t, IsValidation(err))

	admin, err := svc.Users.CreateFirstAdmin(ctx, "boss", "boss@example.com", "secret1", "secret1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NotEqual(t, "secret1", admin.PasswordHash)

	_, err = svc.Users.CreateFirstAdmin(ctx, "other", "", "pw", "pw")
	assert.ErrorIs(t, err, ErrAdminExists)
}

func TestAuthenticate(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	_, err := svc.Users.CreateFirstAdmin(ctx, "boss", "", "secret", "secret")
	require.NoError(t, err)

	user, err := svc.Users.Authenticate(ctx, " boss ", "secret")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())

	_, err = svc.Users.Authenticate(ctx, "boss", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Users.Authenticate(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateMemberAccount(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()
	id := addMember(t, svc, "Rahim", 1)

	user, err := svc.Users.CreateMemberAccount(ctx, id, "rahim", "pw")
	require.NoError(t, err)
	require.NotNil(t, user.MemberID)
	assert.Equal(t, id, *user.MemberID)
	assert.Equal(t, models.RoleMember, user.Role)

	_, err = svc.Users.CreateMemberAccount(ctx, id, "rahim2", "pw")
	assert.True(t, IsValidation(err))

	other := addMember(t, svc, "Karim", 2)
	_, err = svc.Users.CreateMemberAccount(ctx, other, "rahim", "pw")
	assert.True(t, IsValidation(err), "duplicate username")

	_, err = svc.Users.CreateMemberAccount(ctx, 99, "ghost", "pw")
	assert.True(t, IsNotFound(err))

	accounts, err := svc.Users.AccountsByMember(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[uint]string{id: "rahim"}, accounts)

	loaded, err := svc.Users.Get(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Member)
	assert.Equal(t, "Rahim", loaded.Member.Name)
}
