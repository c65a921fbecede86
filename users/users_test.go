package users_test

import (
	"testing"

	"github.com/jrsteele09/boutik-admin/internal/config"
	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/jrsteele09/boutik-admin/internal/utils"
	"github.com/jrsteele09/boutik-admin/users"
	"github.com/stretchr/testify/require"
)

func TestUser_Validate(t *testing.T) {
	require.NoError(t, (&users.User{ID: 1, Email: "a@b.com"}).Validate())

	err := (&users.User{Email: "a@b.com"}).Validate()
	require.Equal(t, errors.KindValidation, errors.KindOf(err))

	err = (&users.User{ID: 2, Email: "not-an-email"}).Validate()
	var ve *errors.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "email", ve.Field)
}

func TestUser_FullName(t *testing.T) {
	require.Equal(t, "Rakoto", (&users.User{LastName: "Rakoto"}).FullName())
	require.Equal(t, "Jean Rakoto", (&users.User{Name: utils.Ptr("Jean"), LastName: "Rakoto"}).FullName())
}

func TestPasswordHash(t *testing.T) {
	hash, err := users.HashPassword("changethis")
	require.NoError(t, err)

	u := &users.User{PasswordHash: hash}
	require.True(t, u.CheckPassword("changethis"))
	require.False(t, u.CheckPassword("wrong"))
}

func TestValidation(t *testing.T) {
	require.True(t, users.IsEmail("owner@boutik.mg"))
	require.False(t, users.IsEmail("owner@boutik"))
	require.True(t, users.IsName("Hérilala"))
	require.False(t, users.IsName("R2D2"))

	require.Error(t, users.ValidatePasswordStrength("short"))
	require.NoError(t, users.ValidatePasswordStrength("longenough"))
	require.Error(t, users.ValidateConfirmation("longenough", "different"))
	require.NoError(t, users.ValidateConfirmation("longenough", "longenough"))
	require.Error(t, users.ValidateEmail("email", ""))
}

func TestRoles(t *testing.T) {
	require.Equal(t, "/dashboard/owner", users.DashboardPathForRole(users.RoleOwner))
	require.Equal(t, config.PathDashboardHome, users.DashboardPathForRole("cashier"))

	require.True(t, users.RoleHasPermission(users.RoleAdmin, "manage_users"))
	require.False(t, users.RoleHasPermission(users.RoleOwner, "manage_users"))
	require.False(t, users.RoleHasPermission("cashier", "manage_users"))

	perms := users.AllPermissions()
	require.Contains(t, perms, "process_sales")
	require.IsIncreasing(t, perms)

	u := &users.User{Roles: []users.Role{{ID: 1, Name: "owner"}}}
	require.True(t, u.HasRole(users.RoleOwner))
	require.Equal(t, users.RoleOwner, u.PrimaryRole())
}
