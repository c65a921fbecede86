package fakeuserrepo_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/jrsteele09/boutik-admin/internal/utils"
	"github.com/jrsteele09/boutik-admin/users"
	fakeuserrepo "github.com/jrsteele09/boutik-admin/users/repofake"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *fakeuserrepo.FakeUserRepo {
	t.Helper()
	repo := fakeuserrepo.NewFakeUserRepo()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	owners := []*users.User{
		{Email: "c@boutik.mg", LastName: "Charlie", IsOwner: true, IsActive: true},
		{Email: "a@boutik.mg", LastName: "Alpha", IsOwner: true, IsActive: false},
		{Email: "b@boutik.mg", LastName: "Bravo", IsOwner: true, IsActive: true},
		{Email: "admin@boutik.mg", LastName: "Admin", IsSuperuser: true, IsActive: true},
	}
	for i, u := range owners {
		u.CreatedAt = utils.Ptr(base.Add(time.Duration(len(owners)-i) * time.Hour))
		require.NoError(t, repo.Upsert(u))
	}
	return repo
}

func lastNames(list users.OwnerList) []string {
	names := make([]string, 0, len(list.Owners))
	for _, u := range list.Owners {
		names = append(names, u.LastName)
	}
	return names
}

func TestFakeUserRepo_ListOwners(t *testing.T) {
	repo := setupRepo(t)

	t.Run("default order is by id", func(t *testing.T) {
		list, err := repo.ListOwners(users.OwnerQuery{})
		require.NoError(t, err)
		require.Equal(t, []string{"Charlie", "Alpha", "Bravo"}, lastNames(list))
		require.Equal(t, 3, list.Total)
		require.Equal(t, 2, list.TotalActive)
	})

	t.Run("sort by last name descending", func(t *testing.T) {
		list, err := repo.ListOwners(users.OwnerQuery{SortBy: users.SortByLastName, Descending: true})
		require.NoError(t, err)
		require.Equal(t, []string{"Charlie", "Bravo", "Alpha"}, lastNames(list))
	})

	t.Run("sort by created at", func(t *testing.T) {
		list, err := repo.ListOwners(users.OwnerQuery{SortBy: users.SortByCreatedAt})
		require.NoError(t, err)
		require.Equal(t, []string{"Bravo", "Alpha", "Charlie"}, lastNames(list))
	})

	t.Run("skip and limit", func(t *testing.T) {
		list, err := repo.ListOwners(users.OwnerQuery{SortBy: users.SortByLastName, Skip: 1, Limit: 1})
		require.NoError(t, err)
		require.Equal(t, []string{"Bravo"}, lastNames(list))
		require.Equal(t, 3, list.Total)

		list, err = repo.ListOwners(users.OwnerQuery{Skip: 10, Limit: 5})
		require.NoError(t, err)
		require.Empty(t, list.Owners)
	})

	t.Run("filters", func(t *testing.T) {
		list, err := repo.ListOwners(users.OwnerQuery{Active: utils.Ptr(false)})
		require.NoError(t, err)
		require.Equal(t, []string{"Alpha"}, lastNames(list))

		list, err = repo.ListOwners(users.OwnerQuery{Search: "BRAV"})
		require.NoError(t, err)
		require.Equal(t, []string{"Bravo"}, lastNames(list))
	})
}

func TestFakeUserRepo_Lookup(t *testing.T) {
	repo := setupRepo(t)

	u, err := repo.GetByEmail("A@Boutik.mg")
	require.NoError(t, err)
	require.Equal(t, "Alpha", u.LastName)

	got, err := repo.GetByID(u.ID)
	require.NoError(t, err)
	require.Same(t, u, got)

	err = repo.Upsert(&users.User{ID: 99, Email: "a@boutik.mg"})
	require.ErrorIs(t, err, errors.ErrInvalidInput)

	require.NoError(t, repo.Delete(u.ID))
	_, err = repo.GetByEmail("a@boutik.mg")
	require.ErrorIs(t, err, errors.ErrNotFound)
}
