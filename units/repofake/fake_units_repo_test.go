package repofake_test

import (
	"testing"

	"github.com/jrsteele09/boutik-admin/internal/errors"
	"github.com/jrsteele09/boutik-admin/internal/utils"
	"github.com/jrsteele09/boutik-admin/units"
	"github.com/jrsteele09/boutik-admin/units/repofake"
	"github.com/stretchr/testify/require"
)

func TestFakeUnitsRepo(t *testing.T) {
	repo := repofake.NewFakeUnitsRepo()

	a := &units.PointOfSale{Name: "Analakely", OwnerID: utils.Ptr(7)}
	b := &units.PointOfSale{Name: "Ivandry", OwnerID: utils.Ptr(7)}
	c := &units.PointOfSale{Name: "Unowned"}
	for _, pos := range []*units.PointOfSale{a, b, c} {
		require.NoError(t, repo.Create(pos))
	}
	require.Equal(t, 1, a.ID)
	require.Equal(t, 3, c.ID)
	require.NotNil(t, a.CreatedAt)

	t.Run("list by owner", func(t *testing.T) {
		list, err := repo.ListByOwner(7)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "Analakely", list[0].Name)

		count, err := repo.CountByOwner(7)
		require.NoError(t, err)
		require.Equal(t, 2, count)
	})

	t.Run("update", func(t *testing.T) {
		got, err := repo.Get(b.ID)
		require.NoError(t, err)
		units.Update{Name: utils.Ptr("Ivandry 2")}.Apply(got)
		require.NoError(t, repo.Update(got))

		got, err = repo.Get(b.ID)
		require.NoError(t, err)
		require.Equal(t, "Ivandry 2", got.Name)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(c.ID))
		_, err := repo.Get(c.ID)
		require.ErrorIs(t, err, errors.ErrNotFound)
		require.ErrorIs(t, repo.Delete(c.ID), errors.ErrNotFound)
	})
}
