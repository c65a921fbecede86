package navigation_test

import (
	"testing"

	"github.com/jrsteele09/boutik-admin/navigation"
	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	loc := navigation.ParseLocation("/dashboard/home?tab=active&page=2")
	require.Equal(t, "/dashboard/home", loc.Path)
	require.Equal(t, "active", loc.Get("tab"))
	require.Equal(t, "/dashboard/home?page=2&tab=active", loc.String())

	bare := navigation.ParseLocation("/auth/login")
	require.Equal(t, "/auth/login", bare.String())
	require.Empty(t, bare.Get("r"))

	with := bare.With("r", "/dashboard/home?tab=x")
	require.Equal(t, "/dashboard/home?tab=x", with.Get("r"))
	require.Empty(t, bare.Get("r"))

	round := navigation.ParseLocation(with.String())
	require.Equal(t, "/dashboard/home?tab=x", round.Get("r"))
}

func TestRecorder(t *testing.T) {
	var rec navigation.Recorder
	_, ok := rec.Last()
	require.False(t, ok)

	var nav navigation.Navigator = &rec
	nav.Navigate(navigation.ParseLocation("/a"), navigation.Push)
	nav.Navigate(navigation.ParseLocation("/b"), navigation.Replace)

	last, ok := rec.Last()
	require.True(t, ok)
	require.Equal(t, "/b", last.To.Path)
	require.Equal(t, navigation.Replace, last.Mode)
	require.Len(t, rec.Calls(), 2)

	var got string
	navigation.NavigatorFunc(func(to navigation.Location, _ navigation.Mode) { got = to.Path }).
		Navigate(navigation.ParseLocation("/c"), navigation.Push)
	require.Equal(t, "/c", got)
}
