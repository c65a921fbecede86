package listview_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/boutik-admin/listview"
	"github.com/stretchr/testify/require"
)

func TestDebounced(t *testing.T) {
	clk := &clock{now: time.Unix(0, 0)}
	d := listview.NewDebounced("", 500*time.Millisecond, clk.Now)

	require.False(t, d.Pending())
	d.Set("a")
	require.True(t, d.Pending())
	require.Equal(t, "", d.Value())

	clk.Advance(300 * time.Millisecond)
	d.Set("ab")
	clk.Advance(300 * time.Millisecond)
	require.Equal(t, "", d.Value())

	clk.Advance(200 * time.Millisecond)
	require.Equal(t, "ab", d.Value())
	require.False(t, d.Pending())

	_, ok := d.SettlesAt()
	require.False(t, ok)
}
