package head

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursor_empty(t *testing.T) {
	h, err := New(16)
	require.NoError(t, err)

	c := NewCursor(h)
	require.False(t, c.Next())
	require.Equal(t, "", c.Field())
	require.Equal(t, "", c.Value())
	require.False(t, c.Next())
}

func TestCursor_next(t *testing.T) {
	h, err := New(128)
	require.NoError(t, err)
	require.NoError(t, h.Push("Content-Length", "123"))
	require.NoError(t, h.Push("X-Empty", ""))
	require.NoError(t, h.Push("Content-Type", "application/json"))

	c := NewCursor(h)
	require.Equal(t, "", c.Field(), "nothing decoded before Next")

	require.True(t, c.Next())
	require.Equal(t, "Content-Length", c.Field())
	require.Equal(t, "123", c.Value())

	require.True(t, c.Next())
	require.Equal(t, "X-Empty", c.Field())
	require.Equal(t, "", c.Value())

	require.True(t, c.Next())
	require.Equal(t, "Content-Type", c.Field())
	require.Equal(t, "application/json", c.Value())

	require.False(t, c.Next())
	require.Equal(t, "", c.Field())
	require.Equal(t, "", c.Value())
	require.False(t, c.Next())

	// restart by re-creation
	c = NewCursor(h)
	require.True(t, c.Next())
	require.Equal(t, "Content-Length", c.Field())
}

func TestCursor_seesLaterPushes(t *testing.T) {
	h, err := New(128)
	require.NoError(t, err)
	require.NoError(t, h.Push("A", "1"))

	c := NewCursor(h)
	require.True(t, c.Next())
	require.False(t, c.Next())

	require.NoError(t, h.Push("B", "2"))
	require.True(t, c.Next())
	require.Equal(t, "B", c.Field())
	require.Equal(t, "2", c.Value())
}

func TestCursor_skipsOpenMark(t *testing.T) {
	h, err := New(128)
	require.NoError(t, err)
	require.NoError(t, h.Push("Host", "example.com"))

	m, err := h.Mark()
	require.NoError(t, err)
	require.NoError(t, m.PushField([]byte("X-Pending")))
	require.NoError(t, m.PushValue([]byte("half")))

	require.Equal(t, []pair{{"Host", "example.com"}}, pairs(h))
	require.Equal(t, "", h.Find("X-Pending"))
	require.Equal(t, "example.com", h.Find("host"))

	require.NoError(t, m.Commit())
	require.Equal(t, []pair{{"Host", "example.com"}, {"X-Pending", "half"}}, pairs(h))
}

func TestCursor_viewsOutliveNext(t *testing.T) {
	h, err := New(128)
	require.NoError(t, err)
	require.NoError(t, h.Push("A", "first"))
	require.NoError(t, h.Push("B", "second"))

	c := NewCursor(h)
	require.True(t, c.Next())
	field, value := c.Field(), c.Value()
	require.True(t, c.Next())

	// a cancelled write reuses the bytes after the last header only
	m, err := h.Mark()
	require.NoError(t, err)
	require.NoError(t, m.PushField([]byte("ZZZZZZZZ")))
	require.NoError(t, m.Cancel())

	require.Equal(t, "A", field)
	require.Equal(t, "first", value)
}
