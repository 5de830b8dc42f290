package sets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAddHas(t *testing.T) {
	s := New("a", "b")
	require.True(t, s.Has("a"))
	require.False(t, s.Has("c"))
	s.Add("c")
	require.True(t, s.Has("c"))
}

func TestUnion(t *testing.T) {
	s := New("a", "b")
	s.Union(New("b", "c"))
	require.Len(t, s, 3)
	require.True(t, s.Has("c"))
}

func TestSortedIsDeterministic(t *testing.T) {
	s := New("c", "a", "b")
	require.Equal(t, []string{"a", "b", "c"}, Sorted(s))
}

func TestCloneIsIndependent(t *testing.T) {
	s := New(1, 2)
	c := s.Clone()
	c.Add(3)
	require.False(t, s.Has(3))
	require.True(t, c.Has(3))
}
