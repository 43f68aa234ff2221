package voxsim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreAllocFree(t *testing.T) {
	s := NewStore(4)

	a := s.alloc()
	require.Equal(t, int32(1), a)
	require.Equal(t, int32(2), s.MaxID())

	b := s.alloc()
	require.Equal(t, int32(2), b)
	require.Equal(t, int32(3), s.MaxID())

	s.Parts[a].Type = 7
	s.free(a)
	require.Equal(t, PT_NONE, s.Parts[a].Type)

	// Freeing re-links slot a onto the head of the free list, so the next
	// alloc must reuse it before advancing past the previous tip.
	c := s.alloc()
	require.Equal(t, a, c)
}

func TestStoreFullReturnsNegativeOne(t *testing.T) {
	s := NewStore(2) // capacity 2: only slot 1 is ever allocatable

	first := s.alloc()
	require.Equal(t, int32(1), first)

	second := s.alloc()
	require.Equal(t, int32(-1), second)
}

func TestStoreFreeShrinksTipMaxID(t *testing.T) {
	s := NewStore(8)

	a := s.alloc()
	b := s.alloc()
	require.Equal(t, int32(3), s.MaxID())

	s.free(b)
	require.Equal(t, int32(2), s.MaxID(), "freeing the tip slot should step maxID back")

	_ = a
}
