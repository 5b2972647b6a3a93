package scope_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rail44/spctr/internal/object"
	"github.com/rail44/spctr/internal/scope"
)

func TestNewFrameStartsAsUnevaluatedThunks(t *testing.T) {
	f := scope.NewFrame([]int{10, 20, 30})
	require.Len(t, f.Bindings, 3)
	for i, addr := range []int{10, 20, 30} {
		require.Equal(t, scope.Cmd, f.Bindings[i].State)
		require.Equal(t, addr, f.Bindings[i].Addr)
	}
}

func TestNewEvaluatedFrameStartsEvaluated(t *testing.T) {
	f := scope.NewEvaluatedFrame([]object.Value{object.Number(1), object.Number(2)})
	require.Len(t, f.Bindings, 2)
	for _, b := range f.Bindings {
		require.Equal(t, scope.Evaluated, b.State)
	}
	require.Equal(t, float64(1), f.Bindings[0].Value.AsNumber())
	require.Equal(t, float64(2), f.Bindings[1].Value.AsNumber())
}

func TestPushAncestorWalksOutward(t *testing.T) {
	var s *scope.Scope
	s = scope.Push(s, scope.NewFrame([]int{1}))
	s = scope.Push(s, scope.NewFrame([]int{2}))
	s = scope.Push(s, scope.NewFrame([]int{3}))

	require.Equal(t, 3, s.Ancestor(0).Get(0).Addr)
	require.Equal(t, 2, s.Ancestor(1).Get(0).Addr)
	require.Equal(t, 1, s.Ancestor(2).Get(0).Addr)
	require.Nil(t, s.Ancestor(3))
}

func TestPopRemovesHeadFrame(t *testing.T) {
	var s *scope.Scope
	s = scope.Push(s, scope.NewFrame([]int{1}))
	inner := scope.Push(s, scope.NewFrame([]int{2}))

	popped := inner.Pop()
	require.Same(t, s, popped)
}

// TestSetEvaluatedDoesNotMutateSharedParent exercises spec.md §3.3's
// persistence: upgrading a binding in a child frame must not affect a
// sibling Scope that shares the same parent frame.
func TestSetEvaluatedDoesNotMutateSharedParent(t *testing.T) {
	parent := scope.Push(nil, scope.NewFrame([]int{100}))
	childA := scope.Push(parent, scope.NewFrame([]int{1}))
	childB := scope.Push(parent, scope.NewFrame([]int{2}))

	childA.SetEvaluated(0, object.Number(42))

	require.Equal(t, scope.Evaluated, childA.Get(0).State)
	require.Equal(t, scope.Cmd, childB.Get(0).State)
	require.Equal(t, 2, childB.Get(0).Addr)
	require.Equal(t, scope.Cmd, parent.Get(0).State)
}

func TestSetEvaluatedUpgradesThunkToValue(t *testing.T) {
	s := scope.Push(nil, scope.NewFrame([]int{5}))
	require.Equal(t, scope.Cmd, s.Get(0).State)

	s.SetEvaluated(0, object.FromObject(object.NewString("hi")))

	b := s.Get(0)
	require.Equal(t, scope.Evaluated, b.State)
	require.Equal(t, "hi", b.Value.Obj.(*object.String).Value)
}
