package hub

import (
	"slices"
	"sync/atomic"
)

// snapshotSet is a copy-on-write set. Readers load an immutable slice;
// writers build a new slice and install it with compare-and-swap, retrying
// when another writer got there first.
type snapshotSet[T comparable] struct {
	members atomic.Pointer[[]T]
}

func (s *snapshotSet[T]) load() []T {
	if p := s.members.Load(); p != nil {
		return *p
	}
	return nil
}

// add reports whether m was added. Adding a member twice is a no-op.
func (s *snapshotSet[T]) add(m T) bool {
	for {
		current := s.members.Load()
		var old []T
		if current != nil {
			old = *current
		}
		if slices.Contains(old, m) {
			return false
		}
		next := make([]T, len(old), len(old)+1)
		copy(next, old)
		next = append(next, m)
		if s.members.CompareAndSwap(current, &next) {
			return true
		}
	}
}

// remove reports whether m was removed.
func (s *snapshotSet[T]) remove(m T) bool {
	for {
		current := s.members.Load()
		if current == nil {
			return false
		}
		old := *current
		i := slices.Index(old, m)
		if i < 0 {
			return false
		}
		next := make([]T, 0, len(old)-1)
		next = append(next, old[:i]...)
		next = append(next, old[i+1:]...)
		if s.members.CompareAndSwap(current, &next) {
			return true
		}
	}
}

func (s *snapshotSet[T]) size() int {
	return len(s.load())
}
