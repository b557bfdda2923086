// Package reuseid implements a thread-safe, recyclable integer ID
// allocator: issue/free of integral IDs in [0, Max], per independent
// namespace.
//
// Namespaces are distinguished by a (element type, phantom tag type, Max)
// triple, the same way melon's C++ original distinguishes allocators by
// template instantiation (T, Tag, Max). Go generics don't let a package
// level variable be parameterized directly, so the per-namespace singleton
// is instead resolved through a small registry keyed by the pair of
// reflect.Types plus the runtime Max value — exactly the "string/type-keyed
// registry" fallback the original design calls out as an acceptable
// substitute for compile-time template parameters.
package reuseid

import (
	"reflect"
	"sync"

	"golang.org/x/exp/constraints"
)

// Allocator issues and recycles IDs in [0, Max]. The zero value is not
// useful; construct one via Instance.
type Allocator[T constraints.Integer] struct {
	mu       sync.Mutex
	current  T
	max      T
	recycled []T
}

// Next returns the next available ID.
//
// Previously-freed IDs are reissued LIFO, for cache locality of reissued
// IDs. Once every ID in [0, Max) has been issued, Next saturates: it keeps
// returning Max, which callers must treat as "exhausted" rather than as a
// fresh ID.
func (a *Allocator[T]) Next() T {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n := len(a.recycled); n > 0 {
		id := a.recycled[n-1]
		a.recycled = a.recycled[:n-1]
		return id
	}
	if a.current >= a.max {
		return a.max
	}
	id := a.current
	a.current++
	return id
}

// Free returns id to the pool, making it eligible for reissue.
//
// It reports false — a programmer-error indicator, not a fatal condition —
// when id was never issued (id >= current). When id is the most recently
// issued, not-yet-freed ID, current is decremented instead of growing the
// recycled list (trailing-edge compaction), keeping the free list from
// growing without bound when IDs are freed in reverse issuance order.
func (a *Allocator[T]) Free(id T) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if id >= a.current {
		return false
	}
	if id+1 == a.current {
		a.current--
		return true
	}
	a.recycled = append(a.recycled, id)
	return true
}

type key struct {
	elem reflect.Type
	tag  reflect.Type
	max  any
}

var (
	registryMu sync.Mutex
	registry   = map[key]any{}
)

// Instance returns the process-wide allocator for the (T, Tag, max)
// namespace, constructing it on first use.
//
// Tag is a purely phantom type parameter: it exists only to make two
// instantiations with otherwise-identical T and max independent of each
// other, e.g. Instance[uint64, fdTag](n) and Instance[uint64, requestTag](n)
// never share state.
func Instance[T constraints.Integer, Tag any](max T) *Allocator[T] {
	var zeroT T
	var zeroTag Tag
	k := key{
		elem: reflect.TypeOf(zeroT),
		tag:  reflect.TypeOf(zeroTag),
		max:  max,
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if existing, ok := registry[k]; ok {
		return existing.(*Allocator[T])
	}
	a := &Allocator[T]{max: max}
	registry[k] = a
	return a
}
