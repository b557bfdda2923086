// Package resident provides process-lifetime storage for a value, built once
// and never torn down.
//
// melon's C++ original used this to sidestep static-destruction-order
// hazards: a logger that outlives a registry it still needs to call into.
// Go's garbage collector has no such hazard, so the contract here is
// narrowed to what still matters in a managed runtime: a value that is
// constructed exactly once, safely under concurrent first access, and that
// stays reachable (and therefore alive) for as long as the process runs
// because something — typically a package-level variable — holds onto it.
package resident

import "sync"

// Resident holds a T constructed exactly once, on first call to Get.
//
// Construction is driven by the ctor supplied to New. The zero value has no
// ctor, so calling Get on it panics; build a Resident with New.
type Resident[T any] struct {
	once  sync.Once
	ctor  func() T
	value T
}

// New returns a Resident whose value is built by ctor on first access.
//
// ctor is called at most once, even under concurrent calls to Get.
func New[T any](ctor func() T) *Resident[T] {
	return &Resident[T]{ctor: ctor}
}

// Get returns a pointer to the held value, constructing it on first call.
func (r *Resident[T]) Get() *T {
	r.once.Do(func() {
		r.value = r.ctor()
	})
	return &r.value
}

// Singleton is the same as Resident, except the constructor is private to
// whatever package builds the Singleton value in the first place — the Go
// rendering of melon's resident_singleton, which restricts construction
// access to T itself via C++ friend declarations. Go has no equivalent
// access-control mechanism, so the restriction is enforced by convention:
// only export a function that returns the *Singleton itself, never the
// means to build a second one.
type Singleton[T any] struct {
	inner Resident[T]
}

// newSingleton is unexported: code outside this package cannot construct a
// Singleton directly, only obtain one via a constructor the owning package
// chooses to expose (typically a single package-level instance).
func newSingleton[T any](ctor func() T) *Singleton[T] {
	return &Singleton[T]{inner: Resident[T]{ctor: ctor}}
}

// Get returns a pointer to the held value, constructing it on first call.
func (s *Singleton[T]) Get() *T {
	return s.inner.Get()
}
