package bootstrap

import (
	"sync"

	"github.com/gottingen/melon-sub003/resident"
)

type exitCallbackRegistry struct {
	mu        sync.Mutex
	draining  bool
	callbacks []func()
}

var exitCallbacks = resident.New(func() exitCallbackRegistry {
	return exitCallbackRegistry{}
})

// PushExitCallback registers callback to run after every finalizer
// registered via Register/RegisterPriority has already run, during
// RunFinalizers. Unlike finalizers, exit callbacks have no priority and no
// associated initializer; they're a flat, append-order queue.
//
// Calling PushExitCallback from within an exit callback (i.e. while
// RunFinalizers is draining this queue) panics: there is no well-defined
// position to insert a callback into a queue that is actively being
// consumed.
func PushExitCallback(callback func()) {
	r := exitCallbacks.Get()
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.draining {
		panic("bootstrap: PushExitCallback called re-entrantly while exit callbacks are draining")
	}
	r.callbacks = append(r.callbacks, callback)
}

func drainExitCallbacks() {
	r := exitCallbacks.Get()
	r.mu.Lock()
	r.draining = true
	queue := r.callbacks
	r.callbacks = nil
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.draining = false
		r.mu.Unlock()
	}()

	for _, c := range queue {
		c()
	}
}
