// Package bootstrap provides an ordered, priority-bucketed process
// lifecycle: packages register initializers (and, optionally, matching
// finalizers) at init() time via Register/RegisterPriority, a single call
// to BootstrapInit+RunBootstrap runs them all in priority order (randomized
// within a priority), and RunFinalizers runs the finalizers in the reverse
// order, followed by any callbacks pushed via PushExitCallback.
//
// This mirrors melon's C++ MELON_BOOTSTRAP macro and its backing registry,
// adapted to Go: static-initializer-order callbacks become init()-time
// Register calls, and the "construct on first call, never torn down"
// storage melon gets from function-local statics is instead provided
// explicitly via resident.Resident.
package bootstrap

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	mrand "math/rand"
	"os"
	"sort"
	"sync"

	"github.com/gottingen/melon-sub003/resident"
)

type callback struct {
	init func()
	fini func()
	file string
	line int
}

type stagingRegistry struct {
	mu       sync.Mutex
	byPrio   map[int32][]callback
	prepared bool
}

var staging = resident.New(func() stagingRegistry {
	return stagingRegistry{byPrio: map[int32][]callback{}}
})

var (
	runMu        sync.Mutex
	initializers []callback
	finalizers   []callback
)

// processRand is seeded once, from a cryptographically random source, the
// same way melon seeds its std::mt19937_64 from std::random_device — the
// resulting shuffle is unpredictable across runs, but deterministic within
// one, which is all the ordering guarantee callers are owed.
var processRand = resident.New(func() *mrand.Rand {
	var seed int64
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(buf[:]))
	} else {
		// crypto/rand is documented to never fail on supported platforms;
		// this is a last-resort fallback, not an expected path.
		n, _ := rand.Int(rand.Reader, big.NewInt(1))
		if n != nil {
			seed = n.Int64()
		}
	}
	return mrand.New(mrand.NewSource(seed))
})

func registerCallback(priority int32, file string, line int, init func(), fini func()) {
	r := staging.Get()
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.prepared {
		fmt.Fprintf(os.Stderr, "bootstrap: registration after freeze, from %s:%d\n", file, line)
		panic("bootstrap: callbacks may only be registered before RunBootstrap is called")
	}
	r.byPrio[priority] = append(r.byPrio[priority], callback{init: init, fini: fini, file: file, line: line})
}

// freeze moves every staged callback into the flat run-order slices,
// shuffling within each priority bucket, and marks the staging registry as
// prepared so that any further registration attempt panics instead of
// silently being dropped or silently racing the run loop.
func freeze() {
	r := staging.Get()
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.prepared {
		return
	}

	priorities := make([]int32, 0, len(r.byPrio))
	for p := range r.byPrio {
		priorities = append(priorities, p)
	}
	sort.Slice(priorities, func(i, j int) bool { return priorities[i] < priorities[j] })

	rnd := *processRand.Get()
	for _, p := range priorities {
		bucket := r.byPrio[p]
		rnd.Shuffle(len(bucket), func(i, j int) { bucket[i], bucket[j] = bucket[j], bucket[i] })
		for _, c := range bucket {
			initializers = append(initializers, c)
			if c.fini != nil {
				finalizers = append(finalizers, c)
			}
		}
	}

	r.prepared = true
	r.byPrio = nil
}

func runInitializers() {
	runMu.Lock()
	defer runMu.Unlock()

	// If an initializer panics, name its registration site on stderr before
	// the panic propagates.
	var running *callback
	defer func() {
		if running != nil {
			fmt.Fprintf(os.Stderr, "bootstrap: initializer registered at %s:%d panicked\n", running.file, running.line)
		}
	}()

	for i := range initializers {
		running = &initializers[i]
		running.init()
	}
	running = nil
	initializers = nil
}

func runFinalizers() {
	runMu.Lock()
	defer runMu.Unlock()

	// Finalizers run in the opposite order their initializers ran in.
	for i := len(finalizers) - 1; i >= 0; i-- {
		finalizers[i].fini()
	}
	finalizers = nil
}
