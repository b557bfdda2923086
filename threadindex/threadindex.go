// Package threadindex exists purely as the canonical example of a
// priority-0 bootstrap registration: melon's own thread-index allocator
// claims index 0 for the main thread by registering at priority 0.
// Registrations with a negative priority, such as runtimetune's, still run
// before it. This package reproduces that
// claim on top of reuseid instead of reimplementing melon's thread
// subsystem.
package threadindex

import (
	"fmt"

	"github.com/gottingen/melon-sub003/bootstrap"
	"github.com/gottingen/melon-sub003/reuseid"
)

// Tag distinguishes this package's allocator namespace from any other
// caller of reuseid.Instance[uint64, Tag].
type Tag struct{}

// Max bounds the number of distinct thread indices this package will ever
// hand out.
const Max = 1 << 16

func init() {
	bootstrap.RegisterPriority(0, func() {
		id := reuseid.Instance[uint64, Tag](Max).Next()
		if id != 0 {
			panic(fmt.Sprintf("threadindex: expected to claim index 0, got %d", id))
		}
	}, nil)
}
