// Package runtimetune adapts the Go runtime's GOMAXPROCS and soft memory
// limit to the container (or host) the process is actually running in.
//
// It exists to put the teacher repo's otherwise-unused container-awareness
// dependencies (go.uber.org/automaxprocs, github.com/KimMachineGun/automemlimit,
// github.com/pbnjay/memory) to work: they have no natural home in the
// original melon specification, which predates Go entirely, but every Go
// service the teacher repo's authors ship carries this exact trio at
// startup.
package runtimetune

import (
	"fmt"
	"os"

	"github.com/KimMachineGun/automemlimit/memlimit"
	"github.com/gottingen/melon-sub003/bootstrap"
	"github.com/pbnjay/memory"
	"go.uber.org/automaxprocs/maxprocs"
)

// Priority is deliberately lower than any other registration this module
// ships: GOMAXPROCS and GOMEMLIMIT should be settled before any other
// initializer has a chance to spin up goroutines or allocate based on
// runtime.NumCPU()/runtime.GOMAXPROCS(0).
const Priority = -100

func init() {
	bootstrap.RegisterPriority(Priority, tune, nil)
}

func tune() {
	if _, err := maxprocs.Set(maxprocs.Logger(logf)); err != nil {
		logf("GOMAXPROCS tuning skipped: %v", err)
	}

	// SetGoMemLimitWithOpts already falls back across its configured
	// providers (cgroup first); logging the host's total physical memory
	// alongside it gives an operator enough context to sanity check
	// whatever limit actually got applied, without this package needing
	// its own provider implementation.
	if limit, err := memlimit.SetGoMemLimitWithOpts(memlimit.WithRatio(0.9)); err != nil {
		logf("GOMEMLIMIT tuning skipped: %v (total system memory: %d bytes)", err, memory.TotalMemory())
	} else {
		logf("GOMEMLIMIT set to %d bytes (total system memory: %d bytes)", limit, memory.TotalMemory())
	}
}

func logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "runtimetune: "+format+"\n", args...)
}
