package bootstrap

import (
	"fmt"
	"sync"

	"github.com/gottingen/melon-sub003/resident"
	"github.com/spf13/pflag"
)

type flagOverride struct {
	value    string
	forcibly bool
}

type flagOverrideRegistry struct {
	mu     sync.Mutex
	byName map[string]flagOverride
}

var overrides = resident.New(func() flagOverrideRegistry {
	return flagOverrideRegistry{byName: map[string]flagOverride{}}
})

// ResetFlag schedules name to be set to value once flags have been parsed,
// but only if the user didn't already set it explicitly on the command
// line. It is meant to be called from an init() function, before flags are
// parsed.
//
// ResetFlag panics if name already has a pending override — registering two
// overrides for the same flag is always a programmer error, never a runtime
// condition to recover from.
func ResetFlag(name string, value string) {
	registerOverride(name, value, false)
}

// ForceOverrideFlag is ResetFlag, except the new value is applied even if
// the user explicitly set the flag on the command line.
func ForceOverrideFlag(name string, value string) {
	registerOverride(name, value, true)
}

func registerOverride(name string, value string, forcibly bool) {
	r := overrides.Get()
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byName[name]; ok {
		panic(fmt.Sprintf("bootstrap: duplicate override for flag %q, was %q, now %q", name, existing.value, value))
	}
	r.byName[name] = flagOverride{value: value, forcibly: forcibly}
}

// applyOverrides applies every pending flag override to fs, which must
// already have parsed the command line. A flag is overridden when it was
// not set on the command line (pflag's Changed is false), or when its
// override was registered with ForceOverrideFlag. A flag set on the command
// line to its default value counts as set and keeps that value.
//
// It is not an error for fs to lack a flag some override names; that
// override is simply skipped, since not every binary links every package
// that might register one.
func applyOverrides(fs *pflag.FlagSet) {
	r := overrides.Get()
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, ov := range r.byName {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if !f.Changed || ov.forcibly {
			_ = fs.Set(name, ov.value)
		}
	}
}
