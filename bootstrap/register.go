package bootstrap

import "runtime"

// Registration is returned by Register and RegisterPriority. It carries no
// public API of its own; callers typically discard it, assigning it to a
// package-level blank-named or underscore variable purely to force the
// registering call to run at package-init time.
type Registration struct {
	file string
	line int
}

// Register records init as a callback to run during RunBootstrap, and (if
// non-nil) fini as the matching callback to run, in reverse order, during
// RunFinalizers. It is equivalent to RegisterPriority(1, init, fini); 1 is
// the default priority.
//
// Register must be called before RunBootstrap; calling it afterwards panics.
func Register(init func(), fini func()) Registration {
	return RegisterPriority(1, init, fini)
}

// RegisterPriority is Register, with an explicit priority. Callbacks with a
// smaller priority run earlier; order between callbacks sharing a priority
// is deliberately randomized each run, so that nothing downstream comes to
// depend on it.
func RegisterPriority(priority int32, init func(), fini func()) Registration {
	_, file, line, _ := runtime.Caller(1)
	registerCallback(priority, file, line, init, fini)
	return Registration{file: file, line: line}
}
