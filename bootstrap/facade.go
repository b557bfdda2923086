package bootstrap

import (
	"path/filepath"

	"github.com/gottingen/melon-sub003/internal/logsetup"
	"github.com/spf13/pflag"
)

var flagSet = pflag.NewFlagSet("bootstrap", pflag.ContinueOnError)

var (
	flagLogToStderr = flagSet.Bool("log_to_stderr", false, "write log output to stderr instead of rotated files")
	flagLogSaveDays = flagSet.Int("log_save_days", 7, "days of rotated log files to retain")
	flagLogDir      = flagSet.String("log_dir", "", "directory for rotated log files; falls back to GOOGLE_LOG_DIR, then TEST_TMPDIR")
	flagLogBufSecs  = flagSet.Int("log_buf_secs", 0, "accepted for flag-surface compatibility; logging here is unbuffered")
)

// BootstrapInit parses args (the full os.Args, including argv[0]) with
// pflag, applies any pending flag overrides registered via
// ResetFlag/ForceOverrideFlag, and configures the process logger from the
// parsed flags.
//
// It must be called exactly once, before RunBootstrap.
func BootstrapInit(args []string) error {
	progName := "app"
	rest := args
	if len(args) > 0 {
		progName = filepath.Base(args[0])
		rest = args[1:]
	}

	if err := flagSet.Parse(rest); err != nil {
		return err
	}
	applyOverrides(flagSet)

	logsetup.Init(logsetup.Config{
		ToStderr: *flagLogToStderr,
		SaveDays: *flagLogSaveDays,
		Dir:      *flagLogDir,
		BufSecs:  *flagLogBufSecs,
	}, progName)

	return nil
}

// RunBootstrap freezes the registration registry and runs every registered
// initializer, lowest priority first, randomized within a priority.
//
// RunBootstrap may only be called once; registering further callbacks with
// Register/RegisterPriority after it has run panics.
func RunBootstrap() {
	freeze()
	runInitializers()
}

// RunFinalizers runs every registered finalizer, in the reverse of the
// order its matching initializer ran in, then drains the queue of
// callbacks registered via PushExitCallback, in append order.
func RunFinalizers() {
	runFinalizers()
	drainExitCallbacks()
}
