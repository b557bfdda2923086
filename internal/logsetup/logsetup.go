// Package logsetup configures the process-wide structured logger, the same
// role melon's melon/log/config.h plays: stderr-vs-file destinations, a
// retention policy for rotated files, and terminal-aware colorization.
//
// It is internal because the wiring choices here (zerolog as the event
// backend, lumberjack for rotation) are an implementation detail of
// bootstrap; other packages consume the result only through
// logsetup.Logger(), never through the zerolog/lumberjack types directly.
package logsetup

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/gottingen/melon-sub003/resident"
	"github.com/joeycumines/logiface"
	izerolog "github.com/joeycumines/logiface-zerolog"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Config mirrors the subset of melon's log flags that this module carries
// forward: FLAGS_melon_logtostderr, FLAGS_melon_log_save_days, plus a log
// directory and buffering knob absorbed from the wider melon/log config
// surface.
type Config struct {
	// ToStderr, when true, writes exclusively to stderr and disables file
	// rotation and retention entirely.
	ToStderr bool
	// SaveDays is how many days of rotated log files to retain. Ignored
	// when ToStderr is true. Zero means "keep forever" (lumberjack's
	// MaxAge semantics).
	SaveDays int
	// Dir is the directory rotated log files are written to. If empty,
	// GOOGLE_LOG_DIR, then TEST_TMPDIR, then the OS temp dir are tried, in
	// that order.
	Dir string
	// BufSecs is accepted for flag-surface compatibility; zerolog's writer
	// is unbuffered, so the value is not used.
	BufSecs int
}

var (
	mu     sync.Mutex
	logger *logiface.Logger[*izerolog.Event]
)

// holder is the resident.Resident backing store for the default logger: it
// constructs a safe, stderr-only fallback logger exactly once, used by
// Logger() if Init was never called (e.g. in a library consumer's tests).
var holder = resident.New(func() *logiface.Logger[*izerolog.Event] {
	return logiface.New[*izerolog.Event](izerolog.WithZerolog(zerolog.New(stderrWriter()).With().Timestamp().Logger()))
})

func stderrWriter() zerolog.ConsoleWriter {
	w := zerolog.ConsoleWriter{Out: os.Stderr}
	w.NoColor = !colorize()
	return w
}

func colorize() bool {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return false
	}
	return os.Getenv("TERM") != "" && os.Getenv("TERM") != "dumb"
}

func resolveDir(dir string) string {
	if dir != "" {
		return dir
	}
	if d := os.Getenv("GOOGLE_LOG_DIR"); d != "" {
		return d
	}
	if d := os.Getenv("TEST_TMPDIR"); d != "" {
		return d
	}
	return os.TempDir()
}

// Init configures the process-wide logger from cfg. It is idempotent only
// in the sense that the last call wins; callers (bootstrap.BootstrapInit,
// specifically) are expected to call it exactly once, before RunBootstrap.
func Init(cfg Config, progName string) {
	var w zerolog.LevelWriter
	if cfg.ToStderr {
		cw := stderrWriter()
		w = levelWriterAdapter{Writer: cw}
	} else {
		dir := resolveDir(cfg.Dir)
		_ = os.MkdirAll(dir, 0o755)
		base := progName
		if base == "" {
			base = "app"
		}
		lj := &lumberjack.Logger{
			Filename: filepath.Join(dir, base+".log"),
			MaxAge:   cfg.SaveDays,
			Compress: true,
		}
		w = levelWriterAdapter{Writer: lj}
	}

	zl := zerolog.New(w).With().Timestamp().Logger()

	mu.Lock()
	logger = logiface.New[*izerolog.Event](izerolog.WithZerolog(zl))
	mu.Unlock()
}

// Logger returns the process-wide structured logger, configured by the most
// recent call to Init, or a stderr-only fallback if Init was never called.
func Logger() *logiface.Logger[*izerolog.Event] {
	mu.Lock()
	defer mu.Unlock()
	if logger != nil {
		return logger
	}
	return *holder.Get()
}

// levelWriterAdapter adapts an io.Writer (lumberjack.Logger and
// zerolog.ConsoleWriter both satisfy io.Writer) to zerolog.LevelWriter, so
// that both destinations can be swapped in through the same Init code path.
type levelWriterAdapter struct {
	Writer interface {
		Write(p []byte) (int, error)
	}
}

func (w levelWriterAdapter) Write(p []byte) (int, error) { return w.Writer.Write(p) }

func (w levelWriterAdapter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	return w.Writer.Write(p)
}
