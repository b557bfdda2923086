package bootstrap

import (
	"testing"

	"github.com/gottingen/melon-sub003/internal/logsetup"
)

func TestBootstrapInit_ParsesFlagsAndConfiguresLogger(t *testing.T) {
	err := BootstrapInit([]string{"myapp", "--log_to_stderr=true", "--log_save_days=3"})
	if err != nil {
		t.Fatalf("BootstrapInit returned error: %v", err)
	}
	if !*flagLogToStderr {
		t.Fatal("expected --log_to_stderr to be parsed as true")
	}
	if *flagLogSaveDays != 3 {
		t.Fatalf("expected --log_save_days=3, got %d", *flagLogSaveDays)
	}
	if logsetup.Logger() == nil {
		t.Fatal("expected BootstrapInit to configure a non-nil logger")
	}
}

func TestBootstrapInit_UnknownFlagReturnsError(t *testing.T) {
	if err := BootstrapInit([]string{"myapp", "--this_flag_does_not_exist"}); err == nil {
		t.Fatal("expected an error for an unrecognized flag")
	}
}

func TestBootstrapLifecycle_EndToEnd(t *testing.T) {
	resetRegistryForTest()
	t.Cleanup(resetRegistryForTest)

	ran := false
	finalized := false
	Register(func() { ran = true }, func() { finalized = true })

	if err := BootstrapInit([]string{"myapp", "--log_to_stderr=true"}); err != nil {
		t.Fatalf("BootstrapInit: %v", err)
	}
	RunBootstrap()
	if !ran {
		t.Fatal("expected registered initializer to have run")
	}

	RunFinalizers()
	if !finalized {
		t.Fatal("expected registered finalizer to have run")
	}
}
