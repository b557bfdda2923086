package status

import (
	"fmt"
	"strings"
	"syscall"
	"testing"
)

func TestOK(t *testing.T) {
	for _, st := range []Status{OK(), New(0, "blahblah")} {
		if !st.OK() {
			t.Fatalf("expected OK, got code=%d", st.Code())
		}
		if st.Code() != 0 {
			t.Fatalf("expected code 0, got %d", st.Code())
		}
		if st.CString() != "OK" {
			t.Fatalf("expected CString() == %q, got %q", "OK", st.CString())
		}
		if st.String() != "OK" {
			t.Fatalf("expected String() == %q, got %q", "OK", st.String())
		}
	}
}

func TestFailed(t *testing.T) {
	const noMemory = "No memory"
	const noCPU = "No CPU"

	st1 := New(int(syscall.ENOMEM), noMemory)
	if st1.OK() {
		t.Fatal("expected failure")
	}
	if st1.Code() != int(syscall.ENOMEM) {
		t.Fatalf("code mismatch: %d", st1.Code())
	}
	if st1.CString() != noMemory {
		t.Fatalf("CString mismatch: %q", st1.CString())
	}
	if st1.String() != noMemory {
		t.Fatalf("String mismatch: %q", st1.String())
	}

	st2 := Newf(int(syscall.EINVAL), "%s%s", noMemory, noCPU)
	if st2.Code() != int(syscall.EINVAL) {
		t.Fatalf("code mismatch: %d", st2.Code())
	}
	want := noMemory + noCPU
	if st2.CString() != want {
		t.Fatalf("CString mismatch: got %q want %q", st2.CString(), want)
	}
	if st2.String() != want {
		t.Fatalf("String mismatch: got %q want %q", st2.String(), want)
	}
}

func TestReset(t *testing.T) {
	var st Status
	st.SetError(int(syscall.ENOMEM), "No memory")
	if st.OK() {
		t.Fatal("expected failure after SetError")
	}

	st.SetErrorf(int(syscall.EINVAL), "%s%s", "No memory", "No CPU")
	if st.Code() != int(syscall.EINVAL) {
		t.Fatalf("code mismatch: %d", st.Code())
	}
	if st.CString() != "No memoryNo CPU" {
		t.Fatalf("CString mismatch: %q", st.CString())
	}

	st.Reset()
	if !st.OK() {
		t.Fatal("expected OK after Reset")
	}
	if st.CString() != "OK" {
		t.Fatalf("CString mismatch after reset: %q", st.CString())
	}
}

func TestCopyIsIndependent(t *testing.T) {
	st1 := New(int(syscall.ENOMEM), "No memory")
	st2 := st1 // value copy

	st1.SetError(int(syscall.EINVAL), "No memoryNo CPU")

	if st2.Code() != int(syscall.ENOMEM) || st2.CString() != "No memory" {
		t.Fatalf("copy was mutated by source update: code=%d message=%q", st2.Code(), st2.CString())
	}
}

func TestMessageWithEmbeddedNUL(t *testing.T) {
	raw := []byte("hello world")
	raw[5] = 0
	st := New(int(syscall.ENOMEM), string(raw))

	if got, want := len(st.Message()), 11; got != want {
		t.Fatalf("Message() length = %d, want %d", got, want)
	}
	if got, want := st.CString(), "hello"; got != want {
		t.Fatalf("CString() = %q, want %q", got, want)
	}
	if got, want := fmt.Sprint(st), string(raw); got != want {
		t.Fatalf("fmt.Sprint(st) = %q, want %q (the full, NUL-preserving message, not the truncated CString)", got, want)
	}
}

func TestFromErrno(t *testing.T) {
	st := FromErrno(syscall.ENOENT)
	if st.OK() {
		t.Fatal("expected failure")
	}
	if st.Code() != int(syscall.ENOENT) {
		t.Fatalf("code mismatch: %d", st.Code())
	}
	if st.CString() == "" {
		t.Fatal("expected a non-empty platform error string")
	}
}

func TestFromErrnoWithContext(t *testing.T) {
	st := FromErrnoWithContext(syscall.ENOENT, "opening config file")
	if st.OK() {
		t.Fatal("expected failure")
	}
	if !containsAll(st.CString(), syscall.ENOENT.Error(), "opening config file") {
		t.Fatalf("expected message to contain both parts, got %q", st.CString())
	}
}

func TestFromErrorCode(t *testing.T) {
	if got := FromErrorCode(1, nil); !got.OK() {
		t.Fatalf("expected OK for nil error, got %+v", got)
	}

	err := fmt.Errorf("disk full")
	st := FromErrorCode(28, err)
	if st.Code() != 28 || st.CString() != "disk full" {
		t.Fatalf("unexpected status: code=%d message=%q", st.Code(), st.CString())
	}
}

func TestFromLastError(t *testing.T) {
	err := fmt.Errorf("connection reset")
	st := FromLastError(104, err)
	if st.Code() != 104 || st.CString() != "connection reset" {
		t.Fatalf("unexpected status: code=%d message=%q", st.Code(), st.CString())
	}
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
