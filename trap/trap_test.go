package trap

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsKind(t *testing.T) {
	err := New(KindDeploy, "SAF-DEPLOY-201", "account already exists")
	if !IsKind(err, KindDeploy) {
		t.Fatalf("expected KindDeploy")
	}
	if IsKind(err, KindAuth) {
		t.Fatalf("did not expect KindAuth")
	}
	if IsKind(errors.New("plain"), KindDeploy) {
		t.Fatalf("plain errors have no kind")
	}
}

func TestCode(t *testing.T) {
	err := New(KindInit, "SAF-INIT-101", "owner already set")
	if got := Code(err); got != "SAF-INIT-101" {
		t.Fatalf("Code: got %q", got)
	}
	if got := Code(errors.New("plain")); got != "" {
		t.Fatalf("Code on plain error: got %q", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(KindStorage, "SAF-STORE-001", "write failed", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to reach the cause")
	}
	// Wrapping again (e.g. by a caller adding context) must keep Kind reachable.
	outer := fmt.Errorf("invoke: %w", err)
	if !IsKind(outer, KindStorage) {
		t.Fatalf("expected KindStorage through the wrap chain")
	}
	if Code(outer) != "SAF-STORE-001" {
		t.Fatalf("expected code through the wrap chain")
	}
}

func TestWrapNilCause(t *testing.T) {
	err := Wrap(KindInternal, "SAF-INT-001", "oops", nil)
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error")
	}
	if e.Cause != nil {
		t.Fatalf("expected nil cause")
	}
}
