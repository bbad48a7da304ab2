// Package testkit provides conformance suites shared by KV backend tests.
package testkit

import (
	"testing"

	"xdao.co/saf/storage"
)

// RunStoreConformance exercises the storage.Store and storage.KV contracts
// against a backend. open must return a fresh, empty store per call.
func RunStoreConformance(t *testing.T, open func(t *testing.T) storage.Store) {
	t.Run("EmptyNamespaceRejected", func(t *testing.T) {
		s := open(t)
		if _, err := s.Namespace(""); err == nil {
			t.Fatalf("expected error for empty namespace")
		}
	})

	t.Run("GetAbsentReturnsNotFound", func(t *testing.T) {
		s := open(t)
		kv := mustNamespace(t, s, "a")
		if _, err := kv.Get("missing"); !storage.IsNotFound(err) {
			t.Fatalf("Get absent: got %v, want ErrNotFound", err)
		}
		if kv.Has("missing") {
			t.Fatalf("Has absent: got true")
		}
	})

	t.Run("SetGetRoundTrip", func(t *testing.T) {
		s := open(t)
		kv := mustNamespace(t, s, "a")
		if err := kv.Set("owner", []byte{1, 2, 3}); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if !kv.Has("owner") {
			t.Fatalf("Has after Set: got false")
		}
		got, err := kv.Get("owner")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if string(got) != string([]byte{1, 2, 3}) {
			t.Fatalf("Get: got %v", got)
		}
	})

	t.Run("SetOverwrites", func(t *testing.T) {
		s := open(t)
		kv := mustNamespace(t, s, "a")
		if err := kv.Set("k", []byte("v1")); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if err := kv.Set("k", []byte("v2")); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, err := kv.Get("k")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if string(got) != "v2" {
			t.Fatalf("Get after overwrite: got %q", got)
		}
	})

	t.Run("EmptyKeyRejected", func(t *testing.T) {
		s := open(t)
		kv := mustNamespace(t, s, "a")
		if err := kv.Set("", []byte("v")); err == nil {
			t.Fatalf("Set with empty key: expected error")
		}
		if _, err := kv.Get(""); err == nil {
			t.Fatalf("Get with empty key: expected error")
		}
		if kv.Has("") {
			t.Fatalf("Has with empty key: got true")
		}
	})

	t.Run("NamespacesIsolated", func(t *testing.T) {
		s := open(t)
		a := mustNamespace(t, s, "a")
		b := mustNamespace(t, s, "b")
		if err := a.Set("k", []byte("va")); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if b.Has("k") {
			t.Fatalf("namespace b sees namespace a's key")
		}
	})

	t.Run("NamespaceStable", func(t *testing.T) {
		s := open(t)
		a1 := mustNamespace(t, s, "a")
		if err := a1.Set("k", []byte("v")); err != nil {
			t.Fatalf("Set: %v", err)
		}
		a2 := mustNamespace(t, s, "a")
		if !a2.Has("k") {
			t.Fatalf("re-opened namespace lost key")
		}
	})
}

func mustNamespace(t *testing.T, s storage.Store, name string) storage.KV {
	t.Helper()
	kv, err := s.Namespace(name)
	if err != nil {
		t.Fatalf("Namespace(%q): %v", name, err)
	}
	return kv
}
