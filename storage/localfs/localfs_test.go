package localfs

import (
	"testing"

	"xdao.co/saf/storage"
	"xdao.co/saf/storage/testkit"
)

func TestLocalFS_Conformance(t *testing.T) {
	testkit.RunStoreConformance(t, func(t *testing.T) storage.Store {
		t.Helper()
		s, err := New(t.TempDir())
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		return s
	})
}

func TestLocalFS_RequiresRoot(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatalf("expected error for empty root")
	}
}

func TestLocalFS_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s1, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	kv1, err := s1.Namespace("instances")
	if err != nil {
		t.Fatalf("Namespace: %v", err)
	}
	if err := kv1.Set("owner", []byte("k1")); err != nil {
		t.Fatalf("Set: %v", err)
	}

	s2, err := New(dir)
	if err != nil {
		t.Fatalf("New (reopen): %v", err)
	}
	kv2, err := s2.Namespace("instances")
	if err != nil {
		t.Fatalf("Namespace (reopen): %v", err)
	}
	got, err := kv2.Get("owner")
	if err != nil {
		t.Fatalf("Get (reopen): %v", err)
	}
	if string(got) != "k1" {
		t.Fatalf("Get (reopen): got %q", got)
	}
}
