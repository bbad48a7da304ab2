package storage_test

import (
	"testing"

	"xdao.co/saf/storage"
	"xdao.co/saf/storage/testkit"
)

func TestMemStore_Conformance(t *testing.T) {
	testkit.RunStoreConformance(t, func(t *testing.T) storage.Store {
		t.Helper()
		return storage.NewMemStore()
	})
}

func TestStaged_WritesInvisibleUntilCommit(t *testing.T) {
	base := storage.NewMemKV()
	st := storage.NewStaged(base)

	if err := st.Set("owner", []byte("k1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if base.Has("owner") {
		t.Fatalf("base saw a staged write before commit")
	}
	if !st.Has("owner") {
		t.Fatalf("overlay lost its own write")
	}
	got, err := st.Get("owner")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "k1" {
		t.Fatalf("Get: got %q", got)
	}

	if err := st.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	got, err = base.Get("owner")
	if err != nil {
		t.Fatalf("base Get after commit: %v", err)
	}
	if string(got) != "k1" {
		t.Fatalf("base Get after commit: got %q", got)
	}
}

func TestStaged_DiscardRollsBack(t *testing.T) {
	base := storage.NewMemKV()
	if err := base.Set("owner", []byte("k1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	st := storage.NewStaged(base)
	if err := st.Set("owner", []byte("k2")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := st.Set("extra", []byte("x")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !st.Dirty() {
		t.Fatalf("expected dirty overlay")
	}

	st.Discard()

	if st.Dirty() {
		t.Fatalf("expected clean overlay after discard")
	}
	got, err := base.Get("owner")
	if err != nil {
		t.Fatalf("base Get: %v", err)
	}
	if string(got) != "k1" {
		t.Fatalf("base mutated by discarded overlay: got %q", got)
	}
	if base.Has("extra") {
		t.Fatalf("base absorbed a discarded key")
	}
}

func TestStaged_ReadsThroughToBase(t *testing.T) {
	base := storage.NewMemKV()
	if err := base.Set("blueprint", []byte("b1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	st := storage.NewStaged(base)
	got, err := st.Get("blueprint")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "b1" {
		t.Fatalf("Get through overlay: got %q", got)
	}
	if !st.Has("blueprint") {
		t.Fatalf("Has through overlay: got false")
	}
}

func TestMemKV_CopiesValues(t *testing.T) {
	kv := storage.NewMemKV()
	v := []byte("abc")
	if err := kv.Set("k", v); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v[0] = 'x'
	got, err := kv.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "abc" {
		t.Fatalf("stored value aliased caller's slice: got %q", got)
	}
	got[0] = 'y'
	again, err := kv.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(again) != "abc" {
		t.Fatalf("returned value aliased stored slice: got %q", again)
	}
}
