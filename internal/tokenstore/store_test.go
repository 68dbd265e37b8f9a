package tokenstore

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "staffdesk", "token.json"))
}

func TestSetGet(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set("T1"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	token, ok := store.Get()
	if !ok {
		t.Fatal("expected token after Set")
	}
	if token != "T1" {
		t.Fatalf("expected T1, got %q", token)
	}
}

func TestGetEmptyStore(t *testing.T) {
	store := newTestStore(t)

	if _, ok := store.Get(); ok {
		t.Fatal("expected no token from empty store")
	}
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)

	if err := store.Set("T1"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := store.Remove(); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, ok := store.Get(); ok {
		t.Fatal("expected no token after Remove")
	}
}

func TestRemoveWithoutSet(t *testing.T) {
	store := newTestStore(t)

	if err := store.Remove(); err != nil {
		t.Fatalf("Remove on empty store returned error: %v", err)
	}
}

func TestExpiredTokenNotReturned(t *testing.T) {
	store := newTestStore(t)

	now := time.Now()
	store.now = func() time.Time { return now }
	if err := store.Set("T1"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	// Jump past the 7-day TTL.
	store.now = func() time.Time { return now.Add(DefaultTTL + time.Minute) }
	if _, ok := store.Get(); ok {
		t.Fatal("expected expired token to be rejected")
	}

	// The expired file is gone, so a later Get at any clock stays empty.
	store.now = time.Now
	if _, ok := store.Get(); ok {
		t.Fatal("expected expired credential to be deleted on read")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")

	first := New(path)
	if err := first.Set("T1"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	second := New(path)
	token, ok := second.Get()
	if !ok || token != "T1" {
		t.Fatalf("expected T1 from reopened store, got %q ok=%v", token, ok)
	}
}

func TestCustomTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewWithTTL(path, time.Hour)

	now := time.Now()
	store.now = func() time.Time { return now }
	if err := store.Set("T1"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	store.now = func() time.Time { return now.Add(30 * time.Minute) }
	if _, ok := store.Get(); !ok {
		t.Fatal("expected token within TTL")
	}

	store.now = func() time.Time { return now.Add(2 * time.Hour) }
	if _, ok := store.Get(); ok {
		t.Fatal("expected token past TTL to be rejected")
	}
}
