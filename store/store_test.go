package store

import (
	"context"
	"testing"
	"time"

	"schedgrid/errors"
)

func TestMemoryStoreReplaces(t *testing.T) {
	ctx := context.Background()
	var s Store = NewMemoryStore(time.Hour)
	id := NewID()

	if _, err := s.Get(ctx, id); !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("empty store err = %v", err)
	}
	if err := s.Put(ctx, Submission{ID: id, Name: "Biso", Text: "Sunday old"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, Submission{ID: id, Name: "Biso", Text: "Monday new"}); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "Monday new" {
		t.Errorf("text = %q, want the second submission only", got.Text)
	}

	if err := s.Delete(ctx, id); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, id); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("deleted submission still found: %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Put(ctx, Submission{ID: "a", Text: "x"})
	now = now.Add(59 * time.Second)
	if _, err := s.Get(ctx, "a"); err != nil {
		t.Errorf("expired too early: %v", err)
	}
	now = now.Add(time.Second)
	if _, err := s.Get(ctx, "a"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("err = %v after TTL", err)
	}
}

func TestIDs(t *testing.T) {
	a, b := NewID(), NewID()
	if a == b {
		t.Errorf("NewID repeated %s", a)
	}
	if !ValidID(a) || ValidID("../etc/passwd") || ValidID("") {
		t.Errorf("ValidID misjudged an id")
	}
	if key(a) != "schedgrid:submission:"+a {
		t.Errorf("key = %s", key(a))
	}
}

func TestRedisStoreRejectsBadIndex(t *testing.T) {
	if _, err := NewRedisStore(context.Background(), "localhost:0", "", 16, 0); err == nil {
		t.Errorf("expected an error for database 16")
	}
}
