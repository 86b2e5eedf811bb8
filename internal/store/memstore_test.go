package store

import (
	"context"
	"testing"

	"github.com/redactlab/maskcore/internal/mask"
)

func TestMemStorePutGetDelete(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	m := mask.NewRehydrationMap()
	m.Restore(mask.RehydrationEntry{Placeholder: "<<EMAIL_AAAAAA_1>>", OriginalText: "a@b.co", Label: "EMAIL", Ordinal: 1})

	if err := s.Put(ctx, "sess-1", m); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", got.Len())
	}
	original, ok := got.Lookup("<<EMAIL_AAAAAA_1>>")
	if !ok || original != "a@b.co" {
		t.Fatalf("unexpected lookup result: %q, %v", original, ok)
	}

	if err := s.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "sess-1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemStoreGetMissing(t *testing.T) {
	s := NewMemStore()
	if _, err := s.Get(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
