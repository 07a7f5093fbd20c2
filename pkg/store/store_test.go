package store

import (
	"context"
	"testing"

	"github.com/sketchflow/sketchflow/pkg/diagram"
	"github.com/sketchflow/sketchflow/pkg/element"
	"github.com/sketchflow/sketchflow/pkg/errors"
)

func sampleDoc(t *testing.T, title string) diagram.Document {
	t.Helper()
	b := diagram.New()
	if _, _, err := b.NewLabeledShape(element.TypeRectangle, "node", 0, 0, 120, 60, element.DefaultStyle()); err != nil {
		t.Fatalf("NewLabeledShape: %v", err)
	}
	doc, err := b.Assemble(title)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return doc
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	rec, err := s.Put(ctx, sampleDoc(t, "first"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("Put must assign an id")
	}
	if rec.Title != "first" {
		t.Errorf("title = %q", rec.Title)
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Document.Elements) != 2 {
		t.Errorf("stored document has %d elements, want 2", len(got.Document.Elements))
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get missing = %v, want NOT_FOUND", err)
	}
	if err := s.Delete(ctx, "missing"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Delete missing = %v, want NOT_FOUND", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec, err := s.Put(ctx, sampleDoc(t, "doomed"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get after Delete = %v, want NOT_FOUND", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, title := range []string{"a", "b", "c"} {
		if _, err := s.Put(ctx, sampleDoc(t, title)); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List = %d records, want 3", len(all))
	}
	// Newest first.
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Error("records out of order")
		}
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited List = %d records, want 2", len(limited))
	}
}
