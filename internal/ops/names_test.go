package ops

import (
	"context"
	"errors"
	"testing"

	"github.com/jacksmith/mealmix/internal/model"
	"github.com/jacksmith/mealmix/internal/storage"
)

// TestNameStoreRoundTrip tests that Save followed by Load returns the same list.
func TestNameStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	ns := NewNameStore(storage.NewMemoryStore(), nil)

	names := model.NameList{"Tacos", "Soup", "Beef Wellington"}
	if err := ns.Save(ctx, names); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := ns.Load(ctx)
	if len(got) != len(names) {
		t.Fatalf("expected %d names, got %d (%v)", len(names), len(got), got)
	}
	for i := range names {
		if got[i] != names[i] {
			t.Errorf("index %d: expected %q, got %q", i, names[i], got[i])
		}
	}
}

// TestNameStoreLoadDegradesToEmpty tests that absent or malformed values load as empty.
func TestNameStoreLoadDegradesToEmpty(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(s *storage.MemoryStore)
	}{
		{name: "absent key", setup: func(s *storage.MemoryStore) {}},
		{name: "not an array", setup: func(s *storage.MemoryStore) {
			s.Set(ctx, SavedRecipesKey, "not an array")
		}},
		{name: "JSON string", setup: func(s *storage.MemoryStore) {
			s.Set(ctx, SavedRecipesKey, `"not an array"`)
		}},
		{name: "JSON object", setup: func(s *storage.MemoryStore) {
			s.Set(ctx, SavedRecipesKey, `{"0":"Tacos"}`)
		}},
		{name: "read failure", setup: func(s *storage.MemoryStore) {
			s.Set(ctx, SavedRecipesKey, `["Tacos"]`)
			s.FailReads(errors.New("storage disabled"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			tt.setup(store)

			got := NewNameStore(store, nil).Load(ctx)
			if got == nil {
				t.Fatal("expected empty non-nil list, got nil")
			}
			if len(got) != 0 {
				t.Errorf("expected empty list, got %v", got)
			}
		})
	}
}

// TestNameStoreSaveUsesFixedKey tests the persisted key layout.
func TestNameStoreSaveUsesFixedKey(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	if err := NewNameStore(store, nil).Save(ctx, model.NameList{"Tacos"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	raw, ok, err := store.Get(ctx, "savedRecipes")
	if err != nil || !ok {
		t.Fatalf("expected value under savedRecipes, ok=%v err=%v", ok, err)
	}
	if raw != `["Tacos"]` {
		t.Errorf("expected [\"Tacos\"], got %s", raw)
	}
}

// TestNameStoreSaveReportsWriteFailure tests that write errors reach the caller.
func TestNameStoreSaveReportsWriteFailure(t *testing.T) {
	store := storage.NewMemoryStore()
	store.FailWrites(errors.New("quota exceeded"))

	err := NewNameStore(store, nil).Save(context.Background(), model.NameList{"Tacos"})
	if err == nil {
		t.Fatal("expected error from failing store")
	}
}
