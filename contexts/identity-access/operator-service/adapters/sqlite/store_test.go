package sqliteadapter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T, path string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	return db
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.db")
	store, err := NewStore(openTestDB(t, path), nil)
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}

	if err := store.Save(context.Background(), []int64{100, 555, 300}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	ids, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want := []int64{100, 300, 555}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}
}

func TestSaveReplacesPreviousSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.db")
	store, err := NewStore(openTestDB(t, path), nil)
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}

	if err := store.Save(context.Background(), []int64{1, 2, 3}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := store.Save(context.Background(), []int64{2}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	ids, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("expected [2], got %v", ids)
	}
}

func TestRosterSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.db")

	store, err := NewStore(openTestDB(t, path), nil)
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}
	if err := store.Save(context.Background(), []int64{100, 555}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	reopened, err := NewStore(openTestDB(t, path), nil)
	if err != nil {
		t.Fatalf("reopen store failed: %v", err)
	}
	ids, err := reopened.Load(context.Background())
	if err != nil {
		t.Fatalf("load after reopen failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected persisted roster, got %v", ids)
	}
}

func TestLoadEmptyRoster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.db")
	store, err := NewStore(openTestDB(t, path), nil)
	if err != nil {
		t.Fatalf("new store failed: %v", err)
	}

	ids, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty roster, got %v", ids)
	}
}
