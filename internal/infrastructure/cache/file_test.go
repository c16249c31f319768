package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/skinsight/backend/internal/domain"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "products.json")
}

func TestFileStore_MissingFileIsEmptyCache(t *testing.T) {
	store := NewFileStore(tempStorePath(t))

	products, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll() error = %v, want nil for missing file", err)
	}
	if len(products) != 0 {
		t.Errorf("len(products) = %d, want 0", len(products))
	}
}

func TestFileStore_SaveAndLoadRoundTrip(t *testing.T) {
	store := NewFileStore(tempStorePath(t))
	ctx := context.Background()

	rating := 4.5
	saved := []domain.Product{
		{
			Barcode:  "111",
			Name:     "Vitamin C Serum",
			Brand:    "The Ordinary",
			Category: domain.CategoryTreatment,
			Concerns: []domain.Concern{domain.ConcernAging, domain.ConcernPigmentation},
			Rating:   &rating,
			Ingredients: []domain.Ingredient{
				{INCIName: "Aqua", CommonName: "Aqua", Role: "ingredient"},
			},
			IsFromOpenBeautyFacts: true,
		},
		{Barcode: "", Name: "Codeless entry"},
	}

	if err := store.SaveAll(ctx, saved); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}

	loaded, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("len(loaded) = %d, want 2", len(loaded))
	}
	if loaded[0].Name != "Vitamin C Serum" || loaded[0].Brand != "The Ordinary" {
		t.Errorf("loaded[0] = %+v, round trip lost fields", loaded[0])
	}
	if loaded[0].Rating == nil || *loaded[0].Rating != 4.5 {
		t.Errorf("Rating = %v, want 4.5", loaded[0].Rating)
	}
	if len(loaded[0].Concerns) != 2 {
		t.Errorf("Concerns = %v, want 2 entries", loaded[0].Concerns)
	}
	if loaded[1].Barcode != "" {
		t.Errorf("loaded[1].Barcode = %q, want empty", loaded[1].Barcode)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := tempStorePath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(path)
	_, err := store.LoadAll(context.Background())

	if !errors.Is(err, domain.ErrCacheUnavailable) {
		t.Errorf("LoadAll() error = %v, want ErrCacheUnavailable", err)
	}
}

func TestFileStore_DeleteAll(t *testing.T) {
	path := tempStorePath(t)
	store := NewFileStore(path)
	ctx := context.Background()

	store.SaveAll(ctx, []domain.Product{{Barcode: "111"}})
	if err := store.DeleteAll(ctx); err != nil {
		t.Fatalf("DeleteAll() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("cache file still exists after DeleteAll")
	}

	// Deleting an already-empty cache is fine
	if err := store.DeleteAll(ctx); err != nil {
		t.Errorf("DeleteAll() on missing file error = %v, want nil", err)
	}
}

func TestFileStore_SaveNilWritesEmptyList(t *testing.T) {
	path := tempStorePath(t)
	store := NewFileStore(path)
	ctx := context.Background()

	if err := store.SaveAll(ctx, nil); err != nil {
		t.Fatalf("SaveAll(nil) error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("file contents = %q, want []", string(data))
	}
}
