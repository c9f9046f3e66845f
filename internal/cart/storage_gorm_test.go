package cart

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newSQLiteStorage(t *testing.T) *GormStorage {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "cart.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}

	storage, err := NewGormStorage(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := storage.Migrate(); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return storage
}

func TestGormStorageMissingKey(t *testing.T) {
	storage := newSQLiteStorage(t)

	_, ok, err := storage.Load(context.Background(), "never-written")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("missing key must report ok=false")
	}
}

func TestGormStorageUpsert(t *testing.T) {
	storage := newSQLiteStorage(t)
	ctx := context.Background()

	if err := storage.Save(ctx, "s1", []byte(`[{"id":"x"}]`)); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := storage.Save(ctx, "s1", []byte(`[{"id":"y"}]`)); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	payload, ok, err := storage.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected snapshot to exist")
	}
	if !bytes.Equal(payload, []byte(`[{"id":"y"}]`)) {
		t.Fatalf("expected last write to win, got %s", payload)
	}
}
