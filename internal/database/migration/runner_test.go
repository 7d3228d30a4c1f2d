package migration

import (
	"strings"
	"testing"
	"testing/fstest"

	"job-board/migrations"
)

func TestLoad_OrdersAndSkipsUnrelatedFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__add_index.sql":   {Data: []byte("CREATE INDEX x ON jobs (title);")},
		"V1__create_jobs.sql": {Data: []byte("CREATE TABLE jobs (id UUID);")},
		"README.md":           {Data: []byte("notes")},
		"embed.go":            {Data: []byte("package migrations")},
	}

	migs, err := Load(fsys)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[1].Version != 2 {
		t.Fatalf("unexpected order: %d, %d", migs[0].Version, migs[1].Version)
	}
	if migs[0].Name != "create_jobs" || migs[0].Checksum == "" {
		t.Fatalf("unexpected migration: %+v", migs[0])
	}
}

func TestLoad_RejectsDuplicatesAndEmpty(t *testing.T) {
	_, err := Load(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	_, err = Load(fstest.MapFS{"V3__empty.sql": {Data: []byte("  \n")}})
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty file error, got %v", err)
	}
}

func TestLoad_EmbeddedMigrations(t *testing.T) {
	migs, err := Load(migrations.Files)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) == 0 || !strings.Contains(migs[0].SQL, "CREATE TABLE IF NOT EXISTS jobs") {
		t.Fatalf("expected jobs table migration first")
	}
}
