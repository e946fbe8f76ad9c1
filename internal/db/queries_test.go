package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/JK0987/mousehunt-improved/internal/errors"
	"github.com/JK0987/mousehunt-improved/internal/journal"
)

const testNS = "journal"

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func detailedEntry(id int64) journal.Entry {
	return journal.Normalize(journal.Raw{
		ID:       id,
		Date:     "3:45pm",
		Location: "Meadow",
		Text:     "I caught a mouse.",
		Types:    []string{"entry", "catchsuccess"},
	})
}

func TestUpsertGetRoundtrip(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	want := detailedEntry(100)
	applied, err := Upsert(ctx, database, testNS, want)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if !applied {
		t.Fatal("first Upsert should apply")
	}

	got, err := Get(ctx, database, testNS, 100)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != want.ID || got.Date != want.Date || got.Location != want.Location || got.Text != want.Text {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
	if len(got.Types) != 2 || got.Types[0] != "entry" {
		t.Errorf("Types = %v, want %v", got.Types, want.Types)
	}
}

func TestGet_NotFound(t *testing.T) {
	database := setupDB(t)

	_, err := Get(context.Background(), database, testNS, 42)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

func TestUpsert_Uniqueness(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	// Repeated upserts of the same id leave exactly one row.
	for n := 0; n < 5; n++ {
		if _, err := Upsert(ctx, database, testNS, detailedEntry(7)); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	count, err := Count(ctx, database, testNS)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Count = %d, want 1", count)
	}
}

func TestUpsert_NoDowngrade(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	if _, err := Upsert(ctx, database, testNS, detailedEntry(9)); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	// A placeholder for the same id must not replace the detailed record.
	placeholder := journal.Normalize(journal.Raw{ID: 9, Types: []string{"entry"}})
	applied, err := Upsert(ctx, database, testNS, placeholder)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if applied {
		t.Error("placeholder upsert over a detailed record should be a no-op")
	}

	got, err := Get(ctx, database, testNS, 9)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Text != "I caught a mouse." {
		t.Errorf("Text = %q, detailed record was downgraded", got.Text)
	}
}

func TestUpsert_UpgradesPlaceholder(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	placeholder := journal.Normalize(journal.Raw{ID: 9, Types: []string{"entry"}})
	if _, err := Upsert(ctx, database, testNS, placeholder); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	applied, err := Upsert(ctx, database, testNS, detailedEntry(9))
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if !applied {
		t.Error("detailed upsert over a placeholder should apply")
	}

	got, err := Get(ctx, database, testNS, 9)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.Detailed() {
		t.Error("record should be detailed after upgrade")
	}
}

func TestGetAll_AndNamespaceIsolation(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	for _, id := range []int64{3, 1, 2} {
		if _, err := Upsert(ctx, database, testNS, detailedEntry(id)); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}
	if _, err := Upsert(ctx, database, "other", detailedEntry(99)); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	entries, err := GetAll(ctx, database, testNS)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("len = %d, want 3", len(entries))
	}
	for _, e := range entries {
		if e.ID == 99 {
			t.Error("GetAll leaked an entry from another namespace")
		}
	}
}

func TestNamespaceStats(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	if _, err := Upsert(ctx, database, testNS, detailedEntry(10)); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if _, err := Upsert(ctx, database, testNS, detailedEntry(50)); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	placeholder := journal.Normalize(journal.Raw{ID: 20, Types: []string{"entry"}})
	if _, err := Upsert(ctx, database, testNS, placeholder); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	stats, err := NamespaceStats(ctx, database, testNS)
	if err != nil {
		t.Fatalf("NamespaceStats failed: %v", err)
	}
	if stats.Count != 3 || stats.Detailed != 2 {
		t.Errorf("Count/Detailed = %d/%d, want 3/2", stats.Count, stats.Detailed)
	}
	if stats.MinID != 10 || stats.MaxID != 50 {
		t.Errorf("id range = %d..%d, want 10..50", stats.MinID, stats.MaxID)
	}
}

func TestDeleteAll(t *testing.T) {
	database := setupDB(t)
	ctx := context.Background()

	for _, id := range []int64{1, 2, 3} {
		if _, err := Upsert(ctx, database, testNS, detailedEntry(id)); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	deleted, err := DeleteAll(ctx, database, testNS)
	if err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}

	count, err := Count(ctx, database, testNS)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Count = %d, want 0", count)
	}
}

func TestMigrationVersion(t *testing.T) {
	database := setupDB(t)

	version, err := GetUserVersion(database)
	if err != nil {
		t.Fatalf("GetUserVersion failed: %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, CurrentSchemaVersion)
	}
}
