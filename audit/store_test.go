package audit

import (
	"encoding/json"
	"fmt"
	"testing"
)

func testRecord(id string) *Record {
	return &Record{
		ID:           id,
		FacilityName: "Riverside DC",
		Verdict:      "QUALIFIED",
		Result:       json.RawMessage(`{"verdict":"QUALIFIED"}`),
	}
}

func TestInMemoryStoreSaveAndGet(t *testing.T) {
	store := NewInMemoryStore()

	rec := testRecord("rec-1")
	if err := store.Save(rec); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("Save() should stamp CreatedAt")
	}

	got, err := store.Get("rec-1")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got.FacilityName != "Riverside DC" || got.Verdict != "QUALIFIED" {
		t.Errorf("Get() returned %+v", got)
	}
}

func TestInMemoryStoreRequiresID(t *testing.T) {
	store := NewInMemoryStore()

	if err := store.Save(testRecord("")); err == nil {
		t.Error("Save() should reject an empty ID")
	}
}

func TestInMemoryStoreRejectsDuplicateID(t *testing.T) {
	store := NewInMemoryStore()

	if err := store.Save(testRecord("rec-1")); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := store.Save(testRecord("rec-1")); err == nil {
		t.Error("Save() should reject a duplicate ID")
	}
}

func TestInMemoryStoreGetMissing(t *testing.T) {
	store := NewInMemoryStore()

	if _, err := store.Get("nope"); err == nil {
		t.Error("Get() should fail for an unknown ID")
	}
}

func TestInMemoryStoreListRecent(t *testing.T) {
	store := NewInMemoryStore()

	for i := 0; i < 5; i++ {
		if err := store.Save(testRecord(fmt.Sprintf("rec-%d", i))); err != nil {
			t.Fatalf("Save() failed: %v", err)
		}
	}

	records, err := store.ListRecent(3)
	if err != nil {
		t.Fatalf("ListRecent() failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("ListRecent(3) returned %d records", len(records))
	}
	// Newest first.
	for i, wantID := range []string{"rec-4", "rec-3", "rec-2"} {
		if records[i].ID != wantID {
			t.Errorf("records[%d].ID = %q, want %q", i, records[i].ID, wantID)
		}
	}

	all, err := store.ListRecent(0)
	if err != nil {
		t.Fatalf("ListRecent() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("ListRecent(0) returned %d records, want all 5", len(all))
	}
}
