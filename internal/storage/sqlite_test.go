package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/collide/internal/collision"
	"github.com/vovakirdan/collide/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func event(tick uint64, a, b core.EntityID, x float64) collision.Event {
	return collision.Event{
		Tick:  tick,
		A:     a,
		RectA: core.NewRect(core.V(x, 0), core.V(x+10, 10)),
		B:     b,
		RectB: core.NewRect(core.V(x+5, 5), core.V(x+15, 15)),
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.CreateRun("pong", core.RuntimeConfig{TickRate: 60, Seed: 3}, 1)
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil {
		t.Fatal("Run lost after reopening the database")
	}
}

func TestStoreRunLifecycle(t *testing.T) {
	store := openTestStore(t)

	id, err := store.CreateRun("billiards", core.RuntimeConfig{TickRate: 120, Seed: 42}, 4)
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run.SceneID != "billiards" || run.Seed != 42 || run.TickRate != 120 || run.Workers != 4 {
		t.Errorf("Unexpected run: %+v", run)
	}
	if run.Finished() {
		t.Error("New run should not be finished")
	}
	if run.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}

	if err := store.FinishRun(id, 600, 37, 0xdeadbeef); err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}

	run, err = store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run.Ticks != 600 || run.Collisions != 37 {
		t.Errorf("Expected 600 ticks and 37 collisions, got %d and %d", run.Ticks, run.Collisions)
	}
	if run.Hash != "00000000deadbeef" {
		t.Errorf("Expected hash 00000000deadbeef, got %q", run.Hash)
	}
	if !run.Finished() {
		t.Error("Run should be finished")
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	run, err := store.RunByID("nope")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run != nil {
		t.Errorf("Expected nil for missing run, got %+v", run)
	}
}

func TestStoreFinishUnknownRun(t *testing.T) {
	store := openTestStore(t)

	if err := store.FinishRun("nope", 1, 1, 1); err == nil {
		t.Error("Expected error finishing an unknown run")
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for i := range 5 {
		id, err := store.CreateRun("pong", core.RuntimeConfig{TickRate: 60, Seed: int64(i)}, 1)
		if err != nil {
			t.Fatalf("CreateRun() failed: %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	// Same-second inserts fall back to insertion order, newest first.
	if runs[0].ID != ids[4] || runs[2].ID != ids[2] {
		t.Errorf("Runs not newest first: %v", runs)
	}
}

func TestStoreCollisionsRoundTrip(t *testing.T) {
	store := openTestStore(t)

	id, err := store.CreateRun("pong", core.RuntimeConfig{TickRate: 60, Seed: 1}, 1)
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}

	events := []collision.Event{
		event(1, 1, 5, 0),
		event(1, 2, 5, 20),
		event(2, 1, 5, 0.5),
	}
	if err := store.RecordCollisions(id, events); err != nil {
		t.Fatalf("RecordCollisions() failed: %v", err)
	}

	records, err := store.Collisions(id, 0)
	if err != nil {
		t.Fatalf("Collisions() failed: %v", err)
	}
	if len(records) != len(events) {
		t.Fatalf("Expected %d collisions, got %d", len(events), len(records))
	}
	for i, r := range records {
		e := events[i]
		if r.RunID != id || r.Tick != e.Tick || r.EntityA != e.A || r.EntityB != e.B {
			t.Errorf("Record %d = %+v, want %+v", i, r, e)
		}
		if r.RectA != e.RectA || r.RectB != e.RectB {
			t.Errorf("Record %d rects = %v %v, want %v %v", i, r.RectA, r.RectB, e.RectA, e.RectB)
		}
	}

	limited, err := store.Collisions(id, 2)
	if err != nil {
		t.Fatalf("Collisions() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 collisions with limit, got %d", len(limited))
	}
}

func TestStorePairCounts(t *testing.T) {
	store := openTestStore(t)

	id, err := store.CreateRun("billiards", core.RuntimeConfig{TickRate: 60, Seed: 1}, 1)
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}
	events := []collision.Event{
		event(1, 1, 5, 0),
		event(2, 1, 5, 0),
		event(3, 1, 5, 0),
		event(3, 2, 6, 0),
	}
	if err := store.RecordCollisions(id, events); err != nil {
		t.Fatalf("RecordCollisions() failed: %v", err)
	}

	counts, err := store.PairCounts(id, 10)
	if err != nil {
		t.Fatalf("PairCounts() failed: %v", err)
	}
	want := []PairCount{{EntityA: 1, EntityB: 5, Count: 3}, {EntityA: 2, EntityB: 6, Count: 1}}
	if len(counts) != len(want) {
		t.Fatalf("Expected %d pairs, got %v", len(want), counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("Pair %d = %+v, want %+v", i, counts[i], want[i])
		}
	}
}

func TestStoreDeleteRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.CreateRun("pong", core.RuntimeConfig{TickRate: 60}, 1)
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}
	if err := store.RecordCollisions(id, []collision.Event{event(1, 1, 2, 0)}); err != nil {
		t.Fatalf("RecordCollisions() failed: %v", err)
	}

	if err := store.DeleteRun(id); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run != nil {
		t.Error("Run should be deleted")
	}
	records, err := store.Collisions(id, 0)
	if err != nil {
		t.Fatalf("Collisions() failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no collisions after delete, got %d", len(records))
	}
}

func TestJournalBuffersAndFlushes(t *testing.T) {
	store := openTestStore(t)

	id, err := store.CreateRun("billiards", core.RuntimeConfig{TickRate: 60}, 1)
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}

	j := store.NewJournal(id)
	var sink collision.Sink = j

	total := journalBatch + 3
	for i := range total {
		sink.Collision(event(uint64(i/10+1), 1, 2, float64(i)))
	}

	// The first full batch is already written.
	records, err := store.Collisions(id, 0)
	if err != nil {
		t.Fatalf("Collisions() failed: %v", err)
	}
	if len(records) != journalBatch {
		t.Errorf("Expected %d collisions before flush, got %d", journalBatch, len(records))
	}

	if err := j.Flush(); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}
	records, err = store.Collisions(id, 0)
	if err != nil {
		t.Fatalf("Collisions() failed: %v", err)
	}
	if len(records) != total {
		t.Errorf("Expected %d collisions after flush, got %d", total, len(records))
	}
}

func TestJournalKeepsFirstError(t *testing.T) {
	store := openTestStore(t)
	j := store.NewJournal("run")
	store.Close()

	j.Collision(event(1, 1, 2, 0))
	if err := j.Flush(); err == nil {
		t.Fatal("Expected flush to fail on a closed store")
	}
	if err := j.Flush(); err == nil {
		t.Error("Expected the first error to stick")
	}
}
