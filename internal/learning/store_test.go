package learning

import (
	"errors"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	store, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMigrationsRunOnceAndAreIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()

	store, err := New(cfg)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	v, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != len(migrations) {
		t.Fatalf("schema version = %d, want %d", v, len(migrations))
	}
	store.Close()

	// Reopening an already-migrated database must be a no-op.
	store, err = New(cfg)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer store.Close()
	if v, _ = store.SchemaVersion(); v != len(migrations) {
		t.Fatalf("schema version after reopen = %d", v)
	}
}

func TestTransactRollsBackOnError(t *testing.T) {
	store := newTestStore(t)
	boom := errors.New("boom")

	err := store.Transact(func(r Repository) error {
		if _, err := r.GetOrCreateConceptProgress("doomed"); err != nil {
			return err
		}
		if _, err := r.AppendLearningRecord(LearningRecord{
			ConceptID: "doomed", Level: 3, Result: ResultCorrect,
		}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transact error = %v", err)
	}

	records, err := store.RecentRecords("doomed", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("rolled-back record persisted: %d records", len(records))
	}
	if _, err := store.db.Exec(`SELECT 1`); err != nil {
		t.Fatalf("connection unusable after rollback: %v", err)
	}
}

func TestUpdateConceptProgressPartialAndAdditive(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetOrCreateConceptProgress("hashes"); err != nil {
		t.Fatal(err)
	}

	level := 4
	if err := store.UpdateConceptProgress("hashes", ProgressUpdate{
		Level:        &level,
		AttemptDelta: 1,
		CorrectDelta: 1,
	}); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if err := store.UpdateConceptProgress("hashes", ProgressUpdate{AttemptDelta: 1}); err != nil {
		t.Fatalf("second update: %v", err)
	}

	p, err := store.GetOrCreateConceptProgress("hashes")
	if err != nil {
		t.Fatal(err)
	}
	if p.Level != 4 || p.Attempts != 2 || p.CorrectCount != 1 {
		t.Fatalf("state = %+v", p)
	}
	// Untouched fields keep their defaults.
	if p.Easiness != store.cfg.InitialEasiness || p.NextReview != nil {
		t.Fatalf("partial update touched other columns: %+v", p)
	}
}

func TestUpdateConceptProgressUnknownConcept(t *testing.T) {
	store := newTestStore(t)
	level := 2
	if err := store.UpdateConceptProgress("ghost", ProgressUpdate{Level: &level}); err == nil {
		t.Fatal("updating a missing concept should error")
	}
}

func TestRecentRecordsOrder(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.GetOrCreateConceptProgress("sorting"); err != nil {
		t.Fatal(err)
	}

	for _, res := range []Result{ResultIncorrect, ResultPartial, ResultCorrect} {
		if _, err := store.AppendLearningRecord(LearningRecord{
			ConceptID: "sorting", Level: 3, Result: res,
		}); err != nil {
			t.Fatal(err)
		}
	}

	records, err := store.RecentRecords("sorting", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("limit ignored: %d records", len(records))
	}
	// Most recent first; same-second inserts break ties by id.
	if records[0].Result != ResultCorrect || records[1].Result != ResultPartial {
		t.Fatalf("order wrong: %v, %v", records[0].Result, records[1].Result)
	}
}

func TestModeStateDefaultsAndClears(t *testing.T) {
	store := newTestStore(t)

	mode, err := store.ModeState()
	if err != nil {
		t.Fatal(err)
	}
	if !mode.SeniorEnabled || !mode.AfterEnabled || mode.PausedUntil != nil || mode.FocusArea != nil {
		t.Fatalf("defaults wrong: %+v", mode)
	}

	focus := "concurrency"
	paused := "2030-01-01 00:00:00"
	if err := store.UpdateModeState(ModeUpdate{FocusArea: &focus, PausedUntil: &paused}); err != nil {
		t.Fatal(err)
	}
	if err := store.UpdateModeState(ModeUpdate{ClearPause: true, ClearFocus: true}); err != nil {
		t.Fatal(err)
	}

	mode, err = store.ModeState()
	if err != nil {
		t.Fatal(err)
	}
	if mode.PausedUntil != nil || mode.FocusArea != nil {
		t.Fatalf("clear flags did not null the columns: %+v", mode)
	}
}

func TestRecordGapUpsert(t *testing.T) {
	store := newTestStore(t)

	first, err := store.RecordGap(GapParams{ConceptID: "cache-stampede", RelatedTo: "caching"})
	if err != nil {
		t.Fatal(err)
	}
	if first.Appearances != 1 || first.Explored {
		t.Fatalf("first gap: %+v", first)
	}

	// Re-registering bumps the count and fills in fields it now knows.
	second, err := store.RecordGap(GapParams{
		ConceptID:    "cache-stampede",
		RelatedTo:    "redis layer",
		WhyImportant: "thundering herds take down the origin",
	})
	if err != nil {
		t.Fatal(err)
	}
	if second.Appearances != 2 {
		t.Fatalf("appearances = %d, want 2", second.Appearances)
	}
	if second.RelatedTo != "redis layer" || second.WhyImportant == "" {
		t.Fatalf("upsert did not refresh fields: %+v", second)
	}

	// An empty field on re-registration never erases a stored value.
	third, err := store.RecordGap(GapParams{ConceptID: "cache-stampede", RelatedTo: ""})
	if err != nil {
		t.Fatal(err)
	}
	if third.RelatedTo != "redis layer" {
		t.Fatalf("empty input clobbered a stored field: %+v", third)
	}
}

func TestListGapsFiltersExplored(t *testing.T) {
	store := newTestStore(t)

	for _, id := range []string{"a", "b"} {
		if _, err := store.RecordGap(GapParams{ConceptID: id, RelatedTo: "x"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.MarkGapExplored("a"); err != nil {
		t.Fatal(err)
	}
	// Marking a concept with no gap row is a quiet no-op.
	if err := store.MarkGapExplored("missing"); err != nil {
		t.Fatal(err)
	}

	open, err := store.ListGaps(10, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 1 || open[0].ConceptID != "b" {
		t.Fatalf("open gaps = %+v", open)
	}

	all, err := store.ListGaps(10, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("all gaps = %d, want 2", len(all))
	}
}
