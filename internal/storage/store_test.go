package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/cfpwatch/internal/model"
)

func sample(deadline string, checked time.Time) model.DeadlineRecord {
	return model.DeadlineRecord{
		Name:           "ISCA 2026",
		URL:            "https://iscaconf.org/isca2026/",
		PaperDeadline:  deadline,
		SubmissionType: model.SubmissionRegularPaper,
		Supplementary:  map[string]string{"Industry Track": "December 1, 2025"},
		Strategy:       "table",
		LastChecked:    checked,
	}
}

func TestStore_LoadMissing(t *testing.T) {
	snap, err := New(filepath.Join(t.TempDir(), "none.json")).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap) != 0 {
		t.Errorf("expected empty snapshot, got %v", snap)
	}
}

func TestStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte(`{"ISCA_2026": {`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(path).Load(); err == nil {
		t.Error("expected error for corrupt store")
	}
}

func TestStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "conference_database.json")
	store := New(path)

	checked := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		"ISCA_2026": sample("November 17, 2025", checked),
		"DAC_2026":  {Name: "DAC 2026", PaperDeadline: model.TBD, SubmissionType: model.SubmissionUnknown, LastChecked: checked},
	}

	if err := store.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasSuffix(text, "}\n") {
		t.Error("store should end with a newline")
	}
	if strings.Index(text, `"DAC_2026"`) > strings.Index(text, `"ISCA_2026"`) {
		t.Error("keys should be sorted")
	}
	if !strings.Contains(text, `"last_checked": "2026-01-05T12:00:00Z"`) {
		t.Errorf("last_checked should be RFC 3339:\n%s", text)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := loaded.Get(model.NewConferenceKey("ISCA", 2026))
	if got == nil || !got.SameContent(snap["ISCA_2026"]) || !got.LastChecked.Equal(checked) {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if loaded.Get(model.NewConferenceKey("MICRO", 2026)) != nil {
		t.Error("absent key should return nil")
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestMerge_CarriesForward(t *testing.T) {
	old := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	prev := Snapshot{
		"ISCA_2026":  sample("November 17, 2025", old),
		"MICRO_2025": {Name: "MICRO 2025", PaperDeadline: "April 11, 2025", LastChecked: old},
	}
	produced := Snapshot{
		"ISCA_2026": sample("November 24, 2025", old.Add(24*time.Hour)),
		"HPCA_2026": {Name: "HPCA 2026", PaperDeadline: "July 25, 2025", LastChecked: old},
	}

	next := Merge(prev, produced)
	if len(next) != 3 {
		t.Fatalf("next has %d records, want 3", len(next))
	}
	if next["MICRO_2025"].PaperDeadline != "April 11, 2025" {
		t.Error("records not produced this run must be carried forward")
	}
	if next["ISCA_2026"].PaperDeadline != "November 24, 2025" {
		t.Error("produced records replace stored ones")
	}
}

func TestMerge_Idempotent(t *testing.T) {
	dir := t.TempDir()
	store := New(filepath.Join(dir, "db.json"))

	first := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	if err := store.Save(Merge(Snapshot{}, Snapshot{"ISCA_2026": sample("November 17, 2025", first)})); err != nil {
		t.Fatal(err)
	}
	before, _ := os.ReadFile(store.Path())

	prev, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	rerun := Snapshot{"ISCA_2026": sample("November 17, 2025", first.Add(6*time.Hour))}
	if err := store.Save(Merge(prev, rerun)); err != nil {
		t.Fatal(err)
	}
	after, _ := os.ReadFile(store.Path())

	if !bytes.Equal(before, after) {
		t.Errorf("unchanged run should write identical bytes:\n%s\n---\n%s", before, after)
	}
}
