package change

import (
	"testing"
	"time"

	"github.com/ppiankov/cfpwatch/internal/model"
)

var (
	testKey = model.NewConferenceKey("ISCA", 2026)
	testNow = time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
)

func record(deadline, url string) model.DeadlineRecord {
	return model.DeadlineRecord{
		Name:           "ISCA 2026",
		URL:            url,
		PaperDeadline:  deadline,
		SubmissionType: model.SubmissionRegularPaper,
	}
}

func TestDetect_NewConference(t *testing.T) {
	events := Detect(nil, record("November 17, 2025", "https://iscaconf.org/isca2026/"), testKey, testNow)
	if len(events) != 1 || events[0].Kind != model.ChangeNewConference {
		t.Fatalf("events = %+v", events)
	}
	if events[0].New != "November 17, 2025" || !events[0].DetectedAt.Equal(testNow) {
		t.Errorf("unexpected event: %+v", events[0])
	}
}

func TestDetect_Deadline(t *testing.T) {
	tests := []struct {
		name string
		old  string
		new  string
		kind model.ChangeKind
		dir  model.ChangeDirection
	}{
		{"extended", "November 15, 2025", "November 22, 2025", model.ChangeDeadlineChanged, model.DirectionExtended},
		{"moved earlier", "November 22, 2025", "November 15, 2025", model.ChangeDeadlineChanged, model.DirectionMovedEarlier},
		{"announced", model.TBD, "November 15, 2025", model.ChangeDeadlineChanged, model.DirectionAnnounced},
		{"back to TBD", "November 15, 2025", model.TBD, model.ChangeUnchanged, model.DirectionNone},
		{"same", "November 15, 2025", "November 15, 2025", model.ChangeUnchanged, model.DirectionNone},
		{"both TBD", model.TBD, model.TBD, model.ChangeUnchanged, model.DirectionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := record(tt.old, "https://iscaconf.org/isca2026/")
			events := Detect(&old, record(tt.new, "https://iscaconf.org/isca2026/"), testKey, testNow)
			if len(events) != 1 {
				t.Fatalf("events = %+v", events)
			}
			e := events[0]
			if e.Kind != tt.kind || e.Direction != tt.dir {
				t.Errorf("got %s (%s), want %s (%s)", e.Kind, e.Direction, tt.kind, tt.dir)
			}
			if tt.kind == model.ChangeDeadlineChanged && (e.Old != tt.old || e.New != tt.new) {
				t.Errorf("old/new = %q/%q", e.Old, e.New)
			}
		})
	}
}

func TestDetect_URL(t *testing.T) {
	old := record("November 17, 2025", "https://iscaconf.org/isca2026/")

	t.Run("same host different path", func(t *testing.T) {
		events := Detect(&old, record("November 17, 2025", "https://WWW.iscaconf.org/isca2026/cfp.html"), testKey, testNow)
		if events[0].Kind != model.ChangeUnchanged {
			t.Errorf("events = %+v", events)
		}
	})

	t.Run("host and deadline both change", func(t *testing.T) {
		events := Detect(&old, record("November 24, 2025", "https://isca2026.example.org/"), testKey, testNow)
		if len(events) != 2 {
			t.Fatalf("events = %+v", events)
		}
		if events[0].Kind != model.ChangeDeadlineChanged || events[1].Kind != model.ChangeURLChanged {
			t.Errorf("unexpected kinds: %s, %s", events[0].Kind, events[1].Kind)
		}
		if events[1].Old != old.URL || events[1].New != "https://isca2026.example.org/" {
			t.Errorf("unexpected url event: %+v", events[1])
		}
	})
}
