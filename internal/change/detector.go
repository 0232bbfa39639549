// Package change diffs freshly extracted records against the stored snapshot
// and appends the resulting events to the change log.
package change

import (
	"time"

	"github.com/ppiankov/cfpwatch/internal/dates"
	"github.com/ppiankov/cfpwatch/internal/model"
	"github.com/ppiankov/cfpwatch/internal/resolve"
)

// Detect compares the stored record (nil when absent) with the new one.
// Deadline and URL changes are independent and may both fire; when nothing
// fired a single Unchanged event is returned.
func Detect(old *model.DeadlineRecord, next model.DeadlineRecord, key model.ConferenceKey, now time.Time) []model.ChangeEvent {
	if old == nil {
		return []model.ChangeEvent{{
			Key:        key,
			Kind:       model.ChangeNewConference,
			New:        next.PaperDeadline,
			DetectedAt: now,
		}}
	}

	var events []model.ChangeEvent

	if dir, changed := deadlineChange(old.PaperDeadline, next.PaperDeadline); changed {
		events = append(events, model.ChangeEvent{
			Key:        key,
			Kind:       model.ChangeDeadlineChanged,
			Old:        old.PaperDeadline,
			New:        next.PaperDeadline,
			Direction:  dir,
			DetectedAt: now,
		})
	}

	if old.URL != "" && next.URL != "" && !resolve.SameHost(old.URL, next.URL) {
		events = append(events, model.ChangeEvent{
			Key:        key,
			Kind:       model.ChangeURLChanged,
			Old:        old.URL,
			New:        next.URL,
			DetectedAt: now,
		})
	}

	if len(events) == 0 {
		events = append(events, model.ChangeEvent{Key: key, Kind: model.ChangeUnchanged, DetectedAt: now})
	}
	return events
}

// deadlineChange classifies a deadline transition. A date falling back to
// TBD is not reported.
func deadlineChange(old, next string) (model.ChangeDirection, bool) {
	if dates.IsTBD(next) {
		return model.DirectionNone, false
	}
	if dates.IsTBD(old) {
		return model.DirectionAnnounced, true
	}

	oldT, oldOK := dates.Parse(old)
	nextT, nextOK := dates.Parse(next)
	if !oldOK || !nextOK {
		return model.DirectionNone, old != next
	}

	switch {
	case nextT.After(oldT):
		return model.DirectionExtended, true
	case nextT.Before(oldT):
		return model.DirectionMovedEarlier, true
	}
	return model.DirectionNone, false
}
