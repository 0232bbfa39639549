package change

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/cfpwatch/internal/model"
	"github.com/ppiankov/cfpwatch/internal/util"
)

// Log is the append-only change log file
type Log struct {
	path  string
	runID string
}

// NewLog opens nothing until Append; runID is stamped on every line
func NewLog(path, runID string) *Log {
	return &Log{path: util.ExpandHome(path), runID: runID}
}

// Path returns the resolved log path
func (l *Log) Path() string {
	return l.path
}

// Append writes one line per loggable event, in order. Unchanged events are skipped.
func (l *Log) Append(events []model.ChangeEvent) (int, error) {
	var b strings.Builder
	n := 0
	for _, e := range events {
		if !e.Loggable() {
			continue
		}
		b.WriteString(FormatEvent(e, l.runID))
		b.WriteByte('\n')
		n++
	}
	if n == 0 {
		return 0, nil
	}

	if dir := filepath.Dir(l.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create change log dir: %w", err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open change log: %w", err)
	}

	if _, err := f.WriteString(b.String()); err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("write change log: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close change log: %w", err)
	}
	return n, nil
}

// FormatEvent renders "RFC3339 run=<id> KIND KEY old -> new (direction)"
func FormatEvent(e model.ChangeEvent, runID string) string {
	old := e.Old
	if old == "" {
		old = "(none)"
	}
	line := fmt.Sprintf("%s run=%s %s %s %s -> %s",
		e.DetectedAt.UTC().Format(time.RFC3339), runID, e.Kind, e.Key, old, e.New)
	if e.Direction != model.DirectionNone {
		line += fmt.Sprintf(" (%s)", e.Direction)
	}
	return line
}
