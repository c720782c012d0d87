package engine

import (
	"errors"
	"path/filepath"
	"testing"

	"sigfilter/internal/gate"
)

func TestReportLoggerAppendsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.ndjson")
	for i, runID := range []string{"run-a", "run-b"} {
		reports, err := NewReportLogger(path, runID)
		if err != nil {
			t.Fatalf("report logger: %v", err)
		}
		if err := reports.Append(Report{RunID: runID, Source: "stdin", Value: int64(i), Result: gate.Accepted}); err != nil {
			t.Fatalf("append: %v", err)
		}
		if err := reports.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}

	got := readReports(t, path)
	if len(got) != 2 || got[0].RunID != "run-a" || got[1].RunID != "run-b" {
		t.Fatalf("expected reports from both runs, got %+v", got)
	}
}

func TestReportLoggerAppendAfterClose(t *testing.T) {
	reports, err := NewReportLogger(filepath.Join(t.TempDir(), "reports.ndjson"), "run-c")
	if err != nil {
		t.Fatalf("report logger: %v", err)
	}
	if err := reports.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if err := reports.Append(Report{RunID: "run-c"}); !errors.Is(err, ErrReportLogClosed) {
		t.Fatalf("expected ErrReportLogClosed, got %v", err)
	}
	if err := reports.Close(); err != nil {
		t.Fatalf("expected second close to be a no-op, got %v", err)
	}
}

func TestNewReportLoggerMissingDirectory(t *testing.T) {
	if _, err := NewReportLogger(filepath.Join(t.TempDir(), "missing", "reports.ndjson"), "run-d"); err == nil {
		t.Fatalf("expected open error")
	}
}
