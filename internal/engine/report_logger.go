package engine

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"sigfilter/internal/filter"
	"sigfilter/internal/gate"
)

var ErrReportLogClosed = errors.New("report log closed")

type Report struct {
	RunID        string         `json:"run_id"`
	Timestamp    time.Time      `json:"timestamp"`
	SampleTime   time.Time      `json:"sample_time"`
	Source       string         `json:"source"`
	Value        int64          `json:"value"`
	Price        string         `json:"price,omitempty"`
	Summary      filter.Summary `json:"summary"`
	Result       gate.Result    `json:"result"`
	RejectReason string         `json:"reject_reason,omitempty"`
}

// ReportLogger appends one JSON report per line, flushing after each.
type ReportLogger struct {
	runID string

	mu      sync.Mutex
	file    *os.File
	writer  *bufio.Writer
	encoder *json.Encoder
	closed  bool
}

func NewReportLogger(path string, runID string) (*ReportLogger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open report log: %w", err)
	}
	writer := bufio.NewWriter(file)
	return &ReportLogger{
		runID:   runID,
		file:    file,
		writer:  writer,
		encoder: json.NewEncoder(writer),
	}, nil
}

func (l *ReportLogger) RunID() string {
	return l.runID
}

// Append writes report. The logger stays usable after a failed write.
func (l *ReportLogger) Append(report Report) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrReportLogClosed
	}
	if err := l.encoder.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := l.writer.Flush(); err != nil {
		return fmt.Errorf("flush report log: %w", err)
	}
	return nil
}

func (l *ReportLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	flushErr := l.writer.Flush()
	closeErr := l.file.Close()
	return errors.Join(flushErr, closeErr)
}
