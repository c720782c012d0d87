package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"sigfilter/internal/config"
	"sigfilter/internal/filter"
	"sigfilter/internal/gate"
	"sigfilter/internal/md"
	"sigfilter/internal/metrics"
)

// Engine feeds samples into the window and reports on every update. OnSample
// may be called from the stream goroutine; calls are serialized.
type Engine struct {
	cfg     config.Config
	gate    gate.Gate
	reports *ReportLogger
	metrics *metrics.Metrics
	runID   string

	mu     sync.Mutex
	buffer *filter.Buffer
}

// New builds an Engine. m may be nil when metrics are disabled.
func New(cfg config.Config, g gate.Gate, reports *ReportLogger, m *metrics.Metrics) (*Engine, error) {
	buffer, err := filter.New(cfg.Capacity)
	if err != nil {
		return nil, fmt.Errorf("create sample buffer: %w", err)
	}
	return &Engine{
		cfg:     cfg,
		gate:    g,
		reports: reports,
		metrics: m,
		runID:   reports.RunID(),
		buffer:  buffer,
	}, nil
}

func (e *Engine) OnSample(ctx context.Context, sample md.Sample) {
	if ctx.Err() != nil {
		return
	}

	e.mu.Lock()
	e.buffer.Put(sample.Value)
	summary, err := e.buffer.Summarize()
	e.mu.Unlock()
	if err != nil {
		slog.Error("summarize failed", "source", sample.Source, "error", err)
		return
	}

	verdict, err := e.gate.Evaluate(summary, gate.GateContext{
		Source:       sample.Source,
		MinSamples:   e.cfg.MinSamples,
		MaxStdev:     e.cfg.MaxStdev,
		MaxVariation: e.cfg.MaxVariation,
	})

	report := Report{
		RunID:      e.runID,
		Timestamp:  time.Now().UTC(),
		SampleTime: sample.Timestamp,
		Source:     sample.Source,
		Value:      sample.Value,
		Summary:    summary,
		Result:     verdict.Result,
	}
	if e.cfg.Mode == config.ModeStream {
		report.Price = md.SampleToPrice(sample.Value, int32(e.cfg.PriceScale))
	}
	if err != nil {
		report.RejectReason = verdict.Reason
	}
	if err := e.reports.Append(report); err != nil {
		slog.Error("append report failed", "source", sample.Source, "error", err)
	}

	if e.metrics != nil {
		e.metrics.Observe(sample.Source, summary)
		e.metrics.GateResult(sample.Source, string(verdict.Result))
	}

	slog.Info("sample",
		"source", sample.Source,
		"value", sample.Value,
		"count", summary.Count,
		"mean", summary.Mean,
		"median", summary.Median,
		"stdev", summary.Stdev,
		"result", verdict.Result,
	)
}

// Describe renders the current window for debugging.
func (e *Engine) Describe() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buffer.Describe()
}
