package gate

import (
	"errors"
	"log/slog"

	"sigfilter/internal/filter"
)

type Result string

const (
	Accepted Result = "accepted"
	Rejected Result = "rejected"
)

type GateContext struct {
	Source     string
	MinSamples int
	MaxStdev   int64

	// MaxVariation bounds the signal percentage of a noisy window. A
	// noiseless window always passes.
	MaxVariation int64
}

type Verdict struct {
	Result Result
	Reason string
}

// Gate decides whether the current window is quiet enough to trust.
type Gate struct{}

// Evaluate accepts or rejects the window. A rejection carries the same
// reason code in the Verdict and in the returned error.
func (g Gate) Evaluate(summary filter.Summary, ctx GateContext) (Verdict, error) {
	slog.Debug("gate evaluation", "source", ctx.Source, "count", summary.Count, "mean", summary.Mean, "stdev", summary.Stdev, "signal", summary.SignalPercentage)

	if summary.Count < ctx.MinSamples {
		slog.Debug("gate rejected", "source", ctx.Source, "reason", "warming_up", "count", summary.Count, "min", ctx.MinSamples)
		return reject("warming_up")
	}
	if ctx.MaxStdev > 0 && summary.Stdev > ctx.MaxStdev {
		slog.Info("gate rejected", "source", ctx.Source, "reason", "stdev_exceeded", "stdev", summary.Stdev, "max", ctx.MaxStdev)
		return reject("stdev_exceeded")
	}
	if !summary.SignalOK {
		slog.Info("gate rejected", "source", ctx.Source, "reason", "signal_undefined", "mean", summary.Mean, "stdev", summary.Stdev)
		return reject("signal_undefined")
	}
	if ctx.MaxVariation > 0 && summary.Stdev > 0 && abs(summary.SignalPercentage) > ctx.MaxVariation {
		slog.Info("gate rejected", "source", ctx.Source, "reason", "variation_exceeded", "signal", summary.SignalPercentage, "max", ctx.MaxVariation)
		return reject("variation_exceeded")
	}

	slog.Debug("gate accepted", "source", ctx.Source, "mean", summary.Mean, "median", summary.Median)
	return Verdict{Result: Accepted, Reason: "accepted"}, nil
}

func reject(reason string) (Verdict, error) {
	return Verdict{Result: Rejected, Reason: reason}, errors.New(reason)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
