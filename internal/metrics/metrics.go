package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"sigfilter/internal/filter"
)

// Metrics exports the latest window statistics per source.
type Metrics struct {
	samples          *prometheus.GaugeVec
	mean             *prometheus.GaugeVec
	median           *prometheus.GaugeVec
	minimum          *prometheus.GaugeVec
	maximum          *prometheus.GaugeVec
	stdev            *prometheus.GaugeVec
	signalPercentage *prometheus.GaugeVec
	gateTotal        *prometheus.CounterVec
}

func New() *Metrics {
	gauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: name,
				Help: help,
			},
			[]string{"source"},
		)
	}
	return &Metrics{
		samples:          gauge("sigfilter_samples", "Number of samples currently retained in the window"),
		mean:             gauge("sigfilter_mean", "Rounded mean of the retained samples"),
		median:           gauge("sigfilter_median", "Rounded median of the retained samples"),
		minimum:          gauge("sigfilter_minimum", "Smallest retained sample"),
		maximum:          gauge("sigfilter_maximum", "Largest retained sample"),
		stdev:            gauge("sigfilter_stdev", "Rounded population standard deviation of the retained samples"),
		signalPercentage: gauge("sigfilter_signal_percentage", "Standard deviation relative to the mean, in percent"),
		gateTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sigfilter_gate_total",
				Help: "Total number of gate evaluations by result",
			},
			[]string{"source", "result"},
		),
	}
}

func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.samples,
		m.mean,
		m.median,
		m.minimum,
		m.maximum,
		m.stdev,
		m.signalPercentage,
		m.gateTotal,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) Observe(source string, summary filter.Summary) {
	m.samples.WithLabelValues(source).Set(float64(summary.Count))
	m.mean.WithLabelValues(source).Set(float64(summary.Mean))
	m.median.WithLabelValues(source).Set(float64(summary.Median))
	m.minimum.WithLabelValues(source).Set(float64(summary.Minimum))
	m.maximum.WithLabelValues(source).Set(float64(summary.Maximum))
	m.stdev.WithLabelValues(source).Set(float64(summary.Stdev))
	if summary.SignalOK {
		m.signalPercentage.WithLabelValues(source).Set(float64(summary.SignalPercentage))
	} else {
		m.signalPercentage.DeleteLabelValues(source)
	}
}

func (m *Metrics) GateResult(source, result string) {
	m.gateTotal.WithLabelValues(source, result).Inc()
}
