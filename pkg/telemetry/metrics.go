package telemetry

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "dtk"

// Metrics holds the render loop's prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	frames         prometheus.Counter
	framesSkipped  prometheus.Counter
	paints         prometheus.Counter
	paintDuration  prometheus.Histogram
	dispatches     *prometheus.CounterVec
	eventsApplied  *prometheus.CounterVec
	decodeFailures prometheus.Counter
	layoutErrors   prometheus.Counter
	queueDepth     prometheus.Gauge
	modalDepth     prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		frames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "frames_total",
			Help:      "Frames flushed to the screen.",
		}),
		framesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "frames_skipped_total",
			Help:      "Frames deferred by the frame rate cap.",
		}),
		paints: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "paints_total",
			Help:      "Widget paint calls.",
		}),
		paintDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "paint_seconds",
			Help:      "Time spent painting one frame.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12), // 100us to ~200ms
		}),
		dispatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "input",
			Name:      "dispatch_total",
			Help:      "Key tokens dispatched, by whether anything consumed them.",
		}, []string{"consumed"}),
		eventsApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "applied_total",
			Help:      "Queued events applied on the loop thread.",
		}, []string{"type"}),
		decodeFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "input",
			Name:      "decode_failures_total",
			Help:      "Raw code sequences discarded as unrecognized or timed out.",
		}),
		layoutErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "errors_total",
			Help:      "Arrange passes aborted by a constraint error.",
		}),
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "queue_depth",
			Help:      "Events waiting in the queue at the start of a tick.",
		}),
		modalDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "modal",
			Name:      "depth",
			Help:      "Number of nested loops currently running.",
		}),
		gatherer: reg,
	}
}

// Discard returns metrics registered on a private registry.
func Discard() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func (m *Metrics) FrameFlushed() {
	if m == nil {
		return
	}
	m.frames.Inc()
}

func (m *Metrics) FrameSkipped() {
	if m == nil {
		return
	}
	m.framesSkipped.Inc()
}

// Painted records one frame's paint pass.
func (m *Metrics) Painted(widgets int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.paints.Add(float64(widgets))
	m.paintDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) Dispatched(consumed bool) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(fmt.Sprint(consumed)).Inc()
}

func (m *Metrics) EventApplied(eventType string) {
	if m == nil {
		return
	}
	m.eventsApplied.WithLabelValues(eventType).Inc()
}

func (m *Metrics) DecodeFailed() {
	if m == nil {
		return
	}
	m.decodeFailures.Inc()
}

func (m *Metrics) LayoutFailed() {
	if m == nil {
		return
	}
	m.layoutErrors.Inc()
}

func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}

func (m *Metrics) SetModalDepth(n int) {
	if m == nil {
		return
	}
	m.modalDepth.Set(float64(n))
}

// SummaryLine is one sample in a metrics summary.
type SummaryLine struct {
	Name   string
	Labels string
	Value  float64
}

func (s SummaryLine) String() string {
	if s.Labels == "" {
		return fmt.Sprintf("%s %g", s.Name, s.Value)
	}
	return fmt.Sprintf("%s{%s} %g", s.Name, s.Labels, s.Value)
}

// Summary gathers counters and gauges, sorted by name. Histograms report
// their sample count.
func (m *Metrics) Summary() ([]SummaryLine, error) {
	if m == nil {
		return nil, nil
	}
	families, err := m.gatherer.Gather()
	if err != nil {
		return nil, err
	}

	var lines []SummaryLine
	for _, fam := range families {
		for _, metric := range fam.GetMetric() {
			line := SummaryLine{Name: fam.GetName(), Labels: labelString(metric.GetLabel())}
			switch fam.GetType() {
			case dto.MetricType_COUNTER:
				line.Value = metric.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				line.Value = metric.GetGauge().GetValue()
			case dto.MetricType_HISTOGRAM:
				line.Name += "_count"
				line.Value = float64(metric.GetHistogram().GetSampleCount())
			default:
				continue
			}
			lines = append(lines, line)
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Name != lines[j].Name {
			return lines[i].Name < lines[j].Name
		}
		return lines[i].Labels < lines[j].Labels
	})
	return lines, nil
}

// WriteSummary prints Summary one sample per line.
func (m *Metrics) WriteSummary(w io.Writer) error {
	lines, err := m.Summary()
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}

func labelString(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%s", p.GetName(), p.GetValue()))
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
