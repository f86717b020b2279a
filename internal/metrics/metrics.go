package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	dto "github.com/prometheus/client_model/go"
)

// Run outcomes.
const (
	OutcomePosted   = "posted"
	OutcomeDryRun   = "dry_run"
	OutcomeNoResult = "no_result"
	OutcomeFailed   = "failed"
)

// Metrics owns a private registry so tests and loop runs do not collide with
// the global default.
type Metrics struct {
	reg *prometheus.Registry

	runs        *prometheus.CounterVec
	attempts    prometheus.Histogram
	length      prometheus.Histogram
	publishDur  prometheus.Summary
	lastSuccess prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{reg: prometheus.NewRegistry()}
	m.runs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "medalbot",
		Name:      "runs_total",
		Help:      "Bot runs by outcome",
	}, []string{"outcome"})
	m.attempts = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "medalbot",
		Name:      "compose_attempts",
		Help:      "Events sampled per compose",
		Buckets:   []float64{1, 2, 3, 4, 5},
	})
	m.length = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "medalbot",
		Name:      "post_length_graphemes",
		Help:      "Length of composed posts in grapheme clusters",
		Buckets:   prometheus.LinearBuckets(50, 50, 6),
	})
	m.publishDur = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "medalbot",
		Name:      "publish_duration_seconds",
		Help:      "Time spent publishing a post",
	})
	m.lastSuccess = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "medalbot",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last run that posted or dry-ran",
	})
	m.reg.MustRegister(m.runs, m.attempts, m.length, m.publishDur, m.lastSuccess)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// ObserveRun counts one run; posted and dry-run outcomes also bump the
// last-success timestamp.
func (m *Metrics) ObserveRun(outcome string) {
	m.runs.WithLabelValues(outcome).Inc()
	if outcome == OutcomePosted || outcome == OutcomeDryRun {
		m.lastSuccess.Set(float64(time.Now().Unix()))
	}
}

func (m *Metrics) ObserveCompose(attempts int) { m.attempts.Observe(float64(attempts)) }

func (m *Metrics) ObserveLength(graphemes int) { m.length.Observe(float64(graphemes)) }

func (m *Metrics) ObservePublish(d time.Duration) { m.publishDur.Observe(d.Seconds()) }

// Push sends the registry to a Pushgateway under job.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(m.reg).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}

// Handler serves /metrics and /healthz.
func (m *Metrics) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Serve listens on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      m.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Dump returns a one-line snapshot of counters and gauges (for logging).
func (m *Metrics) Dump() string {
	mfs, err := m.reg.Gather()
	if err != nil {
		return ""
	}
	var out []string
	for _, mf := range mfs {
		for _, mt := range mf.GetMetric() {
			var v float64
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				v = mt.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				v = mt.GetGauge().GetValue()
			case dto.MetricType_HISTOGRAM:
				v = float64(mt.GetHistogram().GetSampleCount())
			case dto.MetricType_SUMMARY:
				v = float64(mt.GetSummary().GetSampleCount())
			default:
				continue
			}
			out = append(out, fmt.Sprintf("%s{%s} %g", mf.GetName(), labels(mt.GetLabel()), v))
		}
	}
	sort.Strings(out)
	return strings.Join(out, " ")
}

func labels(pairs []*dto.LabelPair) string {
	ls := make([]string, 0, len(pairs))
	for _, p := range pairs {
		ls = append(ls, p.GetName()+"="+p.GetValue())
	}
	return strings.Join(ls, ",")
}
