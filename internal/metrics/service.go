package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		DrawsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "padel_draws_generated_total",
			Help: "The total number of draws generated, by format.",
		}, []string{"format"}),
		ResultsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_results_recorded_total",
			Help: "The total number of match results recorded.",
		}),
		DrawGenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "padel_draw_generation_duration_seconds",
			Help:    "The duration of draw generation.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		AdvancementConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_advancement_conflicts_total",
			Help: "The total number of result updates rejected by a concurrent write.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "padel_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "padel_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.DrawsGenerated,
		s.ResultsRecorded,
		s.DrawGenerationDuration,
		s.AdvancementConflicts,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncDrawsGenerated(format string) {
	s.DrawsGenerated.WithLabelValues(format).Inc()
}

func (s *Service) IncResultsRecorded() {
	s.ResultsRecorded.Inc()
}

func (s *Service) ObserveDrawGenerationDuration(duration float64) {
	s.DrawGenerationDuration.Observe(duration)
}

func (s *Service) IncAdvancementConflicts() {
	s.AdvancementConflicts.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
