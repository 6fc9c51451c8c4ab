package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	DrawsGenerated         *prometheus.CounterVec
	ResultsRecorded        prometheus.Counter
	DrawGenerationDuration prometheus.Histogram
	AdvancementConflicts   prometheus.Counter
	SlackNotifSent         prometheus.Counter
	SlackNotifFailed       prometheus.Counter
	StartupTimeSeconds     prometheus.Gauge
}

// Keys of the persisted totals.
const (
	KeyTournamentsCreated = "tournaments_created"
	KeyCouplesRegistered  = "couples_registered"
	KeyDrawsGenerated     = "draws_generated"
	KeyResultsRecorded    = "results_recorded"
)
