package http

import (
	"net/http"

	"github.com/mauv0809/padel-draw/internal/auth"
	"github.com/mauv0809/padel-draw/internal/config"
	"github.com/mauv0809/padel-draw/internal/live"
	"github.com/mauv0809/padel-draw/internal/metrics"
	"github.com/mauv0809/padel-draw/internal/processor"
	"github.com/mauv0809/padel-draw/internal/pubsub"
)

type Server struct {
	Processor      *processor.Processor
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Hub            *live.Hub
	Verifier       *auth.Verifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
