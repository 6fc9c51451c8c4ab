package http

import (
	"net/http"

	"github.com/mauv0809/padel-draw/internal/auth"
	"github.com/mauv0809/padel-draw/internal/config"
	"github.com/mauv0809/padel-draw/internal/http/handlers"
	"github.com/mauv0809/padel-draw/internal/live"
	"github.com/mauv0809/padel-draw/internal/metrics"
	"github.com/mauv0809/padel-draw/internal/processor"
	"github.com/mauv0809/padel-draw/internal/pubsub"
)

func NewServer(processor *processor.Processor, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, hub *live.Hub, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Processor:      processor,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Hub:            hub,
		Verifier:       auth.NewVerifier(cfg.JWTSecret),
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	api := func(h http.Handler) http.Handler {
		return Chain(h, paramsMiddleware, s.authMiddleware)
	}
	slackCommand := func(h http.Handler) http.Handler {
		return Chain(h, paramsMiddleware, slackVerifyMiddleware(s.Cfg.Slack.SigningSecret))
	}

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /dashboard", api(s.DashboardHandler()))

	s.Router.Handle("GET /tournaments", api(s.ListTournamentsHandler()))
	s.Router.Handle("POST /tournaments", api(s.CreateTournamentHandler()))
	s.Router.Handle("GET /tournaments/{id}", api(s.GetTournamentHandler()))
	s.Router.Handle("GET /tournaments/{id}/couples", api(s.ListCouplesHandler()))
	s.Router.Handle("POST /tournaments/{id}/couples", api(s.RegisterCoupleHandler()))
	s.Router.Handle("POST /tournaments/{id}/auto-seed", api(s.AutoSeedHandler()))
	s.Router.Handle("GET /tournaments/{id}/draw", api(s.GetDrawHandler()))
	s.Router.Handle("POST /tournaments/{id}/draw", api(s.GenerateDrawHandler()))
	s.Router.Handle("GET /tournaments/{id}/ready", api(s.ReadyMatchesHandler()))
	s.Router.Handle("POST /tournaments/{id}/knockout", api(s.KnockoutHandler()))
	s.Router.Handle("POST /tournaments/{id}/matches/{matchID}/start", api(s.StartMatchHandler()))
	s.Router.Handle("POST /tournaments/{id}/matches/{matchID}/result", api(s.RecordResultHandler()))
	s.Router.Handle("GET /tournaments/{id}/zones/{zoneID}/standings", api(s.StandingsHandler()))
	s.Router.Handle("GET /tournaments/{id}/live", api(s.LiveHandler()))

	s.Router.Handle("POST /pubsub/draw-generated", Chain(handlers.DrawGeneratedHandler(s.Processor, s.pubsub), paramsMiddleware))
	s.Router.Handle("POST /pubsub/match-completed", Chain(handlers.MatchCompletedHandler(s.Processor, s.pubsub), paramsMiddleware))

	s.Router.Handle("POST /slack/command/standings", slackCommand(handlers.StandingsCommandHandler(s.Processor)))
	s.Router.Handle("POST /slack/command/ready", slackCommand(handlers.ReadyCommandHandler(s.Processor)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
