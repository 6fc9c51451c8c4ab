package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-draw/internal/club"
	"github.com/mauv0809/padel-draw/internal/http/handlers"
	"github.com/mauv0809/padel-draw/internal/processor"
	"github.com/mauv0809/padel-draw/internal/role"
	"github.com/mauv0809/padel-draw/internal/tournament"
)

var (
	errUnauthenticated = errors.New("authentication required")
	errForbidden       = errors.New("not allowed for this role")
)

// allow writes 401 for guests and 403 for other roles when ok is false.
func allow(w http.ResponseWriter, caller role.Role, ok bool) bool {
	if ok {
		return true
	}
	if _, guest := caller.(role.Guest); guest {
		handlers.RespondJSON(w, http.StatusUnauthorized, map[string]string{"error": errUnauthenticated.Error()})
		return false
	}
	handlers.RespondJSON(w, http.StatusForbidden, map[string]string{"error": errForbidden.Error()})
	return false
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Warn("Malformed request body", "error", err)
		http.Error(w, "Bad request", http.StatusBadRequest)
		return false
	}
	return true
}

// managedTournament loads the tournament in the path and checks the caller
// may manage it.
func (s *Server) managedTournament(w http.ResponseWriter, r *http.Request) (*club.Tournament, bool) {
	t, err := s.Processor.GetTournament(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, err)
		return nil, false
	}
	caller := roleFromContext(r)
	if !allow(w, caller, role.CanManage(caller, t.ClubID)) {
		return nil, false
	}
	return t, true
}

func (s *Server) ListTournamentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		tournaments, err := s.Processor.ListTournaments(q.Get("club_id"), club.TournamentStatus(q.Get("status")))
		if err != nil {
			handlers.RespondError(w, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, tournaments)
	}
}

func (s *Server) CreateTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req processor.CreateTournamentRequest
		if !decodeBody(w, r, &req) {
			return
		}
		caller := roleFromContext(r)
		if c, ok := caller.(role.Club); ok && req.ClubID == "" {
			req.ClubID = c.ID
		}
		if !allow(w, caller, role.CanManage(caller, req.ClubID)) {
			return
		}
		t, err := s.Processor.CreateTournament(req, isDryRunFromContext(r))
		if err != nil {
			handlers.RespondError(w, err)
			return
		}
		handlers.RespondJSON(w, http.StatusCreated, t)
	}
}

func (s *Server) GetTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := s.Processor.GetTournament(r.PathValue("id"))
		if err != nil {
			handlers.RespondError(w, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, t)
	}
}

func (s *Server) ListCouplesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		couples, err := s.Processor.Couples(r.PathValue("id"))
		if err != nil {
			handlers.RespondError(w, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, couples)
	}
}

func (s *Server) RegisterCoupleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req processor.RegisterCoupleRequest
		if !decodeBody(w, r, &req) {
			return
		}
		t, err := s.Processor.GetTournament(r.PathValue("id"))
		if err != nil {
			handlers.RespondError(w, err)
			return
		}
		// Players register themselves; the club may register anyone.
		caller := roleFromContext(r)
		ok := role.CanManage(caller, t.ClubID)
		if p, isPlayer := caller.(role.Player); isPlayer && role.CanRegister(caller) {
			ok = p.ID == req.Player1ID || p.ID == req.Player2ID
		}
		if !allow(w, caller, ok) {
			return
		}
		couple, err := s.Processor.RegisterCouple(t.ID, req, isDryRunFromContext(r))
		if err != nil {
			handlers.RespondError(w, err)
			return
		}
		handlers.RespondJSON(w, http.StatusCreated, couple)
	}
}

func (s *Server) AutoSeedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := s.managedTournament(w, r)
		if !ok {
			return
		}
		seeds, err := s.Processor.AutoSeed(r.Context(), t.ID, isDryRunFromContext(r))
		if err != nil {
			handlers.RespondError(w, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]any{"tournament_id": t.ID, "seeds": seeds})
	}
}

func (s *Server) GenerateDrawHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := s.managedTournament(w, r)
		if !ok {
			return
		}
		d, err := s.Processor.GenerateDraw(t.ID, isDryRunFromContext(r))
		if err != nil {
			handlers.RespondError(w, err)
			return
		}
		handlers.RespondJSON(w, http.StatusCreated, d)
	}
}

func (s *Server) GetDrawHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stored, err := s.Processor.GetDraw(r.PathValue("id"))
		if err != nil {
			handlers.RespondError(w, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, stored)
	}
}

func (s *Server) ReadyMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ready, err := s.Processor.ReadyMatches(r.PathValue("id"))
		if err != nil {
			handlers.RespondError(w, err)
			return
		}
		if ready == nil {
			ready = []tournament.Match{}
		}
		handlers.RespondJSON(w, http.StatusOK, ready)
	}
}

func (s *Server) KnockoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := s.managedTournament(w, r)
		if !ok {
			return
		}
		d, err := s.Processor.BuildKnockout(t.ID, isDryRunFromContext(r))
		if err != nil {
			handlers.RespondError(w, err)
			return
		}
		handlers.RespondJSON(w, http.StatusCreated, d)
	}
}

// reporter loads the tournament in the path and checks the caller may report
// its matches.
func (s *Server) reporter(w http.ResponseWriter, r *http.Request) (*club.Tournament, bool) {
	t, err := s.Processor.GetTournament(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, err)
		return nil, false
	}
	caller := roleFromContext(r)
	if !allow(w, caller, role.CanReport(caller, t.ClubID)) {
		return nil, false
	}
	return t, true
}

func (s *Server) StartMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := s.reporter(w, r)
		if !ok {
			return
		}
		m, err := s.Processor.StartMatch(t.ID, r.PathValue("matchID"), isDryRunFromContext(r))
		if err != nil {
			handlers.RespondError(w, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, m)
	}
}

func (s *Server) RecordResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := s.reporter(w, r)
		if !ok {
			return
		}
		var res tournament.Result
		if !decodeBody(w, r, &res) {
			return
		}
		m, err := s.Processor.RecordResult(t.ID, r.PathValue("matchID"), res, isDryRunFromContext(r))
		if err != nil {
			handlers.RespondError(w, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, m)
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.Processor.Standings(r.PathValue("id"), r.PathValue("zoneID"))
		if err != nil {
			handlers.RespondError(w, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, standings)
	}
}

// LiveHandler upgrades to a websocket that receives every update of the
// tournament.
func (s *Server) LiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := s.Processor.GetTournament(r.PathValue("id"))
		if err != nil {
			handlers.RespondError(w, err)
			return
		}
		s.Hub.ServeWS(w, r, t.ID)
	}
}
