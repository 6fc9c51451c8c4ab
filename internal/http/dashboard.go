package http

import (
	"net/http"

	"github.com/mauv0809/padel-draw/internal/club"
	"github.com/mauv0809/padel-draw/internal/http/handlers"
	"github.com/mauv0809/padel-draw/internal/role"
)

// Dashboard is the landing page payload. Only the sections listed in Slots
// are filled.
type Dashboard struct {
	Role            string              `json:"role"`
	Slots           []string            `json:"slots"`
	Tournaments     []club.Tournament   `json:"tournaments,omitempty"`
	Registrations   []club.Registration `json:"registrations,omitempty"`
	OpenTournaments []club.Tournament   `json:"open_tournaments,omitempty"`
	Totals          map[string]int      `json:"totals,omitempty"`
}

func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := roleFromContext(r)
		dash := Dashboard{Role: caller.Kind(), Slots: role.Slots(caller)}

		var err error
		switch c := caller.(type) {
		case role.Club:
			dash.Tournaments, err = s.Processor.ListTournaments(c.ID, "")
			if err == nil {
				dash.Totals, err = s.Processor.Totals()
			}
		case role.Player:
			dash.Registrations, err = s.Processor.Registrations(c.ID)
			if err == nil {
				dash.OpenTournaments, err = s.Processor.ListTournaments("", club.StatusRegistration)
			}
		default:
			dash.OpenTournaments, err = s.Processor.ListTournaments("", club.StatusRegistration)
		}
		if err != nil {
			handlers.RespondError(w, err)
			return
		}
		handlers.RespondJSON(w, http.StatusOK, dash)
	}
}
