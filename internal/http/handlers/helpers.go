package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-draw/internal/auth"
	"github.com/mauv0809/padel-draw/internal/club"
	"github.com/mauv0809/padel-draw/internal/processor"
	"github.com/mauv0809/padel-draw/internal/tournament"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// RespondJSON writes v as the JSON body with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// RespondError writes err with the status StatusFor picks.
func RespondError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	} else {
		log.Debug("Request rejected", "status", status, "error", err)
	}
	RespondJSON(w, status, map[string]string{"error": err.Error()})
}

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case tournament.IsValidation(err),
		errors.Is(err, processor.ErrInvalidRequest),
		errors.Is(err, tournament.ErrInvalidWinner),
		errors.Is(err, tournament.ErrInvalidScore),
		errors.Is(err, club.ErrInvalidCouple):
		return http.StatusUnprocessableEntity
	case errors.Is(err, club.ErrTournamentNotFound),
		errors.Is(err, club.ErrDrawNotFound),
		errors.Is(err, tournament.ErrMatchNotFound),
		errors.Is(err, processor.ErrZoneNotFound):
		return http.StatusNotFound
	case errors.Is(err, club.ErrConcurrentUpdate),
		errors.Is(err, club.ErrDrawExists),
		errors.Is(err, club.ErrPlayerAlreadyRegistered),
		errors.Is(err, club.ErrRegistrationClosed),
		errors.Is(err, tournament.ErrMatchNotReady),
		errors.Is(err, tournament.ErrMatchAlreadyDecided),
		errors.Is(err, tournament.ErrZonesIncomplete),
		errors.Is(err, tournament.ErrKnockoutExists):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
