package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-draw/internal/processor"
)

// respondWithSlackMsg writes a formatted Slack message as the command response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// commandArgs returns the whitespace separated words of the command text.
func commandArgs(r *http.Request) ([]string, bool) {
	if err := r.ParseForm(); err != nil {
		return nil, false
	}
	return strings.Fields(r.FormValue("text")), true
}

// StandingsCommandHandler answers `/standings <tournament> <zone>`.
func StandingsCommandHandler(processor *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		args, ok := commandArgs(r)
		if !ok {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		if len(args) != 2 {
			http.Error(w, "Usage: /standings <tournament> <zone>", http.StatusBadRequest)
			return
		}

		log.Info("Received standings command", "tournamentID", args[0], "zone", args[1])
		msg, err := processor.StandingsResponse(args[0], strings.ToUpper(args[1]))
		if err != nil {
			RespondError(w, err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

// ReadyCommandHandler answers `/ready <tournament>`.
func ReadyCommandHandler(processor *processor.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		args, ok := commandArgs(r)
		if !ok {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		if len(args) != 1 {
			http.Error(w, "Usage: /ready <tournament>", http.StatusBadRequest)
			return
		}

		log.Info("Received ready command", "tournamentID", args[0])
		msg, err := processor.ReadyResponse(args[0])
		if err != nil {
			RespondError(w, err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}
