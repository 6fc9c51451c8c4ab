package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-draw/internal/processor"
	"github.com/mauv0809/padel-draw/internal/pubsub"
)

// decodePush unwraps a Pub/Sub push request into v.
func decodePush(r *http.Request, pubsubClient pubsub.PubSubClient, v any) (int, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return http.StatusInternalServerError, fmt.Errorf("failed to read request body: %w", err)
	}
	log.Debug("Received push message", "path", r.URL.Path, "body", string(bodyBytes))

	var envelope pubsub.PushEnvelope
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		return http.StatusBadRequest, fmt.Errorf("invalid JSON: %w", err)
	}
	rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		return http.StatusBadRequest, fmt.Errorf("invalid base64 data: %w", err)
	}
	if err := pubsubClient.ProcessMessage(rawData, v); err != nil {
		return http.StatusBadRequest, fmt.Errorf("invalid payload: %w", err)
	}
	return http.StatusOK, nil
}

// ackOrRetry answers a push delivery. Errors that will never succeed are
// acknowledged so Pub/Sub stops redelivering them.
func ackOrRetry(w http.ResponseWriter, err error) {
	if err == nil {
		w.Write([]byte("OK"))
		return
	}
	if status := StatusFor(err); status != http.StatusInternalServerError {
		log.Warn("Dropping push message", "status", status, "error", err)
		w.Write([]byte("OK"))
		return
	}
	log.Error("Failed to handle push message", "error", err)
	http.Error(w, "Failed to handle message", http.StatusInternalServerError)
}

func DrawGeneratedHandler(processor *processor.Processor, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev pubsub.DrawGenerated
		if status, err := decodePush(r, pubsubClient, &ev); err != nil {
			log.Error("Failed to decode draw-generated message", "error", err)
			http.Error(w, err.Error(), status)
			return
		}
		ackOrRetry(w, processor.HandleDrawGenerated(ev, IsDryRunFromContext(r)))
	}
}

func MatchCompletedHandler(processor *processor.Processor, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ev pubsub.MatchCompleted
		if status, err := decodePush(r, pubsubClient, &ev); err != nil {
			log.Error("Failed to decode match-completed message", "error", err)
			http.Error(w, err.Error(), status)
			return
		}
		ackOrRetry(w, processor.HandleMatchCompleted(ev, IsDryRunFromContext(r)))
	}
}
