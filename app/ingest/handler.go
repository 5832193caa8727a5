package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"
)

// Handler exposes the operator-facing ingestion trigger. Runs are
// single-flight: a second trigger while a batch is in progress is refused.
type Handler struct {
	orchestrator *Orchestrator
	log          *zap.Logger
	running      atomic.Bool
}

func NewHandler(orchestrator *Orchestrator, log *zap.Logger) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		log:          log,
	}
}

func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	if !h.running.CompareAndSwap(false, true) {
		http.Error(w, "ingestion already running", http.StatusConflict)
		return
	}

	go func() {
		defer h.running.Store(false)
		// Detached from the request context: the batch outlives the trigger.
		if _, err := h.orchestrator.Run(context.Background()); err != nil {
			h.log.Error("ingestion run failed", zap.Error(err))
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "ingestion started",
	})
}
