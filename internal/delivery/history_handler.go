package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/reels-analyzer/internal/ports"
	"github.com/go-chi/chi/v5"
)

const historyLimit = 50

type HistoryHandler struct {
	journal ports.Journal
	log     *logger.ZapLogger
}

// NewHistoryHandler accepts a nil journal; the route then answers 404.
func NewHistoryHandler(journal ports.Journal, log *logger.ZapLogger) *HistoryHandler {
	return &HistoryHandler{
		journal: journal,
		log:     log,
	}
}

// GET /api/history/{user}
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		http.Error(w, "journal not configured", http.StatusNotFound)
		return
	}

	user := chi.URLParam(r, "user")
	if user == "" {
		http.Error(w, "missing user", http.StatusBadRequest)
		return
	}

	entries, err := h.journal.ListByUser(r.Context(), user, historyLimit)
	if err != nil {
		http.Error(w, "failed get history: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "journal fetched",
		Fields: map[string]any{
			"user":    user,
			"entries": len(entries),
		},
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
	})
}
