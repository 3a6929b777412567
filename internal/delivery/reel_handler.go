package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/reels-analyzer/internal/domain/reel"
	"github.com/Vovarama1992/reels-analyzer/internal/models"
	"github.com/Vovarama1992/reels-analyzer/internal/ports"
)

type ReelHandler struct {
	reels ports.ReelProcessor
	log   *logger.ZapLogger
}

func NewReelHandler(reels ports.ReelProcessor, log *logger.ZapLogger) *ReelHandler {
	return &ReelHandler{
		reels: reels,
		log:   log,
	}
}

type analyzeRequest struct {
	Link string `json:"link"`
	User string `json:"user"`
}

type saveRequest struct {
	User      string          `json:"user"`
	Link      string          `json:"link"`
	Summary   json.RawMessage `json:"summary"`
	Thumbnail string          `json:"thumbnail"`
	MediaURL  string          `json:"media_url"`
}

type analyzeResponse struct {
	models.Summary
	Image string `json:"image"`
}

type chatMessage struct {
	Text string `json:"text"`
}

// POST /analyze
func (h *ReelHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	res, err := h.reels.Analyze(r.Context(), ports.AnalyzeInput{Link: req.Link, User: req.User})
	if err != nil {
		h.failLLM(w, "/analyze", err, res)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "reel analyzed",
		Fields: map[string]any{
			"user":     req.User,
			"link":     res.Link,
			"fallback": res.Metadata.Fallback,
		},
	})

	writeJSON(w, http.StatusOK, analyzeResponse{
		Summary: res.Summary,
		Image:   res.Metadata.ThumbnailURL,
	})
}

// POST /save
func (h *ReelHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	res, err := h.reels.Save(r.Context(), ports.SaveInput{
		User:         req.User,
		Link:         req.Link,
		Summary:      req.Summary,
		ThumbnailURL: req.Thumbnail,
		MediaURL:     req.MediaURL,
	})
	if err != nil {
		var mismatch *reel.SchemaMismatchError
		var invalid *reel.InvalidJSONError
		if errors.As(err, &mismatch) || errors.As(err, &invalid) {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid summary", Details: err.Error()})
			return
		}
		h.failInternal(w, "/save", err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "reel saved",
		Fields: map[string]any{
			"user":      req.User,
			"status":    res.Status,
			"thumbnail": res.Thumbnail != nil,
		},
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   res.Status,
		"response": res.Body,
	})
}

// POST /analyzeSave
func (h *ReelHandler) AnalyzeSave(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	res, err := h.reels.AnalyzeSave(r.Context(), ports.AnalyzeInput{Link: req.Link, User: req.User})
	if err != nil {
		var analysis *ports.AnalyzeResult
		if res != nil {
			analysis = res.Analysis
		}
		h.failLLM(w, "/analyzeSave", err, analysis)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "reel analyzed and saved",
		Fields: map[string]any{
			"user":   req.User,
			"link":   res.Analysis.Link,
			"status": res.Persist.Status,
		},
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"messages": []chatMessage{{Text: res.Message}},
	})
}

// failLLM maps model output errors to the LLM error shape and everything
// else to the internal error shape.
func (h *ReelHandler) failLLM(w http.ResponseWriter, route string, err error, res *ports.AnalyzeResult) {
	raw := ""
	if res != nil {
		raw = res.Raw
	}

	var invalid *reel.InvalidJSONError
	if errors.As(err, &invalid) {
		if raw == "" {
			raw = invalid.Raw
		}
		h.logFailure(route, "llm returned non-json content", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Invalid response from LLM", Raw: raw})
		return
	}

	var mismatch *reel.SchemaMismatchError
	if errors.As(err, &mismatch) {
		h.logFailure(route, "llm content failed validation", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   "Invalid response from LLM",
			Raw:     raw,
			Details: err.Error(),
		})
		return
	}

	h.failInternal(w, route, err)
}

func (h *ReelHandler) failInternal(w http.ResponseWriter, route string, err error) {
	h.logFailure(route, "request failed", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal Server Error", Details: err.Error()})
}

func (h *ReelHandler) logFailure(route, msg string, err error) {
	h.log.Log(logger.LogEntry{
		Level:   "error",
		Message: msg,
		Error:   err,
		Fields:  map[string]any{"route": route},
	})
}
