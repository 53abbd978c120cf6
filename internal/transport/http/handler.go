package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"daily-vocab-service/internal/app"
	"daily-vocab-service/internal/domain"
)

// Handler exposes the phase-gated REST API.
type Handler struct {
	service *app.Service
	clock   func() time.Time
}

func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service, clock: time.Now}
}

// NewHandlerWithClock is test-only for deterministic phase resolution.
func NewHandlerWithClock(service *app.Service, clock func() time.Time) *Handler {
	return &Handler{service: service, clock: clock}
}

// Register wires the handler's routes into the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /data/{email}", h.handleData)
	mux.HandleFunc("POST /submit", h.handleSubmit)
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /ws/leaderboard", h.serveLeaderboardWS)
}

type dataResponse struct {
	Type    string `json:"type"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

type submitResponse struct {
	Success        bool   `json:"success"`
	CorrectAnswers int    `json:"correctAnswers"`
	TotalQuestions int    `json:"totalQuestions"`
	TimeTaken      string `json:"timeTaken"`
	Message        string `json:"message"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleData(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	result, err := h.service.Content(r.Context(), email, h.clock())
	if err != nil {
		log.Printf("content request failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	resp := dataResponse{Message: result.Message}
	switch result.Phase {
	case domain.PhaseLearning:
		resp.Type = "words"
		resp.Data = result.Words
	case domain.PhaseQuiz:
		resp.Type = "questions"
		resp.Data = result.Questions
	default:
		resp.Type = "rankings"
		resp.Data = result.Rankings
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var sub domain.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.service.Submit(r.Context(), sub)
	if err != nil {
		if domain.IsValidation(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		log.Printf("submission failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Success:        true,
		CorrectAnswers: result.CorrectAnswers,
		TotalQuestions: result.TotalQuestions,
		TimeTaken:      result.TimeTaken,
		Message:        "Submission recorded",
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: h.clock().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response: %v", err)
	}
}
