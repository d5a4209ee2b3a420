package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/chickenkicker/highscores/pkg/logger"
	"github.com/chickenkicker/highscores/pkg/repository"
	"github.com/chickenkicker/highscores/pkg/service"
)

type ApiHandler struct {
	leaderboard service.LeaderboardService
}

func NewApiHandler(leaderboard service.LeaderboardService) *ApiHandler {
	return &ApiHandler{leaderboard: leaderboard}
}

type APIResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Source  string `json:"source,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func errorResponse(err string) APIResponse {
	return APIResponse{
		Success: false,
		Error:   err,
	}
}

func writeJSON(w http.ResponseWriter, status int, response APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// GetHighscores handles retrieving the deduplicated leaderboard.
// Optional ?limit=N caps the number of entries (default 100).
func (h *ApiHandler) GetHighscores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse("Method not allowed"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries, err := h.leaderboard.Top(r.Context(), limit)
	if err != nil {
		logger.Error("Error fetching highscores: %v", err)
		response := errorResponse("Failed to fetch highscores")
		response.Message = err.Error()
		writeJSON(w, http.StatusInternalServerError, response)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Count:   len(entries),
		Data:    entries,
		Source:  string(h.leaderboard.Source()),
	})
}

// GetUser handles retrieving a single user's account and rank.
// Routed at /user/{username}.
func (h *ApiHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse("Method not allowed"))
		return
	}

	username := strings.TrimPrefix(r.URL.Path, "/user/")
	ranked, err := h.leaderboard.UserRank(r.Context(), username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, repository.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse("User not found"))
		default:
			logger.Error("Error fetching user: %v", err)
			response := errorResponse("Failed to fetch user")
			response.Message = err.Error()
			writeJSON(w, http.StatusInternalServerError, response)
		}
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    ranked,
		Source:  string(h.leaderboard.Source()),
	})
}

// UpdateScore handles a score submission: the delta is added to the
// account's existing total, or a new account is created with it.
func (h *ApiHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse("Method not allowed"))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("Error reading request body"))
		return
	}
	defer r.Body.Close()

	var req service.SubmitRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("Invalid JSON format"))
		return
	}

	result, err := h.leaderboard.Submit(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, repository.ErrDuplicateAccount):
			writeJSON(w, http.StatusConflict, errorResponse("Account already exists"))
		default:
			logger.Error("Error updating score: %v", err)
			response := errorResponse("Failed to update score")
			response.Message = err.Error()
			writeJSON(w, http.StatusInternalServerError, response)
		}
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    result,
	})
}
