package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quench-app/quench/internal/app/journal"
	"github.com/quench-app/quench/internal/domain"
)

// --- POST /api/users/{userID}/activities ---

type createActivityRequest struct {
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
	Intensity  int        `json:"intensity"`
	HasAdvice  bool       `json:"has_advice"`
	Emotions   []string   `json:"emotions,omitempty"`
	Trigger    string     `json:"trigger,omitempty"`
}

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	var req createActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry := journal.Entry{
		UserID:    chi.URLParam(r, "userID"),
		Intensity: req.Intensity,
		HasAdvice: req.HasAdvice,
		Emotions:  req.Emotions,
		Trigger:   req.Trigger,
	}
	if req.OccurredAt != nil {
		entry.OccurredAt = *req.OccurredAt
	}

	res, err := s.journal.Log(entry)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	s.notify.RecordResult(entry.UserID, res)
	writeJSON(w, http.StatusCreated, res)
}

// --- GET /api/users/{userID}/activities ---

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	records, err := s.journal.History(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"activities": records,
		"count":      len(records),
	})
}

// --- GET /api/users/{userID}/gamification ---

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	st, err := s.db.Load(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// --- POST /api/users/{userID}/gamification/recompute ---

func (s *Server) handleRecompute(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	res, err := s.engine.Recompute(userID)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	s.notify.RecordResult(userID, res)
	writeJSON(w, http.StatusOK, res)
}

// --- GET /api/users/{userID}/badges ---

func (s *Server) handleListBadges(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	defs, err := s.db.All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	awards, err := s.db.ListAwards(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	earnedAt := make(map[string]time.Time, len(awards))
	for _, a := range awards {
		earnedAt[a.BadgeID] = a.EarnedAt
	}

	type badgeView struct {
		domain.BadgeDefinition
		Earned   bool       `json:"earned"`
		EarnedAt *time.Time `json:"earned_at,omitempty"`
	}
	out := make([]badgeView, len(defs))
	for i, def := range defs {
		out[i] = badgeView{BadgeDefinition: def}
		if at, ok := earnedAt[def.ID]; ok {
			out[i].Earned = true
			out[i].EarnedAt = &at
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"badges": out,
		"earned": len(awards),
		"total":  len(defs),
	})
}

// --- GET /api/users/{userID}/achievements ---

func (s *Server) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	st, err := s.db.Load(chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"achievements":    st.LevelAchievements,
		"milestone_flags": st.MilestoneFlags,
	})
}

// --- GET /api/users/{userID}/notifications ---

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	notifications, err := s.notify.Recent(chi.URLParam(r, "userID"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
	})
}

// --- POST /api/users/{userID}/notifications/{id}/shown ---

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := s.notify.MarkShown(id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrStateNotFound),
		errors.Is(err, domain.ErrBadgeNotFound),
		errors.Is(err, domain.ErrActivityNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateAward):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
