package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/futbolformaciones/lineup-service/shared/api"
	"github.com/futbolformaciones/lineup-service/shared/models"
)

type matchRequest struct {
	LocalName      string             `json:"nombreEquipoLocal" validate:"required,max=50"`
	VisitingName   string             `json:"nombreEquipoVisitante" validate:"required,max=50"`
	LocalGoals     int                `json:"golesLocal" validate:"min=0"`
	VisitingGoals  int                `json:"golesVisitante" validate:"min=0"`
	Date           time.Time          `json:"fecha"`
	State          string             `json:"estado" validate:"omitempty,oneof=programado en_curso finalizado cancelado"`
	LocalLineup    models.MatchLineup `json:"formacionLocal"`
	VisitingLineup models.MatchLineup `json:"formacionVisitante"`
}

type resultRequest struct {
	LocalGoals    *int `json:"golesLocal" validate:"required,min=0"`
	VisitingGoals *int `json:"golesVisitante" validate:"required,min=0"`
}

type stateRequest struct {
	State string `json:"estado" validate:"required,oneof=programado en_curso finalizado cancelado"`
}

type goalRequest struct {
	PlayerID string `json:"jugadorId" validate:"required"`
	Minute   int    `json:"minuto" validate:"min=0,max=120"`
	Type     string `json:"tipo" validate:"omitempty,oneof=gol autogol"`
}

type assistRequest struct {
	PlayerID string `json:"jugadorId" validate:"required"`
	Minute   int    `json:"minuto" validate:"min=0,max=120"`
}

func (h *Handlers) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	match, err := h.matches.CreateMatch(ctx, &models.Match{
		LocalName:      req.LocalName,
		VisitingName:   req.VisitingName,
		LocalGoals:     req.LocalGoals,
		VisitingGoals:  req.VisitingGoals,
		Date:           req.Date,
		State:          req.State,
		LocalLineup:    req.LocalLineup,
		VisitingLineup: req.VisitingLineup,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusCreated, match)
}

func (h *Handlers) handleListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	q := r.URL.Query()
	limit, _ := strconv.ParseInt(q.Get("limite"), 10, 64)
	matches, err := h.matches.ListMatches(ctx, q.Get("estado"), limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteCount(w, http.StatusOK, len(matches), matches)
}

func (h *Handlers) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	match, err := h.matches.GetMatch(ctx, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, match)
}

func (h *Handlers) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	if err := h.matches.DeleteMatch(ctx, id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, map[string]string{"mensaje": "partido eliminado"})
}

func (h *Handlers) handleSetResult(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}

	var req resultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	match, err := h.matches.SetResult(ctx, id, *req.LocalGoals, *req.VisitingGoals)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, match)
}

func (h *Handlers) handleSetState(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}

	var req stateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	match, err := h.matches.SetState(ctx, id, req.State)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, match)
}

func (h *Handlers) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}
	playerID, err := primitive.ObjectIDFromHex(req.PlayerID)
	if err != nil {
		api.WriteBadRequest(w, "invalid jugadorId")
		return
	}

	match, err := h.matches.AddGoal(ctx, id, playerID, req.Minute, req.Type)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, match)
}

func (h *Handlers) handleAddAssist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}

	var req assistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}
	playerID, err := primitive.ObjectIDFromHex(req.PlayerID)
	if err != nil {
		api.WriteBadRequest(w, "invalid jugadorId")
		return
	}

	match, err := h.matches.AddAssist(ctx, id, playerID, req.Minute)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, match)
}
