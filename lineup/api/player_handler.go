package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/futbolformaciones/lineup-service/lineup/service"
	"github.com/futbolformaciones/lineup-service/shared/api"
	"github.com/futbolformaciones/lineup-service/shared/models"
)

const requestTimeout = 5 * time.Second

type playerRequest struct {
	Name          string          `json:"nombre" validate:"required,max=50"`
	Number        int             `json:"numero" validate:"omitempty,min=1,max=99"`
	Team          string          `json:"equipo" validate:"required,oneof=rojo azul"`
	Position      models.Position `json:"posicion"`
	PhotoURL      string          `json:"fotoUrl" validate:"omitempty,url"`
	Goals         int             `json:"goles" validate:"min=0"`
	Assists       int             `json:"asistencias" validate:"min=0"`
	MatchesPlayed int             `json:"partidosJugados" validate:"min=0"`
}

type careerIncrementRequest struct {
	Amount int `json:"cantidad" validate:"required,min=1"`
}

func (h *Handlers) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	player, err := h.players.CreatePlayer(ctx, service.PlayerInput{
		Name:          req.Name,
		Number:        req.Number,
		Team:          req.Team,
		Position:      req.Position,
		PhotoURL:      req.PhotoURL,
		Goals:         req.Goals,
		Assists:       req.Assists,
		MatchesPlayed: req.MatchesPlayed,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusCreated, player)
}

func (h *Handlers) handleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}

	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	player, err := h.players.UpdatePlayer(ctx, id, service.PlayerInput{
		Name:          req.Name,
		Number:        req.Number,
		Team:          req.Team,
		Position:      req.Position,
		PhotoURL:      req.PhotoURL,
		Goals:         req.Goals,
		Assists:       req.Assists,
		MatchesPlayed: req.MatchesPlayed,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, player)
}

func (h *Handlers) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	if err := h.players.DeletePlayer(ctx, id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, map[string]string{"mensaje": "jugador desactivado"})
}

func (h *Handlers) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	player, err := h.players.GetPlayer(ctx, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, player)
}

func (h *Handlers) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	players, err := h.players.ListPlayers(ctx)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteCount(w, http.StatusOK, len(players), players)
}

func (h *Handlers) handleListPlayersByTeam(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	players, err := h.players.ListPlayersByTeam(ctx, mux.Vars(r)["equipo"])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteCount(w, http.StatusOK, len(players), players)
}

func (h *Handlers) handleTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	limit, _ := strconv.ParseInt(r.URL.Query().Get("limite"), 10, 64)
	players, err := h.players.TopScorers(ctx, limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteCount(w, http.StatusOK, len(players), players)
}

func (h *Handlers) handleAddGoals(w http.ResponseWriter, r *http.Request) {
	h.handleCareerIncrement(w, r, h.players.AddGoals)
}

func (h *Handlers) handleAddAssists(w http.ResponseWriter, r *http.Request) {
	h.handleCareerIncrement(w, r, h.players.AddAssists)
}

func (h *Handlers) handleCareerIncrement(w http.ResponseWriter, r *http.Request, apply func(context.Context, primitive.ObjectID, int) (*models.Player, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}

	var req careerIncrementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	player, err := apply(ctx, id, req.Amount)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, player)
}
