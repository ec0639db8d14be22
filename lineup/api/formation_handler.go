package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/futbolformaciones/lineup-service/shared/api"
	"github.com/futbolformaciones/lineup-service/shared/models"
)

type addLineupPlayerRequest struct {
	Side     string           `json:"equipoTipo" validate:"required,oneof=local visitante"`
	PlayerID string           `json:"jugadorId" validate:"required"`
	Position *models.Position `json:"posicion"`
	Number   int              `json:"numero" validate:"omitempty,min=1,max=99"`
}

type sideRequest struct {
	Side string `json:"equipoTipo" validate:"required,oneof=local visitante"`
}

type positionRequest struct {
	Side     string          `json:"equipoTipo" validate:"required,oneof=local visitante"`
	Position models.Position `json:"posicion" validate:"required"`
}

type rateRequest struct {
	Side     string `json:"equipoTipo" validate:"required,oneof=local visitante"`
	UserID   string `json:"usuarioId" validate:"required,max=100"`
	UserName string `json:"usuarioNombre" validate:"omitempty,max=100"`
	Score    int    `json:"puntuacion" validate:"required,min=1,max=10"`
}

type substitutionRequest struct {
	Side      string `json:"equipoTipo" validate:"required,oneof=local visitante"`
	PlayerOut string `json:"jugadorSaleId" validate:"required"`
	PlayerIn  string `json:"jugadorEntraId" validate:"required"`
	Minute    *int   `json:"minuto" validate:"required,min=0,max=120"`
	Reason    string `json:"motivo" validate:"omitempty,max=100"`
}

type lineupStatsRequest struct {
	Side  string            `json:"equipoTipo" validate:"required,oneof=local visitante"`
	Stats models.StatsPatch `json:"estadisticas"`
}

func (h *Handlers) handleCreateFormation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var f models.Formation
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		api.WriteBadRequest(w, "invalid request body")
		return
	}

	created, err := h.formations.CreateFormation(ctx, &f)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusCreated, created)
}

func (h *Handlers) handleUpdateFormation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}

	var f models.Formation
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		api.WriteBadRequest(w, "invalid request body")
		return
	}

	updated, err := h.formations.UpdateFormation(ctx, id, &f)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, updated)
}

func (h *Handlers) handleDeleteFormation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	if err := h.formations.DeleteFormation(ctx, id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, map[string]string{"mensaje": "formacion eliminada"})
}

func (h *Handlers) handleGetFormation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	f, err := h.formations.GetFormation(ctx, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	players, err := h.formations.ReferencedPlayers(ctx, f)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, map[string]interface{}{
		"formacion":    f,
		"jugadores":    players,
		"estadisticas": h.formations.Summarize(f),
	})
}

func (h *Handlers) handleListFormations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	q := r.URL.Query()
	var active *bool
	if raw := q.Get("activa"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			api.WriteBadRequest(w, "invalid activa filter")
			return
		}
		active = &v
	}
	limit, _ := strconv.ParseInt(q.Get("limite"), 10, 64)
	page, _ := strconv.ParseInt(q.Get("pagina"), 10, 64)

	result, err := h.formations.ListFormations(ctx, active, limit, page)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteTotal(w, http.StatusOK, len(result.Formations), result.Total, result.Formations)
}

// handleAvailablePlayers lists the active players the formation editor can
// pick from. With ?formacion=<id> the players already placed in that
// formation are filtered out.
func (h *Handlers) handleAvailablePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if raw := r.URL.Query().Get("formacion"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			api.WriteBadRequest(w, "invalid formacion filter")
			return
		}
		players, err := h.formations.AvailablePlayers(ctx, id)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		api.WriteCount(w, http.StatusOK, len(players), players)
		return
	}

	players, err := h.players.ListPlayers(ctx)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteCount(w, http.StatusOK, len(players), players)
}

func (h *Handlers) handleAddLineupPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}

	var req addLineupPlayerRequest
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

	f, err := h.formations.AddPlayer(ctx, id, models.Side(req.Side), playerID, req.Position, req.Number)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, f)
}

func (h *Handlers) handleRemoveLineupPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	playerID, ok := h.parseID(w, r, "jugadorId")
	if !ok {
		return
	}
	side := models.Side(r.URL.Query().Get("equipoTipo"))

	f, err := h.formations.RemovePlayer(ctx, id, side, playerID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, f)
}

func (h *Handlers) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	playerID, ok := h.parseID(w, r, "jugadorId")
	if !ok {
		return
	}

	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	f, err := h.formations.UpdatePosition(ctx, id, models.Side(req.Side), playerID, req.Position)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, f)
}

func (h *Handlers) handleRatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	playerID, ok := h.parseID(w, r, "jugadorId")
	if !ok {
		return
	}

	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	f, err := h.formations.RatePlayer(ctx, id, models.Side(req.Side), playerID, req.UserID, req.UserName, req.Score)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, f)
}

func (h *Handlers) handleUpdateLineupStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	playerID, ok := h.parseID(w, r, "jugadorId")
	if !ok {
		return
	}

	var req lineupStatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}

	f, err := h.formations.UpdatePlayerStats(ctx, id, models.Side(req.Side), playerID, req.Stats)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, f)
}

func (h *Handlers) handleSubstitute(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}

	var req substitutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeValidationError(w, err)
		return
	}
	outID, err := primitive.ObjectIDFromHex(req.PlayerOut)
	if err != nil {
		api.WriteBadRequest(w, "invalid jugadorSaleId")
		return
	}
	inID, err := primitive.ObjectIDFromHex(req.PlayerIn)
	if err != nil {
		api.WriteBadRequest(w, "invalid jugadorEntraId")
		return
	}

	f, err := h.formations.Substitute(ctx, id, models.Side(req.Side), outID, inID, *req.Minute, req.Reason)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, f)
}

func (h *Handlers) handleRecomputeMVP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, ok := h.parseID(w, r, "id")
	if !ok {
		return
	}
	f, err := h.formations.RecomputeMVP(ctx, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	api.WriteData(w, http.StatusOK, f)
}
