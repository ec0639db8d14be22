package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/futbolformaciones/lineup-service/lineup/service"
	"github.com/futbolformaciones/lineup-service/lineup/upload"
	"github.com/futbolformaciones/lineup-service/shared/api"
	"github.com/futbolformaciones/lineup-service/shared/models"
)

// Handlers bundles the HTTP handlers for every resource the service
// exposes.
type Handlers struct {
	players    *service.PlayerService
	formations *service.FormationService
	matches    *service.MatchService
	uploads    upload.Storage
	validate   *validator.Validate
	logger     zerolog.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(players *service.PlayerService, formations *service.FormationService, matches *service.MatchService, uploads upload.Storage, logger zerolog.Logger) *Handlers {
	return &Handlers{
		players:    players,
		formations: formations,
		matches:    matches,
		uploads:    uploads,
		validate:   validator.New(),
		logger:     logger,
	}
}

// RegisterRoutes wires every endpoint onto the router.
func (h *Handlers) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.handleRoot).Methods(http.MethodGet)
	router.HandleFunc("/api/health", h.handleHealth).Methods(http.MethodGet)

	// Players. Fixed paths go before the {id} routes.
	router.HandleFunc("/api/jugadores", h.handleListPlayers).Methods(http.MethodGet)
	router.HandleFunc("/api/jugadores", h.handleCreatePlayer).Methods(http.MethodPost)
	router.HandleFunc("/api/jugadores/top-goleadores", h.handleTopScorers).Methods(http.MethodGet)
	router.HandleFunc("/api/jugadores/upload-foto", h.handleUploadPhoto).Methods(http.MethodPost)
	router.HandleFunc("/api/jugadores/equipo/{equipo}", h.handleListPlayersByTeam).Methods(http.MethodGet)
	router.HandleFunc("/api/jugadores/{id}", h.handleGetPlayer).Methods(http.MethodGet)
	router.HandleFunc("/api/jugadores/{id}", h.handleUpdatePlayer).Methods(http.MethodPut)
	router.HandleFunc("/api/jugadores/{id}", h.handleDeletePlayer).Methods(http.MethodDelete)
	router.HandleFunc("/api/jugadores/{id}/goles", h.handleAddGoals).Methods(http.MethodPut)
	router.HandleFunc("/api/jugadores/{id}/asistencias", h.handleAddAssists).Methods(http.MethodPut)

	// Formations
	router.HandleFunc("/api/formaciones", h.handleListFormations).Methods(http.MethodGet)
	router.HandleFunc("/api/formaciones", h.handleCreateFormation).Methods(http.MethodPost)
	router.HandleFunc("/api/formaciones/jugadores-disponibles", h.handleAvailablePlayers).Methods(http.MethodGet)
	router.HandleFunc("/api/formaciones/{id}", h.handleGetFormation).Methods(http.MethodGet)
	router.HandleFunc("/api/formaciones/{id}", h.handleUpdateFormation).Methods(http.MethodPut)
	router.HandleFunc("/api/formaciones/{id}", h.handleDeleteFormation).Methods(http.MethodDelete)
	router.HandleFunc("/api/formaciones/{id}/jugadores", h.handleAddLineupPlayer).Methods(http.MethodPost)
	router.HandleFunc("/api/formaciones/{id}/jugadores/{jugadorId}", h.handleRemoveLineupPlayer).Methods(http.MethodDelete)
	router.HandleFunc("/api/formaciones/{id}/jugadores/{jugadorId}/posicion", h.handleUpdatePosition).Methods(http.MethodPut)
	router.HandleFunc("/api/formaciones/{id}/jugadores/{jugadorId}/calificar", h.handleRatePlayer).Methods(http.MethodPost)
	router.HandleFunc("/api/formaciones/{id}/jugadores/{jugadorId}/estadisticas", h.handleUpdateLineupStats).Methods(http.MethodPut)
	router.HandleFunc("/api/formaciones/{id}/sustituciones", h.handleSubstitute).Methods(http.MethodPost)
	router.HandleFunc("/api/formaciones/{id}/mvp", h.handleRecomputeMVP).Methods(http.MethodPost)

	// Matches
	router.HandleFunc("/api/partidos", h.handleListMatches).Methods(http.MethodGet)
	router.HandleFunc("/api/partidos", h.handleCreateMatch).Methods(http.MethodPost)
	router.HandleFunc("/api/partidos/{id}", h.handleGetMatch).Methods(http.MethodGet)
	router.HandleFunc("/api/partidos/{id}", h.handleDeleteMatch).Methods(http.MethodDelete)
	router.HandleFunc("/api/partidos/{id}/resultado", h.handleSetResult).Methods(http.MethodPut)
	router.HandleFunc("/api/partidos/{id}/estado", h.handleSetState).Methods(http.MethodPut)
	router.HandleFunc("/api/partidos/{id}/goles", h.handleAddGoal).Methods(http.MethodPost)
	router.HandleFunc("/api/partidos/{id}/asistencias", h.handleAddAssist).Methods(http.MethodPost)
}

func (h *Handlers) handleRoot(w http.ResponseWriter, r *http.Request) {
	api.WriteData(w, http.StatusOK, map[string]string{
		"servicio": "futbol-formaciones",
		"estado":   "ok",
	})
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	api.WriteData(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// parseID extracts and decodes the {id} (or named) path variable. A bad
// hex string is reported to the client directly; the caller just returns.
func (h *Handlers) parseID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[name])
	if err != nil {
		api.WriteBadRequest(w, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// writeServiceError maps service and domain errors to HTTP status codes.
func (h *Handlers) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPlayerNotFound),
		errors.Is(err, service.ErrFormationNotFound),
		errors.Is(err, service.ErrMatchNotFound),
		errors.Is(err, models.ErrPlayerNotInTeam),
		errors.Is(err, models.ErrUnknownSide):
		api.WriteNotFound(w, err.Error())
	case errors.Is(err, service.ErrNumberTaken),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, models.ErrDuplicatePlayer),
		errors.Is(err, models.ErrScoreOutOfRange),
		errors.Is(err, models.ErrMinuteOutOfRange),
		errors.Is(err, models.ErrStatsOutOfRange):
		api.WriteBadRequest(w, err.Error())
	default:
		h.logger.Error().Err(err).Msg("request failed")
		api.WriteInternalServerError(w, "server error")
	}
}

// writeValidationError turns validator tag failures into a readable
// message for the first failing field.
func (h *Handlers) writeValidationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		api.WriteBadRequest(w, "invalid field "+f.Field()+": failed "+f.Tag())
		return
	}
	api.WriteBadRequest(w, "invalid request body")
}
