package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futbolformaciones/lineup-service/lineup/service"
	sharedapi "github.com/futbolformaciones/lineup-service/shared/api"
	"github.com/futbolformaciones/lineup-service/shared/models"
)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	return NewHandlers(nil, nil, nil, nil, zerolog.Nop())
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) sharedapi.Envelope {
	t.Helper()
	var env sharedapi.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestWriteServiceErrorStatusMapping(t *testing.T) {
	h := newTestHandlers(t)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"player not found", service.ErrPlayerNotFound, http.StatusNotFound},
		{"formation not found", service.ErrFormationNotFound, http.StatusNotFound},
		{"match not found", service.ErrMatchNotFound, http.StatusNotFound},
		{"player not in team", fmt.Errorf("%w: abc123", models.ErrPlayerNotInTeam), http.StatusNotFound},
		{"unknown side", fmt.Errorf("%w: %q", models.ErrUnknownSide, "oeste"), http.StatusNotFound},
		{"number taken", service.ErrNumberTaken, http.StatusBadRequest},
		{"validation", fmt.Errorf("%w: name is required", service.ErrValidation), http.StatusBadRequest},
		{"duplicate player", models.ErrDuplicatePlayer, http.StatusBadRequest},
		{"score out of range", fmt.Errorf("%w: got 11", models.ErrScoreOutOfRange), http.StatusBadRequest},
		{"minute out of range", fmt.Errorf("%w: got 121", models.ErrMinuteOutOfRange), http.StatusBadRequest},
		{"stats out of range", models.ErrStatsOutOfRange, http.StatusBadRequest},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.writeServiceError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestWriteServiceErrorHidesInternalDetail(t *testing.T) {
	h := newTestHandlers(t)
	rec := httptest.NewRecorder()

	h.writeServiceError(rec, errors.New("dial tcp 10.0.0.5:27017: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "server error", env.Error)
}

func TestRoutedInvalidID(t *testing.T) {
	h := newTestHandlers(t)
	router := mux.NewRouter()
	h.RegisterRoutes(router)

	// malformed ids are rejected before any service is touched
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/jugadores/not-an-id"},
		{http.MethodDelete, "/api/jugadores/not-an-id"},
		{http.MethodGet, "/api/formaciones/not-an-id"},
		{http.MethodGet, "/api/partidos/not-an-id"},
	}
	for _, tt := range paths {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, "invalid id", env.Error)
		})
	}
}

func TestRoutedInvalidBody(t *testing.T) {
	h := newTestHandlers(t)
	router := mux.NewRouter()
	h.RegisterRoutes(router)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/jugadores", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
}

func TestRoutedValidationFailure(t *testing.T) {
	h := newTestHandlers(t)
	router := mux.NewRouter()
	h.RegisterRoutes(router)

	// unknown team fails the DTO tags before any service is touched
	body := `{"nombre":"Diego","equipo":"verde"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/jugadores", bytes.NewBufferString(body))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "invalid field")
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHandlers(t)
	router := mux.NewRouter()
	h.RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
}
