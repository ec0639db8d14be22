package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteData(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, http.StatusCreated, map[string]string{"nombre": "Diego"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Empty(t, env.Error)
	assert.Nil(t, env.Count)
}

func TestWriteCount(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteCount(rec, http.StatusOK, 2, []string{"a", "b"})

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	require.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)
	assert.Nil(t, env.Total)
}

func TestWriteTotal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteTotal(rec, http.StatusOK, 1, 42, []string{"a"})

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Total)
	assert.Equal(t, int64(42), *env.Total)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteNotFound(rec, "formation not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "formation not found", env.Error)
	assert.Nil(t, env.Data)
}
