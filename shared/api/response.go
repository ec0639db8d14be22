package api

import (
	"encoding/json"
	"net/http"
)

// Envelope is the response shape the front-end expects on every endpoint:
// {"success": true, "data": ...} or {"success": false, "error": "..."}.
// List endpoints additionally carry count and, when paginated, total.
type Envelope struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Total   *int64      `json:"total,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteData writes a success envelope around data.
func WriteData(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, Envelope{Success: true, Data: data})
}

// WriteCount writes a success envelope for a list response.
func WriteCount(w http.ResponseWriter, status int, count int, data interface{}) {
	WriteJSON(w, status, Envelope{Success: true, Count: &count, Data: data})
}

// WriteTotal writes a success envelope for a paginated list response.
func WriteTotal(w http.ResponseWriter, status int, count int, total int64, data interface{}) {
	WriteJSON(w, status, Envelope{Success: true, Count: &count, Total: &total, Data: data})
}

// WriteError writes a failure envelope with the given status and message.
func WriteError(w http.ResponseWriter, status int, message string) {
	if err := WriteJSON(w, status, Envelope{Success: false, Error: message}); err != nil {
		http.Error(w, message, status) // fallback to plain text
	}
}

// WriteBadRequest convenience function
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound convenience function
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteInternalServerError convenience function
func WriteInternalServerError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
