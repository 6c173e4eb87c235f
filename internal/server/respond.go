package server

import (
	"encoding/json"
	"net/http"
)

// errorEnvelope — формат ошибки API: клиент показывает поле error как есть.
type errorEnvelope struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorEnvelope{Error: message})
}
