package common

import (
	"encoding/json"
	"log"
	"net/http"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   Kind   `json:"error"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// WriteError renders err with the status its kind maps to. Messages of
// unclassified errors are not exposed.
func WriteError(w http.ResponseWriter, err error) {
	kind := KindOf(err)
	message := err.Error()
	if kind == KindInternal {
		log.Printf("Unhandled error: %v", err)
		message = "internal server error"
	}
	WriteJSON(w, HTTPStatus(err), ErrorResponse{
		Success: false,
		Error:   kind,
		Message: message,
	})
}
