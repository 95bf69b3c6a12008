package api

import (
	"encoding/json"
	"net/http"
)

// Response is the uniform envelope for every API reply.
type Response struct {
	StatusCode int         `json:"status_code" example:"200"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message" example:"ok"`
	Success    bool        `json:"success" example:"true"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		StatusCode: status,
		Message:    message,
		Success:    false,
	})
}
