package http

import (
	"encoding/json"
	"net/http"
)

// apiResponse is the JSON envelope for every handler reply. statusCode and
// success are repeated in the body; browser clients branch on them without
// reading the transport status.
type apiResponse struct {
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Code       string `json:"code,omitempty"`
	Data       any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, apiResponse{
		StatusCode: statusCode,
		Success:    true,
		Message:    "Success",
		Data:       data,
	})
}

func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, apiResponse{
		StatusCode: statusCode,
		Success:    true,
		Message:    message,
	})
}

func writeError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, apiResponse{
		StatusCode: statusCode,
		Success:    false,
		Message:    message,
		Code:       code,
	})
}
