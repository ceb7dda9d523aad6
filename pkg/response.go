package pkg

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var ContentType = struct {
	JSON    string
	GeoJSON string
	Text    string
}{
	JSON:    "application/json",
	GeoJSON: "application/geo+json",
	Text:    "text/plain; charset=utf-8",
}

func WriteResponse(w http.ResponseWriter, contentType, message string, statusCode int) {
	WriteResponseBytes(w, contentType, []byte(message), statusCode)
}

func WriteResponseBytes(w http.ResponseWriter, contentType string, message []byte, statusCode int) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(statusCode)

	if _, err := w.Write(message); err != nil {
		log.Errorf("failed to write response [%s]: %s", message, err)
	}
}

func WriteResponseBytesOK(w http.ResponseWriter, contentType string, message []byte) {
	WriteResponseBytes(w, contentType, message, http.StatusOK)
}

func WriteTextResponseOK(w http.ResponseWriter, message string) {
	WriteResponse(w, ContentType.Text, message, http.StatusOK)
}

func WriteJSONResponseOK(w http.ResponseWriter, message string) {
	WriteResponse(w, ContentType.JSON, message, http.StatusOK)
}

// SendJsonResponse marshals v and writes it with the given status code.
// A value that cannot be marshaled results in a 500.
func SendJsonResponse(w http.ResponseWriter, statusCode int, v any) {
	SendJsonResponseWithContentType(w, ContentType.JSON, statusCode, v)
}

func SendJsonResponseWithContentType(w http.ResponseWriter, contentType string, statusCode int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	WriteResponseBytes(w, contentType, body, statusCode)
}

type errorResponse struct {
	Error string `json:"error"`
}

func SendJsonError(w http.ResponseWriter, statusCode int, message string) {
	SendJsonResponse(w, statusCode, errorResponse{Error: message})
}
