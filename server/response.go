package server

import (
	"encoding/json"
	"net/http"
)

// Response bodies are fixed strings; internal error detail never reaches
// the caller.
const (
	msgNoMarkdown    = "No markdown content provided"
	msgProcessFailed = "Failed to process markdown"
	msgUnhandled     = "Something went wrong!"
)

type errorResponse struct {
	Error string `json:"error"`
}

type renderResponse struct {
	HTML string `json:"html"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}
