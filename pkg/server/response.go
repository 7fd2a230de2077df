package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowboard/pkg/errors"
)

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// writeError maps err to a status and writes {"error": {code, message}}.
// Internal errors are logged and their detail withheld from the client.
func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	status := errors.HTTPStatus(err)
	body := errorBody{Code: errors.GetCode(err), Message: errors.UserMessage(err)}
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		logger.Error("request failed", "error", err)
		body = errorBody{Code: errors.ErrCodeInternal, Message: "internal error"}
	}
	writeJSON(w, status, map[string]errorBody{"error": body})
}
