package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ErrorEnvelope is the JSON error body exchanged with the employee API.
type ErrorEnvelope struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func (e *ErrorEnvelope) String() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Message + " (" + e.Code + ")"
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string, meta map[string]string) error {
	return WriteJSON(w, status, &ErrorEnvelope{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

// ParseError decodes body as an ErrorEnvelope. Bodies without a message or code are rejected.
func ParseError(body []byte) (*ErrorEnvelope, bool) {
	var env ErrorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, false
	}
	if strings.TrimSpace(env.Code) == "" && strings.TrimSpace(env.Message) == "" {
		return nil, false
	}
	return &env, true
}
