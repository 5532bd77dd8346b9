package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/alextreichler/carrental/internal/events"
	"github.com/alextreichler/carrental/internal/store"
)

const maxBodyBytes = 1 << 20

var errInvalidJSON = errors.New("invalid JSON body")

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError sends {message, error}. The error key is omitted when err is nil.
func writeError(w http.ResponseWriter, code int, message string, err error) {
	body := map[string]any{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	writeJSON(w, code, body)
}

// readBody reads the whole request body, capped at maxBodyBytes. It runs
// before any store call so a slow client never holds a connection.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidJSON, err)
	}
	return data, nil
}

// decodeJSON unmarshals data into v. Empty data decodes as {}. Syntax errors
// wrap errInvalidJSON; a value of the wrong type for its field becomes a
// *store.ValidationError.
func decodeJSON(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &store.ValidationError{Field: typeErr.Field, Message: "must be of type " + typeErr.Type.String()}
		}
		return fmt.Errorf("%w: %v", errInvalidJSON, err)
	}
	return nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	data, err := readBody(w, r)
	if err != nil {
		return err
	}
	return decodeJSON(data, v)
}

// writeDecodeError answers a failed decodeBody. Syntax errors are a 400; type
// errors go through the endpoint's failure path like any other validation
// failure.
func writeDecodeError(w http.ResponseWriter, err error, failure string) {
	if errors.Is(err, errInvalidJSON) {
		writeError(w, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}
	writeError(w, http.StatusInternalServerError, failure, err)
}

// publish sends ev and only logs failures; events never change a response.
func publish(ctx context.Context, p events.Publisher, ev events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		slog.Warn("Failed to publish event", "type", ev.Type, "id", ev.ID, "error", err)
	}
}
