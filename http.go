package tide

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// MaxBodyBytes bounds the request bodies DecodeJSON reads.
const MaxBodyBytes = 1 << 20

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("tide: encode response", "error", err)
	}
}

// StatusOf returns the HTTP status an error maps to: 404 for missing
// records, 400 for invalid input and 500 otherwise.
func StatusOf(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsValidationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as a JSON error response. Server errors are
// logged and their details withheld from the client.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("tide: request failed", "error", err)
		msg = http.StatusText(status)
	}
	WriteJSON(w, status, map[string]string{"error": msg})
}

// DecodeJSON decodes the JSON body of r into v. Malformed bodies return a
// ValidationError.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return NewValidationError("request body", io.EOF)
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return NewValidationError("request body", err)
	}
	return nil
}

// ParseID parses a path key into K. Malformed keys return a
// ValidationError.
func ParseID[K ~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~string](s string) (K, error) {
	var id K
	if strings.TrimSpace(s) == "" {
		return id, NewValidationError("id", errors.New("empty key"))
	}
	v, err := parseKey(reflect.TypeOf(id), s)
	if err != nil {
		return id, NewValidationError("id", err)
	}
	return v.(K), nil
}

// ParseUUID parses a path key into a UUID. Malformed keys return a
// ValidationError.
func ParseUUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, NewValidationError("id", err)
	}
	return id, nil
}

// QueryInt returns the integer query parameter key of r, or def when it is
// absent or malformed.
func QueryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
