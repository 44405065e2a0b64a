package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"journal-backend/internal/domain"
	"journal-backend/internal/schema"
	"journal-backend/internal/usecase"
)

// maxBodyBytes caps JSON request bodies at 100kb.
const maxBodyBytes = 100 << 10

type errorBody struct {
	Error any `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeError maps a service error onto a status code. notFound is the
// message used for usecase.ErrNotFound.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error, notFound string) {
	var verr *schema.ValidationError
	switch {
	case isBodyTooLarge(err):
		writeMessage(w, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: verr.Issues})
	case errors.Is(err, schema.ErrMalformedJSON):
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
	case errors.Is(err, usecase.ErrNotFound):
		writeMessage(w, http.StatusNotFound, notFound)
	case errors.Is(err, domain.ErrDuplicateUsername),
		errors.Is(err, domain.ErrDuplicateFirebaseID),
		errors.Is(err, domain.ErrProfileExists):
		writeMessage(w, http.StatusConflict, conflictMessage(err))
	default:
		logger.Error("request failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateUsername):
		return "Username already exists"
	case errors.Is(err, domain.ErrDuplicateFirebaseID):
		return "Firebase ID already linked"
	default:
		return "Trader profile already exists"
	}
}

// pathID parses an integer path value. ok is false when the value is not a
// well-formed integer.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func isBodyTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge)
}

// limitBody caps r.Body at maxBodyBytes.
func limitBody(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
}

func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	limitBody(w, r)
	defer r.Body.Close()
	return schema.DecodeObject(r.Body)
}
