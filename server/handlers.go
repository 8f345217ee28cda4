package server

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"

	"musicapp/audit"
	"musicapp/logger"
	"musicapp/repository"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// durationPattern is the strict M{1,2}:SS track duration format, e.g. "3:45".
var durationPattern = regexp.MustCompile(`^([0-9]{1,2}):([0-5][0-9])$`)

// APIHandler handles all API requests.
type APIHandler struct {
	musicianRepo repository.MusicianRepository
	albumRepo    repository.AlbumRepository
	trackRepo    repository.TrackRepository
	actionLogs   repository.ActionLogRepository
	auditLog     audit.Logger
	validate     *validator.Validate
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	musicianRepo repository.MusicianRepository,
	albumRepo repository.AlbumRepository,
	trackRepo repository.TrackRepository,
	actionLogs repository.ActionLogRepository,
	auditLog audit.Logger,
) *APIHandler {
	validate := validator.New()
	// Panics only on a malformed registration, which would be a programming error.
	if err := validate.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		return durationPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return &APIHandler{
		musicianRepo: musicianRepo,
		albumRepo:    albumRepo,
		trackRepo:    trackRepo,
		actionLogs:   actionLogs,
		auditLog:     auditLog,
		validate:     validate,
	}
}

// respondJSON writes v as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", logger.ErrorField(err))
		}
	}
}

// serverError logs err and reports a generic 500 to the client.
func serverError(w http.ResponseWriter, msg string, err error) {
	logger.Error(msg, logger.ErrorField(err))
	http.Error(w, msg, http.StatusInternalServerError)
}

// pathID extracts the integer {id} path variable. On failure it writes a 400
// and returns false.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// decodeBody decodes the JSON request body into v and validates it. On
// failure it writes a 400 and returns false.
func (h *APIHandler) decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// resolveConflict maps an optimistic-concurrency conflict to 404 when the
// row was concurrently deleted, and to a server fault otherwise: fail-fast,
// no retry, since merge semantics for full-replace updates are undefined.
func (h *APIHandler) resolveConflict(w http.ResponseWriter, r *http.Request, exists func(context.Context, int64) (bool, error), id int64) {
	stillExists, err := exists(r.Context(), id)
	if err != nil {
		serverError(w, "Failed to check entity existence", err)
		return
	}
	if !stillExists {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	serverError(w, "Concurrent modification detected", repository.ErrConflict)
}

// GetActionLogHandler returns the most recent audit entries, newest first.
// Reading the log is not itself an audited action.
func (h *APIHandler) GetActionLogHandler(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.actionLogs.List(r.Context(), limit)
	if err != nil {
		serverError(w, "Failed to list action log", err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}
