package server

import (
	"fmt"
	"net/http"
	"strconv"

	"musicapp/audit"
	"musicapp/core/rating"
	"musicapp/model"
	"musicapp/repository"
)

func invalidRatingMessage() string {
	return fmt.Sprintf("Invalid rating value. Valid values: %s", model.RatingNames())
}

// GetTracksHandler returns all tracks, optionally filtered by album id.
func (h *APIHandler) GetTracksHandler(w http.ResponseWriter, r *http.Request) {
	var albumID *int64
	if albumIDStr := r.URL.Query().Get("albumId"); albumIDStr != "" {
		parsed, err := strconv.ParseInt(albumIDStr, 10, 64)
		if err != nil {
			http.Error(w, "Invalid albumId", http.StatusBadRequest)
			return
		}
		albumID = &parsed
	}

	details := ""
	if albumID != nil {
		details = fmt.Sprintf("AlbumId: %d", *albumID)
	}
	if err := h.auditLog.Log(r.Context(), audit.ActionViewList, audit.EntityTrack, 0, details); err != nil {
		serverError(w, "Failed to write audit log", err)
		return
	}

	tracks, err := h.trackRepo.List(r.Context(), albumID)
	if err != nil {
		serverError(w, "Failed to list tracks", err)
		return
	}

	dtos := make([]model.TrackDTO, 0, len(tracks))
	for _, t := range tracks {
		dtos = append(dtos, model.NewTrackDTO(t))
	}

	respondJSON(w, http.StatusOK, dtos)
}

// GetTrackHandler returns a single track by id, including its album.
func (h *APIHandler) GetTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	track, err := h.trackRepo.GetByID(r.Context(), id)
	if err != nil {
		serverError(w, "Failed to get track", err)
		return
	}
	if track == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	details := fmt.Sprintf("Name: %s", track.Name)
	if err := h.auditLog.Log(r.Context(), audit.ActionView, audit.EntityTrack, id, details); err != nil {
		serverError(w, "Failed to write audit log", err)
		return
	}

	respondJSON(w, http.StatusOK, model.NewTrackDTO(track))
}

// CreateTrackHandler creates a new track. The referenced album must exist and
// the initial rating seeds the like/dislike counters.
func (h *APIHandler) CreateTrackHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTrackRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	album, err := h.albumRepo.GetByID(r.Context(), req.AlbumID)
	if err != nil {
		serverError(w, "Failed to get album", err)
		return
	}
	if album == nil {
		http.Error(w, fmt.Sprintf("Album with ID %d does not exist.", req.AlbumID), http.StatusBadRequest)
		return
	}

	if !req.Rating.Valid() {
		http.Error(w, invalidRatingMessage(), http.StatusBadRequest)
		return
	}

	track := &model.Track{
		Name:       req.Name,
		Duration:   req.Duration,
		IsFavorite: req.IsFavorite,
		IsListened: req.IsListened,
		Rating:     req.Rating,
		AlbumID:    req.AlbumID,
	}
	rating.Seed(track)

	if err := h.trackRepo.Create(r.Context(), track); err != nil {
		serverError(w, "Failed to create track", err)
		return
	}

	details := fmt.Sprintf("Name: %s, AlbumId: %d", track.Name, track.AlbumID)
	if err := h.auditLog.Log(r.Context(), audit.ActionCreate, audit.EntityTrack, track.ID, details); err != nil {
		serverError(w, "Failed to write audit log", err)
		return
	}

	track.Album = album
	w.Header().Set("Location", fmt.Sprintf("/api/Track/%d", track.ID))
	respondJSON(w, http.StatusCreated, model.NewTrackDTO(track))
}

// UpdateTrackHandler replaces all fields of a track. A rating change runs the
// counter transition before persisting.
func (h *APIHandler) UpdateTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.UpdateTrackRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if id != req.ID {
		http.Error(w, "Id in path does not match id in body", http.StatusBadRequest)
		return
	}

	track, err := h.trackRepo.GetByID(r.Context(), id)
	if err != nil {
		serverError(w, "Failed to get track", err)
		return
	}
	if track == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if !req.Rating.Valid() {
		http.Error(w, invalidRatingMessage(), http.StatusBadRequest)
		return
	}

	oldDetails := fmt.Sprintf("Old values - Name: %s, Duration: %s, Rating: %s, AlbumId: %d",
		track.Name, track.Duration, track.Rating, track.AlbumID)

	rating.Apply(track, req.Rating)
	track.Name = req.Name
	track.Duration = req.Duration
	track.IsFavorite = req.IsFavorite
	track.IsListened = req.IsListened
	track.AlbumID = req.AlbumID

	if err := h.trackRepo.Update(r.Context(), track); err != nil {
		if err == repository.ErrConflict {
			h.resolveConflict(w, r, h.trackRepo.ExistsByID, id)
			return
		}
		serverError(w, "Failed to update track", err)
		return
	}

	details := fmt.Sprintf("%s. New values - Name: %s, Duration: %s, Rating: %s, AlbumId: %d",
		oldDetails, track.Name, track.Duration, track.Rating, track.AlbumID)
	if err := h.auditLog.Log(r.Context(), audit.ActionUpdate, audit.EntityTrack, id, details); err != nil {
		serverError(w, "Failed to write audit log", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteTrackHandler deletes a track.
func (h *APIHandler) DeleteTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	track, err := h.trackRepo.GetByID(r.Context(), id)
	if err != nil {
		serverError(w, "Failed to get track", err)
		return
	}
	if track == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	details := fmt.Sprintf("Name: %s", track.Name)
	if err := h.auditLog.Log(r.Context(), audit.ActionDelete, audit.EntityTrack, id, details); err != nil {
		serverError(w, "Failed to write audit log", err)
		return
	}

	if err := h.trackRepo.Delete(r.Context(), id); err != nil {
		serverError(w, "Failed to delete track", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// toggleTrackFlag loads the track, writes the audit entry, applies the flag
// mutation and persists. The write and the audit entry are unconditional:
// re-setting a flag to its current value still logs and writes.
func (h *APIHandler) toggleTrackFlag(w http.ResponseWriter, r *http.Request, actionType string, apply func(*model.Track)) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	track, err := h.trackRepo.GetByID(r.Context(), id)
	if err != nil {
		serverError(w, "Failed to get track", err)
		return
	}
	if track == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if err := h.auditLog.Log(r.Context(), actionType, audit.EntityTrack, id, ""); err != nil {
		serverError(w, "Failed to write audit log", err)
		return
	}

	apply(track)

	if err := h.trackRepo.Update(r.Context(), track); err != nil {
		if err == repository.ErrConflict {
			h.resolveConflict(w, r, h.trackRepo.ExistsByID, id)
			return
		}
		serverError(w, "Failed to update track", err)
		return
	}

	respondJSON(w, http.StatusOK, model.NewTrackDTO(track))
}

// AddToFavoritesHandler marks a track as favorite.
func (h *APIHandler) AddToFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	h.toggleTrackFlag(w, r, audit.ActionAddToFavorites, func(t *model.Track) {
		t.IsFavorite = true
	})
}

// RemoveFromFavoritesHandler clears a track's favorite flag.
func (h *APIHandler) RemoveFromFavoritesHandler(w http.ResponseWriter, r *http.Request) {
	h.toggleTrackFlag(w, r, audit.ActionRemoveFromFavorites, func(t *model.Track) {
		t.IsFavorite = false
	})
}

// MarkAsListenedHandler marks a track as listened.
func (h *APIHandler) MarkAsListenedHandler(w http.ResponseWriter, r *http.Request) {
	h.toggleTrackFlag(w, r, audit.ActionMarkAsListened, func(t *model.Track) {
		t.IsListened = true
	})
}

// RateTrackHandler sets the track rating and adjusts the like/dislike
// counters for the transition.
func (h *APIHandler) RateTrackHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	track, err := h.trackRepo.GetByID(r.Context(), id)
	if err != nil {
		serverError(w, "Failed to get track", err)
		return
	}
	if track == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var req model.RateTrackRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if !req.Rating.Valid() {
		http.Error(w, invalidRatingMessage(), http.StatusBadRequest)
		return
	}

	if err := h.auditLog.LogTrackRated(r.Context(), id, req.Rating); err != nil {
		serverError(w, "Failed to write audit log", err)
		return
	}

	rating.Apply(track, req.Rating)

	if err := h.trackRepo.Update(r.Context(), track); err != nil {
		if err == repository.ErrConflict {
			h.resolveConflict(w, r, h.trackRepo.ExistsByID, id)
			return
		}
		serverError(w, "Failed to update track", err)
		return
	}

	respondJSON(w, http.StatusOK, model.NewTrackDTO(track))
}
