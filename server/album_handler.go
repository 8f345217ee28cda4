package server

import (
	"fmt"
	"net/http"

	"musicapp/audit"
	"musicapp/model"
	"musicapp/repository"
)

// GetAlbumsHandler returns all albums with their artist name denormalized.
func (h *APIHandler) GetAlbumsHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.auditLog.Log(r.Context(), audit.ActionViewList, audit.EntityAlbum, 0, ""); err != nil {
		serverError(w, "Failed to write audit log", err)
		return
	}

	albums, err := h.albumRepo.List(r.Context())
	if err != nil {
		serverError(w, "Failed to list albums", err)
		return
	}

	dtos := make([]model.AlbumDTO, 0, len(albums))
	for _, a := range albums {
		dtos = append(dtos, model.NewAlbumDTO(a))
	}

	respondJSON(w, http.StatusOK, dtos)
}

// GetAlbumHandler returns a single album by id.
func (h *APIHandler) GetAlbumHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	album, err := h.albumRepo.GetByID(r.Context(), id)
	if err != nil {
		serverError(w, "Failed to get album", err)
		return
	}
	if album == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	artistName := ""
	if album.Musician != nil {
		artistName = album.Musician.Name
	}
	details := fmt.Sprintf("Title: %s, Artist: %s", album.Title, artistName)
	if err := h.auditLog.Log(r.Context(), audit.ActionView, audit.EntityAlbum, id, details); err != nil {
		serverError(w, "Failed to write audit log", err)
		return
	}

	respondJSON(w, http.StatusOK, model.NewAlbumDTO(album))
}

// CreateAlbumHandler creates a new album. ReleaseDate is nullable in the
// transfer shape but must be present.
func (h *APIHandler) CreateAlbumHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAlbumRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if req.ReleaseDate == nil {
		http.Error(w, "ReleaseDate is required.", http.StatusBadRequest)
		return
	}

	album := &model.Album{
		Title:       req.Title,
		Genre:       req.Genre,
		ReleaseDate: *req.ReleaseDate,
		MusicianID:  req.ArtistID,
	}

	if err := h.albumRepo.Create(r.Context(), album); err != nil {
		serverError(w, "Failed to create album", err)
		return
	}

	details := fmt.Sprintf("Title: %s, Genre: %s, ReleaseDate: %s, ArtistId: %d",
		album.Title, album.Genre, album.ReleaseDate.Format("2006-01-02"), album.MusicianID)
	if err := h.auditLog.Log(r.Context(), audit.ActionCreate, audit.EntityAlbum, album.ID, details); err != nil {
		serverError(w, "Failed to write audit log", err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/Album/%d", album.ID))
	respondJSON(w, http.StatusCreated, model.NewAlbumDTO(album))
}

// UpdateAlbumHandler replaces all fields of an album.
func (h *APIHandler) UpdateAlbumHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.UpdateAlbumRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if id != req.ID {
		http.Error(w, "Id in path does not match id in body", http.StatusBadRequest)
		return
	}
	if req.ReleaseDate == nil {
		http.Error(w, "ReleaseDate is required.", http.StatusBadRequest)
		return
	}

	album, err := h.albumRepo.GetByID(r.Context(), id)
	if err != nil {
		serverError(w, "Failed to get album", err)
		return
	}
	if album == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	oldDetails := fmt.Sprintf("Old values - Title: %s, ArtistId: %d, Genre: %s, ReleaseDate: %s",
		album.Title, album.MusicianID, album.Genre, album.ReleaseDate.Format("2006-01-02"))

	album.Title = req.Title
	album.MusicianID = req.ArtistID
	album.Genre = req.Genre
	album.ReleaseDate = *req.ReleaseDate

	if err := h.albumRepo.Update(r.Context(), album); err != nil {
		if err == repository.ErrConflict {
			h.resolveConflict(w, r, h.albumRepo.ExistsByID, id)
			return
		}
		serverError(w, "Failed to update album", err)
		return
	}

	details := fmt.Sprintf("%s. New values - Title: %s, ArtistId: %d, Genre: %s, ReleaseDate: %s",
		oldDetails, album.Title, album.MusicianID, album.Genre, album.ReleaseDate.Format("2006-01-02"))
	if err := h.auditLog.Log(r.Context(), audit.ActionUpdate, audit.EntityAlbum, id, details); err != nil {
		serverError(w, "Failed to write audit log", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAlbumHandler deletes an album, cascading to its tracks.
func (h *APIHandler) DeleteAlbumHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	album, err := h.albumRepo.GetByID(r.Context(), id)
	if err != nil {
		serverError(w, "Failed to get album", err)
		return
	}
	if album == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	details := fmt.Sprintf("Title: %s, Genre: %s, ArtistId: %d", album.Title, album.Genre, album.MusicianID)
	if err := h.auditLog.Log(r.Context(), audit.ActionDelete, audit.EntityAlbum, id, details); err != nil {
		serverError(w, "Failed to write audit log", err)
		return
	}

	if err := h.albumRepo.Delete(r.Context(), id); err != nil {
		serverError(w, "Failed to delete album", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
