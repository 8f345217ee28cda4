package server

import (
	"fmt"
	"net/http"

	"musicapp/audit"
	"musicapp/model"
	"musicapp/repository"
)

// GetMusiciansHandler returns all musicians with their albums.
func (h *APIHandler) GetMusiciansHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.auditLog.Log(r.Context(), audit.ActionViewList, audit.EntityMusician, 0, ""); err != nil {
		serverError(w, "Failed to write audit log", err)
		return
	}

	musicians, err := h.musicianRepo.List(r.Context())
	if err != nil {
		serverError(w, "Failed to list musicians", err)
		return
	}

	dtos := make([]model.MusicianDTO, 0, len(musicians))
	for _, m := range musicians {
		dtos = append(dtos, model.NewMusicianDTO(m))
	}

	respondJSON(w, http.StatusOK, dtos)
}

// GetMusicianHandler returns a single musician by id.
func (h *APIHandler) GetMusicianHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	musician, err := h.musicianRepo.GetByID(r.Context(), id)
	if err != nil {
		serverError(w, "Failed to get musician", err)
		return
	}
	if musician == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	details := fmt.Sprintf("Name: %s", musician.Name)
	if err := h.auditLog.Log(r.Context(), audit.ActionView, audit.EntityMusician, id, details); err != nil {
		serverError(w, "Failed to write audit log", err)
		return
	}

	respondJSON(w, http.StatusOK, model.NewMusicianDTO(musician))
}

// CreateMusicianHandler creates a new musician.
func (h *APIHandler) CreateMusicianHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CreateMusicianRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	musician := &model.Musician{
		Name:            req.Name,
		Age:             req.Age,
		Genre:           req.Genre,
		CareerStartYear: req.CareerStartYear,
	}

	if err := h.musicianRepo.Create(r.Context(), musician); err != nil {
		serverError(w, "Failed to create musician", err)
		return
	}

	details := fmt.Sprintf("Name: %s, Age: %d, Genre: %s, CareerStartYear: %d",
		musician.Name, musician.Age, musician.Genre, musician.CareerStartYear)
	if err := h.auditLog.Log(r.Context(), audit.ActionCreate, audit.EntityMusician, musician.ID, details); err != nil {
		serverError(w, "Failed to write audit log", err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/Musician/%d", musician.ID))
	respondJSON(w, http.StatusCreated, model.NewMusicianDTO(musician))
}

// UpdateMusicianHandler replaces all fields of a musician.
func (h *APIHandler) UpdateMusicianHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.UpdateMusicianRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if id != req.ID {
		http.Error(w, "Id in path does not match id in body", http.StatusBadRequest)
		return
	}

	musician, err := h.musicianRepo.GetByID(r.Context(), id)
	if err != nil {
		serverError(w, "Failed to get musician", err)
		return
	}
	if musician == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	oldDetails := fmt.Sprintf("Old values - Name: %s, Age: %d, Genre: %s, CareerStartYear: %d",
		musician.Name, musician.Age, musician.Genre, musician.CareerStartYear)

	musician.Name = req.Name
	musician.Age = req.Age
	musician.Genre = req.Genre
	musician.CareerStartYear = req.CareerStartYear

	if err := h.musicianRepo.Update(r.Context(), musician); err != nil {
		if err == repository.ErrConflict {
			h.resolveConflict(w, r, h.musicianRepo.ExistsByID, id)
			return
		}
		serverError(w, "Failed to update musician", err)
		return
	}

	details := fmt.Sprintf("%s. New values - Name: %s, Age: %d, Genre: %s, CareerStartYear: %d",
		oldDetails, musician.Name, musician.Age, musician.Genre, musician.CareerStartYear)
	if err := h.auditLog.Log(r.Context(), audit.ActionUpdate, audit.EntityMusician, id, details); err != nil {
		serverError(w, "Failed to write audit log", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteMusicianHandler deletes a musician, cascading to its albums and
// their tracks.
func (h *APIHandler) DeleteMusicianHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	musician, err := h.musicianRepo.GetByID(r.Context(), id)
	if err != nil {
		serverError(w, "Failed to get musician", err)
		return
	}
	if musician == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	details := fmt.Sprintf("Name: %s, Age: %d, Genre: %s", musician.Name, musician.Age, musician.Genre)
	if err := h.auditLog.Log(r.Context(), audit.ActionDelete, audit.EntityMusician, id, details); err != nil {
		serverError(w, "Failed to write audit log", err)
		return
	}

	if err := h.musicianRepo.Delete(r.Context(), id); err != nil {
		serverError(w, "Failed to delete musician", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
