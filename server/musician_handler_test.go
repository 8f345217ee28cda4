package server

import (
	"net/http"
	"testing"

	"musicapp/audit"
	"musicapp/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMusician(e *testEnv) *model.Musician {
	musician := &model.Musician{Name: "Miles Davis", Age: 65, Genre: "Jazz", CareerStartYear: 1944}
	e.musicians.nextID++
	musician.ID = e.musicians.nextID
	e.musicians.musicians[musician.ID] = musician
	return musician
}

func TestGetMusiciansAuditsViewList(t *testing.T) {
	e := newTestEnv()
	seedMusician(e)

	rec := e.do(t, http.MethodGet, "/api/Musician", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var dtos []model.MusicianDTO
	decodeResponse(t, rec, &dtos)
	require.Len(t, dtos, 1)
	assert.Equal(t, "Miles Davis", dtos[0].Name)

	require.Len(t, e.logs.entries, 1)
	entry := e.logs.entries[0]
	assert.Equal(t, audit.ActionViewList, entry.ActionType)
	assert.Equal(t, audit.EntityMusician, entry.EntityType)
	assert.Equal(t, int64(0), entry.EntityID)
}

func TestGetMusicianNotFound(t *testing.T) {
	e := newTestEnv()

	rec := e.do(t, http.MethodGet, "/api/Musician/9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateMusician(t *testing.T) {
	e := newTestEnv()

	rec := e.do(t, http.MethodPost, "/api/Musician", model.CreateMusicianRequest{
		Name:            "John Coltrane",
		Age:             40,
		Genre:           "Jazz",
		CareerStartYear: 1945,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/Musician/1", rec.Header().Get("Location"))

	var dto model.MusicianDTO
	decodeResponse(t, rec, &dto)
	assert.Equal(t, int64(1), dto.ID)
	assert.NotNil(t, dto.Albums)

	entry := e.logs.lastEntry(t)
	assert.Equal(t, audit.ActionCreate, entry.ActionType)
	assert.Contains(t, entry.Details, "John Coltrane")
}

func TestCreateMusicianMissingName(t *testing.T) {
	e := newTestEnv()

	rec := e.do(t, http.MethodPost, "/api/Musician", model.CreateMusicianRequest{Genre: "Jazz"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, e.musicians.musicians)
}

func TestUpdateMusician(t *testing.T) {
	e := newTestEnv()
	musician := seedMusician(e)

	rec := e.do(t, http.MethodPut, "/api/Musician/1", model.UpdateMusicianRequest{
		ID:              1,
		Name:            "Miles Dewey Davis III",
		Age:             65,
		Genre:           "Jazz Fusion",
		CareerStartYear: 1944,
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	stored := e.musicians.musicians[musician.ID]
	assert.Equal(t, "Miles Dewey Davis III", stored.Name)
	assert.Equal(t, "Jazz Fusion", stored.Genre)

	entry := e.logs.lastEntry(t)
	assert.Equal(t, audit.ActionUpdate, entry.ActionType)
	assert.Contains(t, entry.Details, "Old values")
	assert.Contains(t, entry.Details, "Miles Davis")
	assert.Contains(t, entry.Details, "New values")
	assert.Contains(t, entry.Details, "Miles Dewey Davis III")
}

func TestUpdateMusicianIDMismatch(t *testing.T) {
	e := newTestEnv()
	seedMusician(e)

	rec := e.do(t, http.MethodPut, "/api/Musician/1", model.UpdateMusicianRequest{
		ID:    2,
		Name:  "Wrong",
		Genre: "Jazz",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, e.logs.entries)
	assert.Equal(t, "Miles Davis", e.musicians.musicians[1].Name)
}

func TestUpdateMusicianNotFound(t *testing.T) {
	e := newTestEnv()

	rec := e.do(t, http.MethodPut, "/api/Musician/3", model.UpdateMusicianRequest{
		ID:    3,
		Name:  "Ghost",
		Genre: "None",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMusician(t *testing.T) {
	e := newTestEnv()
	musician := seedMusician(e)

	rec := e.do(t, http.MethodDelete, "/api/Musician/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotContains(t, e.musicians.musicians, musician.ID)

	entry := e.logs.lastEntry(t)
	assert.Equal(t, audit.ActionDelete, entry.ActionType)
	assert.Contains(t, entry.Details, "Miles Davis")

	rec = e.do(t, http.MethodDelete, "/api/Musician/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
