package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"musicapp/audit"
	"musicapp/model"
	"musicapp/repository"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

// In-memory fakes for the repository interfaces. Each fake stores copies so
// that only a successful Update mutates visible state, mirroring a real
// load-mutate-persist round trip.

type memMusicianRepo struct {
	musicians map[int64]*model.Musician
	nextID    int64
	updateErr error
}

func newMemMusicianRepo() *memMusicianRepo {
	return &memMusicianRepo{musicians: make(map[int64]*model.Musician)}
}

func (r *memMusicianRepo) List(ctx context.Context) ([]*model.Musician, error) {
	out := make([]*model.Musician, 0, len(r.musicians))
	for _, m := range r.musicians {
		c := *m
		out = append(out, &c)
	}
	return out, nil
}

func (r *memMusicianRepo) GetByID(ctx context.Context, id int64) (*model.Musician, error) {
	m, ok := r.musicians[id]
	if !ok {
		return nil, nil
	}
	c := *m
	return &c, nil
}

func (r *memMusicianRepo) Create(ctx context.Context, m *model.Musician) error {
	r.nextID++
	m.ID = r.nextID
	c := *m
	r.musicians[m.ID] = &c
	return nil
}

func (r *memMusicianRepo) Update(ctx context.Context, m *model.Musician) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.musicians[m.ID]; !ok {
		return repository.ErrConflict
	}
	c := *m
	r.musicians[m.ID] = &c
	return nil
}

func (r *memMusicianRepo) Delete(ctx context.Context, id int64) error {
	delete(r.musicians, id)
	return nil
}

func (r *memMusicianRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := r.musicians[id]
	return ok, nil
}

type memAlbumRepo struct {
	albums    map[int64]*model.Album
	nextID    int64
	updateErr error
}

func newMemAlbumRepo() *memAlbumRepo {
	return &memAlbumRepo{albums: make(map[int64]*model.Album)}
}

func (r *memAlbumRepo) List(ctx context.Context) ([]*model.Album, error) {
	out := make([]*model.Album, 0, len(r.albums))
	for _, a := range r.albums {
		c := *a
		out = append(out, &c)
	}
	return out, nil
}

func (r *memAlbumRepo) GetByID(ctx context.Context, id int64) (*model.Album, error) {
	a, ok := r.albums[id]
	if !ok {
		return nil, nil
	}
	c := *a
	return &c, nil
}

func (r *memAlbumRepo) Create(ctx context.Context, a *model.Album) error {
	r.nextID++
	a.ID = r.nextID
	c := *a
	r.albums[a.ID] = &c
	return nil
}

func (r *memAlbumRepo) Update(ctx context.Context, a *model.Album) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.albums[a.ID]; !ok {
		return repository.ErrConflict
	}
	c := *a
	r.albums[a.ID] = &c
	return nil
}

func (r *memAlbumRepo) Delete(ctx context.Context, id int64) error {
	delete(r.albums, id)
	return nil
}

func (r *memAlbumRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := r.albums[id]
	return ok, nil
}

type memTrackRepo struct {
	tracks map[int64]*model.Track
	nextID int64

	updateErr error
	// deleteOnUpdate simulates the row vanishing between load and save.
	deleteOnUpdate bool
}

func newMemTrackRepo() *memTrackRepo {
	return &memTrackRepo{tracks: make(map[int64]*model.Track)}
}

func (r *memTrackRepo) List(ctx context.Context, albumID *int64) ([]*model.Track, error) {
	out := make([]*model.Track, 0, len(r.tracks))
	for _, t := range r.tracks {
		if albumID != nil && t.AlbumID != *albumID {
			continue
		}
		c := *t
		out = append(out, &c)
	}
	return out, nil
}

func (r *memTrackRepo) GetByID(ctx context.Context, id int64) (*model.Track, error) {
	t, ok := r.tracks[id]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (r *memTrackRepo) Create(ctx context.Context, t *model.Track) error {
	r.nextID++
	t.ID = r.nextID
	c := *t
	r.tracks[t.ID] = &c
	return nil
}

func (r *memTrackRepo) Update(ctx context.Context, t *model.Track) error {
	if r.deleteOnUpdate {
		delete(r.tracks, t.ID)
		return repository.ErrConflict
	}
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.tracks[t.ID]; !ok {
		return repository.ErrConflict
	}
	c := *t
	r.tracks[t.ID] = &c
	return nil
}

func (r *memTrackRepo) Delete(ctx context.Context, id int64) error {
	delete(r.tracks, id)
	return nil
}

func (r *memTrackRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	_, ok := r.tracks[id]
	return ok, nil
}

type memActionLogRepo struct {
	entries   []*model.UserActionLog
	createErr error
}

func (r *memActionLogRepo) Create(ctx context.Context, entry *model.UserActionLog) error {
	if r.createErr != nil {
		return r.createErr
	}
	entry.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memActionLogRepo) List(ctx context.Context, limit int) ([]*model.UserActionLog, error) {
	out := make([]*model.UserActionLog, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

// lastEntry returns the most recent audit entry, failing the test when the
// log is empty.
func (r *memActionLogRepo) lastEntry(t *testing.T) *model.UserActionLog {
	t.Helper()
	require.NotEmpty(t, r.entries)
	return r.entries[len(r.entries)-1]
}

// testEnv bundles the handler under test with its backing fakes.
type testEnv struct {
	router    *mux.Router
	musicians *memMusicianRepo
	albums    *memAlbumRepo
	tracks    *memTrackRepo
	logs      *memActionLogRepo
}

func newTestEnv() *testEnv {
	musicians := newMemMusicianRepo()
	albums := newMemAlbumRepo()
	tracks := newMemTrackRepo()
	logs := &memActionLogRepo{}

	handler := NewAPIHandler(musicians, albums, tracks, logs, audit.NewLogger(logs))
	router := mux.NewRouter()
	RegisterRoutes(router, handler)

	return &testEnv{
		router:    router,
		musicians: musicians,
		albums:    albums,
		tracks:    tracks,
		logs:      logs,
	}
}

// do performs a request against the router and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}
