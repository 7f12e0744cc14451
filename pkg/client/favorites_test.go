package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// favoritesTestServer keeps a real favorite set server-side so the local
// mirror can be checked against it.
type favoritesTestServer struct {
	mu   sync.Mutex
	ids  map[uint64]bool
	fail bool // when set, mutations return 500
}

func (s *favoritesTestServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/favorites", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		items := make([]map[string]any, 0, len(s.ids))
		for id := range s.ids {
			items = append(items, map[string]any{"id": id, "name": fmt.Sprintf("hotel %d", id)})
		}
		json.NewEncoder(w).Encode(map[string]any{"items": items})
	})
	mux.HandleFunc("POST /api/favorites", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.fail {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"db error"}`))
			return
		}
		var body struct {
			HotelID uint64 `json:"hotelId"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if s.ids[body.HotelID] {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"hotel already favorited"}`))
			return
		}
		s.ids[body.HotelID] = true
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": body.HotelID})
	})
	mux.HandleFunc("DELETE /api/favorites/", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.fail {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"db error"}`))
			return
		}
		id, _ := strconv.ParseUint(strings.TrimPrefix(r.URL.Path, "/api/favorites/"), 10, 64)
		if !s.ids[id] {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"favorite not found"}`))
			return
		}
		delete(s.ids, id)
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

// signedInClient returns a client holding a token, as after a login.
func signedInClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c := New(baseURL, nil)
	require.NoError(t, c.Tokens.Save("t1"))
	return c
}

func TestFavorites_ToggleTwiceRestoresMembership(t *testing.T) {
	backend := &favoritesTestServer{ids: map[uint64]bool{7: true}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	fav := NewFavorites(signedInClient(t, srv.URL))
	_, err := fav.Load(context.Background())
	require.NoError(t, err)
	require.True(t, fav.Contains(7))
	require.False(t, fav.Contains(3))

	// absent -> present -> absent
	member, err := fav.Toggle(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, member)
	assert.True(t, fav.Contains(3))

	member, err = fav.Toggle(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, member)
	assert.False(t, fav.Contains(3))

	// present -> absent -> present
	_, err = fav.Toggle(context.Background(), 7)
	require.NoError(t, err)
	_, err = fav.Toggle(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, fav.Contains(7))
	assert.True(t, backend.ids[7], "server set must agree")
}

func TestFavorites_FailedToggleLeavesSetUntouched(t *testing.T) {
	backend := &favoritesTestServer{ids: map[uint64]bool{7: true}}
	srv := httptest.NewServer(backend.handler())
	defer srv.Close()

	fav := NewFavorites(signedInClient(t, srv.URL))
	_, err := fav.Load(context.Background())
	require.NoError(t, err)

	backend.fail = true

	_, err = fav.Toggle(context.Background(), 3)
	require.Error(t, err)
	assert.False(t, fav.Contains(3), "failed add must not patch the set")

	_, err = fav.Toggle(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, fav.Contains(7), "failed remove must not patch the set")
}

func TestFavorites_ToggleWithoutSessionSkipsNetwork(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	// no login, empty token store
	fav := NewFavorites(New(srv.URL, nil))

	member, err := fav.Toggle(context.Background(), 3)
	require.ErrorIs(t, err, ErrNoSession)
	assert.False(t, member)
	assert.False(t, fav.Contains(3))
	assert.Equal(t, int64(0), hits.Load(), "anonymous toggle must not reach the server")
}
