package engine

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tictactoe-gateway/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = auth.Identity{UserID: "u-1", Username: "alice"}

func TestCreateGameForwardsIdentityPayload(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"gameId":"g-1"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, time.Second)
	res, err := c.CreateGame(context.Background(), alice, "vs_ai")
	require.NoError(t, err)

	assert.Equal(t, "/api/game/create", gotPath)
	assert.Equal(t, map[string]any{
		"created_by":          "u-1",
		"created_by_username": "alice",
		"game_mode":           "vs_ai",
	}, gotBody)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.JSONEq(t, `{"gameId":"g-1"}`, string(res.Body))
}

func TestJoinAndMovePayloads(t *testing.T) {
	type call struct {
		path string
		body map[string]any
	}
	var calls []call

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		calls = append(calls, call{r.URL.Path, body})
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := New(ts.URL, time.Second)

	_, err := c.JoinGame(context.Background(), alice, "g-7")
	require.NoError(t, err)
	_, err = c.MakeMove(context.Background(), alice, "g-7", 4)
	require.NoError(t, err)

	require.Len(t, calls, 2)
	assert.Equal(t, "/api/game/join/g-7", calls[0].path)
	assert.Equal(t, map[string]any{
		"player_id":       "u-1",
		"player_username": "alice",
	}, calls[0].body)
	assert.Equal(t, "/api/game/move/g-7", calls[1].path)
	assert.Equal(t, map[string]any{
		"player_id": "u-1",
		"position":  float64(4),
	}, calls[1].body)
}

func TestReadsCarryNoIdentityPayload(t *testing.T) {
	var methods []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		b, _ := json.Marshal(r.URL.Path)
		w.Write(b)
	}))
	defer ts.Close()

	c := New(ts.URL, time.Second)

	res, err := c.GetState(context.Background(), "g-7")
	require.NoError(t, err)
	assert.JSONEq(t, `"/api/game/state/g-7"`, string(res.Body))

	res, err = c.ListGames(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `"/api/game/list"`, string(res.Body))

	assert.Equal(t, []string{http.MethodGet, http.MethodGet}, methods)
}

func TestStructuredErrorsPassThroughVerbatim(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail":"Game is full"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, time.Second)
	res, err := c.JoinGame(context.Background(), alice, "g-1")

	// A structured engine response is not a transport failure.
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, res.Status)
	assert.Equal(t, `{"detail":"Game is full"}`, string(res.Body))
	assert.Equal(t, "application/json", res.ContentType)
}

func TestUnreachableEngine(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // nobody listening anymore

	c := New(ts.URL, time.Second)
	_, err := c.ListGames(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable), "transport failures map to ErrUnavailable, got %v", err)
}

func TestTimeoutMapsToUnavailable(t *testing.T) {
	var served atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served.Add(1)
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	c := New(ts.URL, 20*time.Millisecond)
	_, err := c.ListGames(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))

	// Single attempt, no retries.
	assert.Equal(t, int32(1), served.Load())
}

func TestClientCancellationAbortsForward(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	c := New(ts.URL, time.Second)
	_, err := c.GetState(ctx, "g-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}
