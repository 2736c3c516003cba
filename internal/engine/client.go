package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tictactoe-gateway/internal/auth"
)

// Response is whatever the engine answered, passed through to the client
// verbatim: the gateway is a transparent conduit for domain responses and
// domain errors it does not understand.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Client forwards game actions to the external engine. One attempt per
// call, bounded by the configured timeout; no retries.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

type createGameRequest struct {
	CreatedBy         string `json:"created_by"`
	CreatedByUsername string `json:"created_by_username"`
	GameMode          string `json:"game_mode"`
}

type joinGameRequest struct {
	PlayerID       string `json:"player_id"`
	PlayerUsername string `json:"player_username"`
}

type moveRequest struct {
	PlayerID string `json:"player_id"`
	Position int    `json:"position"`
}

// CreateGame forwards a create request with the creator's identity
// attached. gameMode is forwarded as-is; rejecting unknown modes is the
// engine's job, not the gateway's.
func (c *Client) CreateGame(ctx context.Context, identity auth.Identity, gameMode string) (*Response, error) {
	return c.post(ctx, "/api/game/create", createGameRequest{
		CreatedBy:         identity.UserID,
		CreatedByUsername: identity.Username,
		GameMode:          gameMode,
	})
}

func (c *Client) JoinGame(ctx context.Context, identity auth.Identity, gameID string) (*Response, error) {
	return c.post(ctx, "/api/game/join/"+url.PathEscape(gameID), joinGameRequest{
		PlayerID:       identity.UserID,
		PlayerUsername: identity.Username,
	})
}

func (c *Client) MakeMove(ctx context.Context, identity auth.Identity, gameID string, position int) (*Response, error) {
	return c.post(ctx, "/api/game/move/"+url.PathEscape(gameID), moveRequest{
		PlayerID: identity.UserID,
		Position: position,
	})
}

// GetState is a read pass-through; no identity payload is sent.
func (c *Client) GetState(ctx context.Context, gameID string) (*Response, error) {
	return c.get(ctx, "/api/game/state/"+url.PathEscape(gameID))
}

func (c *Client) ListGames(ctx context.Context) (*Response, error) {
	return c.get(ctx, "/api/game/list")
}

func (c *Client) post(ctx context.Context, path string, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("engine: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("engine: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("engine: build request: %w", err)
	}

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}

	return &Response{
		Status:      resp.StatusCode,
		ContentType: contentType,
		Body:        body,
	}, nil
}
