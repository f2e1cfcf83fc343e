package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"swordgame/internal/db"
	"swordgame/internal/game"
)

// errAPI marks a response the server actually produced, as opposed to a
// transport failure. Transport failures are retryable via the offline queue.
type errAPI struct {
	Status int
	Body   string
}

func (e *errAPI) Error() string {
	return fmt.Sprintf("api status %d: %s", e.Status, e.Body)
}

// IsTransportError reports whether err never reached the server.
func IsTransportError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *errAPI
	return !errors.As(err, &apiErr)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type tradesPayload struct {
	Trades []db.Trade `json:"trades"`
}

type tradePayload struct {
	Trade db.Trade `json:"trade"`
}

type rankingsPayload struct {
	Clubs []game.ClubRanking `json:"rankings"`
}

type userRankingsPayload struct {
	Users []game.UserRanking `json:"rankings"`
}

func (c *Client) ListTrades(ctx context.Context) ([]db.Trade, error) {
	var out tradesPayload
	err := c.jsonRequest(ctx, http.MethodGet, "/api/leverage-trades", nil, &out)
	return out.Trades, err
}

func (c *Client) CreateTrade(ctx context.Context, in game.TradeInput) (db.Trade, error) {
	var out tradePayload
	err := c.jsonRequest(ctx, http.MethodPost, "/api/leverage-trades", map[string]any{
		"company":  in.Company,
		"leverage": in.Leverage,
		"type":     in.Type,
		"quantity": in.Quantity,
		"user":     in.User,
	}, &out)
	return out.Trade, err
}

func (c *Client) DeleteTrade(ctx context.Context, id string) error {
	return c.jsonRequest(ctx, http.MethodDelete, "/api/leverage-trades/"+url.PathEscape(id), nil, nil)
}

func (c *Client) SyncProgress(ctx context.Context, body map[string]any) error {
	return c.jsonRequest(ctx, http.MethodPost, "/api/game/sync", body, nil)
}

func (c *Client) ClubRankings(ctx context.Context) ([]game.ClubRanking, error) {
	var out rankingsPayload
	err := c.jsonRequest(ctx, http.MethodGet, "/api/rankings/clubs", nil, &out)
	return out.Clubs, err
}

func (c *Client) UserRankings(ctx context.Context) ([]game.UserRanking, error) {
	var out userRankingsPayload
	err := c.jsonRequest(ctx, http.MethodGet, "/api/rankings/users", nil, &out)
	return out.Users, err
}

// Do replays an arbitrary queued command.
func (c *Client) Do(ctx context.Context, method, path string, body map[string]any) error {
	return c.jsonRequest(ctx, method, path, body, nil)
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &errAPI{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
