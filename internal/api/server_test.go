package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"swordgame/internal/config"
	"swordgame/internal/db"
	"swordgame/internal/game"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := db.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return New(config.APIConfig{Addr: ":0"}, nil, game.NewService(store, nil))
}

func doJSON(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: response is not JSON: %v\n%s", method, path, err, rec.Body.String())
		}
	}
	return rec, out
}

func TestRoot(t *testing.T) {
	s := newTestServer(t)
	rec, out := doJSON(t, s, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if out["ok"] != true || out["service"] != "sword-game-backend" {
		t.Fatalf("unexpected body: %v", out)
	}
}

func TestTradeLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec, out := doJSON(t, s, http.MethodPost, "/api/leverage-trades",
		`{"company":"ACME","leverage":3,"type":"leverage","quantity":10,"user":"u1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status %d: %v", rec.Code, out)
	}
	trade, ok := out["trade"].(map[string]any)
	if !ok {
		t.Fatalf("missing trade in response: %v", out)
	}
	id, _ := trade["id"].(string)
	if id == "" {
		t.Fatalf("trade id missing: %v", trade)
	}

	rec, out = doJSON(t, s, http.MethodGet, "/api/leverage-trades", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status %d", rec.Code)
	}
	trades, ok := out["trades"].([]any)
	if !ok || len(trades) != 1 {
		t.Fatalf("expected one trade, got %v", out)
	}

	rec, out = doJSON(t, s, http.MethodDelete, "/api/leverage-trades/"+id, "")
	if rec.Code != http.StatusOK || out["ok"] != true {
		t.Fatalf("delete status %d: %v", rec.Code, out)
	}

	rec, out = doJSON(t, s, http.MethodDelete, "/api/leverage-trades/"+id, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete should 404, got %d: %v", rec.Code, out)
	}
	if out["error"] != "Not found" {
		t.Fatalf("unexpected error body: %v", out)
	}
}

func TestCreateTradeMissingFields(t *testing.T) {
	s := newTestServer(t)
	rec, out := doJSON(t, s, http.MethodPost, "/api/leverage-trades",
		`{"company":"ACME","type":"leverage","quantity":10,"user":"u1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d: %v", rec.Code, out)
	}
	if out["error"] != "Missing required fields" {
		t.Fatalf("unexpected error body: %v", out)
	}

	rec, out = doJSON(t, s, http.MethodGet, "/api/leverage-trades", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status %d", rec.Code)
	}
	if trades, _ := out["trades"].([]any); len(trades) != 0 {
		t.Fatalf("rejected trade reached the ledger: %v", out)
	}
}

func TestGameSync(t *testing.T) {
	s := newTestServer(t)

	rec, out := doJSON(t, s, http.MethodPost, "/api/game/sync", `{"currentStage":1}`)
	if rec.Code != http.StatusBadRequest || out["error"] != "userId is required" {
		t.Fatalf("status %d: %v", rec.Code, out)
	}

	rec, out = doJSON(t, s, http.MethodPost, "/api/game/sync",
		`{"userId":"u1","currentStage":2,"maxStage":5,"attempts":7,"clubName":"X"}`)
	if rec.Code != http.StatusOK || out["ok"] != true {
		t.Fatalf("sync status %d: %v", rec.Code, out)
	}
}

func TestRankingsEndpoints(t *testing.T) {
	s := newTestServer(t)

	syncs := []string{
		`{"userId":"a","clubName":"X","totalAssets":10}`,
		`{"userId":"b","clubName":"X","totalAssets":5}`,
		`{"userId":"c","totalAssets":7}`,
	}
	for _, body := range syncs {
		if rec, out := doJSON(t, s, http.MethodPost, "/api/game/sync", body); rec.Code != http.StatusOK {
			t.Fatalf("seed sync %s: %d %v", body, rec.Code, out)
		}
	}

	rec, out := doJSON(t, s, http.MethodGet, "/api/rankings/clubs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("clubs status %d", rec.Code)
	}
	clubs, _ := out["rankings"].([]any)
	if len(clubs) != 2 {
		t.Fatalf("expected 2 club rows, got %v", out)
	}
	first, _ := clubs[0].(map[string]any)
	if first["clubName"] != "X" || first["totalAssets"] != 15.0 {
		t.Fatalf("unexpected top club: %v", first)
	}
	second, _ := clubs[1].(map[string]any)
	if second["clubName"] != "NoClub" || second["totalAssets"] != 7.0 {
		t.Fatalf("unexpected second club: %v", second)
	}

	rec, out = doJSON(t, s, http.MethodGet, "/api/rankings/users", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("users status %d", rec.Code)
	}
	users, _ := out["rankings"].([]any)
	if len(users) != 3 {
		t.Fatalf("expected 3 user rows, got %v", out)
	}
	var order []string
	for _, row := range users {
		m, _ := row.(map[string]any)
		name, _ := m["username"].(string)
		order = append(order, name)
	}
	if order[0] != "a" || order[1] != "c" || order[2] != "b" {
		t.Fatalf("unexpected ranking order: %v", order)
	}
}
