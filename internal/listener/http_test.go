package listener

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/halcyon-games/progression/internal/game"
	"github.com/halcyon-games/progression/internal/progression"
)

// stubEngine implements Engine with canned results.
type stubEngine struct {
	combatResp *progression.CombatResponse
	combatErr  error
	equipErr   error

	lastPlayer string
}

func (s *stubEngine) ResolveCombat(ctx context.Context, playerID string, req *game.CombatRequest) (*progression.CombatResponse, error) {
	s.lastPlayer = playerID
	return s.combatResp, s.combatErr
}

func (s *stubEngine) Login(ctx context.Context, playerID string) (*progression.LoginResponse, error) {
	s.lastPlayer = playerID
	return &progression.LoginResponse{Level: 1, Equipment: map[string]string{}}, nil
}

func (s *stubEngine) ReturnToBase(ctx context.Context, playerID string) (*progression.ReturnToBaseResponse, error) {
	s.lastPlayer = playerID
	return &progression.ReturnToBaseResponse{MaxHP: 120}, nil
}

func (s *stubEngine) EquipItem(ctx context.Context, playerID string, req *progression.EquipRequest) (*progression.EquipResponse, error) {
	s.lastPlayer = playerID
	if s.equipErr != nil {
		return nil, s.equipErr
	}
	return &progression.EquipResponse{DataVersion: 2}, nil
}

func newTestMux(engine Engine) *http.ServeMux {
	l := NewHTTPListener(0, engine)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/combat", l.handleCombat)
	mux.HandleFunc("POST /v1/login", l.handleLogin)
	mux.HandleFunc("POST /v1/return-to-base", l.handleReturnToBase)
	mux.HandleFunc("POST /v1/equip", l.handleEquip)
	return mux
}

func doRequest(t *testing.T, mux *http.ServeMux, path, player, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if player != "" {
		req.Header.Set(PlayerHeader, player)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHTTPListener_Combat(t *testing.T) {
	engine := &stubEngine{
		combatResp: &progression.CombatResponse{Kills: 3, Experience: 30, ItemsGranted: []string{}},
	}
	mux := newTestMux(engine)

	rec := doRequest(t, mux, "/v1/combat", "p-1", `{"planet":"Vesta","area":"Crater Rim","enemyGroup":"vermin","playerHP":63}`)

	testutil.AssertEqual(t, "status", rec.Code, http.StatusOK)
	testutil.AssertEqual(t, "player", engine.lastPlayer, "p-1")

	var resp progression.CombatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	testutil.AssertEqual(t, "kills", resp.Kills, 3)
}

func TestHTTPListener_MissingPlayer(t *testing.T) {
	mux := newTestMux(&stubEngine{})

	rec := doRequest(t, mux, "/v1/login", "", `{}`)
	testutil.AssertEqual(t, "status", rec.Code, http.StatusUnauthorized)
}

func TestHTTPListener_MalformedBody(t *testing.T) {
	mux := newTestMux(&stubEngine{})

	rec := doRequest(t, mux, "/v1/combat", "p-1", `{not json`)
	testutil.AssertEqual(t, "status", rec.Code, http.StatusBadRequest)
}

func TestHTTPListener_InfrastructureError(t *testing.T) {
	engine := &stubEngine{combatErr: errors.New("record service unavailable")}
	mux := newTestMux(engine)

	rec := doRequest(t, mux, "/v1/combat", "p-1", `{"planet":"Vesta"}`)
	testutil.AssertEqual(t, "status", rec.Code, http.StatusBadGateway)

	// The upstream detail must not leak to the caller.
	if strings.Contains(rec.Body.String(), "record service") {
		t.Error("expected a generic error body")
	}
}

func TestHTTPListener_EmptyEquipRequest(t *testing.T) {
	engine := &stubEngine{equipErr: progression.ErrNoAssignments}
	mux := newTestMux(engine)

	rec := doRequest(t, mux, "/v1/equip", "p-1", `{}`)
	testutil.AssertEqual(t, "status", rec.Code, http.StatusBadRequest)
}

func TestHTTPListener_ReturnToBase(t *testing.T) {
	mux := newTestMux(&stubEngine{})

	rec := doRequest(t, mux, "/v1/return-to-base", "p-1", `{}`)
	testutil.AssertEqual(t, "status", rec.Code, http.StatusOK)

	var resp progression.ReturnToBaseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	testutil.AssertEqual(t, "max hp", resp.MaxHP, 120)
}
