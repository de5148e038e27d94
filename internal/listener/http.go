// Package listener exposes the progression engine's four operations
// over a thin HTTP/JSON transport. It does no game logic of its own;
// authentication is handled upstream and the player identity arrives
// in a header.
package listener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"syscall"
	"time"

	"github.com/halcyon-games/progression/internal/game"
	"github.com/halcyon-games/progression/internal/progression"
)

// PlayerHeader carries the authenticated player identity.
const PlayerHeader = "X-Player-Id"

// Engine is the progression surface the listener exposes.
type Engine interface {
	ResolveCombat(ctx context.Context, playerID string, req *game.CombatRequest) (*progression.CombatResponse, error)
	Login(ctx context.Context, playerID string) (*progression.LoginResponse, error)
	ReturnToBase(ctx context.Context, playerID string) (*progression.ReturnToBaseResponse, error)
	EquipItem(ctx context.Context, playerID string, req *progression.EquipRequest) (*progression.EquipResponse, error)
}

// HTTPListener is a go-service worker serving the progression API.
type HTTPListener struct {
	port   uint16
	engine Engine
}

func NewHTTPListener(port uint16, engine Engine) *HTTPListener {
	return &HTTPListener{
		port:   port,
		engine: engine,
	}
}

func (l *HTTPListener) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/combat", l.handleCombat)
	mux.HandleFunc("POST /v1/login", l.handleLogin)
	mux.HandleFunc("POST /v1/return-to-base", l.handleReturnToBase)
	mux.HandleFunc("POST /v1/equip", l.handleEquip)

	svr := &http.Server{
		Addr:    fmt.Sprintf(":%d", l.port),
		Handler: mux,
	}

	// done signals that Start is returning (either success or failure)
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := svr.Shutdown(shutdownCtx); err != nil {
				slog.Warn("shutting down http listener", "error", err)
			}
		case <-done:
			// Start returned (likely with error) - nothing to stop
		}
	}()

	slog.InfoContext(ctx, "http listener starting", "port", l.port)

	err := svr.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use (another server running?)", l.port)
		}
		return fmt.Errorf("serving http on port %d: %w", l.port, err)
	}

	return nil
}

func (l *HTTPListener) handleCombat(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerID(w, r)
	if !ok {
		return
	}

	var req game.CombatRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := l.engine.ResolveCombat(r.Context(), playerID, &req)
	respond(w, r, resp, err)
}

func (l *HTTPListener) handleLogin(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerID(w, r)
	if !ok {
		return
	}

	resp, err := l.engine.Login(r.Context(), playerID)
	respond(w, r, resp, err)
}

func (l *HTTPListener) handleReturnToBase(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerID(w, r)
	if !ok {
		return
	}

	resp, err := l.engine.ReturnToBase(r.Context(), playerID)
	respond(w, r, resp, err)
}

func (l *HTTPListener) handleEquip(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerID(w, r)
	if !ok {
		return
	}

	var req progression.EquipRequest
	if !decode(w, r, &req) {
		return
	}

	resp, err := l.engine.EquipItem(r.Context(), playerID, &req)
	respond(w, r, resp, err)
}

func playerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(PlayerHeader)
	if id == "" {
		http.Error(w, "missing player identity", http.StatusUnauthorized)
		return "", false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, into any) bool {
	err := json.NewDecoder(r.Body).Decode(into)
	if err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return false
	}
	return true
}

func respond(w http.ResponseWriter, r *http.Request, body any, err error) {
	if err != nil {
		if errors.Is(err, progression.ErrNoAssignments) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// Infrastructure failure. Details stay in the log; the caller
		// gets a generic error.
		slog.ErrorContext(r.Context(), "handling request", "path", r.URL.Path, "error", err)
		http.Error(w, "upstream failure", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.WarnContext(r.Context(), "encoding response", "path", r.URL.Path, "error", err)
	}
}
