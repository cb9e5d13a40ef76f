// internal/httpserver/server.go
//
// HTTP server wiring for the bonus dice game.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, timeouts, request log).
//   - Signed session cookie identifying each browser session.
//   - The game page: GET / renders, POST / applies a "roll" or "bonus" action.
//   - JSON API under /api for scripted clients.
//   - Loading and saving per-session state through a store.Store.
//
// Notes:
//   - The dice engine is stateless; all state lives in the store.
//   - Requests for the same session are serialized with a keyed mutex.

package httpserver

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/Aceluke24/BDR-dice-roller/assets"
	"github.com/Aceluke24/BDR-dice-roller/internal/config"
	"github.com/Aceluke24/BDR-dice-roller/internal/dice"
	"github.com/Aceluke24/BDR-dice-roller/internal/store"
)

// ErrInvalidDiceCount is returned for a dice count that is not a whole
// number between 1 and the configured maximum.
var ErrInvalidDiceCount = errors.New("invalid dice count")

// Server bundles router, session store, and dice engine.
type Server struct {
	r      *chi.Mux
	cfg    *config.Config
	store  store.Store
	engine *dice.Engine
	page   *template.Template
	locks  *keyedMutex
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.Config, st store.Store, eng *dice.Engine) (*Server, error) {
	page, err := template.New("index.html").Funcs(template.FuncMap{"face": face}).
		ParseFS(assets.Templates(), "index.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s := &Server{
		r:      chi.NewRouter(),
		cfg:    cfg,
		store:  st,
		engine: eng,
		page:   page,
		locks:  newKeyedMutex(),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time

	// --- diagnostics ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	// --- game page ---
	s.r.Group(func(r chi.Router) {
		r.Use(s.withSession)
		r.Get("/", s.handlePage)
		r.Post("/", s.handlePageAction)
	})

	// --- JSON API ---
	s.r.Route("/api", func(r chi.Router) {
		r.Use(corsFor(cfg.ClientOrigin))
		r.Use(s.withSession)
		r.Get("/state", s.handleState)
		r.Post("/roll", s.handleRoll)
		r.Post("/bonus", s.handleBonus)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s, nil
}

// Handler exposes the router (useful for tests and custom listeners).
func (s *Server) Handler() http.Handler { return s.r }

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ------------------------------ GAME ---------------------------------------

// loadGame returns the stored game for a session; an unknown session is an
// empty, not yet started game.
func (s *Server) loadGame(ctx context.Context, id string) (dice.State, error) {
	sess, err := s.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return dice.State{}, nil
	}
	if err != nil {
		return dice.State{}, err
	}
	return sess.Game, nil
}

// saveGame persists the game for a session.
func (s *Server) saveGame(ctx context.Context, id string, g dice.State) error {
	return s.store.Save(ctx, &store.Session{ID: id, Game: g, UpdatedAt: time.Now().UTC()})
}

// roll starts a new game of n dice for the session and stores it.
func (s *Server) roll(ctx context.Context, id string, n int) (dice.State, error) {
	g := s.engine.Roll(n)
	if err := s.saveGame(ctx, id, g); err != nil {
		return dice.State{}, err
	}
	log.Debug().Str("session", id).Int("dice", n).Ints("rolls", g.Rolls).Bool("canBonus", g.CanBonus).Msg("roll")
	return g, nil
}

// bonus adds a bonus die when allowed. A closed game is returned unchanged
// and not written back.
func (s *Server) bonus(ctx context.Context, id string) (dice.State, bool, error) {
	g, err := s.loadGame(ctx, id)
	if err != nil {
		return dice.State{}, false, err
	}
	if !s.engine.Bonus(&g) {
		return g, false, nil
	}
	if err := s.saveGame(ctx, id, g); err != nil {
		return dice.State{}, false, err
	}
	log.Debug().Str("session", id).Int("die", g.Rolls[len(g.Rolls)-1]).Bool("canBonus", g.CanBonus).Msg("bonus")
	return g, true, nil
}

// parseDiceCount validates a player supplied dice count.
// An empty value falls back to def.
func (s *Server) parseDiceCount(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if def < 1 {
			def = 1
		}
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > s.cfg.MaxDice {
		return 0, fmt.Errorf("%w: %q (want 1 to %d)", ErrInvalidDiceCount, raw, s.cfg.MaxDice)
	}
	return n, nil
}

// validDiceCount applies the same limits to an already numeric count.
func (s *Server) validDiceCount(n int) error {
	if n < 1 || n > s.cfg.MaxDice {
		return fmt.Errorf("%w: %d (want 1 to %d)", ErrInvalidDiceCount, n, s.cfg.MaxDice)
	}
	return nil
}
