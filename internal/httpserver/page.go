package httpserver

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/Aceluke24/BDR-dice-roller/internal/dice"
)

// pageView is the data rendered by index.html.
type pageView struct {
	Started   bool
	Rolls     []int
	Groups    []dice.Group
	NumDice   int
	BonusDice int
	Base      int
	HasBase   bool
	Matches   int
	CanBonus  bool
	MaxDice   int
	Error     string
}

func (s *Server) view(g dice.State) pageView {
	v := pageView{
		Started:  g.Started(),
		Rolls:    g.Rolls,
		Groups:   dice.GroupForDisplay(g.Rolls),
		NumDice:  g.NumDice,
		Base:     g.Base,
		HasBase:  g.Resolved(),
		Matches:  dice.MatchCount(g.Rolls, g.Base),
		CanBonus: g.CanBonus,
		MaxDice:  s.cfg.MaxDice,
	}
	if extra := len(g.Rolls) - g.NumDice; extra > 0 {
		v.BonusDice = extra
	}
	return v
}

// handlePage renders the current session's game.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	g, err := s.loadGame(r.Context(), sessionID(r.Context()))
	if err != nil {
		log.Error().Err(err).Msg("load game")
		http.Error(w, "could not load game", http.StatusInternalServerError)
		return
	}
	s.render(w, http.StatusOK, s.view(g))
}

// handlePageAction applies the form's action and re-renders the page.
//
//   - action=roll  starts a new game with num_dice dice (default: last count, then 1).
//   - action=bonus adds one bonus die; ignored when the game is closed.
//
// Anything else is a 400 with the current game left untouched.
func (s *Server) handlePageAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := sessionID(ctx)
	unlock := s.locks.Lock(id)
	defer unlock()

	g, err := s.loadGame(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("load game")
		http.Error(w, "could not load game", http.StatusInternalServerError)
		return
	}
	if err := r.ParseForm(); err != nil {
		v := s.view(g)
		v.Error = "Could not read the form."
		s.render(w, http.StatusBadRequest, v)
		return
	}

	switch r.PostForm.Get("action") {
	case "roll":
		n, err := s.parseDiceCount(r.PostForm.Get("num_dice"), g.NumDice)
		if err != nil {
			v := s.view(g)
			v.Error = "Enter a number of dice from 1 to " + strconv.Itoa(s.cfg.MaxDice) + "."
			s.render(w, http.StatusBadRequest, v)
			return
		}
		g, err = s.roll(ctx, id, n)
		if err != nil {
			s.storeFailed(w, err)
			return
		}
	case "bonus":
		g, _, err = s.bonus(ctx, id)
		if err != nil {
			s.storeFailed(w, err)
			return
		}
	default:
		v := s.view(g)
		v.Error = "Unknown action."
		s.render(w, http.StatusBadRequest, v)
		return
	}
	s.render(w, http.StatusOK, s.view(g))
}

func (s *Server) storeFailed(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("save game")
	http.Error(w, "could not save game", http.StatusInternalServerError)
}

// render executes the page into a buffer first so template errors become a 500.
func (s *Server) render(w http.ResponseWriter, status int, v pageView) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, v); err != nil {
		log.Error().Err(err).Msg("render page")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// face maps a die value to its Unicode glyph.
func face(v int) string {
	if v < 1 || v > dice.Sides {
		return "?"
	}
	return string(rune('⚀' + v - 1))
}
