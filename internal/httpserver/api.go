package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Aceluke24/BDR-dice-roller/internal/dice"
)

// stateRes is the JSON view of a game.
type stateRes struct {
	Rolls    []int        `json:"rolls"`
	NumDice  int          `json:"numDice"`
	Base     *int         `json:"base"` // null while every die is wild
	CanBonus bool         `json:"canBonus"`
	Matches  int          `json:"matches"`
	Groups   []dice.Group `json:"groups"`
}

func toStateRes(g dice.State) stateRes {
	res := stateRes{
		Rolls:    g.Rolls,
		NumDice:  g.NumDice,
		CanBonus: g.CanBonus,
		Matches:  dice.MatchCount(g.Rolls, g.Base),
		Groups:   dice.GroupForDisplay(g.Rolls),
	}
	if res.Rolls == nil {
		res.Rolls = []int{}
	}
	if res.Groups == nil {
		res.Groups = []dice.Group{}
	}
	if g.Resolved() {
		b := g.Base
		res.Base = &b
	}
	return res
}

// handleState returns the session's current game.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	g, err := s.loadGame(r.Context(), sessionID(r.Context()))
	if err != nil {
		log.Error().Err(err).Msg("load game")
		writeJSONError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	writeJSON(w, http.StatusOK, toStateRes(g))
}

// rollReq is the payload for POST /api/roll.
type rollReq struct {
	NumDice int `json:"numDice"`
}

// handleRoll starts a new game.
func (s *Server) handleRoll(w http.ResponseWriter, r *http.Request) {
	var req rollReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSONError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if err := s.validDiceCount(req.NumDice); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_dice_count")
		return
	}

	id := sessionID(r.Context())
	unlock := s.locks.Lock(id)
	defer unlock()

	g, err := s.roll(r.Context(), id, req.NumDice)
	if err != nil {
		log.Error().Err(err).Msg("save game")
		writeJSONError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, toStateRes(g))
}

// bonusRes reports whether a die was added alongside the resulting game.
type bonusRes struct {
	Added bool `json:"added"`
	stateRes
}

// handleBonus adds one bonus die. A closed game answers 200 with added=false.
func (s *Server) handleBonus(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r.Context())
	unlock := s.locks.Lock(id)
	defer unlock()

	g, added, err := s.bonus(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("bonus")
		writeJSONError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, bonusRes{Added: added, stateRes: toStateRes(g)})
}
