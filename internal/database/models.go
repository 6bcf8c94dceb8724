package database

import (
	"strings"
	"time"
)

// GameResult is one finished game. Winner is empty when the game ended in a
// draw (everyone eliminated at once). Players holds the comma-joined seat
// names in turn order.
type GameResult struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Winner    string `json:"winner"`
	Players   string `json:"players"`
}

// NewGameResult builds a result row stamped with the current time.
func NewGameResult(id, winner string, players []string) GameResult {
	return GameResult{
		ID:        id,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Winner:    winner,
		Players:   strings.Join(players, ","),
	}
}

// PlayerList splits the stored players column back into names.
func (r GameResult) PlayerList() []string {
	if r.Players == "" {
		return nil
	}
	return strings.Split(r.Players, ",")
}
