package game

import "dmh-game/internal/shared"

// HandCardView is one card slot as a particular viewer sees it. Card is nil
// when the slot belongs to someone else and is still facedown.
type HandCardView struct {
	Card    *shared.Card `json:"card,omitempty"`
	Visible bool         `json:"visible"`
}

// StateView is a snapshot of the game redacted for one viewer.
type StateView struct {
	PlayerOrder      []string                  `json:"playerOrder"`
	ActivePlayer     int                       `json:"activePlayer"`
	TurnPhase        Phase                     `json:"turnPhase"`
	TurnPlayers      []string                  `json:"turnPlayers"`
	PlayersToReplace []string                  `json:"playersToReplace"`
	ReplaceHearts    []string                  `json:"replaceHearts"`
	LossBlockable    bool                      `json:"lossBlockable"`
	Hands            map[string][]HandCardView `json:"hands"`
	Discard          []shared.Card             `json:"discard"`
	DeckSize         int                       `json:"deckSize"`
}

// GetState snapshots the game as the given viewer is allowed to see it:
// everyone's queue and discard state, their own cards, and only the faceup
// cards of everyone else. The snapshot shares nothing with the live game.
func (g *Game) GetState(viewer string) StateView {
	g.mu.RLock()
	defer g.mu.RUnlock()

	view := StateView{
		PlayerOrder:      append([]string{}, g.playerOrder...),
		ActivePlayer:     g.activePlayer,
		TurnPhase:        g.turnPhase,
		TurnPlayers:      append([]string{}, g.turnPlayers...),
		PlayersToReplace: append([]string{}, g.playersToReplace...),
		ReplaceHearts:    append([]string{}, g.replaceHearts...),
		LossBlockable:    g.lossBlockable,
		Hands:            make(map[string][]HandCardView, len(g.hands)),
		Discard:          append([]shared.Card{}, g.deck.Discard...),
		DeckSize:         g.deck.Size(),
	}
	for name, hand := range g.hands {
		cards := make([]HandCardView, len(hand))
		for i, hc := range hand {
			cards[i].Visible = hc.Visible
			if hc.Visible || name == viewer {
				c := hc.Card
				cards[i].Card = &c
			}
		}
		view.Hands[name] = cards
	}
	return view
}

// Phase returns the current turn phase.
func (g *Game) Phase() Phase {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.turnPhase
}

// Winner returns the winner's name once the game is over. The second result
// is false while the game is running or when it ended in a draw.
func (g *Game) Winner() (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.turnPhase != PhaseOver || len(g.turnPlayers) != 1 {
		return "", false
	}
	return g.turnPlayers[0], true
}

// Players returns the player names in turn order.
func (g *Game) Players() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]string{}, g.playerOrder...)
}
