package game

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"dmh-game/internal/shared"

	"github.com/google/uuid"
)

// Phase identifies where in the turn lifecycle the game is.
type Phase string

const (
	PhaseNone    Phase = ""        // game not started yet
	PhaseAction  Phase = "action"  // active player chooses an action
	PhaseHands   Phase = "hands"   // all-hands-on-deck reveals in progress
	PhaseToss    Phase = "toss"    // toss discards in progress
	PhaseLose    Phase = "lose"    // life losses being resolved
	PhaseReplace Phase = "replace" // post-challenge replacements in progress
	PhaseOver    Phase = "over"    // zero or one player left
)

const handSize = 4

var (
	ErrAlreadyStarted = errors.New("game already started")
	ErrDeckTooSmall   = errors.New("not enough cards left in deck")
	ErrDuplicateName  = errors.New("player already exists")
	ErrEmptyName      = errors.New("player name is blank")
	ErrNotInGame      = errors.New("player not in game")
)

// Game is one authoritative game session. All mutating calls serialize on
// the internal lock; GetState only reads and may run concurrently.
type Game struct {
	ID string

	mu  sync.RWMutex
	rng *rand.Rand

	deck  *shared.Deck
	hands map[string]shared.Hand

	// dead players keep their playerOrder slot so activePlayer keeps stable
	// positional meaning (you can never block your own challenge, and your
	// own challenges only happen on your own turn)
	playerOrder  []string
	activePlayer int

	turnPhase        Phase
	turnPlayers      []string
	playersToReplace []string
	replaceHearts    []string
	lossBlockable    bool
}

// New creates a game with the given rng, or a time-seeded one when rng is
// nil. Tests inject a fixed seed for reproducible shuffles.
func New(rng *rand.Rand) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Game{
		ID:           uuid.NewString(),
		rng:          rng,
		deck:         shared.NewDeck(rng),
		hands:        make(map[string]shared.Hand),
		activePlayer: -1,
	}
}

// AddPlayer deals a fresh facedown hand to a new player. Fails once the game
// has started, when the deck can't cover another hand, on duplicate names
// and on blank names.
func (g *Game) AddPlayer(name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.turnPhase != PhaseNone {
		return ErrAlreadyStarted
	}
	if g.deck.Size() < handSize {
		return ErrDeckTooSmall
	}
	if _, ok := g.hands[name]; ok {
		return ErrDuplicateName
	}
	if name == "" {
		return ErrEmptyName
	}

	// reshuffle so the newcomer can't have inferred anything about positions
	g.deck.Shuffle()
	hand := make(shared.Hand, 0, handSize)
	for _, c := range g.deck.DrawN(handSize) {
		hand = append(hand, shared.HandCard{Card: c})
	}
	g.hands[name] = hand
	g.playerOrder = append(g.playerOrder, name)
	log.Printf("Game %s: player %q joined (%d total)", g.ID, name, len(g.hands))
	return nil
}

// RemovePlayer discards a player's cards and drops them from the game. When
// the game is underway the player is purged from every pending queue and the
// current phase resolver is kicked again so play continues without them.
func (g *Game) RemovePlayer(name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	hand, ok := g.hands[name]
	if !ok {
		return ErrNotInGame
	}
	for _, hc := range hand {
		g.deck.Toss(hc.Card)
	}
	delete(g.hands, name)
	log.Printf("Game %s: player %q removed", g.ID, name)

	if g.turnPhase == PhaseNone {
		g.playerOrder = removeName(g.playerOrder, name)
		g.deck.Shuffle()
		return nil
	}

	g.turnPlayers = removeName(g.turnPlayers, name)
	g.playersToReplace = removeName(g.playersToReplace, name)
	g.replaceHearts = removeName(g.replaceHearts, name)
	if g.winCheck() {
		return nil
	}
	if g.playerOrder[g.activePlayer] == name {
		g.endTurn()
		return nil
	}
	// the phase loop may have been waiting on the removed player, so kick
	// the resolver again no matter where in the queue they sat
	switch g.turnPhase {
	case PhaseLose:
		g.nextLoseLife()
	case PhaseReplace:
		g.nextReplace()
	case PhaseToss:
		g.nextToss()
	case PhaseHands:
		g.nextHands()
	}
	return nil
}

// StartGame locks the roster, seeds the discard pile and opens the first
// turn. The starting player is random since there's no dealer.
func (g *Game) StartGame() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.turnPhase != PhaseNone {
		return ErrAlreadyStarted
	}
	g.deck.Shuffle()
	g.seedDiscard()
	if len(g.playerOrder) > 0 {
		g.activePlayer = g.rng.Intn(len(g.playerOrder))
	}
	g.turnPhase = PhaseAction
	log.Printf("Game %s: started with %d players", g.ID, len(g.playerOrder))
	g.winCheck()
	return nil
}

// seedDiscard flips the first cards of a freshly shuffled deck into the
// discard pile so float targets exist from the first action.
func (g *Game) seedDiscard() {
	n := handSize
	if g.deck.Size() < n {
		n = g.deck.Size()
	}
	for _, c := range g.deck.DrawN(n) {
		g.deck.Toss(c)
	}
}

// winCheck ends the game when at most one player is left alive and reports
// whether it did. The last survivor's hand goes faceup.
func (g *Game) winCheck() bool {
	switch len(g.hands) {
	case 1:
		var winner string
		for name := range g.hands {
			winner = name
		}
		g.turnPhase = PhaseOver
		g.turnPlayers = []string{winner}
		g.hands[winner].Reveal()
		log.Printf("Game %s: %q wins", g.ID, winner)
		return true
	case 0:
		g.turnPhase = PhaseOver
		g.turnPlayers = nil
		log.Printf("Game %s: draw, nobody left alive", g.ID)
		return true
	}
	return false
}

// alivePlayersInTurnOrder lists the alive players starting at the active
// player (or just after, when includeActive is false) and wrapping around.
func (g *Game) alivePlayersInTurnOrder(includeActive bool) []string {
	out := []string{}
	n := len(g.playerOrder)
	if n == 0 {
		return out
	}
	start := g.activePlayer
	count := n
	if !includeActive {
		start++
		count--
	}
	for i := 0; i < count; i++ {
		name := g.playerOrder[(start+i)%n]
		if _, alive := g.hands[name]; alive {
			out = append(out, name)
		}
	}
	return out
}

func removeName(list []string, name string) []string {
	for i, n := range list {
		if n == name {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func containsName(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}
