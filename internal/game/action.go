package game

import (
	"errors"
	"log"

	"dmh-game/internal/shared"
)

// Action is one player decision fed into the game. Validation happens inside
// DoAction under the lock; a rejected action leaves the game untouched.
type Action interface {
	isAction()
}

// CallHands starts all hands on deck, revealing the caller's card at Index.
type CallHands struct{ Index int }

// ContinueHands reveals the card at Index for a player whose reveal is due.
type ContinueHands struct{ Index int }

// CallToss starts a toss, discarding and redrawing the caller's card at Index.
type CallToss struct{ Index int }

// ContinueToss discards and redraws the card at Index for a player whose
// toss is due.
type ContinueToss struct{ Index int }

// CallShoot challenges Target to a shootout over clubs.
type CallShoot struct{ Target string }

// LoseLife gives up the life at Index.
type LoseLife struct{ Index int }

// ContinueReplace discards and redraws the cards at Indices.
type ContinueReplace struct{ Indices []int }

// CallFight starts a swordfight: best and worst in spades both lose a life.
type CallFight struct{}

func (CallHands) isAction()       {}
func (ContinueHands) isAction()   {}
func (CallToss) isAction()        {}
func (ContinueToss) isAction()    {}
func (CallShoot) isAction()       {}
func (LoseLife) isAction()        {}
func (ContinueReplace) isAction() {}
func (CallFight) isAction()       {}

// DoAction applies one action for a player, or returns the reason it is
// illegal right now.
func (g *Game) DoAction(player string, action Action) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	var err error
	switch a := action.(type) {
	case CallHands:
		err = g.callHands(player, a.Index)
	case ContinueHands:
		err = g.continueHands(player, a.Index)
	case CallToss:
		err = g.callToss(player, a.Index)
	case ContinueToss:
		err = g.continueToss(player, a.Index)
	case CallShoot:
		err = g.callShoot(player, a.Target)
	case LoseLife:
		err = g.loseLife(player, a.Index)
	case ContinueReplace:
		err = g.continueReplace(player, a.Indices)
	case CallFight:
		err = g.callFight(player)
	default:
		err = errors.New("invalid action, unknown")
	}
	if err != nil {
		log.Printf("Game %s: rejected action from %q: %v", g.ID, player, err)
	}
	return err
}

func (g *Game) callHands(player string, index int) error {
	if g.turnPhase != PhaseAction {
		return errors.New("cannot call hands except during action phase")
	}
	if g.playerOrder[g.activePlayer] != player {
		return errors.New("cannot call hands on someone elses turn")
	}
	hand := g.hands[player]
	if hand.FacedownNonAnchor() == 0 {
		return errors.New("cannot do hands with all non-anchor already faceup")
	}
	if len(hand) <= 2 {
		return errors.New("cannot do hands with <=2 lives")
	}
	if index < 1 || index >= len(hand) {
		return errors.New("cannot turn that faceup, out of bounds")
	}
	if hand[index].Visible {
		return errors.New("cannot turn that faceup, already faceup")
	}
	hand[index].Visible = true
	g.turnPhase = PhaseHands
	g.turnPlayers = g.alivePlayersInTurnOrder(false)
	g.nextHands()
	return nil
}

func (g *Game) continueHands(player string, index int) error {
	if g.turnPhase != PhaseHands {
		return errors.New("cannot continue hands except during hands phase")
	}
	if len(g.turnPlayers) == 0 || g.turnPlayers[0] != player {
		return errors.New("cannot continue hands, someone has to flip before you")
	}
	// the loop only stops on players with at least two facedown non-anchor
	// cards, so no count check here
	hand := g.hands[player]
	if index < 1 || index >= len(hand) {
		return errors.New("cannot turn that faceup, out of bounds")
	}
	if hand[index].Visible {
		return errors.New("cannot turn that faceup, already faceup")
	}
	hand[index].Visible = true
	g.turnPlayers = g.turnPlayers[1:]
	g.nextHands()
	return nil
}

func (g *Game) callToss(player string, index int) error {
	if g.turnPhase != PhaseAction {
		return errors.New("cannot call toss except during action phase")
	}
	if g.playerOrder[g.activePlayer] != player {
		return errors.New("cannot call toss on someone elses turn")
	}
	hand := g.hands[player]
	if len(hand) <= 1 {
		return errors.New("cannot do toss with <=1 lives")
	}
	if index < 0 || index >= len(hand) {
		return errors.New("cannot toss that, out of bounds")
	}
	if !hand[index].Visible && hand.AnyVisible() {
		return errors.New("cannot toss that, facedown while something else is faceup")
	}
	// a 12 or 13 player deal can open the very first turn with an empty
	// deck; every later turn starts with at least one card
	if g.deck.Size() == 0 {
		return errors.New("cannot toss, deck is empty")
	}
	// faceup anchors never survive to a toss: they only appear during a
	// challenge turn and must be replaced by that turn's end. Anchors are
	// still tossable, but only while everything is facedown.
	g.deck.Toss(hand[index].Card)
	hand[index] = shared.HandCard{Card: g.deck.Draw()}
	g.turnPhase = PhaseToss
	g.turnPlayers = g.alivePlayersInTurnOrder(false)
	g.nextToss()
	return nil
}

func (g *Game) continueToss(player string, index int) error {
	if g.turnPhase != PhaseToss {
		return errors.New("cannot continue toss except during the toss phase")
	}
	if len(g.turnPlayers) == 0 || g.turnPlayers[0] != player {
		return errors.New("cannot continue toss, someone else has to toss first")
	}
	hand := g.hands[player]
	if index < 0 || index >= len(hand) {
		return errors.New("cannot toss that, out of bounds")
	}
	if !hand[index].Visible && hand.AnyVisible() {
		return errors.New("cannot toss that, facedown while something else is faceup")
	}
	g.deck.Toss(hand[index].Card)
	hand[index] = shared.HandCard{Card: g.deck.Draw()}
	g.turnPlayers = g.turnPlayers[1:]
	g.nextToss()
	return nil
}

func (g *Game) callShoot(player, target string) error {
	if g.turnPhase != PhaseAction {
		return errors.New("cannot call shoot except during action phase")
	}
	if g.playerOrder[g.activePlayer] != player {
		return errors.New("cannot call shoot on someone elses turn")
	}
	if _, ok := g.hands[target]; !ok {
		return errors.New("cannot shoot them, they dont exist")
	}
	if target == player {
		return errors.New("cannot shoot yourself")
	}
	g.hands[target].Reveal()
	clubFloat := g.deck.FloatTarget(shared.Clubs)
	if g.hands[target].Floats(shared.Clubs, clubFloat) {
		g.hands[player].Reveal()
		if g.hands[player].Floats(shared.Clubs, clubFloat) {
			// both floated, no lives lost, both replace with the victim
			// going first
			g.turnPhase = PhaseReplace
			g.turnPlayers = []string{target, player}
			g.nextReplace()
			return nil
		}
		// target floated but the shooter sank
		g.turnPhase = PhaseLose
		g.turnPlayers = []string{player}
		g.playersToReplace = []string{target, player}
		// moot either way: you can't block a challenge you initiated
		g.lossBlockable = true
		g.nextLoseLife()
		return nil
	}
	// target sank
	g.turnPhase = PhaseLose
	g.turnPlayers = []string{target}
	g.playersToReplace = []string{target}
	g.lossBlockable = true
	g.nextLoseLife()
	return nil
}

func (g *Game) loseLife(player string, index int) error {
	if g.turnPhase != PhaseLose {
		return errors.New("cannot lose a life except during lose phase")
	}
	if len(g.turnPlayers) == 0 || g.turnPlayers[0] != player {
		return errors.New("cannot lose a life, someone else has to lose one before you")
	}
	hand := g.hands[player]
	if index < 1 || index >= len(hand) {
		return errors.New("cannot lose that life, out of bounds")
	}
	g.deck.Toss(hand[index].Card)
	g.hands[player] = append(hand[:index], hand[index+1:]...)
	g.turnPlayers = g.turnPlayers[1:]
	g.nextLoseLife()
	return nil
}

func (g *Game) continueReplace(player string, indices []int) error {
	if g.turnPhase != PhaseReplace {
		return errors.New("cannot replace except in the replace phase")
	}
	if len(g.turnPlayers) == 0 || g.turnPlayers[0] != player {
		return errors.New("cannot replace, someone else has to replace first")
	}
	hand := g.hands[player]
	seen := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(hand) {
			return errors.New("cannot replace that, out of bounds")
		}
		if seen[idx] {
			return errors.New("cannot replace that, duplicate index")
		}
		seen[idx] = true
	}

	// the replacement wasn't fully forced (or it would already have been
	// applied) but restrictions can still bind:
	// 1. a faceup anchor must be included
	// 2. a player who blocked a loss must include a heart
	// 3. no more cards than the deck holds
	// when 1..3 can't all hold at once, which takes a one-card deck and a
	// heart that isn't the anchor, satisfying 3 plus either of 1 or 2 is
	// enough
	visibleAnchor := hand[0].Visible
	heartRequired := containsName(g.replaceHearts, player)
	includedAnchor := seen[0]
	includedHeart := false
	for _, idx := range indices {
		if hand[idx].Card.Suit == shared.Hearts {
			includedHeart = true
			break
		}
	}

	corner := g.deck.Size() < 2 &&
		len(hand) == 2 &&
		visibleAnchor &&
		heartRequired &&
		hand[0].Card.Suit != shared.Hearts
	if corner {
		if !includedAnchor && !includedHeart {
			return errors.New("replace invalid, must replace anchor or heart")
		}
	} else {
		if visibleAnchor && !includedAnchor {
			return errors.New("replace invalid, must replace anchor")
		}
		if heartRequired && !includedHeart {
			return errors.New("replace invalid, must replace heart")
		}
	}
	if g.deck.Size() < len(indices) {
		return errors.New("replace invalid, cannot replace more cards than deck has")
	}

	for _, idx := range indices {
		g.deck.Toss(hand[idx].Card)
		hand[idx] = shared.HandCard{Card: g.deck.Draw()}
	}
	if heartRequired && includedHeart {
		g.replaceHearts = removeName(g.replaceHearts, player)
	}
	g.turnPlayers = g.turnPlayers[1:]
	g.nextReplace()
	return nil
}

func (g *Game) callFight(player string) error {
	if g.turnPhase != PhaseAction {
		return errors.New("cannot call fight except during action phase")
	}
	if g.playerOrder[g.activePlayer] != player {
		return errors.New("cannot call fight on someone elses turn")
	}
	if len(g.hands) <= 2 {
		return errors.New("cannot call fight with 2 players remaining")
	}
	for _, hand := range g.hands {
		hand.Reveal()
	}
	maxSpades := g.extremePlayers(shared.Spades, false)
	minSpades := g.extremePlayers(shared.Spades, true)
	all := g.alivePlayersInTurnOrder(true)
	g.turnPhase = PhaseLose
	g.turnPlayers = nil
	for _, name := range all {
		if containsName(maxSpades, name) || containsName(minSpades, name) {
			g.turnPlayers = append(g.turnPlayers, name)
		}
	}
	g.playersToReplace = all
	g.lossBlockable = true
	g.nextLoseLife()
	return nil
}
