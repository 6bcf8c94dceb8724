package game

import (
	"log"

	"dmh-game/internal/shared"
)

// The nextX methods drive the forced-resolution loops: each one works
// through turnPlayers from the front, applying every move that is forced and
// stopping as soon as the front player has a real choice. They are called
// with the lock held, after any action or removal that could unblock the
// queue.

// nextLoseLife works through pending life losses. Players who can block with
// hearts are skipped onto the heart-replacement list, players down to two or
// fewer cards lose their last card automatically, and anyone else stops the
// loop until they pick a life. Once the queue drains the turn moves on to
// replacements, or straight to end of turn when nobody is left to replace.
func (g *Game) nextLoseLife() {
	// the heart target is fixed for the whole round, even as blocked hearts
	// stay in hands and lost cards hit the discard pile
	heartFloat := g.deck.FloatTarget(shared.Hearts)

	for len(g.turnPlayers) > 0 {
		name := g.turnPlayers[0]
		if g.lossBlockable && name != g.playerOrder[g.activePlayer] {
			if g.hands[name].Floats(shared.Hearts, heartFloat) {
				// blocked, but the heart must go the next time they draw
				g.replaceHearts = append(g.replaceHearts, name)
				g.turnPlayers = g.turnPlayers[1:]
				continue
			}
		}
		hand := g.hands[name]
		if len(hand) <= 2 {
			// with two or fewer cards the move is forced: lose the
			// rightmost life
			g.deck.Toss(hand[len(hand)-1].Card)
			hand = hand[:len(hand)-1]
			g.hands[name] = hand
			if len(hand) == 0 {
				delete(g.hands, name)
				g.playersToReplace = removeName(g.playersToReplace, name)
				log.Printf("Game %s: player %q is out", g.ID, name)
			}
			g.turnPlayers = g.turnPlayers[1:]
			continue
		}
		// front player has a choice of which life to lose
		return
	}

	if g.winCheck() {
		return
	}
	if len(g.playersToReplace) > 0 {
		g.turnPhase = PhaseReplace
		g.turnPlayers = g.playersToReplace
		g.playersToReplace = nil
		// the deck always starts a turn nonempty, so an empty deck here
		// means a treasure challenge just resolved: reshuffle before the
		// replacements so they can't loop forever
		if g.deck.Size() == 0 {
			g.deck.Shuffle()
			g.seedDiscard()
		}
		g.nextReplace()
		return
	}
	// only possible after a shoot whose sole replacer died losing the life
	g.endTurn()
}

// nextReplace works through pending replacements. A replacement is forced
// when the player is down to a faceup anchor alone, or when they hold
// exactly their faceup non-heart anchor plus a heart they owe and the deck
// can cover both. Anything else leaves them a choice. An empty deck cuts
// the whole phase short.
func (g *Game) nextReplace() {
	for len(g.turnPlayers) > 0 {
		if g.deck.Size() == 0 {
			g.endTurn()
			return
		}
		name := g.turnPlayers[0]
		hand := g.hands[name]
		if len(hand) == 1 && hand[0].Visible {
			g.deck.Toss(hand[0].Card)
			hand[0] = shared.HandCard{Card: g.deck.Draw()}
			// the anchor may have doubled as the heart that saved them
			g.replaceHearts = removeName(g.replaceHearts, name)
			g.turnPlayers = g.turnPlayers[1:]
			continue
		}
		if len(hand) == 2 &&
			hand[0].Visible &&
			containsName(g.replaceHearts, name) &&
			hand[0].Card.Suit != shared.Hearts &&
			hand[1].Card.Suit == shared.Hearts &&
			g.deck.Size() >= 2 {
			// both obligations apply and the deck covers both, so the
			// move is forced
			g.deck.Toss(hand[0].Card)
			hand[0] = shared.HandCard{Card: g.deck.Draw()}
			g.deck.Toss(hand[1].Card)
			hand[1] = shared.HandCard{Card: g.deck.Draw()}
			g.replaceHearts = removeName(g.replaceHearts, name)
			g.turnPlayers = g.turnPlayers[1:]
			continue
		}
		// front player has some choice about what to replace
		return
	}
	// keep replaceHearts: a pending heart can outlive the phase when the
	// deck ran low, and clears during the replace after the next treasure
	g.endTurn()
}

// nextHands works through pending reveals for all hands on deck. Players
// with at most one facedown non-anchor card get flipped automatically; the
// first player with two or more stops the loop until they pick one.
func (g *Game) nextHands() {
	for len(g.turnPlayers) > 0 {
		name := g.turnPlayers[0]
		if g.hands[name].FacedownNonAnchor() >= 2 {
			return
		}
		g.hands[name].RevealNonAnchor()
		g.turnPlayers = g.turnPlayers[1:]
	}
	g.endTurn()
}

// nextToss works through pending tosses. A toss is forced when the player
// has exactly one faceup card, or only one card at all. The phase stops
// early if the deck empties.
func (g *Game) nextToss() {
	for len(g.turnPlayers) > 0 {
		if g.deck.Size() == 0 {
			g.endTurn()
			return
		}
		name := g.turnPlayers[0]
		hand := g.hands[name]
		idx := -1
		if vis := hand.VisibleIndices(); len(vis) == 1 {
			idx = vis[0]
		} else if len(hand) == 1 {
			idx = 0
		}
		if idx == -1 {
			// more than one card with zero or several faceup, so the
			// choice is theirs
			return
		}
		g.deck.Toss(hand[idx].Card)
		hand[idx] = shared.HandCard{Card: g.deck.Draw()}
		g.turnPlayers = g.turnPlayers[1:]
	}
	g.endTurn()
}

// endTurn either advances to the next alive player's action phase, or, when
// the deck has run dry, kicks off a treasure challenge: everything goes
// faceup, whoever is poorest in diamonds loses a life, and everyone
// replaces. Hearts can't save you from being poor.
func (g *Game) endTurn() {
	if g.deck.Size() > 0 {
		// dead players keep their playerOrder slot, so walk until someone
		// alive comes up. Win checking already happened during the lose
		// phase, so this can't loop forever.
		for {
			g.activePlayer = (g.activePlayer + 1) % len(g.playerOrder)
			if _, alive := g.hands[g.playerOrder[g.activePlayer]]; alive {
				break
			}
		}
		g.turnPhase = PhaseAction
		g.turnPlayers = nil
		return
	}
	log.Printf("Game %s: deck empty, treasure challenge", g.ID)
	for _, hand := range g.hands {
		hand.Reveal()
	}
	g.turnPhase = PhaseLose
	g.turnPlayers = g.extremePlayers(shared.Diamonds, true)
	g.playersToReplace = g.alivePlayersInTurnOrder(true)
	g.lossBlockable = false
	g.nextLoseLife()
}
