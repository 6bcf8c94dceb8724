package game

import "dmh-game/internal/shared"

// extremePlayers returns the alive players holding the maximum (or minimum,
// when wantMin is set) total in a suit, in turn order starting from the
// active player.
//
// There is one tiebreak: a total of 10 can be a sum like 2+8 or a single
// face card, and face cards have an ordering. When the extreme total is 10
// and every matched player holds it as a lone face card, the face order
// picks a single winner. If anyone got there by summing, all the 10s are
// equal and everyone matched ties.
func (g *Game) extremePlayers(suit shared.Suit, wantMin bool) []string {
	// totals range 0..41 (11+10+10+10), so these seeds always lose the
	// first comparison
	best := -1
	if wantMin {
		best = 42
	}

	participating := g.alivePlayersInTurnOrder(true)
	totals := make(map[string]int, len(participating))
	singletons := make(map[string]shared.Rank, len(participating))
	for _, name := range participating {
		hand := g.hands[name]
		if ranks := hand.SuitRanks(suit); len(ranks) == 1 {
			singletons[name] = ranks[0]
		}
		total := hand.SuitTotal(suit)
		totals[name] = total
		if wantMin {
			if total < best {
				best = total
			}
		} else if total > best {
			best = total
		}
	}

	var matched []string
	for _, name := range participating {
		if totals[name] == best {
			matched = append(matched, name)
		}
	}

	if best == 10 {
		allSingletonFaces := true
		for _, name := range matched {
			if r, ok := singletons[name]; !ok || !r.IsFace() {
				allSingletonFaces = false
				break
			}
		}
		if allSingletonFaces {
			faceOrder := shared.Faces
			if wantMin {
				faceOrder = make([]shared.Rank, len(shared.Faces))
				for i, f := range shared.Faces {
					faceOrder[len(faceOrder)-1-i] = f
				}
			}
			for _, f := range faceOrder {
				for _, name := range matched {
					if singletons[name] == f {
						// the tiebreak always lands on exactly one
						// player since only one holds the top face
						return []string{name}
					}
				}
			}
		}
	}

	return matched
}
