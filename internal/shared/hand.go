package shared

// HandCard is a card in a player's hand plus whether it has been revealed.
type HandCard struct {
	Card    Card
	Visible bool
}

// Hand is one player's ordered lives. Position 0 is the anchor card, which
// can never be chosen for a life loss or an all-hands reveal and must be
// replaced once it is faceup.
type Hand []HandCard

// SuitRanks returns the ranks the hand holds in a suit.
func (h Hand) SuitRanks(suit Suit) []Rank {
	var ranks []Rank
	for _, hc := range h {
		if hc.Card.Suit == suit {
			ranks = append(ranks, hc.Card.Rank)
		}
	}
	return ranks
}

// SuitTotal sums the hand's counting values in a suit.
func (h Hand) SuitTotal(suit Suit) int {
	total := 0
	for _, r := range h.SuitRanks(suit) {
		total += r.Value()
	}
	return total
}

// Floats reports whether the hand beats the target in a suit. When the hand
// holds exactly one card of the suit and both that card and the target are
// face ranks, face ordering decides and ties float; otherwise totals are
// compared and the hand floats on >=.
func (h Hand) Floats(suit Suit, target Rank) bool {
	ranks := h.SuitRanks(suit)
	if len(ranks) == 1 && ranks[0].IsFace() && target.IsFace() {
		for _, f := range Faces {
			if ranks[0] == f {
				return true
			}
			if target == f {
				return false
			}
		}
	}
	return h.SuitTotal(suit) >= target.Value()
}

// VisibleIndices returns the positions of every faceup card.
func (h Hand) VisibleIndices() []int {
	var out []int
	for i, hc := range h {
		if hc.Visible {
			out = append(out, i)
		}
	}
	return out
}

// AnyVisible reports whether any card in the hand is faceup.
func (h Hand) AnyVisible() bool {
	for _, hc := range h {
		if hc.Visible {
			return true
		}
	}
	return false
}

// FacedownNonAnchor counts the facedown cards excluding the anchor.
func (h Hand) FacedownNonAnchor() int {
	count := 0
	for i, hc := range h {
		if i != 0 && !hc.Visible {
			count++
		}
	}
	return count
}

// Reveal turns every card in the hand faceup.
func (h Hand) Reveal() {
	for i := range h {
		h[i].Visible = true
	}
}

// RevealNonAnchor turns every card except the anchor faceup.
func (h Hand) RevealNonAnchor() {
	for i := 1; i < len(h); i++ {
		h[i].Visible = true
	}
}
