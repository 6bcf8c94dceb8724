package shared

import "math/rand"

// Deck owns both the draw pile and the public discard pile. Cards only ever
// move between these two piles and the players' hands, never get created or
// destroyed, so deck + discard + hands always account for all 52 cards.
type Deck struct {
	Cards   []Card
	Discard []Card
	rng     *rand.Rand
}

// NewDeck builds a full 52-card deck shuffled with the given rng.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	for _, s := range Suits {
		for _, r := range NumberRanks {
			d.Discard = append(d.Discard, Card{Suit: s, Rank: r})
		}
		for _, r := range Faces {
			d.Discard = append(d.Discard, Card{Suit: s, Rank: r})
		}
	}
	d.Shuffle()
	return d
}

// Shuffle folds the draw pile into the discard pile, permutes the lot, and
// makes the result the new draw pile. The discard pile ends up empty.
func (d *Deck) Shuffle() {
	d.Discard = append(d.Discard, d.Cards...)
	for i := len(d.Discard) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.Discard[i], d.Discard[j] = d.Discard[j], d.Discard[i]
	}
	d.Cards = d.Discard
	d.Discard = nil
}

// Draw removes and returns the next card. No bounds checking: callers must
// have verified Size first.
func (d *Deck) Draw() Card {
	c := d.Cards[0]
	d.Cards = d.Cards[1:]
	return c
}

// DrawN removes and returns the next n cards. Same contract as Draw.
func (d *Deck) DrawN(n int) []Card {
	out := make([]Card, n)
	copy(out, d.Cards[:n])
	d.Cards = d.Cards[n:]
	return out
}

// Size returns how many cards are left to draw.
func (d *Deck) Size() int {
	return len(d.Cards)
}

// Toss puts a card on the discard pile.
func (d *Deck) Toss(c Card) {
	d.Discard = append(d.Discard, c)
}

// FloatTarget computes the rank a hand must float against for a suit: the
// highest face rank of the suit present in the discard pile, otherwise the
// highest number rank, otherwise the minimal "1" target when the suit is
// absent entirely.
func (d *Deck) FloatTarget(suit Suit) Rank {
	var ranks []Rank
	for _, c := range d.Discard {
		if c.Suit == suit {
			ranks = append(ranks, c.Rank)
		}
	}
	for _, f := range Faces {
		for _, r := range ranks {
			if r == f {
				return f
			}
		}
	}
	// only number ranks left at this point
	best := Rank("1")
	for _, r := range ranks {
		if r.Value() > best.Value() {
			best = r
		}
	}
	return best
}
