package shared

import "strconv"

// Suit identifies one of the four card suits, in the single-letter form the
// wire protocol uses.
type Suit string

const (
	Clubs    Suit = "c"
	Diamonds Suit = "d"
	Hearts   Suit = "h"
	Spades   Suit = "s"
)

// Suits lists every suit in a fixed order, for deck construction.
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Rank is a card rank: "2" through "9", or a face rank.
type Rank string

// Faces holds the face ranks in descending float order. Tens count as face
// cards because of the float rules: a ten loses to a jack even though
// they're both worth 10.
var Faces = []Rank{"a", "k", "q", "j", "t"}

// NumberRanks holds the non-face ranks.
var NumberRanks = []Rank{"2", "3", "4", "5", "6", "7", "8", "9"}

// Card is a single playing card. Immutable value type.
type Card struct {
	Suit Suit `json:"s"`
	Rank Rank `json:"n"`
}

// IsFace reports whether the rank is one of a, k, q, j, t.
func (r Rank) IsFace() bool {
	for _, f := range Faces {
		if r == f {
			return true
		}
	}
	return false
}

// Value returns the rank's counting value: aces are 11, other face cards and
// tens are 10, number ranks count at face value.
func (r Rank) Value() int {
	if r == "a" {
		return 11
	}
	if r.IsFace() {
		return 10
	}
	n, err := strconv.Atoi(string(r))
	if err != nil {
		return 0
	}
	return n
}
