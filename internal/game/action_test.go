package game

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"dmh-game/internal/shared"
)

func TestRejectedActionLeavesStateUntouched(t *testing.T) {
	g := newTestGame(t, "alice", "bob")
	if err := g.StartGame(); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	active := g.playerOrder[g.activePlayer]
	other := "alice"
	if active == "alice" {
		other = "bob"
	}

	before := g.GetState(active)
	rejected := []Action{
		CallHands{Index: 99},
		CallToss{Index: -1},
		CallShoot{Target: active},
		CallShoot{Target: "nobody"},
		CallFight{},
		LoseLife{Index: 1},
		ContinueReplace{Indices: []int{0}},
		ContinueHands{Index: 1},
		ContinueToss{Index: 0},
	}
	for _, a := range rejected {
		if err := g.DoAction(active, a); err == nil {
			t.Errorf("DoAction(%T) succeeded, want error", a)
		}
	}
	if err := g.DoAction(other, CallToss{Index: 0}); err == nil {
		t.Error("out-of-turn toss succeeded, want error")
	}
	after := g.GetState(active)
	if !reflect.DeepEqual(before, after) {
		t.Error("rejected actions changed the game state")
	}
}

func TestCallHandsFlow(t *testing.T) {
	g := riggedGame([]string{"alice", "bob"}, 0, map[string]shared.Hand{
		"alice": {down(shared.Spades, "2"), down(shared.Clubs, "3"), down(shared.Hearts, "4"), down(shared.Diamonds, "5")},
		"bob":   {down(shared.Spades, "6"), down(shared.Clubs, "7"), down(shared.Hearts, "8"), down(shared.Diamonds, "9")},
	})
	g.deck.Cards = []shared.Card{card(shared.Clubs, "2")}

	if err := g.DoAction("alice", CallHands{Index: 0}); err == nil {
		t.Error("revealing the anchor succeeded, want error")
	}
	if err := g.DoAction("alice", CallHands{Index: 1}); err != nil {
		t.Fatalf("CallHands: %v", err)
	}
	if !g.hands["alice"][1].Visible {
		t.Error("caller's card not revealed")
	}
	if g.turnPhase != PhaseHands {
		t.Fatalf("turnPhase = %q, want hands", g.turnPhase)
	}
	if !reflect.DeepEqual(g.turnPlayers, []string{"bob"}) {
		t.Fatalf("turnPlayers = %v, want [bob]", g.turnPlayers)
	}

	if err := g.DoAction("alice", ContinueHands{Index: 2}); err == nil {
		t.Error("out-of-turn continue succeeded, want error")
	}
	if err := g.DoAction("bob", ContinueHands{Index: 0}); err == nil {
		t.Error("revealing the anchor succeeded, want error")
	}
	if err := g.DoAction("bob", ContinueHands{Index: 3}); err != nil {
		t.Fatalf("ContinueHands: %v", err)
	}
	if !g.hands["bob"][3].Visible {
		t.Error("bob's card not revealed")
	}
	if g.turnPhase != PhaseAction {
		t.Errorf("turnPhase = %q, want action after everyone revealed", g.turnPhase)
	}
	if g.playerOrder[g.activePlayer] != "bob" {
		t.Errorf("active player = %q, want bob", g.playerOrder[g.activePlayer])
	}
}

func TestCallHandsAutoRevealsForcedPlayers(t *testing.T) {
	// bob has only one facedown non-anchor card, so his reveal is forced
	g := riggedGame([]string{"alice", "bob"}, 0, map[string]shared.Hand{
		"alice": {down(shared.Spades, "2"), down(shared.Clubs, "3"), down(shared.Hearts, "4"), down(shared.Diamonds, "5")},
		"bob":   {down(shared.Spades, "6"), up(shared.Clubs, "7"), down(shared.Hearts, "8"), up(shared.Diamonds, "9")},
	})
	g.deck.Cards = []shared.Card{card(shared.Clubs, "2")}

	if err := g.DoAction("alice", CallHands{Index: 1}); err != nil {
		t.Fatalf("CallHands: %v", err)
	}
	if g.turnPhase != PhaseAction {
		t.Errorf("turnPhase = %q, want action after forced reveals", g.turnPhase)
	}
	if !g.hands["bob"][2].Visible {
		t.Error("bob's reveal was not forced")
	}
	if g.hands["bob"][0].Visible {
		t.Error("bob's anchor was revealed")
	}
}

func TestCallHandsRequiresEnoughLives(t *testing.T) {
	g := riggedGame([]string{"alice", "bob"}, 0, map[string]shared.Hand{
		"alice": {down(shared.Spades, "2"), down(shared.Clubs, "3")},
		"bob":   {down(shared.Spades, "6"), down(shared.Clubs, "7"), down(shared.Hearts, "8"), down(shared.Diamonds, "9")},
	})
	if err := g.DoAction("alice", CallHands{Index: 1}); err == nil {
		t.Error("hands with two lives succeeded, want error")
	}
}

func TestCallTossFlow(t *testing.T) {
	g := riggedGame([]string{"alice", "bob"}, 0, map[string]shared.Hand{
		"alice": {down(shared.Spades, "2"), down(shared.Clubs, "3"), down(shared.Hearts, "4"), down(shared.Diamonds, "5")},
		"bob":   {down(shared.Spades, "6"), down(shared.Clubs, "7"), down(shared.Hearts, "8"), down(shared.Diamonds, "9")},
	})
	g.deck.Cards = []shared.Card{
		card(shared.Clubs, "9"), card(shared.Diamonds, "2"), card(shared.Spades, "8"),
	}

	// anchors are tossable while everything is facedown
	if err := g.DoAction("alice", CallToss{Index: 0}); err != nil {
		t.Fatalf("CallToss: %v", err)
	}
	if g.hands["alice"][0].Card != card(shared.Clubs, "9") {
		t.Errorf("alice's new card = %+v, want the deck front", g.hands["alice"][0].Card)
	}
	if g.hands["alice"][0].Visible {
		t.Error("replacement drawn faceup, want facedown")
	}
	if !containsCard(g.deck.Discard, card(shared.Spades, "2")) {
		t.Error("tossed card not in discard")
	}
	if g.turnPhase != PhaseToss {
		t.Fatalf("turnPhase = %q, want toss", g.turnPhase)
	}
	if !reflect.DeepEqual(g.turnPlayers, []string{"bob"}) {
		t.Fatalf("turnPlayers = %v, want [bob]", g.turnPlayers)
	}

	if err := g.DoAction("bob", ContinueToss{Index: 2}); err != nil {
		t.Fatalf("ContinueToss: %v", err)
	}
	if g.turnPhase != PhaseAction {
		t.Errorf("turnPhase = %q, want action", g.turnPhase)
	}
	if g.playerOrder[g.activePlayer] != "bob" {
		t.Errorf("active player = %q, want bob", g.playerOrder[g.activePlayer])
	}
}

func TestCallTossAutoTossesForcedPlayers(t *testing.T) {
	// bob has a single card, so his toss is forced
	g := riggedGame([]string{"alice", "bob"}, 0, map[string]shared.Hand{
		"alice": {down(shared.Spades, "2"), down(shared.Clubs, "3"), down(shared.Hearts, "4"), down(shared.Diamonds, "5")},
		"bob":   {down(shared.Spades, "6")},
	})
	g.deck.Cards = []shared.Card{
		card(shared.Clubs, "9"), card(shared.Diamonds, "2"), card(shared.Spades, "8"),
	}

	if err := g.DoAction("alice", CallToss{Index: 1}); err != nil {
		t.Fatalf("CallToss: %v", err)
	}
	if g.turnPhase != PhaseAction {
		t.Errorf("turnPhase = %q, want action after forced toss", g.turnPhase)
	}
	if g.hands["bob"][0].Card != card(shared.Diamonds, "2") {
		t.Errorf("bob's new card = %+v, want the second deck card", g.hands["bob"][0].Card)
	}
	if !containsCard(g.deck.Discard, card(shared.Spades, "6")) {
		t.Error("bob's old card not in discard")
	}
}

func TestCallTossValidation(t *testing.T) {
	g := riggedGame([]string{"alice", "bob"}, 0, map[string]shared.Hand{
		"alice": {down(shared.Spades, "2"), up(shared.Clubs, "3"), down(shared.Hearts, "4")},
		"bob":   {down(shared.Spades, "6")},
	})
	g.deck.Cards = []shared.Card{card(shared.Clubs, "9")}

	if err := g.DoAction("alice", CallToss{Index: 2}); err == nil {
		t.Error("facedown toss with a faceup card elsewhere succeeded, want error")
	}
	if err := g.DoAction("alice", CallToss{Index: 3}); err == nil {
		t.Error("out-of-bounds toss succeeded, want error")
	}
	g.activePlayer = 1
	if err := g.DoAction("bob", CallToss{Index: 0}); err == nil {
		t.Error("toss with one life succeeded, want error")
	}
}

func TestCallTossRejectedWhenDeckExhaustedAtDeal(t *testing.T) {
	// thirteen players consume the whole deck at the deal, so the first
	// turn opens with nothing left to draw
	g := New(rand.New(rand.NewSource(5)))
	for i := 0; i < 13; i++ {
		if err := g.AddPlayer(fmt.Sprintf("p%d", i)); err != nil {
			t.Fatalf("AddPlayer(p%d): %v", i, err)
		}
	}
	if err := g.StartGame(); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if g.deck.Size() != 0 {
		t.Fatalf("deck size = %d, want 0 after a 13-player deal", g.deck.Size())
	}

	active := g.playerOrder[g.activePlayer]
	before := g.GetState(active)
	if err := g.DoAction(active, CallToss{Index: 0}); err == nil {
		t.Fatal("toss with an empty deck succeeded, want error")
	}
	after := g.GetState(active)
	if !reflect.DeepEqual(before, after) {
		t.Error("rejected toss changed the game state")
	}
	if got := countCards(g); got != 52 {
		t.Errorf("cards in play = %d, want 52", got)
	}
}

func TestCallShootTargetSinks(t *testing.T) {
	g := riggedGame([]string{"alice", "bob"}, 0, map[string]shared.Hand{
		"alice": {down(shared.Spades, "2"), down(shared.Clubs, "3"), down(shared.Hearts, "4"), down(shared.Diamonds, "5")},
		// bob holds 5 in clubs against a target of 9, and no hearts to block
		"bob": {down(shared.Spades, "4"), down(shared.Clubs, "5"), down(shared.Spades, "7"), down(shared.Diamonds, "3")},
	})
	g.deck.Discard = []shared.Card{card(shared.Clubs, "9")}
	g.deck.Cards = []shared.Card{
		card(shared.Hearts, "9"), card(shared.Diamonds, "8"), card(shared.Spades, "9"),
	}

	if err := g.DoAction("alice", CallShoot{Target: "bob"}); err != nil {
		t.Fatalf("CallShoot: %v", err)
	}
	if !g.hands["bob"][0].Visible {
		t.Error("target's hand not revealed")
	}
	if g.hands["alice"][0].Visible {
		t.Error("shooter's hand revealed although the target sank")
	}
	if g.turnPhase != PhaseLose {
		t.Fatalf("turnPhase = %q, want lose", g.turnPhase)
	}
	if !reflect.DeepEqual(g.turnPlayers, []string{"bob"}) {
		t.Fatalf("turnPlayers = %v, want [bob]", g.turnPlayers)
	}
	if !g.lossBlockable {
		t.Error("lossBlockable = false, want true for a shootout")
	}

	if err := g.DoAction("bob", LoseLife{Index: 0}); err == nil {
		t.Error("losing the anchor succeeded, want error")
	}
	if err := g.DoAction("bob", LoseLife{Index: 2}); err != nil {
		t.Fatalf("LoseLife: %v", err)
	}
	if len(g.hands["bob"]) != 3 {
		t.Errorf("bob has %d cards, want 3", len(g.hands["bob"]))
	}
	if g.turnPhase != PhaseReplace {
		t.Fatalf("turnPhase = %q, want replace", g.turnPhase)
	}
	if !reflect.DeepEqual(g.turnPlayers, []string{"bob"}) {
		t.Fatalf("turnPlayers = %v, want [bob]", g.turnPlayers)
	}

	if err := g.DoAction("bob", ContinueReplace{Indices: []int{1}}); err == nil {
		t.Error("replace without the faceup anchor succeeded, want error")
	}
	if err := g.DoAction("bob", ContinueReplace{Indices: []int{0}}); err != nil {
		t.Fatalf("ContinueReplace: %v", err)
	}
	if g.hands["bob"][0].Visible {
		t.Error("replaced anchor drawn faceup, want facedown")
	}
	if g.turnPhase != PhaseAction {
		t.Errorf("turnPhase = %q, want action", g.turnPhase)
	}
	if g.playerOrder[g.activePlayer] != "bob" {
		t.Errorf("active player = %q, want bob", g.playerOrder[g.activePlayer])
	}
}

func TestCallShootBothFloat(t *testing.T) {
	g := riggedGame([]string{"alice", "bob"}, 0, map[string]shared.Hand{
		"alice": {down(shared.Spades, "2"), down(shared.Clubs, "8"), down(shared.Hearts, "4"), down(shared.Diamonds, "5")},
		"bob":   {down(shared.Spades, "4"), down(shared.Clubs, "7"), down(shared.Spades, "7"), down(shared.Diamonds, "3")},
	})
	g.deck.Discard = []shared.Card{card(shared.Clubs, "2")}
	g.deck.Cards = []shared.Card{card(shared.Hearts, "9"), card(shared.Diamonds, "8")}

	if err := g.DoAction("alice", CallShoot{Target: "bob"}); err != nil {
		t.Fatalf("CallShoot: %v", err)
	}
	if !g.hands["alice"][0].Visible || !g.hands["bob"][0].Visible {
		t.Error("both hands should be revealed when the target floats")
	}
	if g.turnPhase != PhaseReplace {
		t.Fatalf("turnPhase = %q, want replace with no lives lost", g.turnPhase)
	}
	if !reflect.DeepEqual(g.turnPlayers, []string{"bob", "alice"}) {
		t.Errorf("turnPlayers = %v, want victim first", g.turnPlayers)
	}
	if len(g.hands["alice"]) != 4 || len(g.hands["bob"]) != 4 {
		t.Error("lives were lost although both floated")
	}
}

func TestCallShootShooterSinks(t *testing.T) {
	g := riggedGame([]string{"alice", "bob"}, 0, map[string]shared.Hand{
		"alice": {down(shared.Spades, "2"), down(shared.Clubs, "3"), down(shared.Spades, "4"), down(shared.Hearts, "5")},
		"bob":   {down(shared.Spades, "4"), down(shared.Clubs, "8"), down(shared.Spades, "7"), down(shared.Diamonds, "3")},
	})
	g.deck.Discard = []shared.Card{card(shared.Clubs, "7")}
	g.deck.Cards = []shared.Card{card(shared.Hearts, "9"), card(shared.Diamonds, "8")}

	if err := g.DoAction("alice", CallShoot{Target: "bob"}); err != nil {
		t.Fatalf("CallShoot: %v", err)
	}
	if g.turnPhase != PhaseLose {
		t.Fatalf("turnPhase = %q, want lose", g.turnPhase)
	}
	// the shooter can't block their own challenge even with hearts in hand
	if !reflect.DeepEqual(g.turnPlayers, []string{"alice"}) {
		t.Errorf("turnPlayers = %v, want [alice]", g.turnPlayers)
	}
	if !reflect.DeepEqual(g.playersToReplace, []string{"bob", "alice"}) {
		t.Errorf("playersToReplace = %v, want victim first", g.playersToReplace)
	}
}

func TestHeartBlockDefersToReplacement(t *testing.T) {
	g := riggedGame([]string{"alice", "bob"}, 0, map[string]shared.Hand{
		"alice": {down(shared.Spades, "2"), down(shared.Clubs, "3"), down(shared.Hearts, "4"), down(shared.Diamonds, "5")},
		// bob sinks in clubs but his heart 7 floats the heart target of 5
		"bob": {down(shared.Spades, "4"), down(shared.Hearts, "7"), down(shared.Clubs, "5"), down(shared.Diamonds, "3")},
	})
	g.deck.Discard = []shared.Card{card(shared.Clubs, "9"), card(shared.Hearts, "5")}
	g.deck.Cards = []shared.Card{
		card(shared.Spades, "9"), card(shared.Diamonds, "8"), card(shared.Clubs, "2"),
	}

	if err := g.DoAction("alice", CallShoot{Target: "bob"}); err != nil {
		t.Fatalf("CallShoot: %v", err)
	}
	if len(g.hands["bob"]) != 4 {
		t.Fatalf("bob lost a life despite blocking with hearts")
	}
	if g.turnPhase != PhaseReplace {
		t.Fatalf("turnPhase = %q, want replace", g.turnPhase)
	}
	if !containsName(g.replaceHearts, "bob") {
		t.Fatal("bob not marked for a pending heart replacement")
	}

	if err := g.DoAction("bob", ContinueReplace{Indices: []int{0}}); err == nil {
		t.Error("replace without the owed heart succeeded, want error")
	}
	if err := g.DoAction("bob", ContinueReplace{Indices: []int{1}}); err == nil {
		t.Error("replace without the faceup anchor succeeded, want error")
	}
	if err := g.DoAction("bob", ContinueReplace{Indices: []int{0, 1}}); err != nil {
		t.Fatalf("ContinueReplace: %v", err)
	}
	if containsName(g.replaceHearts, "bob") {
		t.Error("heart obligation not cleared after replacing the heart")
	}
	if g.turnPhase != PhaseAction {
		t.Errorf("turnPhase = %q, want action", g.turnPhase)
	}
}

func TestShootingLastLifeEliminates(t *testing.T) {
	g := riggedGame([]string{"alice", "bob"}, 0, map[string]shared.Hand{
		"alice": {down(shared.Spades, "2"), down(shared.Clubs, "3"), down(shared.Hearts, "4"), down(shared.Diamonds, "5")},
		"bob":   {down(shared.Clubs, "2")},
	})
	g.deck.Discard = []shared.Card{card(shared.Clubs, "9")}
	g.deck.Cards = []shared.Card{card(shared.Spades, "9")}

	if err := g.DoAction("alice", CallShoot{Target: "bob"}); err != nil {
		t.Fatalf("CallShoot: %v", err)
	}
	if g.turnPhase != PhaseOver {
		t.Fatalf("turnPhase = %q, want over", g.turnPhase)
	}
	if winner, ok := g.Winner(); !ok || winner != "alice" {
		t.Errorf("Winner() = %q, %v, want alice", winner, ok)
	}
	if _, alive := g.hands["bob"]; alive {
		t.Error("bob still alive after losing his last life")
	}
	if !g.hands["alice"][0].Visible {
		t.Error("winner's hand not revealed")
	}
}

func TestCallFight(t *testing.T) {
	g := riggedGame([]string{"alice", "bob", "carol"}, 0, map[string]shared.Hand{
		"alice": {down(shared.Spades, "a"), down(shared.Clubs, "3"), down(shared.Diamonds, "4"), down(shared.Clubs, "5")},
		"bob":   {down(shared.Spades, "5"), down(shared.Clubs, "7"), down(shared.Diamonds, "8"), down(shared.Clubs, "9")},
		"carol": {down(shared.Clubs, "4"), down(shared.Diamonds, "6"), down(shared.Clubs, "8"), down(shared.Diamonds, "9")},
	})
	g.deck.Discard = []shared.Card{card(shared.Clubs, "6")}
	g.deck.Cards = []shared.Card{card(shared.Hearts, "2"), card(shared.Hearts, "3")}

	if err := g.DoAction("alice", CallFight{}); err != nil {
		t.Fatalf("CallFight: %v", err)
	}
	for name, hand := range g.hands {
		if !hand[0].Visible {
			t.Errorf("%s's hand not revealed", name)
		}
	}
	if g.turnPhase != PhaseLose {
		t.Fatalf("turnPhase = %q, want lose", g.turnPhase)
	}
	// alice holds the most spades, carol none at all
	if !reflect.DeepEqual(g.turnPlayers, []string{"alice", "carol"}) {
		t.Errorf("turnPlayers = %v, want [alice carol]", g.turnPlayers)
	}
	if !reflect.DeepEqual(g.playersToReplace, []string{"alice", "bob", "carol"}) {
		t.Errorf("playersToReplace = %v, want everyone", g.playersToReplace)
	}
	if !g.lossBlockable {
		t.Error("lossBlockable = false, want true for a swordfight")
	}
}

func TestCallFightNeedsThreePlayers(t *testing.T) {
	g := riggedGame([]string{"alice", "bob"}, 0, map[string]shared.Hand{
		"alice": {down(shared.Spades, "2"), down(shared.Clubs, "3"), down(shared.Hearts, "4"), down(shared.Diamonds, "5")},
		"bob":   {down(shared.Spades, "6"), down(shared.Clubs, "7"), down(shared.Hearts, "8"), down(shared.Diamonds, "9")},
	})
	if err := g.DoAction("alice", CallFight{}); err == nil {
		t.Error("fight with two players succeeded, want error")
	}
}

func TestContinueReplaceRejectsDuplicateIndices(t *testing.T) {
	g := riggedGame([]string{"alice", "bob"}, 0, map[string]shared.Hand{
		"alice": {up(shared.Spades, "2"), up(shared.Clubs, "3"), up(shared.Hearts, "4"), up(shared.Diamonds, "5")},
		"bob":   {down(shared.Spades, "6"), down(shared.Clubs, "7"), down(shared.Hearts, "8"), down(shared.Diamonds, "9")},
	})
	g.deck.Cards = []shared.Card{card(shared.Hearts, "2"), card(shared.Hearts, "3")}
	g.turnPhase = PhaseReplace
	g.turnPlayers = []string{"alice"}

	if err := g.DoAction("alice", ContinueReplace{Indices: []int{0, 0}}); err == nil {
		t.Error("duplicate indices succeeded, want error")
	}
	if err := g.DoAction("alice", ContinueReplace{Indices: []int{0, 4}}); err == nil {
		t.Error("out-of-bounds index succeeded, want error")
	}
	if err := g.DoAction("alice", ContinueReplace{Indices: []int{0, 1, 2}}); err == nil {
		t.Error("replacing more cards than the deck holds succeeded, want error")
	}
}

func TestContinueReplaceCornerCase(t *testing.T) {
	// faceup non-heart anchor plus an owed heart, but only one card left in
	// the deck: either obligation alone satisfies
	build := func() *Game {
		g := riggedGame([]string{"alice", "bob"}, 0, map[string]shared.Hand{
			"alice": {up(shared.Spades, "2"), down(shared.Hearts, "7")},
			"bob":   {down(shared.Spades, "6"), down(shared.Clubs, "7"), down(shared.Hearts, "8"), down(shared.Diamonds, "9")},
		})
		g.deck.Cards = []shared.Card{card(shared.Clubs, "4")}
		g.deck.Discard = []shared.Card{card(shared.Diamonds, "2"), card(shared.Diamonds, "3"), card(shared.Diamonds, "4")}
		g.turnPhase = PhaseReplace
		g.turnPlayers = []string{"alice"}
		g.replaceHearts = []string{"alice"}
		return g
	}

	g := build()
	if err := g.DoAction("alice", ContinueReplace{Indices: []int{}}); err == nil {
		t.Error("satisfying neither obligation succeeded, want error")
	}
	if err := g.DoAction("alice", ContinueReplace{Indices: []int{0, 1}}); err == nil {
		t.Error("replacing more cards than the deck holds succeeded, want error")
	}
	if err := g.DoAction("alice", ContinueReplace{Indices: []int{0}}); err != nil {
		t.Errorf("replacing just the anchor = %v, want accepted", err)
	}

	g = build()
	if err := g.DoAction("alice", ContinueReplace{Indices: []int{1}}); err != nil {
		t.Errorf("replacing just the heart = %v, want accepted", err)
	}
	if containsName(g.replaceHearts, "alice") {
		t.Error("heart obligation not cleared after replacing the heart")
	}
}

func TestForcedLossOfLastCards(t *testing.T) {
	g := riggedGame([]string{"alice", "bob", "carol"}, 0, map[string]shared.Hand{
		"alice": {down(shared.Spades, "2"), down(shared.Clubs, "3"), down(shared.Hearts, "4"), down(shared.Diamonds, "5")},
		// bob is down to two cards, so his loss is automatic
		"bob":   {down(shared.Spades, "4"), down(shared.Clubs, "5")},
		"carol": {down(shared.Clubs, "4"), down(shared.Diamonds, "6"), down(shared.Clubs, "8"), down(shared.Diamonds, "9")},
	})
	g.deck.Discard = []shared.Card{card(shared.Clubs, "9")}
	g.deck.Cards = []shared.Card{card(shared.Hearts, "2"), card(shared.Hearts, "3")}

	if err := g.DoAction("alice", CallShoot{Target: "bob"}); err != nil {
		t.Fatalf("CallShoot: %v", err)
	}
	if len(g.hands["bob"]) != 1 {
		t.Errorf("bob has %d cards, want 1 after the forced loss", len(g.hands["bob"]))
	}
	if !containsCard(g.deck.Discard, card(shared.Clubs, "5")) {
		t.Error("the rightmost card was not the one lost")
	}
	// bob's loss and his lone-anchor replacement were both forced, so the
	// whole challenge resolved without waiting on him
	if !containsCard(g.deck.Discard, card(shared.Spades, "4")) {
		t.Error("bob's revealed anchor was not replaced")
	}
	if g.hands["bob"][0].Visible {
		t.Error("bob's replacement anchor drawn faceup, want facedown")
	}
	if g.turnPhase != PhaseAction {
		t.Errorf("turnPhase = %q, want action", g.turnPhase)
	}
	if g.playerOrder[g.activePlayer] != "bob" {
		t.Errorf("active player = %q, want bob", g.playerOrder[g.activePlayer])
	}
}

func containsCard(cards []shared.Card, c shared.Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}
