package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// CurrentTurnPlayer returns the player whose turn it is within the current trick.
func (g *GameState) CurrentTurnPlayer() PlayerID {
	p := g.Play.CurrentTrick.Leader
	for range g.Play.CurrentTrick.Plays {
		p = g.next(p)
	}
	return p
}

// LegalCards returns the cards player may play now.
func (g *GameState) LegalCards(player PlayerID) []Card {
	if g.Phase != PhasePlaying || player != g.CurrentTurnPlayer() {
		return nil
	}
	hand := g.Deal.Hands[player]
	led := g.Play.CurrentTrick.LedSuit
	if led == nil {
		return append([]Card{}, hand...)
	}
	if hasCardOfSuit(hand, *led) {
		return cardsOfSuit(hand, *led)
	}
	if trump := g.Play.Trump; trump != nil && hasCardOfSuit(hand, *trump) {
		return cardsOfSuit(hand, *trump)
	}
	return append([]Card{}, hand...)
}

func cardsOfSuit(hand []Card, s Suit) []Card {
	var out []Card
	for _, c := range hand {
		if c.Suit == s {
			out = append(out, c)
		}
	}
	return out
}

func canFollow(g *GameState, player PlayerID, card Card) error {
	led := g.Play.CurrentTrick.LedSuit
	if led == nil {
		return nil
	}
	hand := g.Deal.Hands[player]
	if card.Suit != *led && hasCardOfSuit(hand, *led) {
		return moveErrorf("must follow %v", *led)
	}
	trump := g.Play.Trump
	if card.Suit != *led && trump != nil && card.Suit != *trump && hasCardOfSuit(hand, *trump) {
		return moveErrorf("must play a trump %v", *trump)
	}
	return nil
}

// PlayCard plays a card into the current trick and resolves it once all
// three players have played.
func (g *GameState) PlayCard(player PlayerID, card Card) (PlayResult, error) {
	if g.Phase != PhasePlaying {
		return PlayResult{}, PhaseError("not in playing phase")
	}
	if player != g.CurrentTurnPlayer() {
		return PlayResult{}, moveErrorf("not %s's turn", player)
	}
	hand := g.Deal.Hands[player]
	idx, ok := indexOfCard(hand, card)
	if !ok {
		return PlayResult{}, moveErrorf("card %v not in hand", card)
	}
	if err := canFollow(g, player, card); err != nil {
		return PlayResult{}, err
	}
	trick := &g.Play.CurrentTrick
	if len(trick.Plays) == 0 {
		s := card.Suit
		trick.LedSuit = &s
	}
	trick.Plays = append(trick.Plays, Play{Player: player, Card: card})
	g.Deal.Hands[player] = append(hand[:idx:idx], hand[idx+1:]...)
	if len(trick.Plays) < 3 {
		return PlayResult{}, nil
	}
	winner, err := g.resolveTrick()
	if err != nil {
		return PlayResult{}, err
	}
	res := PlayResult{TrickComplete: true, TrickWinner: winner}
	g.logger().WithFields(logrus.Fields{"trick": trick.Number, "winner": winner}).Debug("trick complete")
	g.Play.TricksWon[winner]++
	g.Play.CompletedTricks = append(g.Play.CompletedTricks, *trick)
	if len(g.Play.CompletedTricks) == 10 {
		g.Play.CurrentTrick = Trick{}
		g.Phase = PhaseScoring
		g.score()
		res.RoundComplete = true
		return res, nil
	}
	g.Play.CurrentTrick = Trick{Number: trick.Number + 1, Leader: winner}
	return res, nil
}

// Best returns the play currently winning the trick.
func (t Trick) Best(trump *Suit) (Play, bool) {
	if len(t.Plays) == 0 || t.LedSuit == nil {
		return Play{}, false
	}
	best := t.Plays[0]
	for _, p := range t.Plays[1:] {
		if CardBeats(p.Card, best.Card, *t.LedSuit, trump) {
			best = p
		}
	}
	return best, true
}

func (g *GameState) resolveTrick() (PlayerID, error) {
	trick := &g.Play.CurrentTrick
	best, ok := trick.Best(g.Play.Trump)
	if !ok {
		return "", fmt.Errorf("trick %d has no plays", trick.Number)
	}
	trick.Winner = best.Player
	return trick.Winner, nil
}
