package engine

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/sirupsen/logrus"
)

// PhaseError is returned for commands issued in the wrong phase.
type PhaseError string

func (e PhaseError) Error() string { return string(e) }

// MoveError is returned for commands that break the rules.
type MoveError string

func (e MoveError) Error() string { return string(e) }

func moveErrorf(format string, args ...any) error {
	return MoveError(fmt.Sprintf(format, args...))
}

// NewGame prepares a round waiting for cards to be dealt. Players are given
// in seating order.
func NewGame(log logrus.FieldLogger, params GameParams, dealer PlayerID, players []PlayerID, cumulative map[PlayerID]float64) *GameState {
	if log == nil {
		log = logrus.StandardLogger()
	}
	gs := &GameState{
		Phase:  PhaseDeal,
		Params: params,
		Round:  1,
		Dealer: dealer,
		Scores: ScoreState{Cumulative: map[PlayerID]float64{}},
		log:    log,
	}
	gs.Params.Players = append([]PlayerID{}, players...)
	for _, p := range players {
		gs.Scores.Cumulative[p] = cumulative[p]
	}
	gs.resetRound()
	return gs
}

// StartRound creates a game and deals the first round.
func StartRound(log logrus.FieldLogger, players []PlayerID, dealer PlayerID, r *rand.Rand) (*GameState, error) {
	g := NewGame(log, GameParams{}, dealer, players, nil)
	if err := g.DealCards(r); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *GameState) resetRound() {
	g.Positions = map[PlayerID]int{}
	if i := slices.Index(g.Params.Players, g.Dealer); i >= 0 && len(g.Params.Players) == 3 {
		g.Positions[g.Params.Players[(i+1)%3]] = 1
		g.Positions[g.Params.Players[(i+2)%3]] = 2
		g.Positions[g.Dealer] = 3
	}
	g.Declarer = nil
	g.Deal = DealState{Hands: map[PlayerID][]Card{}}
	g.Auction = AuctionState{}
	g.Contract = nil
	g.Whist = WhistState{}
	g.Play = PlayState{TricksWon: map[PlayerID]int{}}
	for _, p := range g.Params.Players {
		g.Play.TricksWon[p] = 0
	}
	g.Scores.Last = nil
}

func (g *GameState) logger() logrus.FieldLogger {
	return g.log.WithField("round", g.Round)
}

// DealCards shuffles a fresh deck and deals it 3-talon-4-3 in position order.
func (g *GameState) DealCards(r *rand.Rand) error {
	if g.Phase != PhaseDeal {
		return PhaseError("not in deal phase")
	}
	deck := ShuffledDeck(r)
	hands := map[PlayerID][]Card{}
	var talon []Card
	take := func(n int) []Card {
		cards := deck[:n]
		deck = deck[n:]
		return cards
	}
	for _, p := range g.byPosition() {
		hands[p] = append(hands[p], take(3)...)
	}
	talon = append(talon, take(2)...)
	for _, n := range []int{4, 3} {
		for _, p := range g.byPosition() {
			hands[p] = append(hands[p], take(n)...)
		}
	}
	return g.SetDealtCards(hands, talon)
}

// SetDealtCards installs explicit hands and talon and opens the auction.
func (g *GameState) SetDealtCards(hands map[PlayerID][]Card, talon []Card) error {
	if g.Phase != PhaseDeal {
		return PhaseError("not in deal phase")
	}
	if len(g.Params.Players) != 3 {
		return fmt.Errorf("exactly 3 players required, got %d", len(g.Params.Players))
	}
	if len(g.Positions) != 3 {
		return fmt.Errorf("dealer %s is not seated", g.Dealer)
	}
	for _, p := range g.Params.Players {
		if len(hands[p]) != 10 {
			return fmt.Errorf("player %s must have 10 cards", p)
		}
	}
	if len(talon) != 2 {
		return fmt.Errorf("talon must have 2 cards")
	}
	seen := map[Card]bool{}
	add := func(c Card) error {
		if _, ok := suitNames[c.Suit]; !ok || c.Rank < Seven || c.Rank > Ace {
			return fmt.Errorf("invalid card %v", c)
		}
		if seen[c] {
			return fmt.Errorf("duplicate card detected: %v", c)
		}
		seen[c] = true
		return nil
	}
	for _, p := range g.Params.Players {
		for _, c := range hands[p] {
			if err := add(c); err != nil {
				return err
			}
		}
	}
	for _, c := range talon {
		if err := add(c); err != nil {
			return err
		}
	}
	if len(seen) != 32 {
		return fmt.Errorf("expected 32 unique cards, got %d", len(seen))
	}
	for _, p := range g.Params.Players {
		hand := append([]Card{}, hands[p]...)
		SortHand(hand)
		g.Deal.Hands[p] = hand
	}
	g.Deal.Talon = append([]Card{}, talon...)
	g.Phase = PhaseAuction
	g.Auction = AuctionState{Phase: AuctionInitial, CurrentBidder: g.PlayerAt(1)}
	g.logger().WithField("dealer", g.Dealer).Debug("cards dealt, auction open")
	return nil
}

// StartNextRound rotates the dealer and deals a new round. It is allowed
// after scoring and after an all-pass redeal.
func (g *GameState) StartNextRound(r *rand.Rand) error {
	if g.Phase != PhaseScoring && g.Phase != PhaseRedeal {
		return PhaseError("round is not finished")
	}
	g.Dealer = nextPlayer(g.Params.Players, g.Dealer)
	g.Round++
	g.Phase = PhaseDeal
	g.resetRound()
	return g.DealCards(r)
}

func nextPlayer(players []PlayerID, current PlayerID) PlayerID {
	for i, p := range players {
		if p == current {
			return players[(i+1)%len(players)]
		}
	}
	return players[0]
}

// nextPosition follows the bidding and trick rotation 1 -> 3 -> 2 -> 1.
func nextPosition(pos int) int { return (pos+1)%3 + 1 }

// PlayerAt returns the player seated at position 1..3 this round.
func (g *GameState) PlayerAt(pos int) PlayerID {
	for p, at := range g.Positions {
		if at == pos {
			return p
		}
	}
	return ""
}

func (g *GameState) byPosition() []PlayerID {
	return []PlayerID{g.PlayerAt(1), g.PlayerAt(2), g.PlayerAt(3)}
}

// next returns the player after p in the rotation.
func (g *GameState) next(p PlayerID) PlayerID {
	return g.PlayerAt(nextPosition(g.Positions[p]))
}

// nextWhere walks the rotation after from (ending with from itself) and
// returns the first player accepted by ok.
func (g *GameState) nextWhere(from PlayerID, ok func(PlayerID) bool) PlayerID {
	p := from
	for range 3 {
		p = g.next(p)
		if ok(p) {
			return p
		}
	}
	return ""
}

// CurrentActor returns the player expected to act next, if any.
func (g *GameState) CurrentActor() (PlayerID, bool) {
	switch g.Phase {
	case PhaseAuction:
		return g.Auction.CurrentBidder, true
	case PhaseExchanging:
		return *g.Declarer, true
	case PhaseWhisting:
		return g.Whist.Current, true
	case PhasePlaying:
		return g.CurrentTurnPlayer(), true
	}
	return "", false
}

// IsDeclarer reports whether p won the auction this round.
func (g *GameState) IsDeclarer(p PlayerID) bool {
	return g.Declarer != nil && *g.Declarer == p
}

// Result returns the settlement of a finished round.
func (g *GameState) Result() (RoundResult, error) {
	if g.Phase != PhaseScoring || g.Scores.Last == nil {
		return RoundResult{}, PhaseError("round is not scored yet")
	}
	return *g.Scores.Last, nil
}
