package engine

import (
	"slices"

	"github.com/sirupsen/logrus"
)

func (g *GameState) checkExchange(player PlayerID) error {
	if g.Phase != PhaseExchanging {
		return PhaseError("not in exchanging phase")
	}
	if !g.IsDeclarer(player) {
		return MoveError("only the declarer may do that")
	}
	return nil
}

func (g *GameState) inHandWin() bool { return g.Auction.HighestInHandBid != nil }

func (g *GameState) checkTalon(player PlayerID) error {
	if err := g.checkExchange(player); err != nil {
		return err
	}
	if g.inHandWin() {
		return MoveError("the talon stays closed in an in-hand game")
	}
	return nil
}

// NeedsDiscard reports whether the declarer still has to exchange with the
// talon before announcing.
func (g *GameState) NeedsDiscard() bool {
	return g.Phase == PhaseExchanging && !g.inHandWin() && len(g.Deal.Discarded) < 2
}

// PickUpTalon moves the talon into the declarer's hand and returns the
// picked up cards.
func (g *GameState) PickUpTalon(player PlayerID) ([]Card, error) {
	if err := g.checkTalon(player); err != nil {
		return nil, err
	}
	if len(g.Deal.Talon) == 0 {
		return nil, MoveError("talon already picked up")
	}
	talon := g.Deal.Talon
	hand := append(append([]Card{}, g.Deal.Hands[player]...), talon...)
	SortHand(hand)
	g.Deal.Hands[player] = hand
	g.Deal.Talon = nil
	g.logger().WithField("player", player).Debug("talon picked up")
	return slices.Clone(talon), nil
}

// Discard puts two cards from the 12-card hand aside and returns them.
func (g *GameState) Discard(player PlayerID, cards []Card) ([]Card, error) {
	if err := g.checkTalon(player); err != nil {
		return nil, err
	}
	hand := g.Deal.Hands[player]
	if len(hand) != 12 {
		return nil, PhaseError("pick up the talon before discarding")
	}
	if len(cards) != 2 || !distinct(cards) {
		return nil, MoveError("must discard exactly 2 cards")
	}
	for _, c := range cards {
		if _, ok := indexOfCard(hand, c); !ok {
			return nil, moveErrorf("card %v not in hand", c)
		}
	}
	g.Deal.Hands[player] = removeCards(hand, cards)
	g.Deal.Discarded = append([]Card{}, cards...)
	g.logger().WithField("player", player).Debug("discarded")
	return slices.Clone(cards), nil
}

// CompleteExchange picks up the talon and discards two cards from the
// combined pool in one step.
func (g *GameState) CompleteExchange(player PlayerID, cards []Card) error {
	if err := g.checkTalon(player); err != nil {
		return err
	}
	if len(g.Deal.Talon) == 0 || len(g.Deal.Hands[player]) != 10 {
		return MoveError("talon already picked up")
	}
	if len(cards) != 2 || !distinct(cards) {
		return MoveError("must discard exactly 2 cards")
	}
	pool := append(append([]Card{}, g.Deal.Hands[player]...), g.Deal.Talon...)
	for _, c := range cards {
		if _, ok := indexOfCard(pool, c); !ok {
			return moveErrorf("card %v is neither in hand nor in the talon", c)
		}
	}
	hand := removeCards(pool, cards)
	SortHand(hand)
	g.Deal.Hands[player] = hand
	g.Deal.Talon = nil
	g.Deal.Discarded = append([]Card{}, cards...)
	g.logger().WithField("player", player).Debug("exchange complete")
	return nil
}

// BestTrumpSuit suggests a trump from the player's longest suit.
func (g *GameState) BestTrumpSuit(player PlayerID) Suit {
	return LongestSuit(g.Deal.Hands[player])
}

// LegalContractLevels returns the levels the declarer may announce.
func (g *GameState) LegalContractLevels(player PlayerID) []int {
	if g.Phase != PhaseExchanging || !g.IsDeclarer(player) {
		return nil
	}
	w := g.Auction.Winner()
	if w == nil {
		return nil
	}
	switch {
	case w.Type == BidBetl:
		return []int{6}
	case w.Type == BidSans:
		return []int{7}
	case w.Declared():
		return []int{w.Value}
	case w.Type == BidInHand:
		return []int{2, 3, 4, 5}
	}
	var levels []int
	for v := w.Value; v <= 7; v++ {
		levels = append(levels, v)
	}
	return levels
}

// AnnounceContract fixes the contract and opens whisting. level 0 picks the
// natural level of the contract when that level is legal.
func (g *GameState) AnnounceContract(player PlayerID, ct ContractType, trump *Suit, level int) error {
	if err := g.checkExchange(player); err != nil {
		return err
	}
	inHand := g.inHandWin()
	if !inHand && (len(g.Deal.Talon) != 0 || len(g.Deal.Discarded) != 2 || len(g.Deal.Hands[player]) != 10) {
		return PhaseError("finish the exchange before announcing")
	}
	levels := g.LegalContractLevels(player)
	w := g.Auction.Winner()
	natural := 0
	switch ct {
	case ContractSuit:
		if trump == nil {
			return MoveError("suit contract needs a trump")
		}
		if _, ok := suitNames[*trump]; !ok {
			return moveErrorf("unknown trump %d", int(*trump))
		}
		if trump.BidValue() < w.EffectiveValue() {
			return moveErrorf("trump %v is below the winning bid %d", *trump, w.EffectiveValue())
		}
		natural = trump.BidValue()
	case ContractBetl:
		natural = 6
	case ContractSans:
		natural = 7
	default:
		return moveErrorf("unknown contract type %d", int(ct))
	}
	if ct != ContractSuit && trump != nil {
		return moveErrorf("%s has no trump", ct)
	}
	if level == 0 {
		switch {
		case slices.Contains(levels, natural):
			level = natural
		case len(levels) == 1:
			level = levels[0]
		default:
			return moveErrorf("choose a level from %v", levels)
		}
	}
	if !slices.Contains(levels, level) {
		return moveErrorf("level %d is not allowed, choose one of %v", level, levels)
	}
	switch {
	case ct == ContractSuit && level > 5:
		return moveErrorf("suit contracts are played at levels 2-5, not %d", level)
	case ct != ContractSuit && level != natural:
		return moveErrorf("%s is played at level %d", ct, natural)
	}
	c := Contract{Type: ct, BidValue: max(level, natural), InHand: inHand}
	if trump != nil {
		s := *trump
		c.Trump = &s
	}
	g.Contract = &c
	g.logger().WithFields(logrus.Fields{"player": player, "contract": ct.String(), "value": c.BidValue}).Info("contract announced")
	g.enterWhisting()
	return nil
}
