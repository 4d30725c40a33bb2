package player

import (
	"slices"

	"github.com/ZygmuntJakub/preferans/internal/engine"
)

// HeuristicBot bids on an estimate of sure tricks, keeps its longest suit
// and plays the cheapest card that still wins.
type HeuristicBot struct {
	BotName string
}

func (b *HeuristicBot) Name() string {
	if b.BotName == "" {
		b.BotName = "HeuristicBot"
	}
	return b.BotName
}

// EstimateTricks is a rough count of tricks the hand takes with the longest
// suit as trump.
func EstimateTricks(hand []engine.Card) float64 {
	trump := engine.LongestSuit(hand)
	est := 0.0
	for _, s := range engine.Suits {
		n := 0
		for _, c := range hand {
			if c.Suit != s {
				continue
			}
			n++
			switch {
			case c.Rank == engine.Ace:
				est++
			case c.Rank == engine.King && n >= 2:
				est++
			case c.Rank == engine.Queen && n >= 3:
				est += 0.5
			}
		}
		if s == trump && n > 4 {
			est += float64(n - 4)
		}
	}
	return est
}

func (b *HeuristicBot) DecideBid(v View, legal []engine.Bid) (engine.Bid, error) {
	est := EstimateTricks(v.Hand)
	trump := engine.LongestSuit(v.Hand)
	var pass *engine.Bid
	for i, bid := range legal {
		switch bid.Type {
		case engine.BidPass:
			pass = &legal[i]
		case engine.BidGame:
			if est >= 6 && trump.BidValue() >= bid.Value {
				return bid, nil
			}
		case engine.BidInHand:
			if est >= 7.5 && (bid.Value == 0 || trump.BidValue() >= bid.Value) {
				return bid, nil
			}
		}
	}
	if pass != nil {
		return *pass, nil
	}
	return legal[0], nil
}

func (b *HeuristicBot) DecideDiscard(_ View, pool []engine.Card) ([]engine.Card, error) {
	trump := engine.LongestSuit(pool)
	cands := slices.Clone(pool)
	slices.SortStableFunc(cands, func(x, y engine.Card) int {
		if (x.Suit == trump) != (y.Suit == trump) {
			if x.Suit == trump {
				return 1
			}
			return -1
		}
		return int(x.Rank) - int(y.Rank)
	})
	return cands[:2], nil
}

func (b *HeuristicBot) DecideContract(v View, levels []int) (Announcement, error) {
	switch {
	case slices.Equal(levels, []int{6}):
		return announcementForLevel(6), nil
	case slices.Equal(levels, []int{7}):
		return announcementForLevel(7), nil
	}
	trump := engine.LongestSuit(v.Hand)
	if slices.Contains(levels, trump.BidValue()) {
		return Announcement{Type: engine.ContractSuit, Trump: &trump, Level: trump.BidValue()}, nil
	}
	return announcementForLevel(levels[0]), nil
}

func (b *HeuristicBot) DecideWhist(v View, legal []engine.WhistAction) (engine.WhistAction, error) {
	if v.Declarer {
		return legal[0], nil
	}
	high := 0
	for _, c := range v.Hand {
		if c.Rank >= engine.King {
			high++
		}
	}
	want := engine.WhistPass
	switch {
	case slices.Contains(legal, engine.WhistStartGame):
		want = engine.WhistStartGame
	case high >= 2:
		want = engine.WhistFollow
	}
	if slices.Contains(legal, want) {
		return want, nil
	}
	return legal[0], nil
}

func (b *HeuristicBot) DecideCard(v View, legal []engine.Card) (engine.Card, error) {
	lowest := func(cards []engine.Card) engine.Card {
		return slices.MinFunc(cards, func(x, y engine.Card) int { return int(x.Rank) - int(y.Rank) })
	}
	if v.Contract != nil && v.Contract.Type == engine.ContractBetl && v.Declarer {
		return lowest(legal), nil
	}
	best, ok := v.Trick.Best(v.Trump)
	if !ok {
		// leading: cash the highest card of the longest suit
		suit := engine.LongestSuit(legal)
		return slices.MaxFunc(legal, func(x, y engine.Card) int {
			if (x.Suit == suit) != (y.Suit == suit) {
				if x.Suit == suit {
					return 1
				}
				return -1
			}
			return int(x.Rank) - int(y.Rank)
		}), nil
	}
	var winners []engine.Card
	for _, c := range legal {
		if engine.CardBeats(c, best.Card, *v.Trick.LedSuit, v.Trump) {
			winners = append(winners, c)
		}
	}
	if len(winners) > 0 {
		return lowest(winners), nil
	}
	return lowest(legal), nil
}

func NewHeuristicBot() Player {
	return &HeuristicBot{}
}
