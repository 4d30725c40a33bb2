package engine

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
)

// EffectiveValue is the value used to compare bids.
func (b Bid) EffectiveValue() int {
	switch b.Type {
	case BidBetl:
		return 6
	case BidSans:
		return 7
	case BidPass:
		return 0
	}
	return b.Value
}

// Declared reports whether an in-hand bid carries a level.
func (b Bid) Declared() bool { return b.Type == BidInHand && b.Value > 0 }

// Label is the human readable name of the bid.
func (b Bid) Label() string {
	switch b.Type {
	case BidPass:
		return "Pass"
	case BidGame:
		return fmt.Sprintf("Game %d", b.Value)
	case BidInHand:
		if b.Value > 0 {
			return fmt.Sprintf("in_hand %d", b.Value)
		}
		return "In Hand"
	case BidBetl:
		return "Betl"
	case BidSans:
		return "Sans"
	}
	return b.Type.String()
}

func normalizeBid(b Bid) Bid {
	switch b.Type {
	case BidPass:
		b.Value = 0
	case BidBetl:
		b.Value = 6
	case BidSans:
		b.Value = 7
	}
	return b
}

func (a *AuctionState) hasPassed(p PlayerID) bool { return slices.Contains(a.Passed, p) }

func (a *AuctionState) hasDecided(p PlayerID) bool { return slices.Contains(a.Decided, p) }

func (a *AuctionState) isInHand(p PlayerID) bool { return slices.Contains(a.InHandPlayers, p) }

func (a *AuctionState) pass(p PlayerID) {
	if !a.hasPassed(p) {
		a.Passed = append(a.Passed, p)
	}
}

func (a *AuctionState) bidCount(p PlayerID) int {
	n := 0
	for _, b := range a.Bids {
		if b.Player == p {
			n++
		}
	}
	return n
}

func (a *AuctionState) hasBidType(p PlayerID, t BidType) bool {
	return slices.ContainsFunc(a.Bids, func(b Bid) bool { return b.Player == p && b.Type == t })
}

// currentHigh is the highest game-track value, 1 before any game bid.
func (a *AuctionState) currentHigh() int {
	if a.HighestGameBid == nil {
		return 1
	}
	return a.HighestGameBid.EffectiveValue()
}

func (a *AuctionState) addInHand(b Bid) {
	if !a.isInHand(b.Player) {
		a.InHandPlayers = append(a.InHandPlayers, b.Player)
	}
	if a.HighestInHandBid == nil || b.EffectiveValue() > a.HighestInHandBid.EffectiveValue() {
		a.HighestInHandBid = &b
	}
}

func (a *AuctionState) raiseGame(b Bid) {
	h := a.HighestGameBid
	if h == nil || b.EffectiveValue() > h.EffectiveValue() ||
		(b.Player == a.FirstGameBidder && b.EffectiveValue() == h.EffectiveValue()) {
		a.HighestGameBid = &b
	}
}

// undeclaredInHand lists in-hand players who have not declared a level and
// are still in the auction.
func (a *AuctionState) undeclaredInHand() []PlayerID {
	var out []PlayerID
	for _, p := range a.InHandPlayers {
		if a.hasPassed(p) {
			continue
		}
		declared := slices.ContainsFunc(a.Bids, func(b Bid) bool {
			return b.Player == p && (b.Declared() || b.Type == BidBetl || b.Type == BidSans)
		})
		if !declared {
			out = append(out, p)
		}
	}
	return out
}

// Winner returns the winning bid of a complete auction, or nil when all
// players passed.
func (a *AuctionState) Winner() *Bid {
	if a.Phase != AuctionComplete {
		return nil
	}
	if a.HighestInHandBid != nil {
		return a.HighestInHandBid
	}
	if a.HighestGameBid != nil && !a.hasPassed(a.HighestGameBid.Player) {
		return a.HighestGameBid
	}
	return nil
}

func (a *AuctionState) legalBids(p PlayerID) []Bid {
	pass := Bid{Player: p, Type: BidPass}
	switch a.Phase {
	case AuctionInitial:
		return []Bid{
			pass,
			{Player: p, Type: BidGame, Value: 2},
			{Player: p, Type: BidInHand},
			{Player: p, Type: BidBetl, Value: 6},
			{Player: p, Type: BidSans, Value: 7},
		}
	case AuctionGameBidding:
		high := a.currentHigh()
		bids := []Bid{pass}
		if p == a.FirstGameBidder {
			if high >= 2 && high <= 5 {
				bids = append(bids, Bid{Player: p, Type: BidGame, Value: high})
			}
		} else if high+1 <= 5 {
			bids = append(bids, Bid{Player: p, Type: BidGame, Value: high + 1})
		}
		if a.bidCount(p) == 0 {
			bids = append(bids,
				Bid{Player: p, Type: BidInHand},
				Bid{Player: p, Type: BidBetl, Value: 6},
				Bid{Player: p, Type: BidSans, Value: 7})
		} else if high == 5 {
			bids = append(bids, Bid{Player: p, Type: BidBetl, Value: 6})
		} else if high == 6 {
			bids = append(bids, Bid{Player: p, Type: BidSans, Value: 7})
		}
		return bids
	case AuctionInHandDeciding:
		h := a.HighestInHandBid
		switch {
		case h != nil && h.Type == BidSans:
			return []Bid{pass}
		case h != nil && h.Type == BidBetl:
			return []Bid{pass, {Player: p, Type: BidSans, Value: 7}}
		}
		return []Bid{
			pass,
			{Player: p, Type: BidInHand},
			{Player: p, Type: BidBetl, Value: 6},
			{Player: p, Type: BidSans, Value: 7},
		}
	case AuctionInHandDeclaring:
		h := a.HighestInHandBid
		var bids []Bid
		low := 2
		if h != nil && h.Declared() {
			bids = append(bids, pass)
			low = h.Value + 1
		}
		for v := low; v <= 5; v++ {
			bids = append(bids, Bid{Player: p, Type: BidInHand, Value: v})
		}
		return bids
	}
	return nil
}

// LegalBids returns the bids player may place now. It is empty when it is
// not the player's turn.
func (g *GameState) LegalBids(player PlayerID) []Bid {
	if g.Phase != PhaseAuction || player != g.Auction.CurrentBidder || g.Auction.hasPassed(player) {
		return nil
	}
	return g.Auction.legalBids(player)
}

func (a *AuctionState) rejectBid(b Bid) error {
	high := a.currentHigh()
	switch {
	case b.Type == BidGame && a.Phase == AuctionInitial:
		return MoveError("first game bid must be 2")
	case b.Type == BidGame && a.Phase == AuctionGameBidding && b.Player == a.FirstGameBidder:
		return moveErrorf("must hold at %d", high)
	case b.Type == BidGame && a.Phase == AuctionGameBidding && high >= 5:
		return MoveError("game bids are capped at 5")
	case b.Type == BidGame && a.Phase == AuctionGameBidding:
		return moveErrorf("must bid exactly %d", high+1)
	case b.Type == BidPass && a.Phase == AuctionInHandDeclaring:
		return MoveError("the first in-hand declaration cannot be a pass")
	case b.Type == BidInHand && a.Phase == AuctionInHandDeclaring:
		low := 2
		if h := a.HighestInHandBid; h != nil && h.Declared() {
			low = h.Value + 1
		}
		return moveErrorf("in-hand declaration must be between %d and 5", low)
	}
	return moveErrorf("%s is not allowed during %s", b.Label(), a.Phase)
}

// PlaceBid records a bid and advances the auction. Players whose only legal
// bid is a pass are passed automatically before the call returns.
func (g *GameState) PlaceBid(player PlayerID, bidType BidType, value int) error {
	if g.Phase != PhaseAuction {
		return PhaseError("not in auction phase")
	}
	a := &g.Auction
	if player != a.CurrentBidder {
		return moveErrorf("not %s's turn", player)
	}
	if a.hasPassed(player) {
		return moveErrorf("%s already passed", player)
	}
	b := normalizeBid(Bid{Player: player, Type: bidType, Value: value})
	if !slices.Contains(a.legalBids(player), b) {
		return a.rejectBid(b)
	}
	g.applyBid(b)
	for a.Phase != AuctionComplete {
		legal := a.legalBids(a.CurrentBidder)
		if len(legal) != 1 || legal[0].Type != BidPass {
			break
		}
		g.logger().WithField("player", a.CurrentBidder).Debug("forced pass")
		g.applyBid(legal[0])
	}
	if a.Phase == AuctionComplete {
		g.finishAuction()
	}
	return nil
}

func (g *GameState) applyBid(b Bid) {
	a := &g.Auction
	g.logger().WithFields(logrus.Fields{"player": b.Player, "bid": b.Label(), "auction": a.Phase.String()}).Debug("bid")
	a.Bids = append(a.Bids, b)
	a.Decided = append(a.Decided, b.Player)
	if b.Type == BidPass {
		a.pass(b.Player)
	}
	switch a.Phase {
	case AuctionInitial:
		g.afterInitialBid(b)
	case AuctionGameBidding:
		g.afterGameBid(b)
	case AuctionInHandDeciding:
		g.afterDecidingBid(b)
	case AuctionInHandDeclaring:
		g.afterDeclaringBid(b)
	}
}

func (g *GameState) enterAuctionPhase(phase AuctionPhase, decided ...PlayerID) {
	g.Auction.Phase = phase
	g.Auction.Decided = append([]PlayerID{}, decided...)
	g.logger().WithField("auction", phase.String()).Debug("auction phase")
}

func (g *GameState) undecided(p PlayerID) bool {
	return !g.Auction.hasDecided(p) && !g.Auction.hasPassed(p)
}

func (g *GameState) undeclared(p PlayerID) bool {
	return g.Auction.isInHand(p) && g.undecided(p)
}

func (g *GameState) othersPassed(p PlayerID) bool {
	for _, o := range g.Params.Players {
		if o != p && !g.Auction.hasPassed(o) {
			return false
		}
	}
	return true
}

func (g *GameState) afterInitialBid(b Bid) {
	a := &g.Auction
	switch b.Type {
	case BidPass:
		if len(a.Passed) == 3 {
			a.Phase = AuctionComplete
			return
		}
		a.CurrentBidder = g.nextWhere(b.Player, g.undecided)
	case BidGame:
		a.FirstGameBidder = b.Player
		a.raiseGame(b)
		g.enterAuctionPhase(AuctionGameBidding, b.Player)
		a.CurrentBidder = g.nextWhere(b.Player, func(p PlayerID) bool { return p != b.Player && !a.hasPassed(p) })
		if a.CurrentBidder == "" {
			a.Phase = AuctionComplete
		}
	default:
		a.addInHand(b)
		if !g.othersPassed(b.Player) {
			g.enterAuctionPhase(AuctionInHandDeciding, b.Player)
			a.CurrentBidder = g.nextWhere(b.Player, g.undecided)
			return
		}
		if b.Type != BidInHand {
			a.Phase = AuctionComplete
			return
		}
		g.enterAuctionPhase(AuctionInHandDeclaring)
		a.CurrentBidder = g.nextWhere(b.Player, g.undeclared)
	}
}

func (g *GameState) afterGameBid(b Bid) {
	a := &g.Auction
	if b.Type != BidPass && b.Type != BidGame && a.bidCount(b.Player) == 1 {
		a.addInHand(b)
		for _, x := range a.Bids {
			if x.Type == BidGame && !a.isInHand(x.Player) {
				a.pass(x.Player)
			}
		}
		waiting := slices.ContainsFunc(g.Params.Players, func(p PlayerID) bool {
			return a.bidCount(p) == 0 && !a.hasPassed(p)
		})
		if !waiting {
			a.Phase = AuctionComplete
			return
		}
		g.enterAuctionPhase(AuctionInHandDeciding, b.Player)
		a.CurrentBidder = g.nextWhere(b.Player, g.undecided)
		return
	}
	if b.Type != BidPass {
		a.raiseGame(b)
	}
	active := 0
	for _, p := range g.Params.Players {
		if !a.hasPassed(p) {
			active++
		}
	}
	if active <= 1 {
		a.Phase = AuctionComplete
		return
	}
	a.CurrentBidder = g.nextWhere(b.Player, func(p PlayerID) bool { return p != b.Player && !a.hasPassed(p) })
}

func (g *GameState) afterDecidingBid(b Bid) {
	a := &g.Auction
	switch b.Type {
	case BidSans:
		a.addInHand(b)
		a.Phase = AuctionComplete
		return
	case BidBetl:
		a.addInHand(b)
		var responders []PlayerID
		for _, p := range a.InHandPlayers {
			if p != b.Player && !a.hasPassed(p) && a.hasBidType(p, BidBetl) && !a.hasBidType(p, BidSans) {
				responders = append(responders, p)
			}
		}
		if len(responders) > 0 {
			var decided []PlayerID
			for _, p := range g.Params.Players {
				if !slices.Contains(responders, p) {
					decided = append(decided, p)
				}
			}
			g.enterAuctionPhase(AuctionInHandDeciding, decided...)
			a.CurrentBidder = g.nextWhere(b.Player, g.undecided)
			return
		}
	case BidInHand:
		a.addInHand(b)
	}
	if next := g.nextWhere(b.Player, g.undecided); next != "" {
		a.CurrentBidder = next
		return
	}
	if h := a.HighestInHandBid; h != nil && (h.Type == BidBetl || h.Type == BidSans) {
		a.Phase = AuctionComplete
		return
	}
	undeclared := a.undeclaredInHand()
	switch len(undeclared) {
	case 0:
		a.HighestInHandBid = nil
	case 1:
		for i := range a.Bids {
			if a.Bids[i].Player == undeclared[0] && a.Bids[i].Type == BidInHand {
				bid := a.Bids[i]
				a.HighestInHandBid = &bid
				break
			}
		}
	default:
		g.enterAuctionPhase(AuctionInHandDeclaring)
		a.CurrentBidder = g.nextWhere(b.Player, g.undeclared)
		return
	}
	a.Phase = AuctionComplete
}

func (g *GameState) afterDeclaringBid(b Bid) {
	a := &g.Auction
	if b.Type == BidInHand {
		a.addInHand(b)
	}
	if next := g.nextWhere(b.Player, g.undeclared); next != "" {
		a.CurrentBidder = next
		return
	}
	a.Phase = AuctionComplete
}

// finishAuction resolves the declarer and moves the round on.
func (g *GameState) finishAuction() {
	a := &g.Auction
	a.CurrentBidder = ""
	w := a.Winner()
	log := g.logger()
	if w == nil {
		g.Phase = PhaseRedeal
		log.Info("all players passed, redeal")
		return
	}
	declarer := w.Player
	g.Declarer = &declarer
	log = log.WithFields(logrus.Fields{"declarer": declarer, "bid": w.Label()})
	if a.HighestInHandBid == nil {
		g.Phase = PhaseExchanging
		log.Debug("auction won, exchanging")
		return
	}
	switch {
	case w.Type == BidBetl:
		g.Contract = &Contract{Type: ContractBetl, BidValue: 6, InHand: true}
	case w.Type == BidSans:
		g.Contract = &Contract{Type: ContractSans, BidValue: 7, InHand: true}
	case w.Declared():
		trump, _ := SuitForLevel(w.Value)
		g.Contract = &Contract{Type: ContractSuit, Trump: &trump, BidValue: w.Value, InHand: true}
	default:
		g.Phase = PhaseExchanging
		log.Debug("in-hand auction won, contract pending")
		return
	}
	log.Debug("in-hand contract fixed by the auction")
	g.enterWhisting()
}
