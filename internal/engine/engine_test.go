package engine

import (
	"errors"
	"io"
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
)

const (
	p1 PlayerID = "P1"
	p2 PlayerID = "P2"
	p3 PlayerID = "P3"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func mustCards(t *testing.T, ids ...string) []Card {
	t.Helper()
	cards, err := ParseCards(ids)
	if err != nil {
		t.Fatalf("parse cards: %v", err)
	}
	return cards
}

// newTestGame seats the players so that the rotation runs P1 -> P2 -> P3
// (P1 forehand, P3 middlehand, P2 dealer) and deals a fixed deck:
// P1 holds all clubs plus A/K of hearts, P2 the rest of hearts and low
// diamonds, P3 all spades plus J/Q of diamonds. The talon is K/A diamonds.
func newTestGame(t *testing.T) *GameState {
	t.Helper()
	g := NewGame(quietLogger(), GameParams{}, p2, []PlayerID{p2, p1, p3}, nil)
	hands := map[PlayerID][]Card{
		p1: mustCards(t, "7_clubs", "8_clubs", "9_clubs", "10_clubs", "J_clubs", "Q_clubs", "K_clubs", "A_clubs", "A_hearts", "K_hearts"),
		p2: mustCards(t, "7_hearts", "8_hearts", "9_hearts", "10_hearts", "J_hearts", "Q_hearts", "7_diamonds", "8_diamonds", "9_diamonds", "10_diamonds"),
		p3: mustCards(t, "7_spades", "8_spades", "9_spades", "10_spades", "J_spades", "Q_spades", "K_spades", "A_spades", "J_diamonds", "Q_diamonds"),
	}
	if err := g.SetDealtCards(hands, mustCards(t, "K_diamonds", "A_diamonds")); err != nil {
		t.Fatalf("deal: %v", err)
	}
	return g
}

func bid(t *testing.T, g *GameState, p PlayerID, bt BidType, v int) {
	t.Helper()
	if err := g.PlaceBid(p, bt, v); err != nil {
		t.Fatalf("%s %s %d: %v", p, bt, v, err)
	}
}

// declareP1Clubs runs P1 Game 2 / pass / pass, swaps the diamonds out and
// announces clubs.
func declareP1Clubs(t *testing.T) *GameState {
	t.Helper()
	g := newTestGame(t)
	bid(t, g, p1, BidGame, 2)
	bid(t, g, p2, BidPass, 0)
	bid(t, g, p3, BidPass, 0)
	if err := g.CompleteExchange(p1, mustCards(t, "K_diamonds", "A_diamonds")); err != nil {
		t.Fatalf("exchange: %v", err)
	}
	clubs := Clubs
	if err := g.AnnounceContract(p1, ContractSuit, &clubs, 0); err != nil {
		t.Fatalf("announce: %v", err)
	}
	return g
}

// playOut drives the current round to its end choosing moves with r.
func playOut(t *testing.T, g *GameState, r *rand.Rand) {
	t.Helper()
	for steps := 0; steps < 500; steps++ {
		actor, ok := g.CurrentActor()
		if !ok {
			return
		}
		var err error
		switch g.Phase {
		case PhaseAuction:
			legal := g.LegalBids(actor)
			b := legal[r.IntN(len(legal))]
			err = g.PlaceBid(actor, b.Type, b.Value)
		case PhaseExchanging:
			if !g.inHandWin() && len(g.Deal.Talon) > 0 {
				hand := g.Deal.Hands[actor]
				err = g.CompleteExchange(actor, hand[:2])
				break
			}
			level := g.LegalContractLevels(actor)[0]
			switch level {
			case 6:
				err = g.AnnounceContract(actor, ContractBetl, nil, 6)
			case 7:
				err = g.AnnounceContract(actor, ContractSans, nil, 7)
			default:
				trump, _ := SuitForLevel(level)
				err = g.AnnounceContract(actor, ContractSuit, &trump, level)
			}
		case PhaseWhisting:
			actions := g.LegalWhistActions(actor)
			a := actions[r.IntN(len(actions))]
			if g.Whist.CounterStep || g.Whist.DeclarerResponds {
				err = g.DeclareCounterAction(actor, a)
			} else {
				err = g.DeclareWhist(actor, a)
			}
		case PhasePlaying:
			cards := g.LegalCards(actor)
			_, err = g.PlayCard(actor, cards[r.IntN(len(cards))])
		}
		if err != nil {
			t.Fatalf("phase %s, actor %s: %v", g.Phase, actor, err)
		}
	}
	t.Fatalf("round did not finish")
}

func TestDealPartitionsDeck(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		g, err := StartRound(quietLogger(), []PlayerID{p1, p2, p3}, p3, rand.New(rand.NewPCG(seed, seed)))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		seen := map[Card]bool{}
		for _, p := range []PlayerID{p1, p2, p3} {
			if len(g.Deal.Hands[p]) != 10 {
				t.Fatalf("seed %d: %s holds %d cards", seed, p, len(g.Deal.Hands[p]))
			}
			for _, c := range g.Deal.Hands[p] {
				seen[c] = true
			}
		}
		for _, c := range g.Deal.Talon {
			seen[c] = true
		}
		if len(g.Deal.Talon) != 2 || len(seen) != 32 {
			t.Fatalf("seed %d: talon %d, unique %d", seed, len(g.Deal.Talon), len(seen))
		}
	}
}

func TestPositionsFollowDealer(t *testing.T) {
	g := NewGame(quietLogger(), GameParams{}, p1, []PlayerID{p1, p2, p3}, nil)
	if g.Positions[p2] != 1 || g.Positions[p3] != 2 || g.Positions[p1] != 3 {
		t.Fatalf("unexpected positions %v", g.Positions)
	}
	if err := g.DealCards(rand.New(rand.NewPCG(7, 7))); err != nil {
		t.Fatalf("deal: %v", err)
	}
	if g.Auction.CurrentBidder != p2 {
		t.Fatalf("forehand should open the auction, got %s", g.Auction.CurrentBidder)
	}
	if g.next(p2) != p1 || g.next(p1) != p3 || g.next(p3) != p2 {
		t.Fatalf("rotation must run 1 -> 3 -> 2")
	}
}

func TestEdgeCases_TableDriven(t *testing.T) {
	type tc struct {
		name string
		run  func(t *testing.T)
	}
	cases := []tc{
		{name: "duplicate card rejected", run: func(t *testing.T) {
			g := NewGame(quietLogger(), GameParams{}, p2, []PlayerID{p2, p1, p3}, nil)
			deck := NewDeck()
			hands := map[PlayerID][]Card{p1: deck[0:10], p2: deck[10:20], p3: append(append([]Card{}, deck[20:29]...), deck[0])}
			if err := g.SetDealtCards(hands, deck[30:32]); err == nil {
				t.Fatalf("expected duplicate error")
			}
			if g.Phase != PhaseDeal {
				t.Fatalf("phase changed on rejected deal")
			}
		}},
		{name: "two players rejected", run: func(t *testing.T) {
			g := NewGame(quietLogger(), GameParams{}, p1, []PlayerID{p1, p2}, nil)
			if err := g.DealCards(rand.New(rand.NewPCG(1, 2))); err == nil {
				t.Fatalf("expected error for two players")
			}
		}},
		{name: "bid outside auction", run: func(t *testing.T) {
			g := declareP1Clubs(t)
			var pe PhaseError
			if err := g.PlaceBid(p2, BidPass, 0); !errors.As(err, &pe) {
				t.Fatalf("expected PhaseError, got %v", err)
			}
		}},
		{name: "next round only after scoring", run: func(t *testing.T) {
			g := newTestGame(t)
			var pe PhaseError
			if err := g.StartNextRound(rand.New(rand.NewPCG(1, 1))); !errors.As(err, &pe) {
				t.Fatalf("expected PhaseError, got %v", err)
			}
		}},
		{name: "result before scoring", run: func(t *testing.T) {
			g := newTestGame(t)
			if _, err := g.Result(); err == nil {
				t.Fatalf("expected error")
			}
		}},
		{name: "current actor follows the phase", run: func(t *testing.T) {
			g := declareP1Clubs(t)
			if a, ok := g.CurrentActor(); !ok || a != p3 {
				t.Fatalf("expected P3 to declare first, got %s", a)
			}
		}},
	}
	for _, c := range cases {
		t.Run(c.name, c.run)
	}
}

func TestFullRoundDeclarerTakesAll(t *testing.T) {
	g := declareP1Clubs(t)
	if err := g.DeclareWhist(p3, WhistFollow); err != nil {
		t.Fatalf("P3 follow: %v", err)
	}
	if err := g.DeclareWhist(p2, WhistPass); err != nil {
		t.Fatalf("P2 pass: %v", err)
	}
	if err := g.DeclareCounterAction(p3, WhistStartGame); err != nil {
		t.Fatalf("start: %v", err)
	}
	if g.Phase != PhasePlaying || g.Play.CurrentTrick.Leader != p1 {
		t.Fatalf("expected P1 to lead, phase %s leader %s", g.Phase, g.Play.CurrentTrick.Leader)
	}
	tricks := 0
	for g.Phase == PhasePlaying {
		actor := g.CurrentTurnPlayer()
		res, err := g.PlayCard(actor, g.LegalCards(actor)[0])
		if err != nil {
			t.Fatalf("play: %v", err)
		}
		if res.TrickComplete {
			tricks++
			if res.TrickWinner != p1 {
				t.Fatalf("trick %d won by %s", tricks, res.TrickWinner)
			}
		}
	}
	if tricks != 10 || g.Play.TricksWon[p1] != 10 {
		t.Fatalf("expected 10 tricks for P1, got %d/%d", tricks, g.Play.TricksWon[p1])
	}
	res, err := g.Result()
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	// clubs is bid 5: game value 10, P3 followed and took nothing
	if !res.DeclarerWon || res.GameValue != 10 || res.DeclarerChange != 100 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Defenders[0].Player != p3 || res.Defenders[0].ScoreChange != -100 {
		t.Fatalf("unexpected follower result %+v", res.Defenders[0])
	}
	if res.Scores[p1] != 100 || res.Scores[p3] != -100 || res.Scores[p2] != 0 {
		t.Fatalf("unexpected totals %v", res.Scores)
	}
}

func TestStartNextRoundRotatesDealer(t *testing.T) {
	g := declareP1Clubs(t)
	if err := g.DeclareWhist(p3, WhistPass); err != nil {
		t.Fatal(err)
	}
	if err := g.DeclareWhist(p2, WhistPass); err != nil {
		t.Fatal(err)
	}
	if g.Phase != PhaseScoring {
		t.Fatalf("expected scoring, got %s", g.Phase)
	}
	before := g.Scores.Cumulative[p1]
	if err := g.StartNextRound(rand.New(rand.NewPCG(3, 4))); err != nil {
		t.Fatalf("next round: %v", err)
	}
	if g.Dealer != p1 || g.Round != 2 || g.Phase != PhaseAuction {
		t.Fatalf("dealer %s round %d phase %s", g.Dealer, g.Round, g.Phase)
	}
	if g.Positions[p3] != 1 || g.Positions[p2] != 2 || g.Positions[p1] != 3 {
		t.Fatalf("positions not rotated: %v", g.Positions)
	}
	if g.Declarer != nil || g.Contract != nil || g.Scores.Last != nil {
		t.Fatalf("round state not cleared")
	}
	if g.Scores.Cumulative[p1] != before {
		t.Fatalf("running score lost")
	}
}

func TestRandomRoundsKeepInvariants(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 1))
	g, err := StartRound(quietLogger(), []PlayerID{p1, p2, p3}, p1, r)
	if err != nil {
		t.Fatal(err)
	}
	for round := 0; round < 200; round++ {
		playOut(t, g, r)
		switch g.Phase {
		case PhaseScoring:
			res, err := g.Result()
			if err != nil {
				t.Fatal(err)
			}
			sum := res.DeclarerChange
			for _, d := range res.Defenders {
				sum += d.ScoreChange
			}
			if sum > 1e-9 || sum < -1e-9 {
				t.Fatalf("round %d is not zero-sum: %v", round, sum)
			}
			if len(g.Play.CompletedTricks) == 10 {
				total := 0
				for _, n := range g.Play.TricksWon {
					total += n
				}
				if total != 10 {
					t.Fatalf("round %d: tricks sum to %d", round, total)
				}
			}
		case PhaseRedeal:
		default:
			t.Fatalf("round %d ended in %s", round, g.Phase)
		}
		if err := g.StartNextRound(r); err != nil {
			t.Fatal(err)
		}
	}
	total := 0.0
	for _, s := range g.Scores.Cumulative {
		total += s
	}
	if total > 1e-6 || total < -1e-6 {
		t.Fatalf("running totals drifted: %v", total)
	}
}
