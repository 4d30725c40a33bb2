package player

import (
	"fmt"
	"slices"

	"github.com/ZygmuntJakub/preferans/internal/engine"
)

// ViewFor builds what p can see of g.
func ViewFor(g *engine.GameState, p engine.PlayerID) View {
	return View{
		Me:       p,
		Position: g.Positions[p],
		Hand:     slices.Clone(g.Deal.Hands[p]),
		Declarer: g.IsDeclarer(p),
		Contract: g.Contract,
		Trick:    g.Play.CurrentTrick,
		Trump:    g.Play.Trump,
	}
}

// Step asks the seat on turn for one move and applies it. It reports false
// once the round needs no more input.
func Step(g *engine.GameState, seats map[engine.PlayerID]Player) (bool, error) {
	actor, ok := g.CurrentActor()
	if !ok {
		return false, nil
	}
	seat, ok := seats[actor]
	if !ok {
		return false, fmt.Errorf("no player seated for %s", actor)
	}
	v := ViewFor(g, actor)
	switch g.Phase {
	case engine.PhaseAuction:
		legal := g.LegalBids(actor)
		b, err := seat.DecideBid(v, legal)
		if err != nil {
			return false, err
		}
		return true, g.PlaceBid(actor, b.Type, b.Value)
	case engine.PhaseExchanging:
		if g.NeedsDiscard() {
			pool := append(slices.Clone(g.Deal.Hands[actor]), g.Deal.Talon...)
			cards, err := seat.DecideDiscard(v, pool)
			if err != nil {
				return false, err
			}
			if len(g.Deal.Talon) == 0 {
				_, err := g.Discard(actor, cards)
				return true, err
			}
			return true, g.CompleteExchange(actor, cards)
		}
		a, err := seat.DecideContract(v, g.LegalContractLevels(actor))
		if err != nil {
			return false, err
		}
		return true, g.AnnounceContract(actor, a.Type, a.Trump, a.Level)
	case engine.PhaseWhisting:
		act, err := seat.DecideWhist(v, g.LegalWhistActions(actor))
		if err != nil {
			return false, err
		}
		if g.Whist.CounterStep || g.Whist.DeclarerResponds {
			return true, g.DeclareCounterAction(actor, act)
		}
		return true, g.DeclareWhist(actor, act)
	case engine.PhasePlaying:
		c, err := seat.DecideCard(v, g.LegalCards(actor))
		if err != nil {
			return false, err
		}
		_, err = g.PlayCard(actor, c)
		return true, err
	}
	return false, nil
}

// PlayRound drives the current round until it is scored or redealt.
func PlayRound(g *engine.GameState, seats map[engine.PlayerID]Player) error {
	for {
		more, err := Step(g, seats)
		if err != nil {
			return fmt.Errorf("round %d, %s: %w", g.Round, g.Phase, err)
		}
		if !more {
			return nil
		}
	}
}
