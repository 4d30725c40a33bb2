package engine

import (
	"slices"

	"github.com/sirupsen/logrus"
)

// Label is the human readable name of a whist action.
func (w WhistAction) Label() string {
	switch w {
	case WhistPass:
		return "Pass"
	case WhistFollow:
		return "Follow"
	case WhistCall:
		return "Call"
	case WhistCounter:
		return "Counter"
	case WhistStartGame:
		return "Start game"
	case WhistDoubleCounter:
		return "Double counter"
	}
	return w.String()
}

// enterWhisting seats the defenders after the contract is fixed.
func (g *GameState) enterWhisting() {
	g.Phase = PhaseWhisting
	pos := g.Positions[*g.Declarer]
	defenders := []PlayerID{g.PlayerAt(pos%3 + 1), g.PlayerAt((pos+1)%3 + 1)}
	g.Whist = WhistState{Defenders: defenders, Declarations: map[PlayerID]WhistAction{}}
	if g.Contract.Type == ContractBetl {
		for _, d := range defenders {
			g.Whist.Declarations[d] = WhistFollow
		}
		g.Whist.Order = append([]PlayerID{}, defenders...)
		g.Whist.Followers = append([]PlayerID{}, defenders...)
		g.openCounterStep()
		return
	}
	g.Whist.Current = defenders[0]
}

func (g *GameState) openCounterStep() {
	w := &g.Whist
	w.CounterStep = true
	w.Pending = append([]PlayerID{}, w.Followers...)
	w.Current = w.Pending[0]
}

func (g *GameState) someonePassed() bool {
	for _, d := range g.Whist.Defenders {
		if a, ok := g.Whist.Declarations[d]; ok && a == WhistPass {
			return true
		}
	}
	return false
}

// LegalWhistActions returns the answers open to player right now.
func (g *GameState) LegalWhistActions(player PlayerID) []WhistAction {
	w := &g.Whist
	if g.Phase != PhaseWhisting || player != w.Current {
		return nil
	}
	switch {
	case w.DeclarerResponds:
		return []WhistAction{WhistStartGame, WhistDoubleCounter}
	case w.CounterStep:
		actions := []WhistAction{WhistStartGame}
		if g.Contract.Type == ContractSuit && g.someonePassed() {
			actions = append(actions, WhistCall)
		}
		return append(actions, WhistCounter)
	}
	actions := []WhistAction{WhistPass, WhistFollow}
	if len(w.Order) > 0 && len(w.Followers) == 0 {
		actions = append(actions, WhistCall, WhistCounter)
	}
	return actions
}

// DeclareWhist records a defender's Pass, Follow, Call or Counter.
func (g *GameState) DeclareWhist(player PlayerID, action WhistAction) error {
	if g.Phase != PhaseWhisting {
		return PhaseError("not in whisting phase")
	}
	w := &g.Whist
	if w.CounterStep || w.DeclarerResponds {
		return PhaseError("whist declarations are closed")
	}
	if player != w.Current {
		return moveErrorf("not %s's turn", player)
	}
	if !slices.Contains(g.LegalWhistActions(player), action) {
		return moveErrorf("%s is not allowed now", action.Label())
	}
	w.Declarations[player] = action
	w.Order = append(w.Order, player)
	if action != WhistPass {
		w.Followers = append(w.Followers, player)
	}
	if action == WhistCounter {
		w.Counter = true
		w.CounterPlayer = player
	}
	g.logger().WithFields(logrus.Fields{"player": player, "whist": action.String()}).Debug("whist declared")
	for _, d := range w.Defenders {
		if _, ok := w.Declarations[d]; !ok {
			w.Current = d
			return nil
		}
	}
	g.afterDeclarations()
	return nil
}

func (g *GameState) afterDeclarations() {
	w := &g.Whist
	switch {
	case len(w.Followers) == 0:
		w.Current = ""
		g.logger().Debug("nobody follows, declarer wins")
		g.Phase = PhaseScoring
		g.score()
	case w.Counter:
		w.DeclarerResponds = true
		w.Current = *g.Declarer
	case len(w.Followers) == 1 && w.Followers[0] != w.Order[0] && g.Contract.Type == ContractSuit:
		g.startPlay()
	default:
		g.openCounterStep()
	}
}

// DeclareCounterAction answers the counter step: followers choose StartGame,
// Call or Counter; the declarer answers a counter with StartGame or
// DoubleCounter.
func (g *GameState) DeclareCounterAction(player PlayerID, action WhistAction) error {
	if g.Phase != PhaseWhisting {
		return PhaseError("not in whisting phase")
	}
	w := &g.Whist
	if !w.CounterStep && !w.DeclarerResponds {
		return PhaseError("counter step is not open")
	}
	if player != w.Current {
		return moveErrorf("not %s's turn", player)
	}
	if !slices.Contains(g.LegalWhistActions(player), action) {
		return moveErrorf("%s is not allowed now", action.Label())
	}
	g.logger().WithFields(logrus.Fields{"player": player, "counter": action.String()}).Debug("counter action")
	if w.DeclarerResponds {
		if action == WhistDoubleCounter {
			w.DoubleCounter = true
		}
		g.startPlay()
		return nil
	}
	w.Pending = w.Pending[1:]
	switch action {
	case WhistCounter:
		w.Counter = true
		w.CounterPlayer = player
		w.Declarations[player] = WhistCounter
		w.CounterStep = false
		w.Pending = nil
		w.DeclarerResponds = true
		w.Current = *g.Declarer
		return nil
	case WhistCall:
		w.Declarations[player] = WhistCall
	}
	if len(w.Pending) > 0 {
		w.Current = w.Pending[0]
		return nil
	}
	g.startPlay()
	return nil
}

// startPlay closes whisting and seats the first leader.
func (g *GameState) startPlay() {
	w := &g.Whist
	w.CounterStep, w.DeclarerResponds, w.Current = false, false, ""
	g.Phase = PhasePlaying
	if g.Contract.Trump != nil {
		t := *g.Contract.Trump
		g.Play.Trump = &t
	}
	pos := g.Positions[*g.Declarer]
	var leader PlayerID
	if g.Contract.Type == ContractSans {
		// the player seated before the declarer
		leader = g.PlayerAt((pos+1)%3 + 1)
	} else {
		lowest := pos
		for _, f := range w.Followers {
			lowest = min(lowest, g.Positions[f])
		}
		leader = g.PlayerAt(lowest)
	}
	g.Play.CurrentTrick = Trick{Number: 1, Leader: leader}
	g.logger().WithField("leader", leader).Debug("play starts")
}
