package engine

import (
	"maps"

	"github.com/sirupsen/logrus"
)

// ScoreInput is what settling a round needs to know.
type ScoreInput struct {
	Declarer       PlayerID
	Contract       Contract
	DeclarerTricks int
	// Defenders carry their whist action and tricks; ScoreChange is ignored.
	Defenders     []DefenderResult
	Counter       bool
	DoubleCounter bool
	CounterPlayer PlayerID
}

// GameValue is bid*2, plus 2 in hand, doubled by a counter and quadrupled
// by a double counter.
func GameValue(c Contract, counter, doubleCounter bool) int {
	gv := c.BidValue * 2
	if c.InHand {
		gv += 2
	}
	switch {
	case doubleCounter:
		gv *= 4
	case counter:
		gv *= 2
	}
	return gv
}

// whistScore settles tricks taken on the defending side: at or above the
// threshold they are paid capped at five, below it the shortfall penalty
// applies.
func whistScore(tricks, threshold, gv int) float64 {
	if tricks >= threshold {
		return float64(min(tricks, 5) * gv)
	}
	return float64(-gv*10 + tricks*gv)
}

// ScoreRound settles a round and applies the zero-sum adjustment.
func ScoreRound(in ScoreInput) RoundResult {
	gv := GameValue(in.Contract, in.Counter, in.DoubleCounter)
	res := RoundResult{
		Declarer:       in.Declarer,
		Contract:       in.Contract,
		DeclarerTricks: in.DeclarerTricks,
		GameValue:      gv,
		Defenders:      append([]DefenderResult{}, in.Defenders...),
	}
	defs := res.Defenders
	for i := range defs {
		defs[i].ScoreChange = 0
	}
	var followers []int
	caller := -1
	totalDefence := 0
	for i, d := range defs {
		totalDefence += d.Tricks
		if d.Action != WhistPass {
			followers = append(followers, i)
		}
		if d.Action == WhistCall {
			caller = i
		}
	}
	counterIdx := -1
	for i, d := range defs {
		if in.Counter && d.Player == in.CounterPlayer {
			counterIdx = i
		}
	}
	penalty := float64(gv * 10)

	if in.Contract.Type == ContractBetl {
		res.DeclarerWon = in.DeclarerTricks == 0
		res.DeclarerChange = -penalty
		if res.DeclarerWon {
			res.DeclarerChange = penalty
		}
		switch {
		case counterIdx >= 0:
			defs[counterIdx].ScoreChange = -res.DeclarerChange
		case !res.DeclarerWon:
			for i := range defs {
				defs[i].ScoreChange = float64(gv * 5)
			}
		}
		return zeroSum(res)
	}

	res.DeclarerWon = in.DeclarerTricks >= 6 || len(followers) == 0
	res.DeclarerChange = -penalty
	if res.DeclarerWon {
		res.DeclarerChange = penalty
	}
	switch {
	case len(followers) == 0:
	case counterIdx >= 0:
		defs[counterIdx].ScoreChange = whistScore(totalDefence, 5, gv)
	case caller >= 0:
		defs[caller].ScoreChange = whistScore(totalDefence, 4, gv)
	case len(followers) == 2:
		if totalDefence >= 4 {
			scored := min(totalDefence, 5)
			for i := range defs {
				defs[i].ScoreChange = float64(defs[i].Tricks) / float64(totalDefence) * float64(scored*gv)
			}
			break
		}
		for i := range defs {
			defs[i].ScoreChange = whistScore(defs[i].Tricks, 2, gv)
		}
	default:
		f := followers[0]
		defs[f].ScoreChange = whistScore(defs[f].Tricks, 2, gv)
	}
	return zeroSum(res)
}

// zeroSum subtracts a third of the round's net from every player.
func zeroSum(res RoundResult) RoundResult {
	total := res.DeclarerChange
	for _, d := range res.Defenders {
		total += d.ScoreChange
	}
	adj := total / 3
	res.ZeroSumAdjustment = adj
	res.DeclarerChange -= adj
	for i := range res.Defenders {
		res.Defenders[i].ScoreChange -= adj
	}
	return res
}

// score settles the finished round into the running totals.
func (g *GameState) score() {
	declarer := *g.Declarer
	in := ScoreInput{
		Declarer:       declarer,
		Contract:       *g.Contract,
		DeclarerTricks: g.Play.TricksWon[declarer],
		Counter:        g.Whist.Counter,
		DoubleCounter:  g.Whist.DoubleCounter,
		CounterPlayer:  g.Whist.CounterPlayer,
	}
	for _, d := range g.Whist.Defenders {
		in.Defenders = append(in.Defenders, DefenderResult{Player: d, Action: g.Whist.Declarations[d], Tricks: g.Play.TricksWon[d]})
	}
	res := ScoreRound(in)
	g.Scores.Cumulative[declarer] += res.DeclarerChange
	for _, d := range res.Defenders {
		g.Scores.Cumulative[d.Player] += d.ScoreChange
	}
	res.Scores = maps.Clone(g.Scores.Cumulative)
	g.Scores.Last = &res
	g.logger().WithFields(logrus.Fields{
		"declarer": declarer,
		"contract": res.Contract.Type.String(),
		"won":      res.DeclarerWon,
		"change":   res.DeclarerChange,
	}).Info("round scored")
}
