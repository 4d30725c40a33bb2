package main

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"

	"github.com/ZygmuntJakub/preferans/internal/config"
	"github.com/ZygmuntJakub/preferans/internal/engine"
	"github.com/ZygmuntJakub/preferans/internal/player"
)

var bots = map[string]player.PlayerFactory{
	"random":    player.NewRandomBot,
	"heuristic": player.NewHeuristicBot,
}

// newBot builds a bot of the given kind; random bots draw from r so a seeded
// run is repeatable.
func newBot(kind string, r *rand.Rand) player.Player {
	p := bots[kind]()
	if rb, ok := p.(*player.RandomBot); ok {
		rb.Rand = r
	}
	return p
}

func colorCard(c engine.Card) string {
	if c.Suit == engine.Hearts || c.Suit == engine.Diamonds {
		return pterm.LightRed(c.String())
	}
	return pterm.LightWhite(c.String())
}

func handString(hand []engine.Card) string {
	parts := make([]string, 0, len(hand))
	for _, c := range hand {
		parts = append(parts, colorCard(c))
	}
	return strings.Join(parts, " ")
}

// StartSimulation plays cfg.SimRounds rounds between bots and prints every
// deal, contract and settlement.
func StartSimulation(cfg config.Config, log *logrus.Logger) error {
	seed := cfg.SimSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	r := rand.New(rand.NewPCG(seed, seed))
	ids := []engine.PlayerID{"P1", "P2", "P3"}
	seats := map[engine.PlayerID]player.Player{}
	for i, id := range ids {
		seats[id] = newBot(cfg.SimBots[i], r)
	}
	pterm.DefaultHeader.Println("Preferans simulation")
	pterm.Info.Printfln("seed %d, %d rounds", seed, cfg.SimRounds)

	g, err := engine.StartRound(log, ids, ids[2], r)
	if err != nil {
		return err
	}
	for round := 1; round <= cfg.SimRounds; round++ {
		if round > 1 {
			if err := g.StartNextRound(r); err != nil {
				return err
			}
		}
		pterm.DefaultSection.Printfln("Round %d, dealer %s", g.Round, g.Dealer)
		for _, id := range ids {
			pterm.Printfln("%s (%s, pos %d): %s", id, seats[id].Name(), g.Positions[id], handString(g.Deal.Hands[id]))
		}
		pterm.Printfln("talon: %s", handString(g.Deal.Talon))

		if err := player.PlayRound(g, seats); err != nil {
			return fmt.Errorf("round %d: %w", round, err)
		}
		if g.Phase == engine.PhaseRedeal {
			pterm.Warning.Println("all players passed, redeal")
			continue
		}
		if err := printResult(g); err != nil {
			return err
		}
	}

	data := pterm.TableData{{"Player", "Bot", "Score"}}
	for _, id := range ids {
		data = append(data, []string{string(id), seats[id].Name(), fmt.Sprintf("%.2f", g.Scores.Cumulative[id])})
	}
	pterm.DefaultSection.Println("Final scores")
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printResult(g *engine.GameState) error {
	res, err := g.Result()
	if err != nil {
		return err
	}
	contract := res.Contract.Type.String()
	if res.Contract.Trump != nil {
		contract = res.Contract.Trump.Name()
	}
	if res.Contract.InHand {
		contract += " in hand"
	}
	outcome := pterm.Green("made")
	if !res.DeclarerWon {
		outcome = pterm.Red("failed")
	}
	pterm.Info.Printfln("%s plays %s (value %d), %d tricks, %s", res.Declarer, contract, res.GameValue, res.DeclarerTricks, outcome)

	data := pterm.TableData{{"Player", "Role", "Tricks", "Change", "Total"}}
	data = append(data, []string{string(res.Declarer), "declarer", fmt.Sprint(res.DeclarerTricks),
		fmt.Sprintf("%+.2f", res.DeclarerChange), fmt.Sprintf("%.2f", res.Scores[res.Declarer])})
	for _, d := range res.Defenders {
		data = append(data, []string{string(d.Player), d.Action.String(), fmt.Sprint(d.Tricks),
			fmt.Sprintf("%+.2f", d.ScoreChange), fmt.Sprintf("%.2f", res.Scores[d.Player])})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
