package session

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ZygmuntJakub/preferans/internal/engine"
)

// ErrInvalidCommand is returned by Execute for an index outside the command list.
var ErrInvalidCommand = errors.New("invalid command")

var levelLabels = map[int]string{2: "Spades", 3: "Diamonds", 4: "Hearts", 5: "Clubs", 6: "Betl", 7: "Sans"}

// Session is one running game. All access to the game goes through the
// session lock.
type Session struct {
	ID string

	mu     sync.Mutex
	game   *engine.GameState
	rng    *rand.Rand
	log    logrus.FieldLogger
	picked []engine.Card
	subs   map[chan Snapshot]struct{}
}

// New seats players in the given order with the last one dealing and deals
// the first round. seed 0 picks a random seed.
func New(id string, players []engine.PlayerID, log logrus.FieldLogger, seed uint64) (*Session, error) {
	if len(players) != 3 || len(slices.Compact(slices.Sorted(slices.Values(players)))) != 3 {
		return nil, engine.MoveError("a game needs three distinct players")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if seed == 0 {
		seed = rand.Uint64()
	}
	log = log.WithField("session", id)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	g, err := engine.StartRound(log, players, players[2], rng)
	if err != nil {
		return nil, err
	}
	log.WithField("players", players).Info("game created")
	return &Session{
		ID:   id,
		game: g,
		rng:  rng,
		log:  log,
		subs: map[chan Snapshot]struct{}{},
	}, nil
}

// Do runs fn against the game under the session lock. Subscribers get a new
// snapshot when fn succeeds.
func (s *Session) Do(fn func(g *engine.GameState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.game); err != nil {
		return err
	}
	s.changed()
	return nil
}

// Read runs fn against the game under the session lock without notifying
// subscribers.
func (s *Session) Read(fn func(g *engine.GameState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game)
}

// NextRound deals the following round once the current one is over.
func (s *Session) NextRound() error {
	return s.Do(func(g *engine.GameState) error {
		s.picked = nil
		return g.StartNextRound(s.rng)
	})
}

// CommandList is the numbered list of moves open to the acting player.
type CommandList struct {
	Phase    string          `json:"phase"`
	Player   engine.PlayerID `json:"player,omitempty"`
	Position int             `json:"player_position,omitempty"`
	Commands []string        `json:"commands"`
}

// Commands lists the legal moves of the player on turn as labels.
func (s *Session) Commands() CommandList {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commands()
}

func (s *Session) commands() CommandList {
	g := s.game
	out := CommandList{Phase: g.Phase.String(), Commands: []string{}}
	actor, ok := g.CurrentActor()
	if ok {
		out.Player = actor
		out.Position = g.Positions[actor]
	}
	switch g.Phase {
	case engine.PhaseAuction:
		for _, b := range g.LegalBids(actor) {
			out.Commands = append(out.Commands, b.Label())
		}
	case engine.PhaseExchanging:
		if g.NeedsDiscard() {
			for i, c := range s.discardPool() {
				if !slices.Contains(s.picked, c) {
					out.Commands = append(out.Commands, strconv.Itoa(i+1))
				}
			}
			break
		}
		for _, lvl := range g.LegalContractLevels(actor) {
			out.Commands = append(out.Commands, levelLabels[lvl])
		}
	case engine.PhaseWhisting:
		for _, a := range g.LegalWhistActions(actor) {
			out.Commands = append(out.Commands, a.Label())
		}
	case engine.PhasePlaying:
		for _, c := range g.LegalCards(actor) {
			out.Commands = append(out.Commands, c.String())
		}
	case engine.PhaseScoring:
		out.Commands = append(out.Commands, "Next Round")
	case engine.PhaseRedeal:
		out.Commands = append(out.Commands, "Redeal")
	}
	return out
}

// discardPool is the declarer's hand followed by the talon.
func (s *Session) discardPool() []engine.Card {
	g := s.game
	return append(slices.Clone(g.Deal.Hands[*g.Declarer]), g.Deal.Talon...)
}

// Execute applies the n-th (1-based) entry of Commands.
func (s *Session) Execute(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cl := s.commands()
	if n < 1 || n > len(cl.Commands) {
		return fmt.Errorf("%w %d", ErrInvalidCommand, n)
	}
	if err := s.execute(n - 1); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"phase":    cl.Phase,
		"player":   cl.Player,
		"commands": cl.Commands,
		"executed": cl.Commands[n-1],
	}).Info("command executed")
	s.changed()
	return nil
}

func (s *Session) execute(i int) error {
	g := s.game
	actor, _ := g.CurrentActor()
	switch g.Phase {
	case engine.PhaseAuction:
		b := g.LegalBids(actor)[i]
		return g.PlaceBid(actor, b.Type, b.Value)
	case engine.PhaseExchanging:
		if g.NeedsDiscard() {
			var avail []engine.Card
			for _, c := range s.discardPool() {
				if !slices.Contains(s.picked, c) {
					avail = append(avail, c)
				}
			}
			s.picked = append(s.picked, avail[i])
			if len(s.picked) < 2 {
				return nil
			}
			picked := s.picked
			s.picked = nil
			if len(g.Deal.Talon) == 0 {
				_, err := g.Discard(actor, picked)
				return err
			}
			return g.CompleteExchange(actor, picked)
		}
		lvl := g.LegalContractLevels(actor)[i]
		switch lvl {
		case 6:
			return g.AnnounceContract(actor, engine.ContractBetl, nil, lvl)
		case 7:
			return g.AnnounceContract(actor, engine.ContractSans, nil, lvl)
		}
		trump, _ := engine.SuitForLevel(lvl)
		return g.AnnounceContract(actor, engine.ContractSuit, &trump, lvl)
	case engine.PhaseWhisting:
		a := g.LegalWhistActions(actor)[i]
		if g.Whist.CounterStep || g.Whist.DeclarerResponds {
			return g.DeclareCounterAction(actor, a)
		}
		return g.DeclareWhist(actor, a)
	case engine.PhasePlaying:
		_, err := g.PlayCard(actor, g.LegalCards(actor)[i])
		return err
	case engine.PhaseScoring, engine.PhaseRedeal:
		return g.StartNextRound(s.rng)
	}
	return engine.PhaseError(fmt.Sprintf("no commands during %s", g.Phase))
}

// Snapshot returns the current public view of the game.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subscribe returns a channel receiving a snapshot after every change and a
// func to stop receiving. Slow readers miss intermediate snapshots.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	ch <- s.snapshot()
	s.mu.Unlock()
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	}
}

func (s *Session) changed() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshot()
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}
