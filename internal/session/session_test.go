package session

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZygmuntJakub/preferans/internal/engine"
)

const (
	alice engine.PlayerID = "alice"
	bob   engine.PlayerID = "bob"
	carol engine.PlayerID = "carol"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func cards(t *testing.T, ids ...string) []engine.Card {
	t.Helper()
	cs, err := engine.ParseCards(ids)
	require.NoError(t, err)
	return cs
}

// fixedSession deals a known deck with carol dealing: alice is forehand and
// holds all clubs plus A/K of hearts, bob holds all spades plus J/Q of
// diamonds, carol the other hearts and low diamonds. The talon is K/A of
// diamonds.
func fixedSession(t *testing.T) *Session {
	t.Helper()
	s, err := New("test", []engine.PlayerID{alice, bob, carol}, quietLogger(), 1)
	require.NoError(t, err)
	g := engine.NewGame(s.log, engine.GameParams{}, carol, []engine.PlayerID{alice, bob, carol}, nil)
	hands := map[engine.PlayerID][]engine.Card{
		alice: cards(t, "7_clubs", "8_clubs", "9_clubs", "10_clubs", "J_clubs", "Q_clubs", "K_clubs", "A_clubs", "A_hearts", "K_hearts"),
		bob:   cards(t, "7_spades", "8_spades", "9_spades", "10_spades", "J_spades", "Q_spades", "K_spades", "A_spades", "J_diamonds", "Q_diamonds"),
		carol: cards(t, "7_hearts", "8_hearts", "9_hearts", "10_hearts", "J_hearts", "Q_hearts", "7_diamonds", "8_diamonds", "9_diamonds", "10_diamonds"),
	}
	require.NoError(t, g.SetDealtCards(hands, cards(t, "K_diamonds", "A_diamonds")))
	s.game = g
	return s
}

func exec(t *testing.T, s *Session, n int) {
	t.Helper()
	require.NoError(t, s.Execute(n), "commands were %v", s.Commands().Commands)
}

// declareClubs runs alice Game 2 / pass / pass, discards the talon and
// announces clubs through the command list.
func declareClubs(t *testing.T, s *Session) {
	t.Helper()
	exec(t, s, 2)
	exec(t, s, 1)
	exec(t, s, 1)
	exec(t, s, 11)
	exec(t, s, 11)
	assert.Equal(t, []string{"Spades", "Diamonds", "Hearts", "Clubs", "Betl", "Sans"}, s.Commands().Commands)
	exec(t, s, 4)
}

func TestNewValidatesPlayers(t *testing.T) {
	_, err := New("x", []engine.PlayerID{alice, bob}, quietLogger(), 1)
	assert.Error(t, err)
	_, err = New("x", []engine.PlayerID{alice, bob, bob}, quietLogger(), 1)
	assert.Error(t, err)

	s, err := New("x", []engine.PlayerID{alice, bob, carol}, quietLogger(), 7)
	require.NoError(t, err)
	snap := s.Snapshot()
	assert.Equal(t, "auction", snap.Phase)
	assert.Equal(t, carol, snap.Dealer)
	assert.Equal(t, 1, snap.Positions[alice])
	assert.Equal(t, 2, snap.TalonSize)
	for _, p := range []engine.PlayerID{alice, bob, carol} {
		assert.Len(t, snap.Hands[p], 10)
	}
}

func TestCommandsFollowTheRound(t *testing.T) {
	s := fixedSession(t)

	cl := s.Commands()
	assert.Equal(t, "auction", cl.Phase)
	assert.Equal(t, alice, cl.Player)
	assert.Equal(t, 1, cl.Position)
	assert.Equal(t, []string{"Pass", "Game 2", "In Hand", "Betl", "Sans"}, cl.Commands)

	exec(t, s, 2)
	cl = s.Commands()
	assert.Equal(t, carol, cl.Player, "bidding runs forehand, dealer, middlehand")
	assert.Equal(t, []string{"Pass", "Game 3", "In Hand", "Betl", "Sans"}, cl.Commands)
	exec(t, s, 1)
	exec(t, s, 1)

	cl = s.Commands()
	assert.Equal(t, "exchanging", cl.Phase)
	assert.Len(t, cl.Commands, 12)

	exec(t, s, 11)
	cl = s.Commands()
	assert.Len(t, cl.Commands, 11)
	assert.NotContains(t, cl.Commands, "11")
	assert.Len(t, s.Snapshot().Picked, 1)

	exec(t, s, 11)
	s.Read(func(g *engine.GameState) {
		assert.ElementsMatch(t, cards(t, "K_diamonds", "A_diamonds"), g.Deal.Discarded)
		assert.Len(t, g.Deal.Hands[alice], 10)
	})

	exec(t, s, 4)
	snap := s.Snapshot()
	require.NotNil(t, snap.Contract)
	assert.Equal(t, "clubs", snap.Contract.Trump)
	assert.Equal(t, "whisting", snap.Phase)

	cl = s.Commands()
	assert.Equal(t, bob, cl.Player)
	assert.Equal(t, []string{"Pass", "Follow"}, cl.Commands)
	exec(t, s, 2)
	cl = s.Commands()
	assert.Equal(t, carol, cl.Player)
	exec(t, s, 1)

	cl = s.Commands()
	assert.Equal(t, bob, cl.Player)
	assert.Equal(t, []string{"Start game", "Call", "Counter"}, cl.Commands)
	exec(t, s, 1)

	cl = s.Commands()
	assert.Equal(t, "playing", cl.Phase)
	assert.Equal(t, alice, cl.Player)
	require.Len(t, cl.Commands, 10)
	assert.Equal(t, "A♣", cl.Commands[0])
}

func TestAllPassSettlesAndDealsNextRound(t *testing.T) {
	s := fixedSession(t)
	declareClubs(t, s)
	exec(t, s, 1)
	exec(t, s, 1)

	cl := s.Commands()
	assert.Equal(t, "scoring", cl.Phase)
	assert.Equal(t, []string{"Next Round"}, cl.Commands)

	var won bool
	s.Read(func(g *engine.GameState) {
		res, err := g.Result()
		require.NoError(t, err)
		won = res.DeclarerWon
	})
	assert.True(t, won)

	exec(t, s, 1)
	snap := s.Snapshot()
	assert.Equal(t, 2, snap.Round)
	assert.Equal(t, alice, snap.Dealer)
	assert.Equal(t, "auction", snap.Phase)
}

func TestRedealCommand(t *testing.T) {
	s := fixedSession(t)
	exec(t, s, 1)
	exec(t, s, 1)
	exec(t, s, 1)
	assert.Equal(t, []string{"Redeal"}, s.Commands().Commands)
	exec(t, s, 1)
	assert.Equal(t, "auction", s.Snapshot().Phase)
}

func TestExecuteRejectsBadIndex(t *testing.T) {
	s := fixedSession(t)
	for _, n := range []int{0, -1, 6} {
		err := s.Execute(n)
		assert.True(t, errors.Is(err, ErrInvalidCommand), "n=%d: %v", n, err)
	}
	assert.Empty(t, s.Snapshot().Auction.Bids)
}

func TestDoReportsEngineErrors(t *testing.T) {
	s := fixedSession(t)
	err := s.Do(func(g *engine.GameState) error { return g.PlaceBid(bob, engine.BidGame, 2) })
	var me engine.MoveError
	assert.True(t, errors.As(err, &me), "out of turn: %v", err)
}

func TestSubscribeGetsSnapshots(t *testing.T) {
	s := fixedSession(t)
	ch, stop := s.Subscribe()

	first := <-ch
	assert.Empty(t, first.Auction.Bids)

	exec(t, s, 2)
	select {
	case snap := <-ch:
		require.Len(t, snap.Auction.Bids, 1)
		assert.Equal(t, "Game 2", snap.Auction.Bids[0].Label)
	case <-time.After(time.Second):
		t.Fatal("no snapshot after a move")
	}

	stop()
	_, ok := <-ch
	assert.False(t, ok)
	stop()
	exec(t, s, 1)
}

func TestExecuteLogsCommand(t *testing.T) {
	s := fixedSession(t)
	logger, hook := test.NewNullLogger()
	s.log = logger.WithField("session", s.ID)

	exec(t, s, 2)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "command executed", entry.Message)
	assert.Equal(t, "Game 2", entry.Data["executed"])
	assert.Equal(t, []string{"Pass", "Game 2", "In Hand", "Betl", "Sans"}, entry.Data["commands"])
	assert.Equal(t, alice, entry.Data["player"])

	hook.Reset()
	require.Error(t, s.Execute(42))
	assert.Empty(t, hook.AllEntries(), "rejected commands are not logged as executed")
}
