package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardIDRoundTrip(t *testing.T) {
	deck := NewDeck()
	require.Len(t, deck, 32)
	ids := map[string]bool{}
	for _, c := range deck {
		id := c.ID()
		ids[id] = true
		back, err := ParseCard(id)
		require.NoError(t, err, id)
		assert.Equal(t, c, back)
	}
	assert.Len(t, ids, 32)
	assert.Equal(t, "10_hearts", Card{Suit: Hearts, Rank: Ten}.ID())
	assert.Equal(t, "A_spades", Card{Suit: Spades, Rank: Ace}.ID())
}

func TestParseCardErrors(t *testing.T) {
	for _, id := range []string{"", "hearts", "11_hearts", "A_stars", "10-hearts"} {
		_, err := ParseCard(id)
		assert.Error(t, err, id)
	}
}

func TestSuitValuesAndLevels(t *testing.T) {
	assert.Equal(t, 2, Spades.BidValue())
	assert.Equal(t, 3, Diamonds.BidValue())
	assert.Equal(t, 4, Hearts.BidValue())
	assert.Equal(t, 5, Clubs.BidValue())
	for level, want := range map[int]Suit{2: Spades, 3: Diamonds, 4: Hearts, 5: Clubs} {
		s, ok := SuitForLevel(level)
		assert.True(t, ok)
		assert.Equal(t, want, s)
	}
	_, ok := SuitForLevel(6)
	assert.False(t, ok)
	s, err := ParseSuit("♥")
	require.NoError(t, err)
	assert.Equal(t, Hearts, s)
}

func TestSortHand(t *testing.T) {
	hand := mustCards(t, "7_spades", "A_hearts", "10_clubs", "K_spades", "8_diamonds", "J_clubs")
	SortHand(hand)
	want := mustCards(t, "J_clubs", "10_clubs", "A_hearts", "8_diamonds", "K_spades", "7_spades")
	assert.Equal(t, want, hand)
}

func TestLongestSuit(t *testing.T) {
	hand := mustCards(t, "7_spades", "8_spades", "9_hearts", "10_hearts", "A_clubs")
	assert.Equal(t, Hearts, LongestSuit(hand))
}

func TestCardBeats(t *testing.T) {
	hearts := Hearts
	cases := []struct {
		name  string
		a, b  string
		led   Suit
		trump *Suit
		want  bool
	}{
		{"higher of led suit", "A_spades", "K_spades", Spades, nil, true},
		{"lower of led suit", "7_spades", "8_spades", Spades, nil, false},
		{"off suit never wins", "A_clubs", "7_spades", Spades, nil, false},
		{"trump beats led", "7_hearts", "A_spades", Spades, &hearts, true},
		{"led loses to trump", "A_spades", "7_hearts", Spades, &hearts, false},
		{"higher trump", "8_hearts", "7_hearts", Spades, &hearts, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := mustCards(t, c.a)[0]
			b := mustCards(t, c.b)[0]
			assert.Equal(t, c.want, CardBeats(a, b, c.led, c.trump))
		})
	}
}
