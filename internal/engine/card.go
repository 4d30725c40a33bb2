package engine

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

var suitNames = map[Suit]string{Spades: "spades", Diamonds: "diamonds", Hearts: "hearts", Clubs: "clubs"}

var suitSymbols = map[Suit]string{Spades: "♠", Diamonds: "♦", Hearts: "♥", Clubs: "♣"}

var rankNames = map[Rank]string{Seven: "7", Eight: "8", Nine: "9", Ten: "10", Jack: "J", Queen: "Q", King: "K", Ace: "A"}

// Suits lists all suits by ascending bid value.
var Suits = []Suit{Spades, Diamonds, Hearts, Clubs}

// Ranks lists all ranks in ascending order.
var Ranks = []Rank{Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// BidValue is the auction value of a suit contract with this trump.
func (s Suit) BidValue() int { return int(s) }

// Name is the lowercase name used in card ids.
func (s Suit) Name() string { return suitNames[s] }

func (s Suit) String() string {
	if sym, ok := suitSymbols[s]; ok {
		return sym
	}
	return fmt.Sprintf("Suit(%d)", int(s))
}

func (r Rank) String() string {
	if n, ok := rankNames[r]; ok {
		return n
	}
	return fmt.Sprintf("Rank(%d)", int(r))
}

func (c Card) String() string { return c.Rank.String() + c.Suit.String() }

// ID returns the canonical "<rank>_<suit>" identifier, e.g. "10_hearts".
func (c Card) ID() string { return c.Rank.String() + "_" + c.Suit.Name() }

// ParseSuit accepts a suit name ("hearts") or symbol ("♥").
func ParseSuit(s string) (Suit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, suit := range Suits {
		if s == suit.Name() || s == suit.String() {
			return suit, nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", s)
}

// ParseCard parses a card id produced by Card.ID.
func ParseCard(id string) (Card, error) {
	rank, suit, ok := strings.Cut(id, "_")
	if !ok {
		return Card{}, fmt.Errorf("malformed card id %q", id)
	}
	s, err := ParseSuit(suit)
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", id, err)
	}
	for _, r := range Ranks {
		if strings.EqualFold(rank, r.String()) {
			return Card{Suit: s, Rank: r}, nil
		}
	}
	return Card{}, fmt.Errorf("card %q: unknown rank %q", id, rank)
}

// ParseCards parses a list of card ids.
func ParseCards(ids []string) ([]Card, error) {
	cards := make([]Card, 0, len(ids))
	for _, id := range ids {
		c, err := ParseCard(id)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// SuitForLevel maps an in-hand level 2..5 to its trump suit.
func SuitForLevel(level int) (Suit, bool) {
	s := Suit(level)
	_, ok := suitNames[s]
	return s, ok
}

// NewDeck returns the 32 cards in a fixed order.
func NewDeck() []Card {
	deck := make([]Card, 0, len(Suits)*len(Ranks))
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// ShuffledDeck returns a new deck shuffled with r.
func ShuffledDeck(r *rand.Rand) []Card {
	deck := NewDeck()
	r.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}

// SortHand orders cards by suit bid value, then rank, both descending.
func SortHand(hand []Card) {
	slices.SortFunc(hand, func(a, b Card) int {
		if a.Suit != b.Suit {
			return int(b.Suit) - int(a.Suit)
		}
		return int(b.Rank) - int(a.Rank)
	})
}

// LongestSuit returns the suit the hand holds most cards of, preferring the
// higher bid value on ties.
func LongestSuit(hand []Card) Suit {
	best, bestN := Spades, -1
	for _, s := range Suits {
		if n := countSuit(hand, s); n >= bestN {
			best, bestN = s, n
		}
	}
	return best
}

func countSuit(hand []Card, s Suit) int {
	n := 0
	for _, c := range hand {
		if c.Suit == s {
			n++
		}
	}
	return n
}

func indexOfCard(cards []Card, target Card) (int, bool) {
	i := slices.Index(cards, target)
	return i, i >= 0
}

func hasCardOfSuit(hand []Card, s Suit) bool {
	return countSuit(hand, s) > 0
}

func removeCards(hand []Card, cards []Card) []Card {
	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if !slices.Contains(cards, c) {
			out = append(out, c)
		}
	}
	return out
}

func distinct(cards []Card) bool {
	for i := range cards {
		if slices.Contains(cards[i+1:], cards[i]) {
			return false
		}
	}
	return true
}

// CardBeats reports whether a beats b given the led suit and an
// optional trump.
func CardBeats(a, b Card, led Suit, trump *Suit) bool {
	if trump != nil {
		if a.Suit == *trump && b.Suit != *trump {
			return true
		}
		if b.Suit == *trump && a.Suit != *trump {
			return false
		}
		if a.Suit == *trump && b.Suit == *trump {
			return a.Rank > b.Rank
		}
	}
	if a.Suit == led && b.Suit != led {
		return true
	}
	if a.Suit == led && b.Suit == led {
		return a.Rank > b.Rank
	}
	return false
}
