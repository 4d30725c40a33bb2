//go:generate stringer -type=Phase,AuctionPhase,BidType,ContractType,WhistAction -linecomment

package engine

import "github.com/sirupsen/logrus"

// Suit represents a card suit. The numeric value is the suit's bid value.
type Suit int

const (
	Spades Suit = iota + 2
	Diamonds
	Hearts
	Clubs
)

// Rank represents a card rank.
type Rank int

const (
	Seven Rank = iota + 7
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Card represents a playing card.
type Card struct {
	Suit Suit
	Rank Rank
}

// PlayerID identifies a player.
type PlayerID string

// Phase represents the phase of the current round.
type Phase int

const (
	PhaseDeal       Phase = iota // deal
	PhaseAuction                 // auction
	PhaseExchanging              // exchanging
	PhaseWhisting                // whisting
	PhasePlaying                 // playing
	PhaseScoring                 // scoring
	PhaseRedeal                  // redeal
)

// AuctionPhase is the sub-phase of the auction.
type AuctionPhase int

const (
	AuctionInitial         AuctionPhase = iota // initial
	AuctionGameBidding                         // game bidding
	AuctionInHandDeciding                      // in-hand deciding
	AuctionInHandDeclaring                     // in-hand declaring
	AuctionComplete                            // complete
)

// BidType is the kind of an auction action.
type BidType int

const (
	BidPass   BidType = iota // pass
	BidGame                  // game
	BidInHand                // in_hand
	BidBetl                  // betl
	BidSans                  // sans
)

// ContractType is the kind of game the declarer plays.
type ContractType int

const (
	ContractSuit ContractType = iota // suit
	ContractBetl                     // betl
	ContractSans                     // sans
)

// WhistAction is a defender's (or the declarer's) answer during whisting.
type WhistAction int

const (
	WhistPass          WhistAction = iota // pass
	WhistFollow                           // follow
	WhistCall                             // call
	WhistCounter                          // counter
	WhistStartGame                        // start_game
	WhistDoubleCounter                    // double_counter
)

// Bid is a single auction action. Value is 2..5 for game and declared
// in-hand bids, 0 for passes and undeclared in-hand bids, 6 for betl and 7
// for sans.
type Bid struct {
	Player PlayerID
	Type   BidType
	Value  int
}

// AuctionState holds the auction of the current round.
type AuctionState struct {
	Phase            AuctionPhase
	Bids             []Bid
	Passed           []PlayerID
	InHandPlayers    []PlayerID
	HighestGameBid   *Bid
	HighestInHandBid *Bid
	FirstGameBidder  PlayerID
	CurrentBidder    PlayerID
	// Decided lists the players who already acted in the current auction
	// phase. It is rebuilt on every phase transition.
	Decided []PlayerID
}

// Contract is the game announced by the declarer.
type Contract struct {
	Type     ContractType
	Trump    *Suit // set only for suit contracts
	BidValue int
	InHand   bool
}

// DealState holds hands, talon and discards.
type DealState struct {
	Hands     map[PlayerID][]Card
	Talon     []Card
	Discarded []Card
}

// WhistState holds the defenders' declarations and the counter exchange.
type WhistState struct {
	Defenders    []PlayerID
	Declarations map[PlayerID]WhistAction
	Order        []PlayerID // defenders in the order they declared
	Followers    []PlayerID
	Current      PlayerID

	CounterStep      bool
	Pending          []PlayerID // followers still to answer in the counter step
	DeclarerResponds bool
	Counter          bool
	DoubleCounter    bool
	CounterPlayer    PlayerID
}

// Play represents a single play in a trick.
type Play struct {
	Player PlayerID
	Card   Card
}

// Trick holds the state of a trick.
type Trick struct {
	Number  int
	Leader  PlayerID
	Plays   []Play
	LedSuit *Suit
	Winner  PlayerID // empty until the trick is complete
}

// PlayState tracks trick play.
type PlayState struct {
	CurrentTrick    Trick
	CompletedTricks []Trick
	TricksWon       map[PlayerID]int
	Trump           *Suit
}

// PlayResult describes what a single card play caused.
type PlayResult struct {
	TrickComplete bool
	TrickWinner   PlayerID
	RoundComplete bool
}

// DefenderResult is one defender's share of a round result.
type DefenderResult struct {
	Player      PlayerID
	Action      WhistAction
	Tricks      int
	ScoreChange float64
}

// RoundResult is the settlement of a finished round.
type RoundResult struct {
	Declarer          PlayerID
	Contract          Contract
	DeclarerTricks    int
	DeclarerWon       bool
	GameValue         int
	DeclarerChange    float64
	Defenders         []DefenderResult
	ZeroSumAdjustment float64
	Scores            map[PlayerID]float64
}

// ScoreState holds running totals and the last round result.
type ScoreState struct {
	Cumulative map[PlayerID]float64
	Last       *RoundResult
}

// GameParams parameterizes a game.
type GameParams struct {
	Players []PlayerID // seating order
}

// GameState is the root state container.
type GameState struct {
	Phase     Phase
	Params    GameParams
	Round     int
	Dealer    PlayerID
	Declarer  *PlayerID
	Positions map[PlayerID]int

	Deal     DealState
	Auction  AuctionState
	Contract *Contract
	Whist    WhistState
	Play     PlayState
	Scores   ScoreState

	log logrus.FieldLogger
}
