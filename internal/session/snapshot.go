package session

import (
	"github.com/ZygmuntJakub/preferans/internal/engine"
)

// Snapshot is the JSON view of a session sent to clients.
type Snapshot struct {
	ID        string                       `json:"id"`
	Round     int                          `json:"round"`
	Phase     string                       `json:"phase"`
	Dealer    engine.PlayerID              `json:"dealer"`
	Positions map[engine.PlayerID]int      `json:"positions"`
	Hands     map[engine.PlayerID][]string `json:"hands"`
	TalonSize int                          `json:"talon_size"`
	Auction   AuctionView                  `json:"auction"`
	Declarer  engine.PlayerID              `json:"declarer,omitempty"`
	Contract  *ContractView                `json:"contract,omitempty"`
	Whist     map[engine.PlayerID]string   `json:"whist,omitempty"`
	Trick     []PlayView                   `json:"trick,omitempty"`
	TricksWon map[engine.PlayerID]int      `json:"tricks_won"`
	Scores    map[engine.PlayerID]float64  `json:"scores"`
	Picked    []string                     `json:"picked,omitempty"`
	Commands  CommandList                  `json:"commands"`
}

type AuctionView struct {
	Phase         string            `json:"phase"`
	Bids          []BidView         `json:"bids"`
	Passed        []engine.PlayerID `json:"passed"`
	CurrentBidder engine.PlayerID   `json:"current_bidder,omitempty"`
}

type BidView struct {
	Player engine.PlayerID `json:"player"`
	Type   string          `json:"type"`
	Value  int             `json:"value"`
	Label  string          `json:"label"`
}

type ContractView struct {
	Type     string `json:"type"`
	Trump    string `json:"trump,omitempty"`
	BidValue int    `json:"bid_value"`
	InHand   bool   `json:"in_hand"`
}

type PlayView struct {
	Player engine.PlayerID `json:"player"`
	Card   string          `json:"card"`
}

func cardIDs(cards []engine.Card) []string {
	ids := make([]string, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID())
	}
	return ids
}

// NewContractView renders a contract for clients.
func NewContractView(c engine.Contract) ContractView {
	v := ContractView{Type: c.Type.String(), BidValue: c.BidValue, InHand: c.InHand}
	if c.Trump != nil {
		v.Trump = c.Trump.Name()
	}
	return v
}

func (s *Session) snapshot() Snapshot {
	g := s.game
	snap := Snapshot{
		ID:        s.ID,
		Round:     g.Round,
		Phase:     g.Phase.String(),
		Dealer:    g.Dealer,
		Positions: map[engine.PlayerID]int{},
		Hands:     map[engine.PlayerID][]string{},
		TalonSize: len(g.Deal.Talon),
		Auction: AuctionView{
			Phase:         g.Auction.Phase.String(),
			Bids:          []BidView{},
			Passed:        append([]engine.PlayerID{}, g.Auction.Passed...),
			CurrentBidder: g.Auction.CurrentBidder,
		},
		TricksWon: map[engine.PlayerID]int{},
		Scores:    map[engine.PlayerID]float64{},
		Picked:    cardIDs(s.picked),
		Commands:  s.commands(),
	}
	for p, pos := range g.Positions {
		snap.Positions[p] = pos
	}
	for p, hand := range g.Deal.Hands {
		snap.Hands[p] = cardIDs(hand)
	}
	for _, b := range g.Auction.Bids {
		snap.Auction.Bids = append(snap.Auction.Bids, BidView{Player: b.Player, Type: b.Type.String(), Value: b.Value, Label: b.Label()})
	}
	if g.Declarer != nil {
		snap.Declarer = *g.Declarer
	}
	if g.Contract != nil {
		cv := NewContractView(*g.Contract)
		snap.Contract = &cv
	}
	if len(g.Whist.Declarations) > 0 {
		snap.Whist = map[engine.PlayerID]string{}
		for p, a := range g.Whist.Declarations {
			snap.Whist[p] = a.String()
		}
	}
	for _, pl := range g.Play.CurrentTrick.Plays {
		snap.Trick = append(snap.Trick, PlayView{Player: pl.Player, Card: pl.Card.ID()})
	}
	for p, n := range g.Play.TricksWon {
		snap.TricksWon[p] = n
	}
	for p, sc := range g.Scores.Cumulative {
		snap.Scores[p] = sc
	}
	return snap
}
