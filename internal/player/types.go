package player

import "github.com/ZygmuntJakub/preferans/internal/engine"

// View is what a seat can see when it has to decide.
type View struct {
	Me       engine.PlayerID
	Position int
	Hand     []engine.Card
	Declarer bool
	Contract *engine.Contract
	Trick    engine.Trick
	Trump    *engine.Suit
}

// Announcement is a contract choice.
type Announcement struct {
	Type  engine.ContractType
	Trump *engine.Suit
	Level int
}

// Player decides moves for one seat. Every method receives the legal
// options and must return one of them.
type Player interface {
	Name() string
	DecideBid(View, []engine.Bid) (engine.Bid, error)
	DecideDiscard(View, []engine.Card) ([]engine.Card, error)
	DecideContract(View, []int) (Announcement, error)
	DecideWhist(View, []engine.WhistAction) (engine.WhistAction, error)
	DecideCard(View, []engine.Card) (engine.Card, error)
}

type PlayerFactory func() Player

// announcementForLevel maps a legal level onto the contract it names.
func announcementForLevel(level int) Announcement {
	switch level {
	case 6:
		return Announcement{Type: engine.ContractBetl, Level: 6}
	case 7:
		return Announcement{Type: engine.ContractSans, Level: 7}
	}
	trump, _ := engine.SuitForLevel(level)
	return Announcement{Type: engine.ContractSuit, Trump: &trump, Level: level}
}
