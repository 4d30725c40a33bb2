package player

import (
	"math/rand/v2"
	"strconv"

	"github.com/ZygmuntJakub/preferans/internal/engine"
)

// RandomBot picks uniformly among the legal options.
type RandomBot struct {
	BotName string
	Rand    *rand.Rand
}

func (b *RandomBot) rng() *rand.Rand {
	if b.Rand == nil {
		b.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return b.Rand
}

func (b *RandomBot) Name() string {
	if b.BotName == "" {
		b.BotName = "RandomBot_" + strconv.Itoa(b.rng().IntN(100))
	}
	return b.BotName
}

func (b *RandomBot) DecideBid(_ View, legal []engine.Bid) (engine.Bid, error) {
	return legal[b.rng().IntN(len(legal))], nil
}

func (b *RandomBot) DecideDiscard(_ View, pool []engine.Card) ([]engine.Card, error) {
	idx := b.rng().Perm(len(pool))
	return []engine.Card{pool[idx[0]], pool[idx[1]]}, nil
}

func (b *RandomBot) DecideContract(_ View, levels []int) (Announcement, error) {
	return announcementForLevel(levels[b.rng().IntN(len(levels))]), nil
}

func (b *RandomBot) DecideWhist(_ View, legal []engine.WhistAction) (engine.WhistAction, error) {
	return legal[b.rng().IntN(len(legal))], nil
}

func (b *RandomBot) DecideCard(_ View, legal []engine.Card) (engine.Card, error) {
	return legal[b.rng().IntN(len(legal))], nil
}

func NewRandomBot() Player {
	return &RandomBot{}
}
