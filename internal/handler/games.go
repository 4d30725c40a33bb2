package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ZygmuntJakub/preferans/internal/engine"
	"github.com/ZygmuntJakub/preferans/internal/session"
)

type createGameRequest struct {
	Players []engine.PlayerID `json:"players"`
	Seed    uint64            `json:"seed"`
}

type gameResponse struct {
	GameID   string           `json:"game_id"`
	Snapshot session.Snapshot `json:"state"`
}

type executeRequest struct {
	CommandID int `json:"command_id"`
}

type bidRequest struct {
	Player engine.PlayerID `json:"player"`
	Type   string          `json:"type"`
	Value  int             `json:"value"`
}

type cardsRequest struct {
	Player engine.PlayerID `json:"player"`
	Cards  []string        `json:"cards"`
}

type contractRequest struct {
	Player engine.PlayerID `json:"player"`
	Type   string          `json:"type"`
	Trump  string          `json:"trump"`
	Level  int             `json:"level"`
}

type whistRequest struct {
	Player engine.PlayerID `json:"player"`
	Action string          `json:"action"`
}

type playRequest struct {
	Player engine.PlayerID `json:"player"`
	Card   string          `json:"card"`
}

type playResponse struct {
	TrickComplete bool            `json:"trick_complete"`
	TrickWinner   engine.PlayerID `json:"trick_winner,omitempty"`
	RoundComplete bool            `json:"round_complete"`
}

type option struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

func (h Handler) CreateGame(c echo.Context) error {
	var req createGameRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if len(req.Players) == 0 {
		req.Players = []engine.PlayerID{"P1", "P2", "P3"}
	}
	s, err := h.Store.Create(req.Players, req.Seed)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, gameResponse{GameID: s.ID, Snapshot: s.Snapshot()})
}

func (h Handler) GetGame(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, gameResponse{GameID: s.ID, Snapshot: s.Snapshot()})
}

func (h Handler) DeleteGame(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	h.Store.Remove(s.ID)
	h.logger().WithField("game", s.ID).Info("game removed")
	return c.NoContent(http.StatusNoContent)
}

func (h Handler) Commands(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.Commands())
}

func (h Handler) Execute(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	var req executeRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := s.Execute(req.CommandID); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, s.Commands())
}

// apply runs a move and answers with the new snapshot.
func (h Handler) apply(c echo.Context, s *session.Session, move func(g *engine.GameState) error) error {
	if err := s.Do(move); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, gameResponse{GameID: s.ID, Snapshot: s.Snapshot()})
}

func (h Handler) LegalBids(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	opts := []option{}
	s.Read(func(g *engine.GameState) {
		for _, b := range g.LegalBids(engine.PlayerID(c.QueryParam("player"))) {
			opts = append(opts, option{Label: b.Label(), Value: bidRequest{Player: b.Player, Type: b.Type.String(), Value: b.Value}})
		}
	})
	return c.JSON(http.StatusOK, opts)
}

func (h Handler) PlaceBid(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	var req bidRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	bt, err := parseBidType(req.Type)
	if err != nil {
		return err
	}
	return h.apply(c, s, func(g *engine.GameState) error {
		return g.PlaceBid(req.Player, bt, req.Value)
	})
}

func (h Handler) PickUpTalon(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	var req cardsRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return h.apply(c, s, func(g *engine.GameState) error {
		_, err := g.PickUpTalon(req.Player)
		return err
	})
}

func (h Handler) bindCards(c echo.Context) (cardsRequest, []engine.Card, error) {
	var req cardsRequest
	if err := c.Bind(&req); err != nil {
		return req, nil, err
	}
	cards, err := engine.ParseCards(req.Cards)
	if err != nil {
		return req, nil, badRequest(err)
	}
	return req, cards, nil
}

func (h Handler) Discard(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	req, cards, err := h.bindCards(c)
	if err != nil {
		return err
	}
	return h.apply(c, s, func(g *engine.GameState) error {
		_, err := g.Discard(req.Player, cards)
		return err
	})
}

func (h Handler) CompleteExchange(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	req, cards, err := h.bindCards(c)
	if err != nil {
		return err
	}
	return h.apply(c, s, func(g *engine.GameState) error {
		return g.CompleteExchange(req.Player, cards)
	})
}

func (h Handler) ContractLevels(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	p := engine.PlayerID(c.QueryParam("player"))
	var (
		levels []int
		best   engine.Suit
	)
	s.Read(func(g *engine.GameState) {
		levels = g.LegalContractLevels(p)
		best = g.BestTrumpSuit(p)
	})
	if levels == nil {
		levels = []int{}
	}
	return c.JSON(http.StatusOK, map[string]any{"levels": levels, "best_trump": best.Name()})
}

func (h Handler) AnnounceContract(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	var req contractRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	ct, err := parseContractType(req.Type)
	if err != nil {
		return err
	}
	var trump *engine.Suit
	if req.Trump != "" {
		t, err := engine.ParseSuit(req.Trump)
		if err != nil {
			return badRequest(err)
		}
		trump = &t
	}
	return h.apply(c, s, func(g *engine.GameState) error {
		return g.AnnounceContract(req.Player, ct, trump, req.Level)
	})
}

func (h Handler) LegalWhist(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	opts := []option{}
	s.Read(func(g *engine.GameState) {
		for _, a := range g.LegalWhistActions(engine.PlayerID(c.QueryParam("player"))) {
			opts = append(opts, option{Label: a.Label(), Value: a.String()})
		}
	})
	return c.JSON(http.StatusOK, opts)
}

func (h Handler) declare(c echo.Context, counter bool) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	var req whistRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	a, err := parseWhistAction(req.Action)
	if err != nil {
		return err
	}
	return h.apply(c, s, func(g *engine.GameState) error {
		if counter {
			return g.DeclareCounterAction(req.Player, a)
		}
		return g.DeclareWhist(req.Player, a)
	})
}

func (h Handler) DeclareWhist(c echo.Context) error { return h.declare(c, false) }

func (h Handler) DeclareCounter(c echo.Context) error { return h.declare(c, true) }

func (h Handler) LegalCards(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	opts := []option{}
	s.Read(func(g *engine.GameState) {
		for _, card := range g.LegalCards(engine.PlayerID(c.QueryParam("player"))) {
			opts = append(opts, option{Label: card.String(), Value: card.ID()})
		}
	})
	return c.JSON(http.StatusOK, opts)
}

func (h Handler) PlayCard(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	var req playRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	card, err := engine.ParseCard(req.Card)
	if err != nil {
		return badRequest(err)
	}
	var res engine.PlayResult
	err = s.Do(func(g *engine.GameState) error {
		var err error
		res, err = g.PlayCard(req.Player, card)
		return err
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, playResponse{
		TrickComplete: res.TrickComplete,
		TrickWinner:   res.TrickWinner,
		RoundComplete: res.RoundComplete,
	})
}

type defenderView struct {
	Player      engine.PlayerID `json:"player"`
	Action      string          `json:"action"`
	Tricks      int             `json:"tricks"`
	ScoreChange float64         `json:"score_change"`
}

type resultView struct {
	Declarer          engine.PlayerID             `json:"declarer"`
	Contract          session.ContractView        `json:"contract"`
	DeclarerTricks    int                         `json:"declarer_tricks"`
	DeclarerWon       bool                        `json:"declarer_won"`
	GameValue         int                         `json:"game_value"`
	DeclarerChange    float64                     `json:"declarer_change"`
	Defenders         []defenderView              `json:"defenders"`
	ZeroSumAdjustment float64                     `json:"zero_sum_adjustment"`
	Scores            map[engine.PlayerID]float64 `json:"scores"`
}

func (h Handler) Result(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	var res engine.RoundResult
	s.Read(func(g *engine.GameState) {
		res, err = g.Result()
	})
	if err != nil {
		return h.fail(c, err)
	}
	v := resultView{
		Declarer:          res.Declarer,
		Contract:          session.NewContractView(res.Contract),
		DeclarerTricks:    res.DeclarerTricks,
		DeclarerWon:       res.DeclarerWon,
		GameValue:         res.GameValue,
		DeclarerChange:    res.DeclarerChange,
		Defenders:         []defenderView{},
		ZeroSumAdjustment: res.ZeroSumAdjustment,
		Scores:            res.Scores,
	}
	for _, d := range res.Defenders {
		v.Defenders = append(v.Defenders, defenderView{Player: d.Player, Action: d.Action.String(), Tricks: d.Tricks, ScoreChange: d.ScoreChange})
	}
	return c.JSON(http.StatusOK, v)
}

func (h Handler) NextRound(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	if err := s.NextRound(); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, gameResponse{GameID: s.ID, Snapshot: s.Snapshot()})
}
