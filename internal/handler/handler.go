package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/ZygmuntJakub/preferans/internal/engine"
	"github.com/ZygmuntJakub/preferans/internal/session"
)

// Handler serves the game API on top of a session store.
type Handler struct {
	Store *session.Store
	Log   logrus.FieldLogger
}

// Register mounts the game routes on e.
func (h Handler) Register(e *echo.Echo) {
	g := e.Group("/games")
	g.POST("", h.CreateGame)
	g.GET("/:id", h.GetGame)
	g.DELETE("/:id", h.DeleteGame)
	g.GET("/:id/commands", h.Commands)
	g.POST("/:id/execute", h.Execute)
	g.GET("/:id/bids", h.LegalBids)
	g.POST("/:id/bids", h.PlaceBid)
	g.POST("/:id/talon", h.PickUpTalon)
	g.POST("/:id/discard", h.Discard)
	g.POST("/:id/exchange", h.CompleteExchange)
	g.GET("/:id/contract-levels", h.ContractLevels)
	g.POST("/:id/contract", h.AnnounceContract)
	g.GET("/:id/whist", h.LegalWhist)
	g.POST("/:id/whist", h.DeclareWhist)
	g.POST("/:id/counter", h.DeclareCounter)
	g.GET("/:id/cards", h.LegalCards)
	g.POST("/:id/cards", h.PlayCard)
	g.GET("/:id/result", h.Result)
	g.POST("/:id/next-round", h.NextRound)
	g.GET("/:id/ws", h.Stream)
}

func (h Handler) logger() logrus.FieldLogger {
	if h.Log == nil {
		return logrus.StandardLogger()
	}
	return h.Log
}

func (h Handler) session(c echo.Context) (*session.Session, error) {
	s, err := h.Store.Get(c.Param("id"))
	if err != nil {
		return nil, h.fail(c, err)
	}
	return s, nil
}

// fail maps engine and session errors onto HTTP errors.
func (h Handler) fail(c echo.Context, err error) error {
	var (
		me engine.MoveError
		pe engine.PhaseError
		nf session.NotFoundError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &nf):
		status = http.StatusNotFound
	case errors.As(err, &pe):
		status = http.StatusConflict
	case errors.As(err, &me), errors.Is(err, session.ErrInvalidCommand):
		status = http.StatusBadRequest
	}
	log := h.logger().WithFields(logrus.Fields{"path": c.Path(), "game": c.Param("id"), "status": status})
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	} else {
		log.WithError(err).Debug("request rejected")
	}
	return echo.NewHTTPError(status, err.Error())
}

func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

type enum interface {
	~int
	String() string
}

// parseEnum matches name against the String form of values.
func parseEnum[T enum](kind, name string, values ...T) (T, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, v := range values {
		if v.String() == name {
			return v, nil
		}
	}
	var zero T
	return zero, echo.NewHTTPError(http.StatusBadRequest, "unknown "+kind+" "+name)
}

func parseBidType(s string) (engine.BidType, error) {
	return parseEnum("bid type", s, engine.BidPass, engine.BidGame, engine.BidInHand, engine.BidBetl, engine.BidSans)
}

func parseContractType(s string) (engine.ContractType, error) {
	return parseEnum("contract type", s, engine.ContractSuit, engine.ContractBetl, engine.ContractSans)
}

func parseWhistAction(s string) (engine.WhistAction, error) {
	return parseEnum("whist action", s,
		engine.WhistPass, engine.WhistFollow, engine.WhistCall,
		engine.WhistCounter, engine.WhistStartGame, engine.WhistDoubleCounter)
}
