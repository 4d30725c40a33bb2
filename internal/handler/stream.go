package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Stream pushes a snapshot of the game over a websocket after every change.
func (h Handler) Stream(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader already answered the request
		h.logger().WithError(err).Warn("websocket upgrade failed")
		return nil
	}
	defer conn.Close()
	log := h.logger().WithField("game", s.ID)
	log.Debug("stream opened")

	snaps, stop := s.Subscribe()
	defer stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.WithError(err).Warn("stream read failed")
				}
				return
			}
		}
	}()

	for {
		select {
		case snap, ok := <-snaps:
			if !ok {
				return nil
			}
			if err := conn.WriteJSON(snap); err != nil {
				log.WithError(err).Debug("stream write failed")
				return nil
			}
		case <-done:
			log.Debug("stream closed")
			return nil
		}
	}
}
