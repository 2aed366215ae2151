package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// maxMessageSize caps a client message in bytes.
const maxMessageSize = 4096

// socket pumps messages between one websocket connection and its session.
// Reads and game logic run on the caller's goroutine, writes and pings on
// a second one; the writer owns closing the connection.
type socket struct {
	conn    *websocket.Conn
	cfg     Config
	logger  *log.Logger
	session *session
}

func newSocket(conn *websocket.Conn, cfg Config, logger *log.Logger) *socket {
	return &socket{
		conn:    conn,
		cfg:     cfg,
		logger:  logger,
		session: newSession(cfg.Game, cfg.MaxBoardSide),
	}
}

// run blocks until the client leaves or ctx is cancelled.
func (s *socket) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan Message, 4)
	done := make(chan struct{})

	s.logger.Info("socket opened")
	go func() {
		defer close(done)
		s.writeMessages(ctx, cancel, out)
	}()

	s.readMessages(ctx, out)
	cancel()
	<-done
	s.logger.Info("socket closed")
}

func (s *socket) readMessages(ctx context.Context, out chan<- Message) {
	s.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // A failed deadline surfaces on the next read
	s.refreshReadDeadline("")
	s.conn.SetPongHandler(s.refreshReadDeadline)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			switch {
			case ctx.Err() != nil:
			case isNormalClose(err):
				s.logger.Debug("client closed the socket")
			default:
				s.logger.Warn("reading socket messages stopped", "error", err)
			}
			return
		}
		//nolint:errcheck // A failed deadline surfaces on the next read
		s.refreshReadDeadline("")

		var replies []Message
		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			replies = []Message{errorMessage(fmt.Errorf("%w: %v", ErrBadRequest, err))}
		} else {
			s.logger.Debug("socket read", "type", m.Type)
			replies = s.session.handle(m)
		}

		for _, r := range replies {
			select {
			case out <- r:
			case <-ctx.Done():
				return
			}
		}
	}
}

// writeMessages cancels ctx when it stops so a reader blocked on out is released.
func (s *socket) writeMessages(ctx context.Context, cancel context.CancelFunc, in <-chan Message) {
	ticker := time.NewTicker(s.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
		cancel()
	}()

	for {
		var err error
		select {
		case <-ctx.Done():
			s.writeClose("server shutting down")
			return
		case m := <-in:
			s.setWriteDeadline()
			err = s.conn.WriteJSON(m)
		case <-ticker.C:
			s.setWriteDeadline()
			err = s.conn.WriteMessage(websocket.PingMessage, nil)
		}
		if err != nil {
			s.logger.Warn("writing socket messages stopped", "error", err)
			return
		}
	}
}

func (s *socket) refreshReadDeadline(string) error {
	return s.conn.SetReadDeadline(time.Now().Add(s.cfg.PongPeriod))
}

func (s *socket) setWriteDeadline() {
	//nolint:errcheck // A failed deadline surfaces on the write itself
	s.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
}

// writeClose sends a close frame. The connection is NOT closed.
func (s *socket) writeClose(reason string) {
	data := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	//nolint:errcheck // Best-effort goodbye, the connection is closing anyway
	s.conn.WriteControl(websocket.CloseMessage, data, time.Now().Add(s.cfg.WriteTimeout))
}

// isNormalClose reports whether err is a close frame the client sent on purpose.
func isNormalClose(err error) bool {
	var ce *websocket.CloseError
	return errors.As(err, &ce) &&
		!websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived)
}
