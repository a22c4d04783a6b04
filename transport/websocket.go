package transport

import (
	"chat-sync/contract"
	"chat-sync/errors"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var _ contract.Transport = (*WebSocket)(nil)

const maxMessageSize = 64 * 1024 // max inbound frame size (64KB)

// Envelope is the frame exchanged with the server.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type WebSocketConfig struct {
	WriteTimeout time.Duration // time allowed to write a frame
	PongWait     time.Duration // time allowed to read the next pong
	BufferSize   int           // outbound queue and listener buffers
}

func (c WebSocketConfig) pingInterval() time.Duration {
	return (c.PongWait * 9) / 10
}

// WebSocket is a transport over a single gorilla websocket connection.
// One goroutine reads frames and publishes them to the listeners, one
// goroutine owns every write. Nothing reconnects: once the connection is
// gone the listeners are closed and Emit fails.
type WebSocket struct {
	*broker
	log       *slog.Logger
	conn      *websocket.Conn
	config    WebSocketConfig
	egress    chan Envelope
	ready     chan struct{}
	done      chan struct{}
	doneOnce  sync.Once
	stopped   chan struct{}
	closeOnce sync.Once
}

// Dial connects to the server. The returned transport is ready right away.
func Dial(ctx context.Context, log *slog.Logger, url string, config WebSocketConfig) (*WebSocket, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not connect to %s: %w", url, err)
	}
	ws := &WebSocket{
		broker:  newBroker(log, config.BufferSize),
		log:     log,
		conn:    conn,
		config:  config,
		egress:  make(chan Envelope, config.BufferSize),
		ready:   make(chan struct{}),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	close(ws.ready)
	go ws.readLoop()
	go ws.writeLoop()
	log.Debug("Connected", "url", url)
	return ws, nil
}

func (ws *WebSocket) Emit(ctx context.Context, name string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("could not marshal %s payload: %w", name, err)
	}
	select {
	case <-ws.done:
		return errors.ErrTransportClosed
	default:
	}
	select {
	case ws.egress <- Envelope{Event: name, Data: data}:
		return nil
	case <-ws.done:
		return errors.ErrTransportClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (ws *WebSocket) Ready() <-chan struct{} {
	return ws.ready
}

// Done is closed as soon as the connection is going away.
func (ws *WebSocket) Done() <-chan struct{} {
	return ws.done
}

// Close sends a close frame, releases the connection and closes every listener.
func (ws *WebSocket) Close() error {
	ws.closeOnce.Do(func() {
		ws.signalDone()
		<-ws.stopped
	})
	return nil
}

func (ws *WebSocket) signalDone() {
	ws.doneOnce.Do(func() { close(ws.done) })
}

func (ws *WebSocket) readLoop() {
	defer ws.signalDone()

	ws.conn.SetReadLimit(maxMessageSize)
	_ = ws.conn.SetReadDeadline(time.Now().Add(ws.config.PongWait))
	ws.conn.SetPongHandler(func(string) error {
		return ws.conn.SetReadDeadline(time.Now().Add(ws.config.PongWait))
	})

	for {
		var envelope Envelope
		if err := ws.conn.ReadJSON(&envelope); err != nil {
			ws.logReadError(err)
			return
		}
		if envelope.Event == "" {
			ws.log.Warn("Frame without event name dropped")
			continue
		}
		if ws.Publish(envelope.Event, envelope.Data) == 0 {
			ws.log.Debug("No listener for event", "event", envelope.Event)
		}
	}
}

func (ws *WebSocket) logReadError(err error) {
	select {
	case <-ws.done:
		// We are the ones closing.
		return
	default:
	}
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		ws.log.Info("Server closed the connection")
		return
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		ws.log.Error("Server timed out, closing connection")
		return
	}
	ws.log.Error("Failed to read from server", "error", err)
}

func (ws *WebSocket) writeLoop() {
	ticker := time.NewTicker(ws.config.pingInterval())

	defer func() {
		ticker.Stop()
		_ = ws.conn.Close()
		ws.broker.close()
		close(ws.stopped)
		ws.log.Debug("Connection closed")
	}()

	for {
		select {
		case <-ws.done:
			ws.drain()
			_ = ws.conn.SetWriteDeadline(time.Now().Add(ws.config.WriteTimeout))
			_ = ws.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case envelope := <-ws.egress:
			if err := ws.write(envelope); err != nil {
				ws.signalDone()
				return
			}
		case <-ticker.C:
			_ = ws.conn.SetWriteDeadline(time.Now().Add(ws.config.WriteTimeout))
			if err := ws.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				ws.log.Error("Failed to ping server", "error", err)
				ws.signalDone()
				return
			}
		}
	}
}

func (ws *WebSocket) write(envelope Envelope) error {
	_ = ws.conn.SetWriteDeadline(time.Now().Add(ws.config.WriteTimeout))
	if err := ws.conn.WriteJSON(envelope); err != nil {
		ws.log.Error("Failed to write to server", "event", envelope.Event, "error", err)
		return err
	}
	return nil
}

// drain flushes what Emit accepted before the close, so an accepted event is
// not lost to the shutdown. The first failed write gives up on the rest.
func (ws *WebSocket) drain() {
	for {
		select {
		case envelope := <-ws.egress:
			if err := ws.write(envelope); err != nil {
				return
			}
		default:
			return
		}
	}
}
