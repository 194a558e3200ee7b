package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/katalvlaran/relocate/scenario"
	"github.com/katalvlaran/relocate/search"
)

const wsIdlePingInterval = 30 * time.Second

// Event is one websocket message of /solve/stream.
type Event struct {
	Type      string    `json:"type"` // improvement, result, error, ping
	Cost      int64     `json:"cost,omitempty"`
	ElapsedMS int64     `json:"elapsed_ms,omitempty"`
	Result    *Response `json:"result,omitempty"`
	Error     string    `json:"error,omitempty"`
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxBody)

	_, data, err := conn.ReadMessage()
	if err != nil {
		return
	}

	// The hijacked request context outlives the client; watch the socket instead.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	send := make(chan []byte, 16)
	done := make(chan error, 1)
	go func() {
		err := writeWithHeartbeat(conn, send)
		for range send {
		}
		done <- err
	}()

	push := func(ev Event, block bool) {
		msg, _ := json.Marshal(ev)
		if block {
			send <- msg
			return
		}
		select {
		case send <- msg:
		default:
		}
	}

	sc, err := scenario.Parse(data)
	if err == nil {
		var resp *Response
		resp, err = s.solve(ctx, sc, func(imp search.Improvement) {
			push(Event{Type: "improvement", Cost: imp.Cost, ElapsedMS: imp.Elapsed.Milliseconds()}, false)
		})
		if err == nil {
			push(Event{Type: "result", Cost: resp.Cost, Result: resp}, true)
		}
	}
	if err != nil {
		push(Event{Type: "error", Error: err.Error()}, true)
	}
	close(send)
	if werr := <-done; werr != nil {
		s.log.Debug("stream write failed", "error", werr)
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
}

// writeWithHeartbeat drains send into conn, pinging when idle.
func writeWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	ping, _ := json.Marshal(Event{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
