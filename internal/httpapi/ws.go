package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/junolabs/juno/internal/protocol"
)

// handleSessionWS streams exchanges over a websocket: the client sends
// utterances and control messages, the server answers with text deltas
// and a turn-end frame carrying the dialogue state. Writes go through a
// single goroutine so frames never interleave.
func (s *Server) handleSessionWS(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session_id", "query parameter session_id is required")
		return
	}
	if _, err := s.sessions.Get(sessionID); err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	outbound := make(chan any, 256)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-outbound:
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := conn.WriteJSON(msg); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	send := func(msg any) bool {
		select {
		case <-ctx.Done():
			return false
		case outbound <- msg:
			return true
		}
	}

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		return nil
	})

readLoop:
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		if msgType != websocket.TextMessage {
			continue
		}

		parsed, err := protocol.ParseClientMessage(data)
		if err != nil {
			send(protocol.ErrorEvent{
				Type:      protocol.TypeErrorEvent,
				SessionID: sessionID,
				Code:      "invalid_client_message",
				Retryable: false,
				Detail:    err.Error(),
			})
			continue
		}

		switch msg := parsed.(type) {
		case protocol.ClientUtterance:
			s.runExchange(ctx, sessionID, msg.Text, send)
		case protocol.ClientControl:
			switch msg.Action {
			case protocol.ActionEnd:
				res, err := s.engine.EndSession(ctx, sessionID)
				if err != nil {
					send(protocol.ErrorEvent{
						Type:      protocol.TypeErrorEvent,
						SessionID: sessionID,
						Code:      "end_failed",
						Detail:    err.Error(),
					})
					continue
				}
				send(protocol.SessionEvent{
					Type:      protocol.TypeSessionEvent,
					SessionID: sessionID,
					Code:      "session_ended",
					Detail:    res.Closing,
				})
				break readLoop
			case protocol.ActionClear:
				if _, err := s.engine.ClearSession(ctx, sessionID); err != nil {
					send(protocol.ErrorEvent{
						Type:      protocol.TypeErrorEvent,
						SessionID: sessionID,
						Code:      "clear_failed",
						Detail:    err.Error(),
					})
					continue
				}
				send(protocol.SessionEvent{
					Type:      protocol.TypeSessionEvent,
					SessionID: sessionID,
					Code:      "session_cleared",
				})
			}
		}
	}

	cancel()
	<-writerDone
}

func (s *Server) runExchange(ctx context.Context, sessionID, text string, send func(any) bool) {
	res, err := s.engine.HandleUtterance(ctx, sessionID, text, func(turnID, delta string) error {
		send(protocol.AssistantTextDelta{
			Type:      protocol.TypeAssistantTextDelta,
			SessionID: sessionID,
			TurnID:    turnID,
			TextDelta: delta,
		})
		return nil
	})
	if err != nil {
		send(protocol.ErrorEvent{
			Type:      protocol.TypeErrorEvent,
			SessionID: sessionID,
			Code:      "exchange_failed",
			Retryable: true,
			Detail:    err.Error(),
		})
		return
	}

	send(protocol.AssistantTurnEnd{
		Type:      protocol.TypeAssistantTurnEnd,
		SessionID: sessionID,
		TurnID:    res.TurnID,
		Reply:     res.Reply,
		Phase:     res.Phase,
		Mood:      res.Mood,
		Route:     string(res.Route),
		Crisis:    res.IsCrisis,
	})
}
