package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"live-quiz-show/internal/app"
	"live-quiz-show/internal/domain"
	"live-quiz-show/internal/observability"
)

type WSHandler struct {
	service  *app.ShowService
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.ShowService, log *slog.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Text string `json:"text"`
}

type answerAccepted struct {
	ID            string  `json:"id"`
	QuestionIndex int     `json:"questionIndex"`
	ResponseTime  float64 `json:"responseTime"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS upgrades a viewer or control screen onto the game's broadcast
// stream. Viewers that pass viewerId may answer the open question; any
// connection may send admin commands.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	if gameID == "" {
		http.Error(w, "missing gameId", http.StatusBadRequest)
		return
	}
	viewer := domain.Viewer{
		ID:        r.URL.Query().Get("viewerId"),
		Name:      r.URL.Query().Get("name"),
		AvatarURL: r.URL.Query().Get("picture"),
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	updates, cancel, err := h.service.Subscribe(r.Context(), gameID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()

	observability.ViewerConnections.Inc()
	defer observability.ViewerConnections.Dec()

	send := make(chan []byte, 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Single writer: gorilla connections allow one concurrent writer.
	go func() {
		defer close(writerDone)
		for frame := range send {
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				h.log.Debug("ws write error", "game", gameID, "err", err)
				_ = conn.Close()
				// Keep draining so producers never block on a dead socket.
				for range send {
				}
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case frame, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- frame:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	reply := func(typ string, payload any) {
		frame, err := json.Marshal(outboundMessage[any]{Type: typ, Payload: payload})
		if err != nil {
			h.log.Error("encode ws reply", "type", typ, "err", err)
			return
		}
		send <- frame
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				reply("error", errorPayload{Message: "invalid answer payload"})
				continue
			}
			rec, err := h.service.SubmitResponse(r.Context(), gameID, viewer, payload.Text)
			if err != nil {
				reply("error", errorPayload{Message: err.Error()})
				continue
			}
			reply("answer_accepted", answerAccepted{ID: rec.ID, QuestionIndex: rec.QuestionIndex, ResponseTime: rec.ResponseTime})
		case "command":
			var cmd app.Command
			if err := json.Unmarshal(inbound.Payload, &cmd); err != nil {
				reply("error", errorPayload{Message: "invalid command payload"})
				continue
			}
			if cmd.GameID == "" {
				cmd.GameID = gameID
			}
			res, _ := h.service.Execute(r.Context(), cmd)
			reply("command_result", res)
		default:
			reply("error", errorPayload{Message: "unsupported message type"})
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
