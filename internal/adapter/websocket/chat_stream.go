package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/ports"
)

// ChatStreamHandler runs a conversation over a persistent websocket:
// one inbound message per turn, one TurnResult back. Completed bookings
// are fanned out to the monitor hub for the front-desk dashboard.
type ChatStreamHandler struct {
	engine ports.DialogueEngine
	hub    *Hub
	log    *zap.Logger
}

func NewChatStreamHandler(engine ports.DialogueEngine, hub *Hub, log *zap.Logger) *ChatStreamHandler {
	return &ChatStreamHandler{
		engine: engine,
		hub:    hub,
		log:    log,
	}
}

type chatFrame struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// HandleChat processes turns until the client disconnects
func (h *ChatStreamHandler) HandleChat(c *websocket.Conn) {
	var sessionID string

	for {
		messageType, data, err := c.ReadMessage()
		if err != nil {
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var frame chatFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			h.writeError(c, "invalid message format")
			continue
		}
		if frame.Message == "" {
			h.writeError(c, "message is required")
			continue
		}
		// the connection keeps its session once established
		if frame.SessionID == "" {
			frame.SessionID = sessionID
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		result, err := h.engine.ProcessTurn(ctx, ports.TurnRequest{
			SessionID:      frame.SessionID,
			Utterance:      frame.Message,
			ReferenceClock: time.Now(),
		})
		cancel()
		if err != nil {
			h.log.Error("Failed to process websocket turn", zap.Error(err))
			h.writeError(c, "failed to process message, please retry")
			continue
		}
		sessionID = result.SessionID

		payload, _ := json.Marshal(result)
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			break
		}

		if result.State == domain.StateExecuted {
			notice, _ := json.Marshal(map[string]interface{}{
				"event":      "booking_executed",
				"session_id": result.SessionID,
				"intent":     result.IntentLabel,
			})
			h.hub.Broadcast(notice)
		}
	}
}

func (h *ChatStreamHandler) writeError(c *websocket.Conn, msg string) {
	payload, _ := json.Marshal(map[string]string{"error": msg})
	_ = c.WriteMessage(websocket.TextMessage, payload)
}

// SetupChatRoutes registers the chat stream and the monitor feed
func SetupChatRoutes(app *fiber.App, handler *ChatStreamHandler, hub *Hub) {
	upgrade := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	app.Use("/ws/chat", upgrade)
	app.Get("/ws/chat", websocket.New(handler.HandleChat))

	app.Use("/ws/monitor", upgrade)
	app.Get("/ws/monitor", websocket.New(func(c *websocket.Conn) {
		hub.ServeClient(c, c.Query("session_id"))
	}))
}
