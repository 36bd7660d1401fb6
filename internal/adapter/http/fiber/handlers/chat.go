package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/ports"
)

type ChatHandler struct {
	engine ports.DialogueEngine
	log    *zap.Logger
}

func NewChatHandler(engine ports.DialogueEngine, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		engine: engine,
		log:    log,
	}
}

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	// Timestamp anchors relative dates ("tomorrow"); optional, defaults
	// to server time
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// ProcessMessage handles one conversational turn
func (h *ChatHandler) ProcessMessage(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "message is required"})
	}

	ref := time.Now()
	if req.Timestamp != nil {
		ref = *req.Timestamp
	}

	result, err := h.engine.ProcessTurn(c.Context(), ports.TurnRequest{
		SessionID:      req.SessionID,
		Utterance:      req.Message,
		ReferenceClock: ref,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPersistence) {
			return err // translated by the error handler
		}
		h.log.Error("Failed to process turn", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process message"})
	}

	return c.JSON(result)
}

// CloseSession ends a conversation and discards its state
func (h *ChatHandler) CloseSession(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "session id is required"})
	}

	if err := h.engine.CloseSession(c.Context(), sessionID); err != nil {
		if errors.Is(err, domain.ErrPersistence) {
			return err
		}
		h.log.Error("Failed to close session", zap.String("session_id", sessionID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to close session"})
	}

	return c.JSON(fiber.Map{"session_id": sessionID, "closed": true})
}
