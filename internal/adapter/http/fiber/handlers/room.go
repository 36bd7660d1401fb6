package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/ports"
)

type RoomHandler struct {
	rooms ports.RoomService
	log   *zap.Logger
}

func NewRoomHandler(rooms ports.RoomService, log *zap.Logger) *RoomHandler {
	return &RoomHandler{
		rooms: rooms,
		log:   log,
	}
}

// Availability lists free rooms for a stay window
func (h *RoomHandler) Availability(c *fiber.Ctx) error {
	checkIn, err := time.Parse("2006-01-02", c.Query("check_in"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := time.Parse("2006-01-02", c.Query("check_out"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "check_out must be YYYY-MM-DD"})
	}
	roomType := c.Query("room_type")

	available, err := h.rooms.CheckAvailability(c.Context(), checkIn, checkOut, roomType)
	if err != nil {
		h.log.Error("Failed to check availability", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check availability"})
	}

	return c.JSON(fiber.Map{
		"check_in":  checkIn.Format("2006-01-02"),
		"check_out": checkOut.Format("2006-01-02"),
		"room_type": roomType,
		"available": available,
	})
}

// Types returns the room catalog with pricing
func (h *RoomHandler) Types(c *fiber.Ctx) error {
	return c.JSON(h.rooms.RoomTypes())
}
