package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/concierge-ai/internal/domain"
	"github.com/seu-repo/concierge-ai/internal/ports"
)

type BookingHandler struct {
	bookings ports.BookingService
	log      *zap.Logger
}

func NewBookingHandler(bookings ports.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		log:      log,
	}
}

// List returns bookings for the back office, newest first
func (h *BookingHandler) List(c *fiber.Ctx) error {
	status := domain.BookingStatus(c.Query("status"))
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	bookings, err := h.bookings.ListBookings(c.Context(), status, limit, offset)
	if err != nil {
		h.log.Error("Failed to list bookings", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list bookings"})
	}

	return c.JSON(fiber.Map{
		"bookings": bookings,
		"limit":    limit,
		"offset":   offset,
	})
}

// Get returns one booking by reference
func (h *BookingHandler) Get(c *fiber.Ctx) error {
	reference := c.Params("reference")

	booking, err := h.bookings.GetBooking(c.Context(), reference)
	if err != nil {
		h.log.Error("Failed to fetch booking", zap.String("reference", reference), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch booking"})
	}
	if booking == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	return c.JSON(booking)
}

// Cancel cancels a booking by reference
func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	reference := c.Params("reference")

	if err := h.bookings.CancelBooking(c.Context(), reference); err != nil {
		var execErr *domain.ExecutionError
		if errors.As(err, &execErr) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": execErr.Reason})
		}
		h.log.Error("Failed to cancel booking", zap.String("reference", reference), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel booking"})
	}

	return c.JSON(fiber.Map{"reference": reference, "status": string(domain.BookingStatusCancelled)})
}
