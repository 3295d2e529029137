package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-booking/internal/booking"
	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// ExpirePublisher emits a message for each booking the sweeper
// expired.  Best effort, like ConfirmPublisher.
type ExpirePublisher interface {
	PublishBookingExpired(b *model.Booking) error
}

// SweepHandler triggers the expiry sweep on demand.  The sweep is
// hygiene: expired holds are already invisible to readers and purged
// by claimers, this just persists the EXPIRED status and clears dead
// rows in bulk.
type SweepHandler struct {
	Svc       *booking.Service
	Publisher ExpirePublisher
}

func NewSweepHandler(svc *booking.Service, pub ExpirePublisher) *SweepHandler {
	if svc == nil {
		panic("nil service passed to NewSweepHandler")
	}
	return &SweepHandler{Svc: svc, Publisher: pub}
}

// Run handles POST /internal/sweep and reports how many bookings were
// expired.
func (h *SweepHandler) Run(c echo.Context) error {
	swept, err := h.Svc.SweepExpired(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sweep failed"})
	}
	if h.Publisher != nil {
		for i := range swept {
			if err := h.Publisher.PublishBookingExpired(&swept[i]); err != nil {
				c.Logger().Errorf("publish booking.expired: %v", err)
			}
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"expired": len(swept)})
}
