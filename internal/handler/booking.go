package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-booking/internal/booking"
	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// BookingHandler exposes the booking lifecycle over HTTP.  All routes
// assume JWT authentication has already run; publishing of lifecycle
// events is optional and skipped when no publisher is configured.
type BookingHandler struct {
	Svc       *booking.Service
	Publisher ConfirmPublisher
}

// ConfirmPublisher emits a message after a booking is confirmed.
// Publishing is best effort; a broker outage must not fail the
// confirmation that already committed.
type ConfirmPublisher interface {
	PublishBookingConfirmed(b *model.Booking) error
}

// NewBookingHandler constructs a BookingHandler.  The publisher may be
// nil.
func NewBookingHandler(svc *booking.Service, pub ConfirmPublisher) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Svc: svc, Publisher: pub}
}

// ----- DTOs -----

type createBookingReq struct {
	SeatCodes []string `json:"seat_codes"`
}

type bookingSeatPart struct {
	SeatCode       string         `json:"seat_code"`
	SeatType       model.SeatType `json:"seat_type"`
	UnitPriceCents uint32         `json:"unit_price_cents"`
}

type bookingResp struct {
	PublicID         string              `json:"id"`
	ShowtimeID       uint64              `json:"showtime_id"`
	Status           model.BookingStatus `json:"status"`
	ExpiresAt        *time.Time          `json:"expires_at,omitempty"`
	Seats            []bookingSeatPart   `json:"seats"`
	BaseAmountCents  uint32              `json:"base_amount_cents"`
	DiscountCents    uint32              `json:"discount_amount_cents"`
	FinalAmountCents uint32              `json:"final_amount_cents"`
	CreatedAt        time.Time           `json:"created_at"`
}

func toBookingResp(b *model.Booking) bookingResp {
	seats := make([]bookingSeatPart, 0, len(b.Seats))
	for _, s := range b.Seats {
		seats = append(seats, bookingSeatPart{
			SeatCode:       s.SeatCode,
			SeatType:       s.SeatType,
			UnitPriceCents: s.UnitPriceCents,
		})
	}
	return bookingResp{
		PublicID:         b.PublicID,
		ShowtimeID:       b.ShowtimeID,
		Status:           b.Status,
		ExpiresAt:        b.ExpiresAt,
		Seats:            seats,
		BaseAmountCents:  b.BaseAmountCents,
		DiscountCents:    b.DiscountAmountCents,
		FinalAmountCents: b.FinalAmountCents,
		CreatedAt:        b.CreatedAt,
	}
}

// Create handles POST /v1/showtimes/:id/bookings.  It claims the
// requested seats for the authenticated user and returns the DRAFT
// booking with its hold deadline.  Losing the claim race to a
// concurrent request yields 409.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	showtimeID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	var body createBookingReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	codes := make([]string, 0, len(body.SeatCodes))
	for _, code := range body.SeatCodes {
		codes = append(codes, strings.ToUpper(strings.TrimSpace(code)))
	}

	b, err := h.Svc.CreateBooking(c.Request().Context(), showtimeID, userID, codes)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingResp(b))
}

// StartPayment handles POST /v1/bookings/:id/payment.  It moves a
// DRAFT booking to PENDING_PAYMENT and returns the payment deadline.
func (h *BookingHandler) StartPayment(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	b, err := h.Svc.StartPayment(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// Confirm handles POST /v1/bookings/:id/confirm.  It stands in for the
// payment provider's success callback, so it does not check booking
// ownership; a real deployment would authenticate the provider
// instead.  Confirming twice is a no-op that returns the booking
// unchanged.
func (h *BookingHandler) Confirm(c echo.Context) error {
	b, err := h.Svc.ConfirmBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return bookingError(c, err)
	}
	if h.Publisher != nil {
		if err := h.Publisher.PublishBookingConfirmed(b); err != nil {
			c.Logger().Errorf("publish booking.confirmed: %v", err)
		}
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// Cancel handles DELETE /v1/bookings/:id.  The held seats become free
// for other users immediately.
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	b, err := h.Svc.CancelBooking(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	b, err := h.Svc.GetBooking(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(b))
}

// ListMine handles GET /v1/my-bookings.
func (h *BookingHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	list, err := h.Svc.ListBookings(c.Request().Context(), userID)
	if err != nil {
		return bookingError(c, err)
	}
	out := make([]bookingResp, 0, len(list))
	for i := range list {
		out = append(out, toBookingResp(&list[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}
