package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-booking/internal/booking"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil && id != 0
}

// bookingError maps the sentinel and typed errors of the booking
// service onto HTTP responses.  The caller returns its result directly
// so every handler shares one mapping.
func bookingError(c echo.Context, err error) error {
	var sel *booking.SelectionError
	if errors.As(err, &sel) {
		if sel.DataIntegrity() {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seat map is inconsistent", "seat_code": sel.SeatCode})
		}
		resp := echo.Map{"error": sel.Error(), "reason": sel.Reason}
		if sel.SeatCode != "" {
			resp["seat_code"] = sel.SeatCode
		}
		return c.JSON(http.StatusBadRequest, resp)
	}
	var trans *booking.TransitionError
	if errors.As(err, &trans) {
		return c.JSON(http.StatusConflict, echo.Map{"error": trans.Error()})
	}
	switch {
	case errors.Is(err, booking.ErrShowtimeNotFound),
		errors.Is(err, booking.ErrRoomNotFound),
		errors.Is(err, booking.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your booking"})
	case errors.Is(err, booking.ErrShowtimeNotBookable):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrPendingBookingExists),
		errors.Is(err, booking.ErrSeatClaimConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrBookingExpired):
		return c.JSON(http.StatusGone, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
