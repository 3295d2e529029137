package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-booking/internal/booking"
	"github.com/iliyamo/cinema-ticket-booking/internal/model"
	"github.com/iliyamo/cinema-ticket-booking/internal/repository"
)

// BrowseHandler serves the read-only discovery endpoints: upcoming
// showtimes, static room layouts and live seat availability.  Only the
// first two may sit behind a response cache; availability is computed
// fresh on every request.
type BrowseHandler struct {
	Showtimes *repository.ShowtimeRepo
	Rooms     *repository.RoomRepo
	Svc       *booking.Service
}

func NewBrowseHandler(showtimes *repository.ShowtimeRepo, rooms *repository.RoomRepo, svc *booking.Service) *BrowseHandler {
	if showtimes == nil || rooms == nil || svc == nil {
		panic("nil dependency passed to NewBrowseHandler")
	}
	return &BrowseHandler{Showtimes: showtimes, Rooms: rooms, Svc: svc}
}

type showtimePart struct {
	ID         uint64    `json:"id"`
	RoomID     uint64    `json:"room_id"`
	MovieTitle string    `json:"movie_title"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Status     string    `json:"status"`
}

// ListShowtimes handles GET /v1/showtimes.  It lists scheduled
// showtimes that have not started yet.
func (h *BrowseHandler) ListShowtimes(c echo.Context) error {
	list, err := h.Showtimes.ListUpcoming(c.Request().Context(), time.Now().UTC(), 100)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	out := make([]showtimePart, 0, len(list))
	for _, s := range list {
		out = append(out, showtimePart{
			ID:         s.ID,
			RoomID:     s.RoomID,
			MovieTitle: s.MovieTitle,
			StartsAt:   s.StartsAt,
			EndsAt:     s.EndsAt,
			Status:     s.Status,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"showtimes": out})
}

type layoutCell struct {
	SeatCode string         `json:"seat_code"`
	SeatType model.SeatType `json:"seat_type"`
}

// RoomLayout handles GET /v1/rooms/:id/layout.  The layout is the
// static grid of seat cells; nil entries mark aisles and gaps.
func (h *BrowseHandler) RoomLayout(c echo.Context) error {
	roomID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Rooms.GetRoom(c.Request().Context(), roomID)
	if err != nil {
		return bookingError(c, err)
	}
	seatMap, err := h.Rooms.GetSeatMap(c.Request().Context(), roomID)
	if err != nil {
		return bookingError(c, err)
	}
	rows := make([][]*layoutCell, len(seatMap.Rows))
	for i, row := range seatMap.Rows {
		rows[i] = make([]*layoutCell, len(row))
		for j, cell := range row {
			if cell == nil {
				continue
			}
			rows[i][j] = &layoutCell{SeatCode: cell.SeatCode, SeatType: cell.SeatType}
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"room_id":   room.ID,
		"name":      room.Name,
		"room_type": room.RoomType,
		"rows":      rows,
	})
}

// Availability handles GET /v1/showtimes/:id/seats.  The response
// reflects every hold and sale as of this instant, including the
// caller's own holds flagged as mine.  Anonymous callers see held
// seats as unavailable without the mine flag.
func (h *BrowseHandler) Availability(c echo.Context) error {
	showtimeID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	viewerID, err := getUserID(c)
	if err != nil {
		viewerID = 0 // anonymous viewer, nothing is mine
	}
	m, err := h.Svc.AvailableSeats(c.Request().Context(), showtimeID, viewerID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}
