package model

import "time"

// Showtime represents a scheduled screening of a movie in a particular
// room.  Bookings always reference a showtime; seat availability is a
// per-showtime view over the room's static seat map.
//
// Fields:
//  ID         – primary key identifier.
//  RoomID     – room where the screening takes place.
//  MovieTitle – title of the movie being screened.
//  StartsAt   – when the screening begins.
//  EndsAt     – when the screening ends (must be after StartsAt).
//  Status     – current state (SCHEDULED, CANCELLED, FINISHED).
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Showtime struct {
    ID         uint64    // showtimes.id
    RoomID     uint64    // showtimes.room_id
    MovieTitle string    // showtimes.movie_title
    StartsAt   time.Time // showtimes.starts_at
    EndsAt     time.Time // showtimes.ends_at
    Status     string    // showtimes.status
    CreatedAt  time.Time // showtimes.created_at
    UpdatedAt  time.Time // showtimes.updated_at
}

// ShowtimeScheduled is the only showtime status that accepts bookings.
const ShowtimeScheduled = "SCHEDULED"

// Bookable reports whether new bookings may be created for the
// showtime at the given instant: it must be scheduled and must not
// have started yet.
func (s *Showtime) Bookable(now time.Time) bool {
    return s.Status == ShowtimeScheduled && s.StartsAt.After(now)
}
