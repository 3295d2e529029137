// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-ticket-booking/internal/config"
	"github.com/iliyamo/cinema-ticket-booking/internal/handler"
	"github.com/iliyamo/cinema-ticket-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  Register, login
// and refresh are open; logout and /v1/me require a valid access
// token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.POST("/auth/logout", a.Logout)
	auth.GET("/me", a.Me)
}

// RegisterBrowse registers the unauthenticated discovery endpoints.
// The showtime list and room layout are static enough to cache; seat
// availability must always be computed fresh, so it is registered
// without the cache middleware.
func RegisterBrowse(e *echo.Echo, b *handler.BrowseHandler, jwtSecret string, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cached := middleware.CacheResponse(cacheCfg, rdb)
	e.GET("/v1/showtimes", b.ListShowtimes, cached)
	e.GET("/v1/rooms/:id/layout", b.RoomLayout, cached)
	e.GET("/v1/showtimes/:id/seats", b.Availability, middleware.OptionalJWTAuth(jwtSecret))
}

// RegisterBooking registers the booking lifecycle routes.  All of them
// require a customer session; the seat-claiming route additionally
// sits behind the rate limiter because it is the contended hot path.
func RegisterBooking(e *echo.Echo, h *handler.BookingHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret), middleware.RequireRole("CUSTOMER", "ADMIN"))
	g.POST("/showtimes/:id/bookings", h.Create, middleware.RateLimit(rlCfg, rdb))
	g.POST("/bookings/:id/payment", h.StartPayment)
	g.POST("/bookings/:id/confirm", h.Confirm)
	g.DELETE("/bookings/:id", h.Cancel)
	g.GET("/bookings/:id", h.Get)
	g.GET("/my-bookings", h.ListMine)
}

// RegisterInternal registers operator-only routes.  The sweep endpoint
// is exposed so an external scheduler can drive expiry when the
// built-in ticker is disabled.
func RegisterInternal(e *echo.Echo, s *handler.SweepHandler, jwtSecret string) {
	g := e.Group("/internal", middleware.JWTAuth(jwtSecret), middleware.RequireRole("ADMIN"))
	g.POST("/sweep", s.Run)
}
