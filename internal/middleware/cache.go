package middleware

import (
    "bytes"
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/cinema-ticket-booking/internal/config"
)

// bodyRecorder duplicates the response body while it is written to the
// client so a successful response can be stored afterwards.
type bodyRecorder struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
}

func (w *bodyRecorder) WriteHeader(code int) {
    w.status = code
    w.ResponseWriter.WriteHeader(code)
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
    w.buf.Write(b)
    return w.ResponseWriter.Write(b)
}

// CacheResponse caches successful JSON GET responses in Redis for the
// configured TTL.  Apply it only to static browse routes (room layout,
// upcoming showtimes): seat availability depends on the clock and the
// caller and must always be resolved fresh.  Without Redis the
// middleware is a pass-through.
func CacheResponse(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }
            key := cfg.Prefix + ":" + c.Request().URL.RequestURI()
            ctx := c.Request().Context()

            if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
                c.Response().Header().Set("X-Cache", "HIT")
                return c.JSONBlob(http.StatusOK, body)
            }

            rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK}
            c.Response().Writer = rec
            if err := next(c); err != nil {
                return err
            }
            if rec.status == http.StatusOK && rec.buf.Len() > 0 {
                // Best effort; a failed SET only costs the next request a miss.
                _ = rdb.Set(ctx, key, rec.buf.Bytes(), cfg.TTL).Err()
            }
            return nil
        }
    }
}
