package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/cinema-ticket-booking/internal/utils"
)

const testSecret = "test-secret"

func ok(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}

func do(e *echo.Echo, header string) *httptest.ResponseRecorder {
    req := httptest.NewRequest(http.MethodGet, "/protected", nil)
    if header != "" {
        req.Header.Set("Authorization", header)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func bearer(t *testing.T, role string) string {
    t.Helper()
    tok, err := utils.NewAccessToken(testSecret, 42, role, 5)
    require.NoError(t, err)
    return "Bearer " + tok.Token
}

func TestJWTAuth(t *testing.T) {
    e := echo.New()
    e.GET("/protected", func(c echo.Context) error {
        // Claims decoded from JSON arrive as float64.
        assert.Equal(t, float64(42), c.Get("user_id"))
        assert.Equal(t, "CUSTOMER", c.Get("role"))
        return ok(c)
    }, JWTAuth(testSecret))

    assert.Equal(t, http.StatusOK, do(e, bearer(t, "CUSTOMER")).Code)
    assert.Equal(t, http.StatusUnauthorized, do(e, "").Code)
    assert.Equal(t, http.StatusUnauthorized, do(e, "Bearer not-a-token").Code)

    wrong, err := utils.NewAccessToken("other-secret", 42, "CUSTOMER", 5)
    require.NoError(t, err)
    assert.Equal(t, http.StatusUnauthorized, do(e, "Bearer "+wrong.Token).Code)
}

func TestOptionalJWTAuth(t *testing.T) {
    e := echo.New()
    e.GET("/protected", func(c echo.Context) error {
        return c.JSON(http.StatusOK, echo.Map{"user_id": c.Get("user_id")})
    }, OptionalJWTAuth(testSecret))

    // Guests and holders of garbage tokens both pass, anonymously.
    rec := do(e, "")
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), "null")

    rec = do(e, "Bearer not-a-token")
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), "null")

    rec = do(e, bearer(t, "CUSTOMER"))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), "42")
}

func TestRequireRole(t *testing.T) {
    e := echo.New()
    e.GET("/protected", ok, JWTAuth(testSecret), RequireRole("ADMIN"))

    assert.Equal(t, http.StatusForbidden, do(e, bearer(t, "CUSTOMER")).Code)
    assert.Equal(t, http.StatusOK, do(e, bearer(t, "ADMIN")).Code)
}
