package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AdminCookieName is the HttpOnly session cookie set on login.
const AdminCookieName = "adminToken"

// AdminClaims is the JWT payload for the admin session.
type AdminClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// GenerateAdminToken creates a signed admin session token.
func GenerateAdminToken(secret []byte, ttl time.Duration) (string, error) {
	claims := &AdminClaims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "gift-of-hope",
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// AdminAuth validates the admin session cookie. The secret is injected at
// construction rather than read from the environment on first use.
func AdminAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AdminCookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}

			token, err := jwt.ParseWithClaims(cookie.Value, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}

			claims, ok := token.Claims.(*AdminClaims)
			if !ok || !claims.Admin {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}

			return next(c)
		}
	}
}
