package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// TokenCookie is the cookie the browser client carries the session
// token in. An Authorization bearer header takes precedence over it.
const TokenCookie = "token"

// Auth validates the session token and injects the identity claims into
// context. All rejection paths return the same 401 body: callers must
// not be able to tell a missing token from an expired, malformed or
// badly signed one.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromRequest(c)
			if token == "" {
				return errUnauthenticated()
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return errUnauthenticated()
			}

			userID, _ := claims["user_id"].(string)
			email, _ := claims["email"].(string)
			if userID == "" {
				return errUnauthenticated()
			}

			c.Set("user_id", userID)
			c.Set("email", email)

			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	// Header takes precedence; a non-bearer header falls through to the cookie.
	authHeader := c.Request().Header.Get("Authorization")
	if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}

	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func errUnauthenticated() error {
	return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
}
