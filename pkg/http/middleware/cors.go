package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	AllowCredentials bool
	MaxAgeSeconds    int
}

// CORS returns CORS middleware. Preflight requests are answered with 204.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get("Origin")
			res := c.Response().Header()
			res.Add("Vary", "Origin")

			allowed := matchOrigin(cfg.AllowOrigins, origin)
			if allowed == "" {
				return next(c)
			}

			res.Set("Access-Control-Allow-Origin", allowed)
			if cfg.AllowCredentials && allowed != "*" {
				res.Set("Access-Control-Allow-Credentials", "true")
			}
			if methods != "" {
				res.Set("Access-Control-Allow-Methods", methods)
			}
			if headers != "" {
				res.Set("Access-Control-Allow-Headers", headers)
			}
			if cfg.MaxAgeSeconds > 0 {
				res.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAgeSeconds))
			}

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusNoContent)
			}
			return next(c)
		}
	}
}

// matchOrigin picks the Access-Control-Allow-Origin value to send back, or
// empty when the origin is not in the allow list.
func matchOrigin(allowList []string, origin string) string {
	for _, o := range allowList {
		if o == "*" {
			if origin == "" {
				return "*"
			}
			return origin
		}
		if origin != "" && o == origin {
			return origin
		}
	}
	return ""
}
