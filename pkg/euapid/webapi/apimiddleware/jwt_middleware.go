package apimiddleware

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/wiwski/euphrosyne-tools-api/pkg/eumodel"
)

const userContextKey = "user"

// userClaims is the payload of the bearer tokens the euphrosyne backend
// issues, HS256-signed with a shared secret.
type userClaims struct {
	UserID   int               `json:"user_id"`
	Projects []eumodel.Project `json:"projects"`
	IsAdmin  bool              `json:"is_admin"`
	jwt.RegisteredClaims
}

type JWTAuthConfig struct {
	Skipper middleware.Skipper
	Secret  string
}

// JWTAuth authenticates requests by the bearer token in the Authorization
// header and stores the decoded user in the request context.
func JWTAuth(config JWTAuthConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			tokenStr, err := bearerTokenFromRequest(c)
			if err != nil {
				return echo.ErrUnauthorized
			}

			claims := &userClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
				return []byte(config.Secret), nil
			}, jwt.WithValidMethods([]string{"HS256"}))

			switch {
			case err != nil:
				return echo.ErrUnauthorized
			case !token.Valid:
				return echo.ErrUnauthorized
			case claims.UserID == 0:
				return echo.ErrUnauthorized
			}

			c.Set(userContextKey, &eumodel.User{
				ID:       claims.UserID,
				Projects: claims.Projects,
				IsAdmin:  claims.IsAdmin,
			})

			return next(c)
		}
	}
}

// UserFromContext returns the user stored by JWTAuth, or nil when the request
// was not authenticated.
func UserFromContext(c echo.Context) *eumodel.User {
	user, _ := c.Get(userContextKey).(*eumodel.User)
	return user
}

func bearerTokenFromRequest(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", fmt.Errorf("no bearer token in request")
	}

	return token, nil
}
