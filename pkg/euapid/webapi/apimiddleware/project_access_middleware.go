package apimiddleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ProjectMembershipAuth checks that the authenticated user belongs to the
// project named by the project_name path parameter, or is an admin. JWTAuth
// must run before this middleware.
func ProjectMembershipAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := UserFromContext(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			projectName := c.Param("project_name")
			if projectName == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "Missing project name")
			}

			if !user.IsAdmin && !user.HasProject(projectName) {
				return echo.NewHTTPError(http.StatusForbidden, "User does not have access to this project")
			}

			return next(c)
		}
	}
}
