package middleware

import (
	"vss-session/internal/errors"
	"vss-session/internal/handlers"
	"vss-session/internal/models"
	"vss-session/internal/services"

	"github.com/labstack/echo/v4"
)

// UserContextKey holds the signed-in *models.User on guarded routes
const UserContextKey = "user"

// RequireSession lets a request through only when the route guard would
// render a protected page for the current session. The signed-in user is
// stored under UserContextKey.
func RequireSession(controller services.SessionControllerInterface, guard services.RouteGuardInterface) echo.MiddlewareFunc {
	return requireDecision(controller, guard, nil)
}

// RequireRole is RequireSession restricted to one role
func RequireRole(controller services.SessionControllerInterface, guard services.RouteGuardInterface, role models.Role) echo.MiddlewareFunc {
	return requireDecision(controller, guard, &role)
}

// RequireAdmin is a convenience middleware that requires admin role
func RequireAdmin(controller services.SessionControllerInterface, guard services.RouteGuardInterface) echo.MiddlewareFunc {
	return RequireRole(controller, guard, models.RoleAdmin)
}

func requireDecision(controller services.SessionControllerInterface, guard services.RouteGuardInterface, role *models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := controller.State()
			target := models.RouteTarget{Path: c.Path(), RequiredRole: role}

			switch guard.DecideForState(state, target) {
			case models.ShowLoading:
				return handlers.SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("Session is still loading"))
			case models.RedirectToLogin:
				return handlers.SendError(c, errors.SessionNotAuthenticated)
			case models.RedirectToPendingApproval:
				return handlers.SendError(c, errors.AuthPendingApproval)
			case models.RedirectToDefault:
				return handlers.SendError(c, errors.AuthInsufficientPermission)
			}

			c.Set(UserContextKey, state.User)
			return next(c)
		}
	}
}
