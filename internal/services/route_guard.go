package services

import "vss-session/internal/models"

// RouteGuard maps session state to a navigation outcome. It holds no state.
type RouteGuard struct{}

func NewRouteGuard() RouteGuardInterface {
	return &RouteGuard{}
}

// Decide evaluates, in order: loading, authentication, pending approval, required role.
// A pending user is held on the pending-approval page whatever role the target requires.
func (g *RouteGuard) Decide(input models.GuardInput) models.RouteDecision {
	switch {
	case input.IsLoading:
		return models.ShowLoading
	case !input.IsAuthenticated:
		return models.RedirectToLogin
	case input.Role.IsPendingApproval():
		if input.PendingApprovalTarget {
			return models.RenderTarget
		}
		return models.RedirectToPendingApproval
	case input.RequiredRole != nil && *input.RequiredRole != input.Role:
		return models.RedirectToDefault
	default:
		return models.RenderTarget
	}
}

// DecideGuestOnly guards the login and register pages.
func (g *RouteGuard) DecideGuestOnly(isAuthenticated, isLoading bool) models.RouteDecision {
	switch {
	case isLoading:
		return models.ShowLoading
	case isAuthenticated:
		return models.RedirectToDefault
	default:
		return models.RenderTarget
	}
}

func (g *RouteGuard) DecideForState(state models.SessionState, target models.RouteTarget) models.RouteDecision {
	input := models.GuardInput{
		IsAuthenticated:       state.IsAuthenticated,
		IsLoading:             state.IsLoading,
		RequiredRole:          target.RequiredRole,
		PendingApprovalTarget: target.IsPendingApproval(),
	}
	if state.User != nil {
		input.Role = state.User.Role
	}
	return g.Decide(input)
}
