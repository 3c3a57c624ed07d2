package models

// RouteDecision is what a navigation target should do given the session state.
type RouteDecision int

const (
	ShowLoading RouteDecision = iota
	RedirectToLogin
	RedirectToPendingApproval
	RedirectToDefault
	RenderTarget
)

const (
	LoginPath           = "/login"
	RegisterPath        = "/register"
	PendingApprovalPath = "/pending-approval"
	DefaultPath         = "/dashboard"
)

func (d RouteDecision) String() string {
	switch d {
	case ShowLoading:
		return "show_loading"
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToPendingApproval:
		return "redirect_to_pending_approval"
	case RedirectToDefault:
		return "redirect_to_default"
	case RenderTarget:
		return "render_target"
	default:
		return "unknown"
	}
}

// RedirectPath is the location a redirect decision points at, or "" when the
// decision does not navigate.
func (d RouteDecision) RedirectPath() string {
	switch d {
	case RedirectToLogin:
		return LoginPath
	case RedirectToPendingApproval:
		return PendingApprovalPath
	case RedirectToDefault:
		return DefaultPath
	default:
		return ""
	}
}

func (d RouteDecision) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// SessionState is a snapshot of the session controller.
type SessionState struct {
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	IsLoading       bool   `json:"isLoading"`
	Error           string `json:"error"`
}

// GuardInput is everything the route guard looks at.
type GuardInput struct {
	IsAuthenticated bool
	IsLoading       bool
	Role            Role
	// RequiredRole restricts the target to one role when set.
	RequiredRole *Role
	// PendingApprovalTarget marks the page pending users are sent to.
	PendingApprovalTarget bool
}

// RouteTarget describes a protected navigation target.
type RouteTarget struct {
	Path         string
	RequiredRole *Role
}

// IsPendingApproval reports whether the target is the pending-approval page.
func (t RouteTarget) IsPendingApproval() bool {
	return t.Path == PendingApprovalPath
}

// IsGuestOnly reports whether the target is a sign-in or sign-up page.
func (t RouteTarget) IsGuestOnly() bool {
	return t.Path == LoginPath || t.Path == RegisterPath
}
