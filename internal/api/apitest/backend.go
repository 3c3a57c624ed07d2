// Package apitest provides an in-process fake of the session backend for tests.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"vss-session/internal/dto"
	"vss-session/internal/models"

	"github.com/labstack/echo/v4"
)

// Route names used by Calls.
const (
	RouteLogin          = "login"
	RouteRegister       = "register"
	RouteRefresh        = "refresh"
	RouteMe             = "me"
	RouteLogout         = "logout"
	RouteForgotPassword = "forgot-password"
	RouteVerifyCode     = "verify-code"
	RouteResetPassword  = "reset-password"
	RouteUsers          = "users"
	RouteUpdateRole     = "update-role"
	RouteProtected      = "protected"
)

// ResetCode is the recovery code every forgot-password request issues.
const ResetCode = "123456"

// Options switch the backend between the response variants it has shipped
// and inject failures.
type Options struct {
	// FlatLogin answers login with {accessToken, refreshToken} and no user.
	FlatLogin bool
	// RegisterIssuesTokens answers register with {user, tokens}.
	RegisterIssuesTokens bool
	// FailRefresh answers every refresh with 401.
	FailRefresh bool
	// FailLogout answers logout with 500.
	FailLogout bool
	// FailMe answers /auth/me with 500.
	FailMe bool
	// RefreshDelay holds every refresh response.
	RefreshDelay time.Duration
}

type account struct {
	user     models.User
	password string
}

// Backend is a fake session backend served by echo over httptest.
type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	opts     Options
	accounts map[string]*account
	access   map[string]string
	refresh  map[string]string
	resets   map[string]string
	calls    map[string]int
	seq      int
	nextID   int
}

// NewBackend starts a backend. Call Close when done.
func NewBackend() *Backend {
	b := &Backend{
		accounts: make(map[string]*account),
		access:   make(map[string]string),
		refresh:  make(map[string]string),
		resets:   make(map[string]string),
		calls:    make(map[string]int),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	auth := e.Group("/auth")
	auth.POST("/login", b.login)
	auth.POST("/register", b.register)
	auth.POST("/refresh", b.refreshTokens)
	auth.GET("/me", b.me)
	auth.POST("/logout", b.logout)
	auth.POST("/forgot-password", b.forgotPassword)
	auth.POST("/verify-code", b.verifyCode)
	auth.POST("/reset-password", b.resetPassword)

	e.GET("/users", b.listUsers)
	e.PATCH("/users/:id/role", b.updateRole)
	e.GET("/protected", b.protected)

	b.Server = httptest.NewServer(e)
	return b
}

func (b *Backend) URL() string {
	return b.Server.URL
}

func (b *Backend) Close() {
	b.Server.Close()
}

// Configure changes the response variants.
func (b *Backend) Configure(fn func(*Options)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.opts)
}

// AddUser registers an account and returns its profile.
func (b *Backend) AddUser(email, password, name string, role models.Role) models.User {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addUserLocked(email, password, name, role)
}

// IssueTokens creates a valid pair for email as if the user had logged in.
func (b *Backend) IssueTokens(email string) models.TokenPair {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.issueLocked(email)
}

// ExpireAccessToken makes token answer 401 from now on.
func (b *Backend) ExpireAccessToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.access, token)
}

// Calls returns how many requests route has served.
func (b *Backend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

// TotalCalls returns the number of requests served on every route.
func (b *Backend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := 0
	for _, n := range b.calls {
		total += n
	}
	return total
}

// User returns the stored profile for email.
func (b *Backend) User(email string) (models.User, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acc, ok := b.accounts[email]
	if !ok {
		return models.User{}, false
	}
	return acc.user, true
}

func (b *Backend) addUserLocked(email, password, name string, role models.Role) models.User {
	b.nextID++
	user := models.User{
		ID:    models.NewUserID(strconv.Itoa(b.nextID)),
		Email: email,
		Name:  name,
		Role:  role,
	}
	b.accounts[email] = &account{user: user, password: password}
	return user
}

func (b *Backend) issueLocked(email string) models.TokenPair {
	b.seq++
	pair := models.TokenPair{
		AccessToken:  fmt.Sprintf("T%d", b.seq),
		RefreshToken: fmt.Sprintf("R%d", b.seq),
	}
	b.access[pair.AccessToken] = email
	b.refresh[pair.RefreshToken] = email
	return pair
}

func (b *Backend) hit(route string) Options {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[route]++
	return b.opts
}

// authenticated resolves the bearer token to the caller's profile.
func (b *Backend) authenticated(c echo.Context) (models.User, bool) {
	token, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
	if !ok {
		return models.User{}, false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	email, ok := b.access[token]
	if !ok {
		return models.User{}, false
	}
	acc, ok := b.accounts[email]
	if !ok {
		return models.User{}, false
	}
	return acc.user, true
}

func flatTokens(pair models.TokenPair) map[string]string {
	return map[string]string{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"tokenType":    "bearer",
	}
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, dto.ErrorBody{Error: message})
}

func (b *Backend) login(c echo.Context) error {
	opts := b.hit(RouteLogin)

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	b.mu.Lock()
	acc, ok := b.accounts[req.Email]
	if !ok || acc.password != req.Password {
		b.mu.Unlock()
		return fail(c, http.StatusUnauthorized, "Invalid email or password")
	}
	pair := b.issueLocked(req.Email)
	user := acc.user
	b.mu.Unlock()

	if opts.FlatLogin {
		return c.JSON(http.StatusOK, flatTokens(pair))
	}
	return c.JSON(http.StatusOK, map[string]any{"user": user, "tokens": pair})
}

func (b *Backend) register(c echo.Context) error {
	opts := b.hit(RouteRegister)

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	role := models.RolePendingApproval
	if req.Role != nil {
		role = *req.Role
	}

	b.mu.Lock()
	if _, exists := b.accounts[req.Email]; exists {
		b.mu.Unlock()
		return fail(c, http.StatusBadRequest, "Email already registered")
	}
	user := b.addUserLocked(req.Email, req.Password, req.Name, role)
	var pair models.TokenPair
	if opts.RegisterIssuesTokens {
		pair = b.issueLocked(req.Email)
	}
	b.mu.Unlock()

	if opts.RegisterIssuesTokens {
		return c.JSON(http.StatusCreated, map[string]any{"user": user, "tokens": pair})
	}
	return c.JSON(http.StatusCreated, user)
}

func (b *Backend) refreshTokens(c echo.Context) error {
	opts := b.hit(RouteRefresh)

	if opts.RefreshDelay > 0 {
		time.Sleep(opts.RefreshDelay)
	}
	if opts.FailRefresh {
		return fail(c, http.StatusUnauthorized, "Invalid refresh token")
	}

	var req dto.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	email, ok := b.refresh[req.RefreshToken]
	if !ok {
		return fail(c, http.StatusUnauthorized, "Invalid refresh token")
	}
	delete(b.refresh, req.RefreshToken)
	pair := b.issueLocked(email)

	return c.JSON(http.StatusOK, flatTokens(pair))
}

func (b *Backend) me(c echo.Context) error {
	opts := b.hit(RouteMe)

	if opts.FailMe {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	user, ok := b.authenticated(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Token has expired")
	}
	return c.JSON(http.StatusOK, user)
}

func (b *Backend) logout(c echo.Context) error {
	opts := b.hit(RouteLogout)

	if opts.FailLogout {
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	var req dto.LogoutRequest
	_ = c.Bind(&req)

	b.mu.Lock()
	delete(b.refresh, req.RefreshToken)
	b.mu.Unlock()

	return c.NoContent(http.StatusNoContent)
}

func (b *Backend) forgotPassword(c echo.Context) error {
	b.hit(RouteForgotPassword)

	var req dto.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	b.mu.Lock()
	b.resets[req.Email] = ResetCode
	b.mu.Unlock()

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "If the email exists, a code has been sent"})
}

func (b *Backend) verifyCode(c echo.Context) error {
	b.hit(RouteVerifyCode)

	var req dto.VerifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	b.mu.Lock()
	valid := b.resets[req.Email] == req.Code && req.Code != ""
	b.mu.Unlock()

	return c.JSON(http.StatusOK, dto.VerifyCodeResponse{Valid: valid})
}

func (b *Backend) resetPassword(c echo.Context) error {
	b.hit(RouteResetPassword)

	var req dto.ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if code, ok := b.resets[req.Email]; !ok || code != req.Code {
		return fail(c, http.StatusBadRequest, "Invalid or expired code")
	}
	acc, ok := b.accounts[req.Email]
	if !ok {
		return fail(c, http.StatusNotFound, "User not found")
	}
	acc.password = req.NewPassword
	delete(b.resets, req.Email)

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated"})
}

func (b *Backend) listUsers(c echo.Context) error {
	b.hit(RouteUsers)

	caller, ok := b.authenticated(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Token has expired")
	}
	if !caller.Role.IsPrivileged() {
		return fail(c, http.StatusForbidden, "Insufficient permissions")
	}

	search := strings.ToLower(c.QueryParam("search"))
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	b.mu.Lock()
	users := make([]*models.User, 0, len(b.accounts))
	for _, a := range b.accounts {
		if search != "" && !strings.Contains(strings.ToLower(a.user.Email+" "+a.user.Name), search) {
			continue
		}
		user := a.user
		users = append(users, &user)
	}
	b.mu.Unlock()

	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })

	total := len(users)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, dto.UsersListResponse{
		Users: users[start:end],
		Pagination: dto.Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: (total + limit - 1) / limit,
		},
	})
}

func (b *Backend) updateRole(c echo.Context) error {
	b.hit(RouteUpdateRole)

	caller, ok := b.authenticated(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Token has expired")
	}
	if !caller.Role.IsPrivileged() {
		return fail(c, http.StatusForbidden, "Insufficient permissions")
	}

	var req dto.UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Role is required")
	}
	role := models.RoleFromCode(req.Role)
	if !role.Valid() {
		return fail(c, http.StatusBadRequest, fmt.Sprintf("Invalid role: %d", req.Role))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, a := range b.accounts {
		if a.user.ID.String() == c.Param("id") {
			a.user.Role = role
			return c.JSON(http.StatusOK, a.user)
		}
	}
	return fail(c, http.StatusNotFound, "User not found")
}

func (b *Backend) protected(c echo.Context) error {
	b.hit(RouteProtected)

	if _, ok := b.authenticated(c); !ok {
		return fail(c, http.StatusUnauthorized, "Token has expired")
	}
	token := strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}
