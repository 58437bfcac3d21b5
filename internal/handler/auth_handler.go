package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc           *usecase.AuthUsecase
	cfg          config.Config
	userRepo     repository.UserRepository
	refreshTTL   time.Duration
	cookieSecure bool
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase, cfg config.Config, userRepo repository.UserRepository) *AuthHandler {
	return &AuthHandler{
		uc:         uc,
		cfg:        cfg,
		userRepo:   userRepo,
		refreshTTL: 30 * 24 * time.Hour,
		//devではhttpでも動かせるようにする
		cookieSecure: cfg.GoEnv != "dev",
	}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/auth")
	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.POST("/refresh", h.refresh)
	g.POST("/logout", h.logout)

	me := e.Group("/auth", middleware.AuthJWT(h.cfg), middleware.TokenVersionGuard(h.userRepo))
	me.GET("/me", h.me)

	admin := e.Group(
		"/admin",
		middleware.AuthJWT(h.cfg),
		middleware.TokenVersionGuard(h.userRepo),
		middleware.AdminRoleGuard(),
	)
	admin.POST("/users/:id/force-logout", h.forceLogout)
}

// sentinelエラーをHTTPステータスへ変換
func writeAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return respondError(c, http.StatusBadRequest, "validation error")
	case errors.Is(err, usecase.ErrUnauthorized), errors.Is(err, usecase.ErrSecurityIncident):
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, usecase.ErrForbidden):
		return respondError(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, usecase.ErrConflict):
		return respondError(c, http.StatusConflict, "email already registered")
	default:
		return respondError(c, http.StatusInternalServerError, "internal error")
	}
}

func (h *AuthHandler) register(c echo.Context) error {
	var req usecase.AuthRegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return writeAuthError(c, err)
	}
	return respondOK(c, http.StatusCreated, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req usecase.AuthLoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid body")
	}

	userAgent := c.Request().Header.Get("User-Agent")
	ip := c.RealIP()

	res, err := h.uc.Login(c.Request().Context(), req, userAgent, ip)
	if err != nil {
		return writeAuthError(c, err)
	}

	h.setRefreshCookie(c, res.RefreshTokenPlain)
	h.setCsrfCookie(c, res.CsrfTokenPlain)

	return respondOK(c, http.StatusOK, res.Body)
}

func (h *AuthHandler) refresh(c echo.Context) error {
	cookie, err := c.Cookie("refresh")
	if err != nil || cookie.Value == "" {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	userAgent := c.Request().Header.Get("User-Agent")
	ip := c.RealIP()

	res, uerr := h.uc.Refresh(c.Request().Context(), cookie.Value, userAgent, ip)
	if uerr != nil {
		return writeAuthError(c, uerr)
	}

	h.setRefreshCookie(c, res.RefreshTokenPlain)
	h.setCsrfCookie(c, res.CsrfTokenPlain)

	return respondOK(c, http.StatusOK, res.Body)
}

func (h *AuthHandler) logout(c echo.Context) error {
	cookie, err := c.Cookie("refresh")
	if err != nil || cookie.Value == "" {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	out, uerr := h.uc.Logout(c.Request().Context(), cookie.Value)
	if uerr != nil {
		return writeAuthError(c, uerr)
	}

	h.clearAuthCookies(c)
	return respondOK(c, http.StatusOK, out)
}

func (h *AuthHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, "unauthorized")
	}

	out, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return writeAuthError(c, err)
	}
	return respondOK(c, http.StatusOK, out)
}

func (h *AuthHandler) forceLogout(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		return respondError(c, http.StatusBadRequest, "invalid user id")
	}

	out, uerr := h.uc.ForceLogout(c.Request().Context(), userID)
	if uerr != nil {
		return writeAuthError(c, uerr)
	}
	return respondOK(c, http.StatusOK, out)
}

// refreshtokenをCookieにセット
func (h *AuthHandler) setRefreshCookie(c echo.Context, plain string) {
	c.SetCookie(&http.Cookie{
		Name:     "refresh",
		Value:    plain,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.refreshTTL),
	})
}

// csrftokenをCookieにセット（JSから読める）
func (h *AuthHandler) setCsrfCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     "csrf_token",
		Value:    token,
		Path:     "/",
		HttpOnly: false,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.refreshTTL),
	})
}

func (h *AuthHandler) clearAuthCookies(c echo.Context) {
	expired := time.Unix(0, 0)
	c.SetCookie(&http.Cookie{Name: "refresh", Value: "", Path: "/", HttpOnly: true, Expires: expired})
	c.SetCookie(&http.Cookie{Name: "csrf_token", Value: "", Path: "/", Expires: expired})
}
