package handlers

import (
	"errors"
	"net/http"

	"github.com/foryourmind/server/internal/api/dto"
	"github.com/foryourmind/server/internal/auth"
	"github.com/foryourmind/server/internal/common"
)

const refreshCookieName = "refresh_token"

type AuthHandler struct {
	authService *auth.Service
	production  bool
}

func NewAuthHandler(authService *auth.Service, production bool) *AuthHandler {
	return &AuthHandler{authService: authService, production: production}
}

// setRefreshCookie stores the refresh token in an http-only cookie. In
// production the cookie is cross-site (Secure + SameSite=None) because the
// SPA is served from a different origin.
func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string, maxAge int) {
	cookie := &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   maxAge,
		Secure:   h.production,
		SameSite: http.SameSiteLaxMode,
	}
	if h.production {
		cookie.SameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, cookie)
}

func (h *AuthHandler) clearRefreshCookie(w http.ResponseWriter) {
	h.setRefreshCookie(w, "", -1)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	user, pair, err := h.authService.Register(r.Context(), req.Email, req.Password, req.DisplayName, req.Role)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken, int(h.authService.RefreshTTL().Seconds()))
	writeJSON(w, http.StatusCreated, dto.AuthResponse{
		User:  dto.NewUserDTO(user),
		Token: pair.AccessToken,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	user, pair, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken, int(h.authService.RefreshTTL().Seconds()))
	writeJSON(w, http.StatusOK, dto.AuthResponse{
		User:  dto.NewUserDTO(user),
		Token: pair.AccessToken,
	})
}

// Refresh exchanges the cookie-held refresh token for a new pair. The old
// token is consumed either way; replaying it yields 401.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "refresh token required")
		return
	}

	user, pair, err := h.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		h.clearRefreshCookie(w)
		switch {
		case errors.Is(err, common.ErrRefreshTokenExpired):
			writeError(w, http.StatusUnauthorized, "refresh token expired")
		case errors.Is(err, common.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "invalid refresh token")
		default:
			writeError(w, http.StatusInternalServerError, "refresh failed")
		}
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken, int(h.authService.RefreshTTL().Seconds()))
	writeJSON(w, http.StatusOK, dto.AuthResponse{
		User:  dto.NewUserDTO(user),
		Token: pair.AccessToken,
	})
}

// Logout revokes the refresh token and clears the cookie. Succeeds even
// without a valid session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(refreshCookieName); err == nil {
		_ = h.authService.Logout(r.Context(), cookie.Value)
	}
	h.clearRefreshCookie(w)
	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "logged out"})
}
