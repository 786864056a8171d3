package handler

import (
	"log/slog"
	"net/http"

	"edu-backoffice/internal/middleware"
	"edu-backoffice/internal/model"
	"edu-backoffice/internal/service"
)

type AuthHandler struct {
	service *service.AuthService
	cookies *CookieTransport
}

func NewAuthHandler(service *service.AuthService, cookies *CookieTransport) *AuthHandler {
	return &AuthHandler{service: service, cookies: cookies}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload model.LoginRequest
	if err := decodeJSON(r, &payload, "All fields are required"); err != nil {
		writeError(w, err)
		return
	}

	session, err := h.service.Login(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	h.cookies.Set(w, session.Token, session.TTL)
	writeJSON(w, http.StatusOK, model.PrincipalResponse{Success: true, User: session.Principal})
}

func (h *AuthHandler) SuperAdminLogin(w http.ResponseWriter, r *http.Request) {
	var payload model.SuperAdminLoginRequest
	if err := decodeJSON(r, &payload, "Email and password are required"); err != nil {
		writeError(w, err)
		return
	}

	session, err := h.service.SuperAdminLogin(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	h.cookies.Set(w, session.Token, session.TTL)
	writeJSON(w, http.StatusOK, model.PrincipalResponse{Success: true, User: session.Principal})
}

// Me runs behind RequireSession, so the claims are already verified.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, model.PrincipalResponse{Success: true, User: claims.Principal})
}

// Logout always clears the cookie. Revoking the token is best effort.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			slog.Warn("token revocation failed", "error", err)
		}
	}

	h.cookies.Clear(w)
	writeJSON(w, http.StatusOK, model.MessageResponse{Success: true, Message: "Logged out successfully"})
}
