package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/cartify/cartify/internal/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthHandler mints tokens in place of the external identity provider.
// The workflow trusts whatever identity the token carries.
type AuthHandler struct {
	Tokens *auth.Tokens
	Log    *zap.Logger
}

func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/api/auth/token", h.token)
}

type tokenReq struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

func (h *AuthHandler) token(w http.ResponseWriter, r *http.Request) {
	var req tokenReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.UserID == "" {
		fail(w, http.StatusBadRequest, "missing userId")
		return
	}
	role, ok := auth.ParseRole(req.Role)
	if !ok {
		fail(w, http.StatusBadRequest, "invalid role")
		return
	}

	tok, err := h.Tokens.Issue(req.UserID, role)
	if err != nil {
		failErr(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": tok})
}
