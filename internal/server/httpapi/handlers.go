// Package httpapi exposes the verifier over HTTP: wallet challenge issue and
// verify, email/password sign-up and sign-in, and the bearer-authenticated
// profile endpoint.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"

	commonx "github.com/decentrix/decentrix/internal/common"
	"github.com/decentrix/decentrix/internal/logging"
	"github.com/decentrix/decentrix/internal/server/siwe"
	"github.com/decentrix/decentrix/internal/server/users"
)

type Handler struct {
	siwe   *siwe.Service
	users  *users.Service
	logger logging.Logger
}

func NewHandler(siweService *siwe.Service, userService *users.Service, logger logging.Logger) *Handler {
	return &Handler{siwe: siweService, users: userService, logger: logger}
}

type challengeRequest struct {
	Address string `json:"address"`
	Domain  string `json:"domain"`
	URI     string `json:"uri"`
}

// challenge issues a sign-in message for a wallet address. The response body
// is the message itself, returned as plain text so the client signs exactly
// the bytes the server rendered.
func (h *Handler) challenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	message, err := h.siwe.Issue(r.Context(), req.Address, req.Domain, req.URI)
	if err != nil {
		if errors.Is(err, siwe.ErrBadAddress) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.fail(w, r, "challenge issue error", err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(message))
}

type verifyRequest struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

// verify checks a signed challenge. A bad signature is a 200 with
// success=false, not an HTTP error: the request itself succeeded.
func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	signature, err := hexutil.Decode(req.Signature)
	if err != nil {
		h.writeJSON(w, http.StatusOK, map[string]bool{"success": false})
		return
	}

	ok, err := h.siwe.Verify(r.Context(), req.Message, signature)
	if err != nil {
		h.fail(w, r, "verification error", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

type signUpRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	token, err := h.users.Register(r.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, commonx.ErrorConflict) {
			http.Error(w, "email already registered", http.StatusConflict)
			return
		}
		h.fail(w, r, "sign-up error", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"access_token": token})
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, commonx.ErrorUnauthorized) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.fail(w, r, "sign-in error", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

type profileResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.users.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, commonx.ErrorUnauthorized) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		h.fail(w, r, "profile error", err)
		return
	}

	h.writeJSON(w, http.StatusOK, profileResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error(context.Background(), "response encode error", "error", err.Error())
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(r.Context(), msg, "error", err.Error())
	http.Error(w, "internal error", http.StatusInternalServerError)
}
