package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/greatcoltini/finance-CS50/src/schemas"
	"github.com/greatcoltini/finance-CS50/src/utils"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	var req = new(schemas.RegisterRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest(err.Error()))
		return
	}

	user, err := h.Controller.Register(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.Logger.WithField("username", user.Username).Info("user registered")
	h.respond(w, r, schemas.AccountResponse{
		Username: user.Username,
		Cash:     utils.FormatUSD(user.Cash),
	}, http.StatusCreated)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req = new(schemas.LoginRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest(err.Error()))
		return
	}

	token, err := h.Controller.Login(ctx, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, schemas.TokenResponse{Token: token}, http.StatusOK)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	username, err := usernameFromRequest(r)
	if err != nil {
		h.HandleErrors(w, utils.Unauthorized("auth token not detected"))
		return
	}

	var req = new(schemas.ChangePasswordRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest(err.Error()))
		return
	}

	if err := h.Controller.ChangePassword(ctx, username, req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
