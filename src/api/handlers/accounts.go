package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/greatcoltini/finance-CS50/src/schemas"
	"github.com/greatcoltini/finance-CS50/src/utils"
)

func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	username, err := usernameFromRequest(r)
	if err != nil {
		h.HandleErrors(w, utils.Unauthorized("auth token not detected"))
		return
	}

	portfolio, err := h.Controller.GetPortfolio(ctx, username)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, portfolio, http.StatusOK)
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	username, err := usernameFromRequest(r)
	if err != nil {
		h.HandleErrors(w, utils.Unauthorized("auth token not detected"))
		return
	}

	account, err := h.Controller.GetAccount(ctx, username)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, account, http.StatusOK)
}

func (h *Handler) TransferFunds(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	username, err := usernameFromRequest(r)
	if err != nil {
		h.HandleErrors(w, utils.Unauthorized("auth token not detected"))
		return
	}

	var req = new(schemas.FundsRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest(err.Error()))
		return
	}

	account, err := h.Controller.TransferFunds(ctx, username, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, account, http.StatusOK)
}
