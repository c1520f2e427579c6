package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/greatcoltini/finance-CS50/src/schemas"
	"github.com/greatcoltini/finance-CS50/src/utils"
)

func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	h.executeTrade(w, r, h.Controller.Buy)
}

func (h *Handler) Sell(w http.ResponseWriter, r *http.Request) {
	h.executeTrade(w, r, h.Controller.Sell)
}

func (h *Handler) executeTrade(w http.ResponseWriter, r *http.Request, trade func(context.Context, string, *schemas.TradeRequest) (*schemas.TradeResponse, error)) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	username, err := usernameFromRequest(r)
	if err != nil {
		h.HandleErrors(w, utils.Unauthorized("auth token not detected"))
		return
	}

	var req = new(schemas.TradeRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		h.HandleErrors(w, utils.BadRequest(err.Error()))
		return
	}

	result, err := trade(ctx, username, req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.Logger.WithFields(map[string]interface{}{
		"username": username,
		"symbol":   result.Symbol,
		"shares":   result.Shares,
	}).Info("trade executed")
	h.respond(w, r, result, http.StatusOK)
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	username, err := usernameFromRequest(r)
	if err != nil {
		h.HandleErrors(w, utils.Unauthorized("auth token not detected"))
		return
	}

	history, err := h.Controller.GetHistory(ctx, username)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, history, http.StatusOK)
}
