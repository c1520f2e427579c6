package controllers

import (
	"context"

	"github.com/greatcoltini/finance-CS50/src/schemas"
	"github.com/greatcoltini/finance-CS50/src/utils"
)

func (c *Controller) GetPortfolio(ctx context.Context, username string) (*schemas.PortfolioResponse, error) {
	return c.PortfolioService.Portfolio(ctx, username)
}

func (c *Controller) GetAccount(ctx context.Context, username string) (*schemas.AccountResponse, error) {
	user, err := c.AccountService.GetAccount(ctx, username)
	if err != nil {
		return nil, err
	}
	return &schemas.AccountResponse{
		Username: user.Username,
		Cash:     utils.FormatUSD(user.Cash),
	}, nil
}

func (c *Controller) TransferFunds(ctx context.Context, username string, req *schemas.FundsRequest) (*schemas.AccountResponse, error) {
	newCash, err := c.AccountService.TransferFunds(ctx, username, req.Amount, req.Operation)
	if err != nil {
		return nil, err
	}
	return &schemas.AccountResponse{
		Username: username,
		Cash:     utils.FormatUSD(newCash),
	}, nil
}
