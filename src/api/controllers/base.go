package controllers

import (
	"context"

	"github.com/greatcoltini/finance-CS50/src/clients/stockquote"
	"github.com/greatcoltini/finance-CS50/src/models"
	"github.com/greatcoltini/finance-CS50/src/schemas"
	"github.com/greatcoltini/finance-CS50/src/services"
)

type IController interface {
	Register(ctx context.Context, req *schemas.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *schemas.LoginRequest) (string, error)
	ChangePassword(ctx context.Context, username string, req *schemas.ChangePasswordRequest) error
	GetQuote(ctx context.Context, symbol string) (*schemas.QuoteResponse, error)
	Buy(ctx context.Context, username string, req *schemas.TradeRequest) (*schemas.TradeResponse, error)
	Sell(ctx context.Context, username string, req *schemas.TradeRequest) (*schemas.TradeResponse, error)
	GetHistory(ctx context.Context, username string) ([]schemas.HistoryEntry, error)
	GetPortfolio(ctx context.Context, username string) (*schemas.PortfolioResponse, error)
	GetAccount(ctx context.Context, username string) (*schemas.AccountResponse, error)
	TransferFunds(ctx context.Context, username string, req *schemas.FundsRequest) (*schemas.AccountResponse, error)
}

type Controller struct {
	AuthService      services.AuthServiceI
	TradeService     services.TradeServiceI
	PortfolioService services.PortfolioServiceI
	AccountService   services.AccountServiceI
	QuoteClient      stockquote.StockQuoteClientI
}

func NewController(
	authService services.AuthServiceI,
	tradeService services.TradeServiceI,
	portfolioService services.PortfolioServiceI,
	accountService services.AccountServiceI,
	quoteClient stockquote.StockQuoteClientI,
) *Controller {
	return &Controller{
		AuthService:      authService,
		TradeService:     tradeService,
		PortfolioService: portfolioService,
		AccountService:   accountService,
		QuoteClient:      quoteClient,
	}
}

var _ IController = (*Controller)(nil)
