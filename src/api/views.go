package api

import (
	"net/http"
	"time"

	"github.com/greatcoltini/finance-CS50/src/api/controllers"
	handlers "github.com/greatcoltini/finance-CS50/src/api/handlers"
	"github.com/greatcoltini/finance-CS50/src/clients/stockquote"
	"github.com/greatcoltini/finance-CS50/src/config"
	"github.com/greatcoltini/finance-CS50/src/database"
	"github.com/greatcoltini/finance-CS50/src/repositories"
	"github.com/greatcoltini/finance-CS50/src/services"
	"github.com/greatcoltini/finance-CS50/src/utils"
	aws_handler "github.com/greatcoltini/finance-CS50/src/utils/aws"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const defaultInitialCash = "10000"

type Server struct {
	Router    *chi.Mux
	Handler   *handlers.Handler
	TokenAuth *jwtauth.JWTAuth
}

// NewServer wires the production dependency graph: postgres repositories and
// the external quote client.
func NewServer(cfg *config.Config) (*Server, error) {
	logger := utils.NewLogger(logrus.InfoLevel, false, "")

	pool, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	apiKey, err := resolveQuoteAPIKey(cfg)
	if err != nil {
		return nil, err
	}
	quotes := stockquote.NewClient(cfg, apiKey)

	userRepo := repositories.NewUserRepository(pool)
	ledgerRepo := repositories.NewLedgerRepository(pool)
	txRunner := repositories.NewTxRunner(pool)

	return NewServerWithDeps(cfg, logger, userRepo, ledgerRepo, txRunner, quotes), nil
}

// NewServerWithDeps assembles the server from explicit dependencies; tests
// pass in-memory stores and a static quote client.
func NewServerWithDeps(
	cfg *config.Config,
	logger *logrus.Logger,
	userRepo repositories.UserRepository,
	ledgerRepo repositories.LedgerRepository,
	txRunner repositories.TxRunner,
	quotes stockquote.StockQuoteClientI,
) *Server {
	tokenAuth := jwtauth.New("HS256", []byte(cfg.Auth.Secret), nil)

	tokenTTL := time.Duration(cfg.Auth.TokenTTLMins) * time.Minute
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}

	initialCashStr := cfg.Trading.InitialCash
	if initialCashStr == "" {
		initialCashStr = defaultInitialCash
	}
	initialCash, err := decimal.NewFromString(initialCashStr)
	if err != nil {
		logger.WithField("initialCash", initialCashStr).Warning("invalid initial cash setting, using default")
		initialCash, _ = decimal.NewFromString(defaultInitialCash)
	}

	locks := services.NewUserLocker()
	authService := services.NewAuthService(userRepo, tokenAuth, tokenTTL, initialCash)
	tradeService := services.NewTradeService(userRepo, ledgerRepo, quotes, txRunner, locks)
	portfolioService := services.NewPortfolioService(userRepo, ledgerRepo, quotes)
	accountService := services.NewAccountService(userRepo, locks)

	controller := controllers.NewController(authService, tradeService, portfolioService, accountService, quotes)

	server := &Server{
		Router:    chi.NewRouter(),
		Handler:   handlers.NewHandler(controller, logger),
		TokenAuth: tokenAuth,
	}
	server.InitRoutes(logger)
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes(logger *logrus.Logger) {
	s.Router.Use(requestTagger(logger))

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.Handler.Register)
		r.Post("/login", s.Handler.Login)
	})

	s.Router.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.TokenAuth))
		r.Use(jwtauth.Authenticator)

		r.Get("/api/quotes/{symbol}", s.Handler.GetQuote)
		r.Get("/api/portfolio", s.Handler.GetPortfolio)

		r.Route("/api/trades", func(r chi.Router) {
			r.Post("/buy", s.Handler.Buy)
			r.Post("/sell", s.Handler.Sell)
			r.Get("/history", s.Handler.GetHistory)
		})

		r.Route("/api/account", func(r chi.Router) {
			r.Get("/", s.Handler.GetAccount)
			r.Post("/funds", s.Handler.TransferFunds)
			r.Post("/password", s.Handler.ChangePassword)
		})
	})
}

// requestTagger assigns each request an ID for log correlation and disables
// response caching.
func requestTagger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			w.Header().Set("X-Request-ID", requestID)
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")

			logger.WithFields(logrus.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
			}).Debug("request received")

			next.ServeHTTP(w, r)
		})
	}
}

// resolveQuoteAPIKey prefers the AWS Secrets Manager secret when configured.
func resolveQuoteAPIKey(cfg *config.Config) (string, error) {
	secretName := cfg.ExternalClients.StockQuote.APIKeySecret
	if secretName == "" {
		return cfg.ExternalClients.StockQuote.APIKey, nil
	}

	awsHandler, err := aws_handler.NewAWSHandler(cfg.AWS.Region)
	if err != nil {
		return "", err
	}
	return awsHandler.SecretManager.GetSecretValue(secretName)
}

func NewHTTPServer(server *Server, cfg *config.Config) *http.Server {
	port := cfg.Service.Port
	if port == "" {
		port = "8000"
	}
	return &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
}
