package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/greatcoltini/finance-CS50/src/api/controllers"
	"github.com/greatcoltini/finance-CS50/src/utils"

	"github.com/go-chi/jwtauth"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Controller controllers.IController
	Logger     *logrus.Logger
}

func NewHandler(controller controllers.IController, logger *logrus.Logger) *Handler {
	return &Handler{Controller: controller, Logger: logger}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors renders typed failures with their status code and everything
// else as a 500.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	var httpErr *utils.HTTPError
	if errors.As(err, &httpErr) {
		utils.WriteError(w, httpErr)
		return
	}
	h.Logger.Warning(err)
	utils.WriteError(w, utils.InternalServerError("Internal Server Error"))
}

// usernameFromRequest reads the authenticated username claim placed in the
// request context by the jwtauth middleware.
func usernameFromRequest(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", errors.New("username claim missing")
	}
	return username, nil
}

func Healthcheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
