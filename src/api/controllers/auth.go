package controllers

import (
	"context"

	"github.com/greatcoltini/finance-CS50/src/models"
	"github.com/greatcoltini/finance-CS50/src/schemas"
)

func (c *Controller) Register(ctx context.Context, req *schemas.RegisterRequest) (*models.User, error) {
	return c.AuthService.Register(ctx, req.Username, req.Password, req.Confirmation)
}

func (c *Controller) Login(ctx context.Context, req *schemas.LoginRequest) (string, error) {
	return c.AuthService.Login(ctx, req.Username, req.Password)
}

func (c *Controller) ChangePassword(ctx context.Context, username string, req *schemas.ChangePasswordRequest) error {
	return c.AuthService.ChangePassword(ctx, username, req.NewPassword, req.Confirmation)
}
