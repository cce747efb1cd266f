package app

import (
	"go.trai.ch/smelt/internal/core/domain"
	"go.trai.ch/smelt/internal/core/ports"
	"go.trai.ch/smelt/internal/engine/session"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the entry point.
type Components struct {
	App     *App
	Session *session.Session
	Logger  ports.Logger
	Config  *domain.Config
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger, cfg *domain.Config) *Components {
	return &Components{
		App:     app,
		Session: app.Session(),
		Logger:  logger,
		Config:  cfg,
	}
}
