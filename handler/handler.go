package handler

import (
	"github.com/emzola/shelfwise/config"
	"github.com/emzola/shelfwise/internal/jsonlog"
	"github.com/emzola/shelfwise/service"
)

// Handler defines Handler layer.
type Handler struct {
	config  config.Config
	logger  *jsonlog.Logger
	service service.Service
}

// New creates a new instance of Handler.
func New(cfg config.Config, logger *jsonlog.Logger, service service.Service) *Handler {
	return &Handler{
		config:  cfg,
		logger:  logger,
		service: service,
	}
}
