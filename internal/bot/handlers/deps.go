package handlers

import (
	"log/slog"

	"github.com/edgard/saidbot/internal/config"
	"github.com/edgard/saidbot/internal/database"
)

// Deps provides dependencies for Telegram update handlers.
type Deps struct {
	Logger *slog.Logger
	Config *config.Config
	Store  database.Store
}
