package handlers

import (
	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/saidbot/internal/callback"
)

// RegisteredHandler represents a pattern-matched handler with its middleware.
// It encapsulates all information needed to register the handler with the
// Telegram bot instance.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAll initializes and returns the pattern-matched handlers.
// Text messages and inline queries go through the default update handler
// instead, so command routing stays in one place.
func RegisterAll(deps Deps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	handlers["page_navigation"] = RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     callback.PagePrefix,
		Handler:     NewPageCallbackHandler(deps),
		MatchType:   tgbot.MatchTypePrefix,
	}

	return handlers
}
