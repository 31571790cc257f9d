package handlers

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/saidbot/internal/command"
	"github.com/edgard/saidbot/internal/database"
)

// handleSetup registers the sender's account. Running it again is a no-op
// apart from refreshing the stored handle.
func (h updateHandler) handleSetup(ctx context.Context, b *bot.Bot, msg *models.Message) {
	log := h.deps.Logger.With("handler", "setup")

	if _, err := h.deps.Store.ResolveOrCreateAccount(ctx, msg.From.ID, senderHandle(msg.From)); err != nil {
		log.ErrorContext(ctx, "Failed to register account", "user_id", msg.From.ID, "error", err)
		h.reply(ctx, b, msg, h.deps.Config.Messages.GeneralError)
		return
	}

	h.reply(ctx, b, msg, h.deps.Config.Messages.Welcome)
}

// handleNotifyToggle flips the sender's notification preference, creating
// the account first if this is their first contact.
func (h updateHandler) handleNotifyToggle(ctx context.Context, b *bot.Bot, msg *models.Message, enabled bool) {
	log := h.deps.Logger.With("handler", "notify_toggle")

	err := h.deps.Store.SetNotify(ctx, msg.From.ID, enabled)
	if errors.Is(err, database.ErrNotFound) {
		if _, err = h.deps.Store.ResolveOrCreateAccount(ctx, msg.From.ID, senderHandle(msg.From)); err == nil {
			err = h.deps.Store.SetNotify(ctx, msg.From.ID, enabled)
		}
	}
	if err != nil {
		log.ErrorContext(ctx, "Failed to update notify flag",
			"user_id", msg.From.ID, "enabled", enabled, "error", err)
		h.reply(ctx, b, msg, h.deps.Config.Messages.GeneralError)
		return
	}

	if enabled {
		h.reply(ctx, b, msg, h.deps.Config.Messages.Unmuted)
	} else {
		h.reply(ctx, b, msg, h.deps.Config.Messages.Muted)
	}
}

// handleDelete removes one of the sender's own records. The delete is
// scoped to the caller, so an id owned by someone else is a silent no-op.
func (h updateHandler) handleDelete(ctx context.Context, b *bot.Bot, msg *models.Message, action command.Delete) {
	log := h.deps.Logger.With("handler", "delete")

	if err := h.deps.Store.DeleteRecord(ctx, action.ID, msg.From.ID); err != nil {
		log.ErrorContext(ctx, "Failed to delete record",
			"record_id", action.ID, "user_id", msg.From.ID, "error", err)
		h.reply(ctx, b, msg, h.deps.Config.Messages.GeneralError)
		return
	}

	h.reply(ctx, b, msg, h.deps.Config.Messages.Deleted)
}

func senderHandle(user *models.User) string {
	if user.Username != "" {
		return user.Username
	}
	return user.FirstName
}
