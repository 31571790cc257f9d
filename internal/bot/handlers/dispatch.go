// Package handlers contains the Telegram update handlers: the message
// dispatcher, the attribution workflow, and the navigation callbacks.
package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/saidbot/internal/command"
	"github.com/edgard/saidbot/internal/forward"
)

// NewUpdateHandler returns the default handler for all updates that are not
// claimed by a registered pattern: text messages and inline queries.
func NewUpdateHandler(deps Deps) bot.HandlerFunc {
	return updateHandler{deps}.Handle
}

// updateHandler routes inbound updates to the matching domain action.
type updateHandler struct {
	deps Deps
}

func (h updateHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	switch {
	case update.Message != nil:
		h.handleMessage(ctx, b, update.Message)
	case update.InlineQuery != nil:
		h.handleInlineQuery(ctx, b, update.InlineQuery)
	default:
		h.deps.Logger.DebugContext(ctx, "Ignoring unsupported update kind", "update_id", update.ID)
	}
}

func (h updateHandler) handleMessage(ctx context.Context, b *bot.Bot, msg *models.Message) {
	log := h.deps.Logger.With("handler", "dispatch")

	if msg.From == nil {
		log.WarnContext(ctx, "Message without sender", "chat_id", msg.Chat.ID)
		return
	}
	// Never answer other bots, or two bots end up talking to each other.
	if msg.From.IsBot {
		log.DebugContext(ctx, "Dropping message from bot sender", "user_id", msg.From.ID)
		return
	}
	if msg.Text == "" {
		h.reply(ctx, b, msg, h.deps.Config.Messages.TextOnly)
		return
	}

	origin := forward.Classify(msg)
	switch origin.Kind {
	case forward.KindUser:
		h.handleForward(ctx, b, msg, origin)
	case forward.KindBot:
		h.reply(ctx, b, msg, h.deps.Config.Messages.NoBots)
	case forward.KindHidden:
		h.reply(ctx, b, msg, h.deps.Config.Messages.UsersOnly)
	case forward.KindNone:
		action, ok := command.Classify(msg.Text, msg.From.Username)
		if !ok {
			h.reply(ctx, b, msg, h.deps.Config.Messages.ForwardedOnly)
			return
		}
		h.dispatchCommand(ctx, b, msg, action)
	}
}

func (h updateHandler) dispatchCommand(ctx context.Context, b *bot.Bot, msg *models.Message, action command.Action) {
	log := h.deps.Logger.With("handler", "command")
	log.InfoContext(ctx, "Handling command", "action", actionName(action), "user_id", msg.From.ID)

	switch action := action.(type) {
	case command.Help:
		h.reply(ctx, b, msg, h.deps.Config.Messages.Help)
	case command.About:
		h.reply(ctx, b, msg, h.deps.Config.Messages.About)
	case command.Setup:
		h.handleSetup(ctx, b, msg)
	case command.Mute:
		h.handleNotifyToggle(ctx, b, msg, false)
	case command.Unmute:
		h.handleNotifyToggle(ctx, b, msg, true)
	case command.List:
		h.handleList(ctx, b, msg, action)
	case command.Delete:
		h.handleDelete(ctx, b, msg, action)
	case command.InvalidList:
		h.reply(ctx, b, msg, h.deps.Config.Messages.ListUsage)
	case command.InvalidDelete:
		h.reply(ctx, b, msg, h.deps.Config.Messages.DeleteUsage)
	}
}

func actionName(action command.Action) string {
	switch action.(type) {
	case command.Help:
		return "help"
	case command.About:
		return "about"
	case command.Setup:
		return "setup"
	case command.Mute:
		return "mute"
	case command.Unmute:
		return "unmute"
	case command.List:
		return "list"
	case command.Delete:
		return "delete"
	case command.InvalidList:
		return "invalid_list"
	case command.InvalidDelete:
		return "invalid_delete"
	}
	return "unknown"
}

// reply sends text as a MarkdownV2 reply to msg. Send failures are logged
// and otherwise ignored; the triggering operation already completed.
func (h updateHandler) reply(ctx context.Context, b *bot.Bot, msg *models.Message, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          msg.Chat.ID,
		Text:            text,
		ParseMode:       models.ParseModeMarkdown,
		ReplyParameters: &models.ReplyParameters{MessageID: msg.ID},
	})
	if err != nil {
		h.deps.Logger.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", msg.Chat.ID)
	}
}
