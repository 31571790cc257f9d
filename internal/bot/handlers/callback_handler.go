package handlers

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/saidbot/internal/callback"
	"github.com/edgard/saidbot/internal/database"
)

// NewPageCallbackHandler returns the handler for page-navigation callback
// queries. It decodes the token, re-renders the requested page, and edits
// the listing message in place.
func NewPageCallbackHandler(deps Deps) bot.HandlerFunc {
	return pageCallbackHandler{deps}.Handle
}

type pageCallbackHandler struct {
	deps Deps
}

func (h pageCallbackHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "page_callback")

	cb := update.CallbackQuery
	if cb == nil {
		return
	}
	// Telegram keeps the spinner until the callback is answered, so always
	// acknowledge, even for tokens we end up dropping.
	defer h.answer(ctx, b, cb.ID)

	state, err := callback.DecodePage(cb.Data)
	if err != nil {
		log.WarnContext(ctx, "Dropping invalid callback token", "data", cb.Data, "error", err)
		return
	}

	chatID, messageID, ok := editTarget(cb, state)
	if !ok {
		log.WarnContext(ctx, "Callback without editable message", "data", cb.Data)
		return
	}

	account, err := h.deps.Store.AccountByUsername(ctx, state.Handle)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			log.WarnContext(ctx, "Callback for unknown handle", "handle", state.Handle)
			return
		}
		log.ErrorContext(ctx, "Failed to look up account", "handle", state.Handle, "error", err)
		return
	}

	text, keyboard, empty, err := recordPage(ctx, h.deps, account, state.Handle, state.Page, state.MessageID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to build record page", "handle", state.Handle, "error", err)
		return
	}
	if empty {
		text = h.deps.Config.Messages.NoRecords
	}

	params := &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		ParseMode: models.ParseModeMarkdown,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	if _, err := b.EditMessageText(ctx, params); err != nil {
		log.ErrorContext(ctx, "Failed to edit record page", "chat_id", chatID, "error", err)
	}
}

func (h pageCallbackHandler) answer(ctx context.Context, b *bot.Bot, callbackID string) {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: callbackID})
	if err != nil {
		h.deps.Logger.WarnContext(ctx, "Failed to answer callback query", "error", err)
	}
}

// editTarget resolves which message to edit. When Telegram withholds the
// full message, the token's origin message id is the best remaining guess.
func editTarget(cb *models.CallbackQuery, state callback.PageState) (chatID int64, messageID int, ok bool) {
	if cb.Message.Message != nil {
		return cb.Message.Message.Chat.ID, cb.Message.Message.ID, true
	}
	if cb.Message.InaccessibleMessage != nil {
		return cb.Message.InaccessibleMessage.Chat.ID, state.MessageID, true
	}
	return 0, 0, false
}
