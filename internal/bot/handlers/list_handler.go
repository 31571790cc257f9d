package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/saidbot/internal/callback"
	"github.com/edgard/saidbot/internal/command"
	"github.com/edgard/saidbot/internal/database"
	"github.com/edgard/saidbot/internal/pagination"
)

// handleList shows the first page of the subject's records with navigation
// buttons carrying self-describing page tokens.
func (h updateHandler) handleList(ctx context.Context, b *bot.Bot, msg *models.Message, action command.List) {
	log := h.deps.Logger.With("handler", "list")

	handle := strings.TrimPrefix(action.Handle, command.MentionPrefix)
	if handle == "" {
		// Sender has no username and gave no explicit handle.
		h.reply(ctx, b, msg, h.deps.Config.Messages.ListUsage)
		return
	}

	account, err := h.deps.Store.AccountByUsername(ctx, handle)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.reply(ctx, b, msg, h.deps.Config.Messages.UnknownUser)
			return
		}
		log.ErrorContext(ctx, "Failed to look up account", "handle", handle, "error", err)
		h.reply(ctx, b, msg, h.deps.Config.Messages.GeneralError)
		return
	}

	text, keyboard, empty, err := recordPage(ctx, h.deps, account, handle, 0, msg.ID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to build record page", "handle", handle, "error", err)
		h.reply(ctx, b, msg, h.deps.Config.Messages.GeneralError)
		return
	}
	if empty {
		h.reply(ctx, b, msg, h.deps.Config.Messages.NoRecords)
		return
	}

	params := &bot.SendMessageParams{
		ChatID:          msg.Chat.ID,
		Text:            text,
		ParseMode:       models.ParseModeMarkdown,
		ReplyParameters: &models.ReplyParameters{MessageID: msg.ID},
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	if _, err := b.SendMessage(ctx, params); err != nil {
		log.ErrorContext(ctx, "Failed to send record page", "chat_id", msg.Chat.ID, "error", err)
	}
}

// recordPage fetches and renders one page of an account's records plus the
// navigation keyboard for it. The requested page is clamped, re-querying
// when a stale token pointed past the end. empty reports a record-less
// account so callers can phrase that case themselves.
func recordPage(
	ctx context.Context,
	deps Deps,
	account *database.Account,
	handle string,
	page int,
	originMsgID int,
) (text string, keyboard *models.InlineKeyboardMarkup, empty bool, err error) {
	items, total, err := deps.Store.RecordsByOwner(ctx, account.ID, page, pagination.ListPageSize)
	if err != nil {
		return "", nil, false, err
	}
	if total == 0 {
		return "", nil, true, nil
	}

	window := pagination.Paginate(total, pagination.ListPageSize, page)
	if window.Page != page {
		items, _, err = deps.Store.RecordsByOwner(ctx, account.ID, window.Page, pagination.ListPageSize)
		if err != nil {
			return "", nil, false, err
		}
	}

	lines := make([]pagination.Item, len(items))
	for i, item := range items {
		lines[i] = pagination.Item{ID: item.ID, Text: item.Text}
	}

	return pagination.RenderPage(lines, window),
		navigationKeyboard(deps, window, handle, originMsgID),
		false, nil
}

// navigationKeyboard builds the inline keyboard row for a window. Returns
// nil when the window has no navigation affordances.
func navigationKeyboard(deps Deps, window pagination.Window, handle string, originMsgID int) *models.InlineKeyboardMarkup {
	moves := pagination.Navigate(window)
	if len(moves) == 0 {
		return nil
	}

	row := make([]models.InlineKeyboardButton, 0, len(moves))
	for _, move := range moves {
		token, err := callback.EncodePage(callback.PageState{
			Handle:    handle,
			Page:      move.Target(window),
			MessageID: originMsgID,
		})
		if err != nil {
			deps.Logger.Warn("Skipping unencodable navigation button",
				"handle", handle, "page", move.Target(window), "error", err)
			continue
		}
		row = append(row, models.InlineKeyboardButton{Text: move.Label(), CallbackData: token})
	}
	if len(row) == 0 {
		return nil
	}

	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{row}}
}
