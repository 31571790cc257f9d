package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/saidbot/internal/config"
	"github.com/edgard/saidbot/internal/database"
	"github.com/edgard/saidbot/internal/forward"
)

// handleForward runs the attribution workflow for a message forwarded from
// a human author: upsert the author's account, persist the record, confirm
// to the forwarding user, and notify the author unless this is a
// self-report or the author has muted notifications.
func (h updateHandler) handleForward(ctx context.Context, b *bot.Bot, msg *models.Message, origin forward.Origin) {
	log := h.deps.Logger.With("handler", "forward")
	author := origin.Author

	record, err := h.deps.Store.CreateRecord(ctx, author.ID, origin.AuthorName(), msg.Text)
	switch {
	case err == nil:
		log.InfoContext(ctx, "Record created",
			"record_id", record.ID, "author_id", author.ID, "sender_id", msg.From.ID)
	case errors.Is(err, database.ErrDuplicateRecord):
		log.InfoContext(ctx, "Duplicate record rejected", "author_id", author.ID)
	default:
		log.ErrorContext(ctx, "Failed to create record", "author_id", author.ID, "error", err)
	}

	reply, created := attributionReply(h.deps.Config.Messages, msg.Text, err)
	h.reply(ctx, b, msg, reply)
	if !created {
		return
	}

	h.notifyAuthor(ctx, b, msg, author.ID)
}

// attributionReply selects and renders the confirmation reply for a
// record-creation attempt. created reports whether a new record was
// stored, which gates the author notification.
func attributionReply(msgs config.MessagesConfig, text string, err error) (reply string, created bool) {
	switch {
	case err == nil:
		return renderTemplate(msgs.Noted, map[string]string{"text": escapeCode(text)}), true
	case errors.Is(err, database.ErrDuplicateRecord):
		return renderTemplate(msgs.Duplicate, map[string]string{"text": escapeCode(text)}), false
	default:
		return msgs.GeneralError, false
	}
}

// shouldNotify reports whether the author gets a direct notice about a
// new record. Self-reports never notify, regardless of the author's
// notification preference; otherwise the preference decides.
func shouldNotify(senderTGID int64, author *database.Account) bool {
	if senderTGID == author.TelegramID {
		return false
	}
	return author.Notify
}

// notifyAuthor sends the original author a direct notice about the new
// record, honoring the author's notification preference. Delivery failures
// are logged only; the record is already committed.
func (h updateHandler) notifyAuthor(ctx context.Context, b *bot.Bot, msg *models.Message, authorTGID int64) {
	log := h.deps.Logger.With("handler", "forward")

	account, err := h.deps.Store.AccountByTelegramID(ctx, authorTGID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load author account for notification",
			"author_id", authorTGID, "error", err)
		return
	}
	if !shouldNotify(msg.From.ID, account) {
		log.DebugContext(ctx, "Skipping notification",
			"author_id", authorTGID, "notify", account.Notify, "sender_id", msg.From.ID)
		return
	}

	senderName := msg.From.Username
	if senderName == "" {
		senderName = msg.From.FirstName
	}

	notice := renderTemplate(h.deps.Config.Messages.Notice, map[string]string{
		"username": bot.EscapeMarkdown(senderName),
		"user_id":  strconv.FormatInt(msg.From.ID, 10),
		"text":     escapeCode(msg.Text),
	})

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    authorTGID,
		Text:      notice,
		ParseMode: models.ParseModeMarkdown,
	})
	if err != nil {
		log.WarnContext(ctx, "Failed to deliver notification", "author_id", authorTGID, "error", err)
	}
}
