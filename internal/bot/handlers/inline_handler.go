package handlers

import (
	"context"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/saidbot/internal/pagination"
)

// handleInlineQuery serves the keyword-search flow: a single flat window of
// matching records, no navigation. Picking a result sends the quoted text.
func (h updateHandler) handleInlineQuery(ctx context.Context, b *bot.Bot, query *models.InlineQuery) {
	log := h.deps.Logger.With("handler", "inline_query")

	keyword := query.Query
	if keyword == "" {
		return
	}

	items, err := h.deps.Store.SearchRecords(ctx, keyword, pagination.SearchPageSize)
	if err != nil {
		log.ErrorContext(ctx, "Record search failed", "keyword", keyword, "error", err)
		return
	}

	results := make([]models.InlineQueryResult, 0, len(items))
	for _, item := range items {
		results = append(results, &models.InlineQueryResultArticle{
			ID:          strconv.FormatInt(item.ID, 10),
			Title:       truncateText(item.Text, 60),
			Description: item.OwnerUsername,
			InputMessageContent: &models.InputTextMessageContent{
				MessageText: item.Text,
			},
		})
	}

	_, err = b.AnswerInlineQuery(ctx, &bot.AnswerInlineQueryParams{
		InlineQueryID: query.ID,
		Results:       results,
		IsPersonal:    false,
		CacheTime:     30,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to answer inline query", "error", err)
		return
	}

	log.DebugContext(ctx, "Answered inline query", "keyword", keyword, "results", len(results))
}
