// Package pagination computes page windows over ordered record sets and
// renders them for display. All functions are pure.
package pagination

import (
	"fmt"
	"strings"
)

const (
	// ListPageSize is the window size for the record-listing flow.
	ListPageSize = 25

	// SearchPageSize is the window size for the inline keyword-search flow,
	// which is presented as a single flat result set without navigation.
	SearchPageSize = 50
)

// Window describes a resolved page over an ordered record set.
type Window struct {
	TotalItems int
	TotalPages int
	Page       int
}

// Move is a navigation affordance attached to a rendered page.
type Move int

const (
	MoveStart Move = iota
	MovePrev
	MoveNext
	MoveEnd
)

// Target returns the page index the move leads to, given the current window.
func (m Move) Target(w Window) int {
	switch m {
	case MoveStart:
		return 0
	case MovePrev:
		return w.Page - 1
	case MoveNext:
		return w.Page + 1
	case MoveEnd:
		return w.TotalPages - 1
	}
	return w.Page
}

// Label returns the button label for the move.
func (m Move) Label() string {
	switch m {
	case MoveStart:
		return "⏮"
	case MovePrev:
		return "◀"
	case MoveNext:
		return "▶"
	case MoveEnd:
		return "⏭"
	}
	return "?"
}

// Paginate resolves a requested page against a total item count.
// TotalPages is at least 1 even for an empty set, and an out-of-range
// request is clamped rather than rejected.
func Paginate(totalItems, pageSize, requested int) Window {
	if pageSize <= 0 {
		pageSize = ListPageSize
	}
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := requested
	if page < 0 {
		page = 0
	}
	if page > totalPages-1 {
		page = totalPages - 1
	}

	return Window{TotalItems: totalItems, TotalPages: totalPages, Page: page}
}

// Navigate returns the navigation affordances for a window.
// A single page exposes none, the first page of several exposes only
// forward moves, the last only backward moves, and interior pages all four.
func Navigate(w Window) []Move {
	if w.TotalPages <= 1 {
		return nil
	}
	switch w.Page {
	case 0:
		return []Move{MoveNext, MoveEnd}
	case w.TotalPages - 1:
		return []Move{MoveStart, MovePrev}
	default:
		return []Move{MoveStart, MovePrev, MoveNext, MoveEnd}
	}
}

// Item is a record line to be rendered.
type Item struct {
	ID   int64
	Text string
}

// RenderPage formats a page of items as a monospace block followed by a
// "current / total" footer. Backticks and backslashes in item text are
// escaped so the block survives MarkdownV2 parsing.
func RenderPage(items []Item, w Window) string {
	var sb strings.Builder

	sb.WriteString("```\n")
	for _, it := range items {
		sb.WriteString(fmt.Sprintf("%d\t%s\n", it.ID, escapeCode(it.Text)))
	}
	sb.WriteString("```\n")
	sb.WriteString(fmt.Sprintf("%d / %d", w.Page+1, w.TotalPages))

	return sb.String()
}

var codeEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`")

func escapeCode(s string) string {
	return codeEscaper.Replace(s)
}
