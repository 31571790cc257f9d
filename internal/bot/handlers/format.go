package handlers

import (
	"strings"
)

// renderTemplate substitutes {name} placeholders in a message template.
// Placeholders with no matching variable are left as-is. Pure, so the
// message catalog can be tested without any transport.
func renderTemplate(tmpl string, vars map[string]string) string {
	if len(vars) == 0 {
		return tmpl
	}

	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// escapeCode escapes user content destined for a MarkdownV2 inline code
// span, where only backslashes and backticks are special.
var codeEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`")

func escapeCode(s string) string {
	return codeEscaper.Replace(s)
}

// truncateText shortens s for use in previews and result titles.
func truncateText(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}
