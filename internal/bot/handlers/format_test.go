package handlers

import (
	"testing"
)

func TestRenderTemplate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		tmpl string
		vars map[string]string
		want string
	}{
		{
			name: "no variables",
			tmpl: "plain text",
			vars: nil,
			want: "plain text",
		},
		{
			name: "single placeholder",
			tmpl: "✅ `{text}` noted",
			vars: map[string]string{"text": "hello"},
			want: "✅ `hello` noted",
		},
		{
			name: "multiple placeholders",
			tmpl: "[{username}](tg://user?id={user_id}) forwarded your `{text}`",
			vars: map[string]string{"username": "alice", "user_id": "100", "text": "hi"},
			want: "[alice](tg://user?id=100) forwarded your `hi`",
		},
		{
			name: "repeated placeholder",
			tmpl: "{x} and {x}",
			vars: map[string]string{"x": "y"},
			want: "y and y",
		},
		{
			name: "unknown placeholder left alone",
			tmpl: "hello {nobody}",
			vars: map[string]string{"text": "hi"},
			want: "hello {nobody}",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := renderTemplate(tc.tmpl, tc.vars); got != tc.want {
				t.Errorf("renderTemplate = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEscapeCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input string
		want  string
	}{
		{input: "plain", want: "plain"},
		{input: "with `ticks`", want: "with \\`ticks\\`"},
		{input: `back\slash`, want: `back\\slash`},
		{input: "*not_escaped*", want: "*not_escaped*"},
	}

	for _, tc := range testCases {
		if got := escapeCode(tc.input); got != tc.want {
			t.Errorf("escapeCode(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestTruncateText(t *testing.T) {
	t.Parallel()

	if got := truncateText("short", 10); got != "short" {
		t.Errorf("truncateText = %q, want unchanged", got)
	}
	if got := truncateText("a very long piece of text", 10); got != "a very ..." {
		t.Errorf("truncateText = %q, want %q", got, "a very ...")
	}
}
