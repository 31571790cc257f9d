package command_test

import (
	"reflect"
	"testing"

	"github.com/edgard/saidbot/internal/command"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		text   string
		sender string
		want   command.Action
		wantOK bool
	}{
		{
			name:   "help with slash",
			text:   "/help",
			sender: "alice",
			want:   command.Help{},
			wantOK: true,
		},
		{
			name:   "help without slash",
			text:   "help",
			sender: "alice",
			want:   command.Help{},
			wantOK: true,
		},
		{
			name:   "case normalized",
			text:   "/HELP",
			sender: "alice",
			want:   command.Help{},
			wantOK: true,
		},
		{
			name:   "bot mention suffix stripped",
			text:   "/help@saidbot",
			sender: "alice",
			want:   command.Help{},
			wantOK: true,
		},
		{
			name:   "about",
			text:   "/about",
			sender: "alice",
			want:   command.About{},
			wantOK: true,
		},
		{
			name:   "start is setup",
			text:   "/start",
			sender: "alice",
			want:   command.Setup{},
			wantOK: true,
		},
		{
			name:   "setup alias",
			text:   "/setup",
			sender: "alice",
			want:   command.Setup{},
			wantOK: true,
		},
		{
			name:   "mute",
			text:   "/mute",
			sender: "alice",
			want:   command.Mute{},
			wantOK: true,
		},
		{
			name:   "unmute",
			text:   "/unmute",
			sender: "alice",
			want:   command.Unmute{},
			wantOK: true,
		},
		{
			name:   "list defaults to sender handle",
			text:   "/list",
			sender: "alice",
			want:   command.List{Handle: "@alice"},
			wantOK: true,
		},
		{
			name:   "list with explicit handle",
			text:   "/list @bob",
			sender: "alice",
			want:   command.List{Handle: "@bob"},
			wantOK: true,
		},
		{
			name:   "list argument without mention prefix is invalid",
			text:   "/list bob",
			sender: "alice",
			want:   command.InvalidList{Input: "bob"},
			wantOK: true,
		},
		{
			name:   "list with bare at sign is invalid",
			text:   "/list @",
			sender: "alice",
			want:   command.InvalidList{Input: "@"},
			wantOK: true,
		},
		{
			name:   "delete with numeric id",
			text:   "/del 42",
			sender: "alice",
			want:   command.Delete{ID: 42},
			wantOK: true,
		},
		{
			name:   "delete long form",
			text:   "/delete 7",
			sender: "alice",
			want:   command.Delete{ID: 7},
			wantOK: true,
		},
		{
			name:   "delete with non-numeric id is invalid",
			text:   "/del abc",
			sender: "alice",
			want:   command.InvalidDelete{Input: "abc"},
			wantOK: true,
		},
		{
			name:   "delete with zero id is invalid",
			text:   "/del 0",
			sender: "alice",
			want:   command.InvalidDelete{Input: "0"},
			wantOK: true,
		},
		{
			name:   "delete with negative id is invalid",
			text:   "/del -5",
			sender: "alice",
			want:   command.InvalidDelete{Input: "-5"},
			wantOK: true,
		},
		{
			name:   "delete without argument is invalid",
			text:   "/del",
			sender: "alice",
			want:   command.InvalidDelete{Input: ""},
			wantOK: true,
		},
		{
			name:   "unknown slash command falls back to help",
			text:   "/frobnicate now",
			sender: "alice",
			want:   command.Help{},
			wantOK: true,
		},
		{
			name:   "free text is not a command",
			text:   "just some words",
			sender: "alice",
			wantOK: false,
		},
		{
			name:   "empty text is not a command",
			text:   "   ",
			sender: "alice",
			wantOK: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := command.Classify(tc.text, tc.sender)
			if ok != tc.wantOK {
				t.Fatalf("Classify(%q) ok = %v, want %v", tc.text, ok, tc.wantOK)
			}
			if !tc.wantOK {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Classify(%q) = %#v, want %#v", tc.text, got, tc.want)
			}
		})
	}
}
