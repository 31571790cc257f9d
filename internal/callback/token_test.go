package callback_test

import (
	"testing"

	"github.com/edgard/saidbot/internal/callback"
)

func TestPageTokenRoundTrip(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		state callback.PageState
	}{
		{
			name:  "simple",
			state: callback.PageState{Handle: "alice", Page: 0, MessageID: 1},
		},
		{
			name:  "large values",
			state: callback.PageState{Handle: "bob_1984", Page: 9999, MessageID: 123456789},
		},
		{
			name:  "mixed case handle",
			state: callback.PageState{Handle: "SomeUser", Page: 3, MessageID: 77},
		},
		{
			name:  "longest allowed handle",
			state: callback.PageState{Handle: "a2345678901234567890123456789012", Page: 1, MessageID: 42},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			token, err := callback.EncodePage(tc.state)
			if err != nil {
				t.Fatalf("EncodePage(%+v): %v", tc.state, err)
			}
			if len(token) > 64 {
				t.Fatalf("token %q exceeds 64 bytes", token)
			}

			got, err := callback.DecodePage(token)
			if err != nil {
				t.Fatalf("DecodePage(%q): %v", token, err)
			}
			if got != tc.state {
				t.Errorf("round trip = %+v, want %+v", got, tc.state)
			}
		})
	}
}

func TestEncodePageRejectsInvalidState(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		state callback.PageState
	}{
		{name: "empty handle", state: callback.PageState{Handle: "", Page: 0, MessageID: 1}},
		{name: "handle with separator", state: callback.PageState{Handle: "a:b", Page: 0, MessageID: 1}},
		{name: "handle with space", state: callback.PageState{Handle: "a b", Page: 0, MessageID: 1}},
		{name: "negative page", state: callback.PageState{Handle: "alice", Page: -1, MessageID: 1}},
		{name: "zero message id", state: callback.PageState{Handle: "alice", Page: 0, MessageID: 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := callback.EncodePage(tc.state); err == nil {
				t.Errorf("EncodePage(%+v) should fail", tc.state)
			}
		})
	}
}

func TestDecodePageRejectsMalformedTokens(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "wrong prefix", token: "x:1:0:alice"},
		{name: "missing fields", token: "p:1:alice"},
		{name: "non-numeric message id", token: "p:abc:0:alice"},
		{name: "non-numeric page", token: "p:1:abc:alice"},
		{name: "negative page", token: "p:1:-2:alice"},
		{name: "zero message id", token: "p:0:0:alice"},
		{name: "empty handle", token: "p:1:0:"},
		{name: "handle with junk", token: "p:1:0:ali ce"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := callback.DecodePage(tc.token); err == nil {
				t.Errorf("DecodePage(%q) should fail", tc.token)
			}
		})
	}
}
