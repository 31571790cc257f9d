// Package callback encodes pagination state into the opaque token carried
// by inline keyboard buttons, and decodes it back. Tokens are stateless:
// everything needed to re-render a page travels inside the token itself.
package callback

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PagePrefix identifies page-navigation tokens in callback data.
const PagePrefix = "p:"

// maxTokenLen is Telegram's callback data size limit in bytes.
const maxTokenLen = 64

// ErrInvalidToken is returned when a token cannot be decoded.
var ErrInvalidToken = errors.New("invalid callback token")

// PageState is the navigation state carried by a page token.
type PageState struct {
	Handle    string // subject username, without the mention prefix
	Page      int
	MessageID int // the message the listing originated from
}

// EncodePage serializes st as "p:<message id>:<page>:<handle>".
// It fails when the state cannot round-trip: an empty or non-username
// handle, a negative page, a non-positive message id, or a token that
// would exceed the transport's payload limit.
func EncodePage(st PageState) (string, error) {
	if !validHandle(st.Handle) {
		return "", fmt.Errorf("%w: bad handle %q", ErrInvalidToken, st.Handle)
	}
	if st.Page < 0 {
		return "", fmt.Errorf("%w: negative page %d", ErrInvalidToken, st.Page)
	}
	if st.MessageID <= 0 {
		return "", fmt.Errorf("%w: bad message id %d", ErrInvalidToken, st.MessageID)
	}

	token := fmt.Sprintf("%s%d:%d:%s", PagePrefix, st.MessageID, st.Page, st.Handle)
	if len(token) > maxTokenLen {
		return "", fmt.Errorf("%w: token exceeds %d bytes", ErrInvalidToken, maxTokenLen)
	}
	return token, nil
}

// DecodePage parses a page token produced by EncodePage.
func DecodePage(token string) (PageState, error) {
	rest, ok := strings.CutPrefix(token, PagePrefix)
	if !ok {
		return PageState{}, fmt.Errorf("%w: missing prefix", ErrInvalidToken)
	}

	parts := strings.SplitN(rest, ":", 3)
	if len(parts) != 3 {
		return PageState{}, fmt.Errorf("%w: expected 3 fields", ErrInvalidToken)
	}

	msgID, err := strconv.Atoi(parts[0])
	if err != nil || msgID <= 0 {
		return PageState{}, fmt.Errorf("%w: bad message id %q", ErrInvalidToken, parts[0])
	}
	page, err := strconv.Atoi(parts[1])
	if err != nil || page < 0 {
		return PageState{}, fmt.Errorf("%w: bad page %q", ErrInvalidToken, parts[1])
	}
	if !validHandle(parts[2]) {
		return PageState{}, fmt.Errorf("%w: bad handle %q", ErrInvalidToken, parts[2])
	}

	return PageState{Handle: parts[2], Page: page, MessageID: msgID}, nil
}

// validHandle reports whether s is a Telegram username: ASCII letters,
// digits, and underscores only.
func validHandle(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_':
		default:
			return false
		}
	}
	return true
}
