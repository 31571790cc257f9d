// Package command classifies inbound text into a closed set of bot actions.
// The classifier is pure; executing an action is the caller's concern.
package command

import (
	"strconv"
	"strings"
)

// MentionPrefix is the platform prefix for user handles.
const MentionPrefix = "@"

// Action is one of the fixed set of operations the bot understands.
// Each variant carries its validated arguments.
type Action interface {
	isAction()
}

// Help shows the command overview. It is also the fallback for
// unrecognized slash commands.
type Help struct{}

// About shows bot information.
type About struct{}

// Setup registers the sender's account. Idempotent.
type Setup struct{}

// Mute disables forward notifications for the sender.
type Mute struct{}

// Unmute enables forward notifications for the sender.
type Unmute struct{}

// List requests the record listing for Handle (including the mention prefix).
type List struct {
	Handle string
}

// Delete removes one of the sender's own records by id.
type Delete struct {
	ID int64
}

// InvalidList is produced when the list argument is not a handle.
type InvalidList struct {
	Input string
}

// InvalidDelete is produced when the delete argument is not a positive integer.
type InvalidDelete struct {
	Input string
}

func (Help) isAction()          {}
func (About) isAction()         {}
func (Setup) isAction()         {}
func (Mute) isAction()          {}
func (Unmute) isAction()        {}
func (List) isAction()          {}
func (Delete) isAction()        {}
func (InvalidList) isAction()   {}
func (InvalidDelete) isAction() {}

// Classify maps raw message text to an Action. The second return value is
// false when the text is not a command at all (free text without a command
// prefix), in which case the caller decides how to respond.
//
// The leading token is case-normalized and may carry an optional "/" prefix
// and an optional "@botname" suffix. Unrecognized slash commands fall back
// to Help; unrecognized bare words are not commands.
func Classify(text, senderUsername string) (Action, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, false
	}

	token := strings.ToLower(fields[0])
	slash := strings.HasPrefix(token, "/")
	token = strings.TrimPrefix(token, "/")
	if at := strings.Index(token, "@"); at >= 0 {
		token = token[:at]
	}

	switch token {
	case "help":
		return Help{}, true
	case "about":
		return About{}, true
	case "start", "setup":
		return Setup{}, true
	case "mute":
		return Mute{}, true
	case "unmute":
		return Unmute{}, true
	case "list":
		return classifyList(fields, senderUsername), true
	case "del", "delete":
		return classifyDelete(fields), true
	}

	if slash {
		return Help{}, true
	}
	return nil, false
}

func classifyList(fields []string, senderUsername string) Action {
	if len(fields) < 2 {
		return List{Handle: MentionPrefix + senderUsername}
	}

	handle := fields[1]
	if !strings.HasPrefix(handle, MentionPrefix) || len(handle) == len(MentionPrefix) {
		return InvalidList{Input: handle}
	}
	return List{Handle: handle}
}

func classifyDelete(fields []string) Action {
	if len(fields) != 2 {
		return InvalidDelete{Input: strings.Join(fields[1:], " ")}
	}

	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil || id <= 0 {
		return InvalidDelete{Input: fields[1]}
	}
	return Delete{ID: id}
}
