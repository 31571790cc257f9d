// Package forward classifies the forward-origin metadata of inbound
// messages into the closed set of cases the attribution workflow handles.
package forward

import (
	"github.com/go-telegram/bot/models"
)

// Kind is the classification of a message's forward origin.
type Kind int

const (
	// KindNone means the message is not a forward.
	KindNone Kind = iota
	// KindUser means the forward originates from a visible human user.
	KindUser
	// KindBot means the forward originates from another bot.
	KindBot
	// KindHidden covers hidden users, chats, and channels, none of which
	// can be attributed to an account.
	KindHidden
)

// Origin is the classified forward source of a message.
// Author is set only for KindUser and KindBot.
type Origin struct {
	Kind   Kind
	Author *models.User
}

// Classify inspects msg's forward metadata. The transport's origin union
// is collapsed into the four cases the workflow distinguishes; origin
// kinds this code does not know about classify as hidden.
func Classify(msg *models.Message) Origin {
	if msg == nil || msg.ForwardOrigin == nil {
		return Origin{Kind: KindNone}
	}

	switch msg.ForwardOrigin.Type {
	case models.MessageOriginTypeUser:
		origin := msg.ForwardOrigin.MessageOriginUser
		if origin == nil {
			return Origin{Kind: KindHidden}
		}
		author := origin.SenderUser
		if author.IsBot {
			return Origin{Kind: KindBot, Author: &author}
		}
		return Origin{Kind: KindUser, Author: &author}
	default:
		return Origin{Kind: KindHidden}
	}
}

// AuthorName returns the best display handle for a classified author:
// the username when present, otherwise the first name.
func (o Origin) AuthorName() string {
	if o.Author == nil {
		return ""
	}
	if o.Author.Username != "" {
		return o.Author.Username
	}
	return o.Author.FirstName
}
