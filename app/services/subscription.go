package services

import (
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/storebot/core/logger"
	"log/slog"
)

// MembershipAPI is the slice of the bot API the gate needs; *tele.Bot
// satisfies it.
type MembershipAPI interface {
	ChatByUsername(name string) (*tele.Chat, error)
	ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error)
}

// Subscription gates catalog, cart, and checkout behind channel membership.
type Subscription struct {
	channel string
}

// NewSubscription constructs the gate for a channel username (with @).
func NewSubscription(channel string) *Subscription {
	return &Subscription{channel: channel}
}

// ChannelURL returns the public join link for the gated channel.
func (s *Subscription) ChannelURL() string {
	return "https://t.me/" + strings.TrimPrefix(s.channel, "@")
}

// IsMember reports whether the user belongs to the channel. Any lookup
// failure counts as not a member; the user re-triggers the check explicitly.
func (s *Subscription) IsMember(api MembershipAPI, userID int64) bool {
	chat, err := api.ChatByUsername(s.channel)
	if err != nil {
		logger.SVCUsers.Warn("channel lookup failed",
			slog.String("event", "subscription.check"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return false
	}
	member, err := api.ChatMemberOf(chat, &tele.User{ID: userID})
	if err != nil {
		logger.SVCUsers.Warn("membership lookup failed",
			slog.String("event", "subscription.check"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return false
	}

	switch member.Role {
	case tele.Creator, tele.Administrator, tele.Member:
		return true
	}
	return false
}
