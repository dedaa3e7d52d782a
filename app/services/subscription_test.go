package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v4"
)

type fakeMembershipAPI struct {
	role      tele.MemberStatus
	chatErr   error
	memberErr error
}

func (f *fakeMembershipAPI) ChatByUsername(_ string) (*tele.Chat, error) {
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	return &tele.Chat{ID: -100}, nil
}

func (f *fakeMembershipAPI) ChatMemberOf(_, _ tele.Recipient) (*tele.ChatMember, error) {
	if f.memberErr != nil {
		return nil, f.memberErr
	}
	return &tele.ChatMember{Role: f.role}, nil
}

func TestIsMemberRoles(t *testing.T) {
	gate := NewSubscription("@shop")

	cases := []struct {
		role tele.MemberStatus
		want bool
	}{
		{tele.Member, true},
		{tele.Administrator, true},
		{tele.Creator, true},
		{tele.Left, false},
		{tele.Kicked, false},
		{tele.Restricted, false},
	}
	for _, tc := range cases {
		api := &fakeMembershipAPI{role: tc.role}
		assert.Equal(t, tc.want, gate.IsMember(api, 7), "role %v", tc.role)
	}
}

func TestIsMemberFailsClosed(t *testing.T) {
	gate := NewSubscription("@shop")

	assert.False(t, gate.IsMember(&fakeMembershipAPI{chatErr: errors.New("not found")}, 7))
	assert.False(t, gate.IsMember(&fakeMembershipAPI{memberErr: errors.New("api down")}, 7))
}

func TestChannelURL(t *testing.T) {
	assert.Equal(t, "https://t.me/shop", NewSubscription("@shop").ChannelURL())
	assert.Equal(t, "https://t.me/shop", NewSubscription("shop").ChannelURL())
}
