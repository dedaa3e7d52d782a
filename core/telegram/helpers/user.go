package helpers

import (
	"context"

	tele "gopkg.in/telebot.v4"
)

// Registrar is the minimal capability needed to register an incoming user.
type Registrar interface {
	EnsureUser(ctx context.Context, userID int64, username, fullName string) error
}

// EnsureUser registers the sender of the current update with insert-if-absent
// semantics. Missing profile fields are tolerated; registration failures are
// returned so callers can decide whether the flow may continue.
func EnsureUser(ctx context.Context, reg Registrar, sender *tele.User) error {
	if reg == nil || sender == nil {
		return nil
	}
	fullName := sender.FirstName
	if sender.LastName != "" {
		fullName += " " + sender.LastName
	}
	return reg.EnsureUser(ctx, sender.ID, sender.Username, fullName)
}
