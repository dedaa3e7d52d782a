package services

import (
	"context"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/storebot/core/logger"
	"log/slog"
)

// BroadcastGateway lists the recipients of a broadcast.
type BroadcastGateway interface {
	ListUserIDs(ctx context.Context) ([]int64, error)
}

// MessageSender is the slice of the bot API needed to deliver a broadcast;
// *tele.Bot satisfies it.
type MessageSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Broadcast fans one message out to every known user.
type Broadcast struct {
	store BroadcastGateway
}

// NewBroadcast constructs the broadcaster over a storage gateway.
func NewBroadcast(store BroadcastGateway) *Broadcast {
	return &Broadcast{store: store}
}

// SendAll delivers text to all known users and reports how many sends
// succeeded and failed. Individual delivery failures (blocked bot, deleted
// account) are counted, logged, and do not stop the fan-out.
func (b *Broadcast) SendAll(ctx context.Context, sender MessageSender, text string) (sent, failed int, err error) {
	ids, err := b.store.ListUserIDs(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, id := range ids {
		if _, sendErr := sender.Send(tele.ChatID(id), text); sendErr != nil {
			failed++
			logger.SVCBroadcast.LogAttrs(ctx, slog.LevelWarn, "broadcast.send_failed",
				slog.Int64("user_id", id),
				slog.String("err", sendErr.Error()),
			)
			continue
		}
		sent++
	}

	logger.SVCBroadcast.LogAttrs(ctx, slog.LevelInfo, "broadcast.done",
		slog.Int("recipients", len(ids)),
		slog.Int("sent", sent),
		slog.Int("failed", failed),
	)
	return sent, failed, nil
}
