package bot

import (
	"bytes"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/storebot/core/logger"
	tghelpers "github.com/m3rciful/storebot/core/telegram/helpers"
	"log/slog"
)

func (a *App) handleOrders(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	data, found, err := a.export.OrdersCSV(ctx)
	if err != nil {
		logger.SVCOrders.LogAttrs(ctx, slog.LevelError, "export.failed",
			slog.String("err", err.Error()),
		)
		return c.Send("Failed to export orders.")
	}
	if !found {
		return c.Send("There are no orders yet.")
	}
	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(data)),
		FileName: "orders.csv",
	}
	return c.Send(doc)
}

func (a *App) handleBroadcast(c tele.Context) error {
	text := strings.TrimSpace(c.Message().Payload)
	if text == "" {
		return c.Send("Usage: /broadcast <message text>")
	}
	ctx := tghelpers.BuildContext(c)
	sent, failed, err := a.broadcast.SendAll(ctx, c.Bot(), text)
	if err != nil {
		logger.SVCBroadcast.LogAttrs(ctx, slog.LevelError, "broadcast.failed",
			slog.String("err", err.Error()),
		)
		return c.Send("Failed to run the broadcast.")
	}
	return c.Send(fmt.Sprintf("📣 Broadcast finished: %d delivered, %d failed.", sent, failed))
}
