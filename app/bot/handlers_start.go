package bot

import (
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/storebot/core/logger"
	tghelpers "github.com/m3rciful/storebot/core/telegram/helpers"
	"log/slog"
)

const notSubscribedText = "❌ You are not subscribed to the channel!\n" +
	"To use the bot, join it and press '✅ I subscribed'."

// requireMember runs the subscription gate. On failure it presents the
// subscribe affordance and performs no other side effect.
func (a *App) requireMember(c tele.Context) bool {
	userID := c.Sender().ID
	if a.gate.IsMember(c.Bot(), userID) {
		return true
	}
	ctx := tghelpers.BuildContext(c)
	logger.SVCUsers.LogAttrs(ctx, slog.LevelWarn, "subscription.denied",
		slog.Int64("user_id", userID),
	)
	_ = c.Send(notSubscribedText, subscribeMarkup(a.gate.ChannelURL()))
	return false
}

func (a *App) handleStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if err := tghelpers.EnsureUser(ctx, a.store, c.Sender()); err != nil {
		// Registration failure must not lock the user out of the bot.
		logger.SVCUsers.LogAttrs(ctx, slog.LevelError, "user.register_failed",
			slog.Int64("user_id", c.Sender().ID),
			slog.String("err", err.Error()),
		)
	}

	if !a.gate.IsMember(c.Bot(), c.Sender().ID) {
		return c.Send(notSubscribedText, subscribeMarkup(a.gate.ChannelURL()))
	}
	return c.Send("Choose an action:", mainMenu())
}

func (a *App) handleSubCheck(c tele.Context) error {
	if a.gate.IsMember(c.Bot(), c.Sender().ID) {
		return c.Send("Choose an action:", mainMenu())
	}
	return c.Respond(&tele.CallbackResponse{
		Text:      "❌ You are still not subscribed!",
		ShowAlert: true,
	})
}

func (a *App) handleCancel(c tele.Context) error {
	a.fsm.Clear(c.Sender().ID)
	return c.Send("Cancelled. Back to the main menu:", mainMenu())
}
