package bot

import (
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/storebot/core/telegram/ui"
)

var _ ui.FallbackProvider = (*App)(nil)

// UnknownText routes stray text through the FAQ responder.
func (a *App) UnknownText() tele.HandlerFunc {
	return a.faqFallback
}

// UnknownDocument rejects file uploads; no flow expects them.
func (a *App) UnknownDocument() tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Send("I can only work with text messages and buttons here.")
	}
}

// UnknownCallback answers button presses left behind by older keyboards.
func (a *App) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: "This button is no longer active."})
	}
}
