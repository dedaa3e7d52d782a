package bot

import (
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/storebot/core/logger"
	"github.com/m3rciful/storebot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/storebot/core/telegram/helpers"
	"log/slog"
)

func (a *App) handleFAQ(c tele.Context) error {
	if !a.requireMember(c) {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	entries, err := a.faq.Entries(ctx)
	if err != nil {
		logger.SVCFaq.LogAttrs(ctx, slog.LevelError, "faq.entries_failed",
			slog.String("err", err.Error()),
		)
		return c.Send("Something went wrong, please try again later.")
	}
	if len(entries) == 0 {
		return c.Send("ℹ️ No FAQ entries yet. Ask your question as a message and we will answer it.")
	}
	return c.Send("ℹ️ Frequently asked questions:", faqMarkup(entries))
}

func (a *App) handleFAQEntry(c tele.Context) error {
	entryID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Failed to load the answer."})
	}
	ctx := tghelpers.BuildContext(c)
	entries, err := a.faq.Entries(ctx)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Failed to load the answer."})
	}
	for _, entry := range entries {
		if entry.ID == entryID {
			return c.Edit("❓ "+entry.Question+"\n\n💬 "+entry.Answer, faqMarkup(entries))
		}
	}
	return c.Respond(&tele.CallbackResponse{Text: "❌ This entry no longer exists."})
}

// faqFallback handles free text outside any flow: a known question gets its
// stored answer, an unknown one is queued for an answer from this same chat.
func (a *App) faqFallback(c tele.Context) error {
	question := strings.TrimSpace(c.Text())
	if question == "" {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	answer, found, err := a.faq.Lookup(ctx, question)
	if err != nil {
		logger.SVCFaq.LogAttrs(ctx, slog.LevelError, "faq.lookup_failed",
			slog.String("err", err.Error()),
		)
		return c.Send("Something went wrong, please try again later.")
	}
	if found {
		return c.Send("💬 " + answer)
	}

	userID := c.Sender().ID
	a.fsm.SetTemp(userID, tempQuestion, question)
	a.fsm.SetState(userID, stateFAQAnswer)
	return c.Send("🤔 I don't know this one yet. Send the answer and I will remember it, or /cancel.")
}

func (a *App) fsmFAQAnswer(c tele.Context) error {
	answer := strings.TrimSpace(c.Text())
	if answer == "" {
		return c.Send("❌ The answer cannot be empty. Send the answer text or /cancel.")
	}
	userID := c.Sender().ID
	question, ok := a.fsm.GetTempString(userID, tempQuestion)
	if !ok {
		a.fsm.Clear(userID)
		return c.Send("Session expired, ask the question again.", mainMenu())
	}

	ctx := tghelpers.BuildContext(c)
	if err := a.faq.Save(ctx, question, answer); err != nil {
		logger.SVCFaq.LogAttrs(ctx, slog.LevelError, "faq.save_failed",
			slog.String("err", err.Error()),
		)
		a.fsm.Clear(userID)
		return c.Send("Something went wrong, please try again later.", mainMenu())
	}
	a.fsm.Clear(userID)
	return c.Send("✅ Got it, the answer is saved.", mainMenu())
}
