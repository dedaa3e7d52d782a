package bot

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/storebot/app/services"
	"github.com/m3rciful/storebot/core/logger"
	"github.com/m3rciful/storebot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/storebot/core/telegram/helpers"
	"log/slog"
)

func (a *App) handleCartAdd(c tele.Context) error {
	productID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Failed to add the product."})
	}
	userID := c.Sender().ID
	a.fsm.SetTemp(userID, tempProductID, productID)
	a.fsm.SetState(userID, stateCartQuantity)
	return c.Send("How many units would you like? Enter a number:")
}

func (a *App) fsmCartQuantity(c tele.Context) error {
	qty, err := services.ParseQuantity(c.Text())
	if err != nil {
		return c.Send("❌ Enter a positive whole number:")
	}
	userID := c.Sender().ID
	a.fsm.SetTemp(userID, tempQuantity, int64(qty))
	a.fsm.SetState(userID, stateCartConfirm)
	return c.Send(fmt.Sprintf("Add %d pcs to your cart?", qty), confirmMarkup())
}

func (a *App) handleCartConfirm(c tele.Context) error {
	userID := c.Sender().ID
	productID, okProduct := a.fsm.GetTempInt64(userID, tempProductID)
	qty, okQty := a.fsm.GetTempInt64(userID, tempQuantity)
	if !okProduct || !okQty {
		a.fsm.Clear(userID)
		return c.Send("Session expired, start from the catalog again.", mainMenu())
	}

	ctx := tghelpers.BuildContext(c)
	if err := a.cart.Add(ctx, userID, productID, int(qty)); err != nil {
		logger.SVCCart.LogAttrs(ctx, slog.LevelError, "cart.add_failed",
			slog.Int64("user_id", userID),
			slog.Int64("product_id", productID),
			slog.String("err", err.Error()),
		)
		a.fsm.Clear(userID)
		return c.Send("Something went wrong, please try again later.", mainMenu())
	}
	a.fsm.Clear(userID)
	return c.Send("✅ Added to your cart!", mainMenu())
}

// fsmCartConfirmText nudges users who type instead of tapping the
// confirm/cancel buttons.
func (a *App) fsmCartConfirmText(c tele.Context) error {
	return c.Send("Use the buttons above to confirm or cancel, or send /cancel.")
}

func (a *App) handleCartCancel(c tele.Context) error {
	a.fsm.Clear(c.Sender().ID)
	return c.Send("Cancelled. Back to the main menu:", mainMenu())
}

func (a *App) handleCart(c tele.Context) error {
	if !a.requireMember(c) {
		return nil
	}
	return a.renderCart(c, false)
}

// renderCart sends or edits the itemized cart message. Callback handlers edit
// in place, commands send a fresh message.
func (a *App) renderCart(c tele.Context, edit bool) error {
	userID := c.Sender().ID
	ctx := tghelpers.BuildContext(c)
	view, err := a.cart.View(ctx, userID)
	if err != nil {
		logger.SVCCart.LogAttrs(ctx, slog.LevelError, "cart.view_failed",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return c.Send("Something went wrong, please try again later.")
	}

	if view.Empty() {
		text := "🛒 Your cart is empty."
		if edit {
			return c.Edit(text)
		}
		return c.Send(text, mainMenu())
	}

	text := cartText(view, a.cfg.Shop.Currency)
	if edit {
		return tghelpers.EditMD(c, text, cartMarkup(view))
	}
	return tghelpers.SendMD(c, text, cartMarkup(view))
}

func cartText(view services.CartView, currency string) string {
	var b strings.Builder
	b.WriteString("🛒 *Your cart:*\n\n")
	for _, item := range view.Items {
		line := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		fmt.Fprintf(&b, "• %s: %d x %s = %s %s\n",
			escapeMD(item.Name), item.Quantity, item.Price.StringFixed(2), line.StringFixed(2), currency)
	}
	fmt.Fprintf(&b, "\n*Total:* %s %s", view.Total.StringFixed(2), currency)
	return b.String()
}

func (a *App) handleCartRemove(c tele.Context) error {
	productID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Failed to remove the product."})
	}
	ctx := tghelpers.BuildContext(c)
	if err := a.cart.Remove(ctx, c.Sender().ID, productID); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Failed to remove the product."})
	}
	return a.renderCart(c, true)
}

func (a *App) handleCartClear(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if err := a.cart.Clear(ctx, c.Sender().ID); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Failed to clear the cart."})
	}
	return c.Edit("🗑 Cart cleared.")
}
