package bot

import (
	"errors"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/storebot/app/services"
	"github.com/m3rciful/storebot/core/logger"
	tghelpers "github.com/m3rciful/storebot/core/telegram/helpers"
	"log/slog"
)

func (a *App) handleCheckout(c tele.Context) error {
	userID := c.Sender().ID
	ctx := tghelpers.BuildContext(c)
	view, err := a.cart.View(ctx, userID)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Failed to start checkout."})
	}
	if view.Empty() {
		return c.Respond(&tele.CallbackResponse{Text: "🛒 Your cart is empty.", ShowAlert: true})
	}
	a.fsm.SetState(userID, stateOrderAddress)
	return c.Send("📦 Enter the delivery address:")
}

func (a *App) fsmOrderAddress(c tele.Context) error {
	address := strings.TrimSpace(c.Text())
	if address == "" {
		return c.Send("❌ The address cannot be empty. Enter the delivery address:")
	}
	userID := c.Sender().ID
	a.fsm.SetTemp(userID, tempAddress, address)
	a.fsm.SetState(userID, stateOrderPhone)
	return c.Send("📱 Enter your phone number (e.g. +79991234567):")
}

func (a *App) fsmOrderPhone(c tele.Context) error {
	phone := strings.TrimSpace(c.Text())
	if !services.ValidPhone(phone) {
		return c.Send("❌ Invalid phone number. Enter 10-15 digits, optionally starting with +:")
	}

	userID := c.Sender().ID
	address, ok := a.fsm.GetTempString(userID, tempAddress)
	if !ok {
		a.fsm.Clear(userID)
		return c.Send("Session expired, start the checkout again.", mainMenu())
	}

	ctx := tghelpers.BuildContext(c)
	result, err := a.orders.Checkout(ctx, userID, address, phone)
	if err != nil {
		a.fsm.Clear(userID)
		var belowMin *services.BelowMinimumError
		switch {
		case errors.Is(err, services.ErrCartEmpty):
			return c.Send("🛒 Your cart is empty, nothing to order.", mainMenu())
		case errors.As(err, &belowMin):
			return c.Send(fmt.Sprintf(
				"❌ The minimum order amount is %s %s. Add more items to your cart.",
				minorToText(belowMin.MinMinor), a.cfg.Shop.Currency), mainMenu())
		default:
			logger.SVCOrders.LogAttrs(ctx, slog.LevelError, "order.checkout_failed",
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
			return c.Send("Something went wrong, please try again later.", mainMenu())
		}
	}

	a.fsm.SetTemp(userID, tempOrderID, result.OrderID)
	a.fsm.SetState(userID, stateOrderPayment)

	prices := make([]tele.Price, 0, len(result.Invoice.Lines))
	for _, line := range result.Invoice.Lines {
		prices = append(prices, tele.Price{Label: line.Label, Amount: int(line.AmountMinor)})
	}
	invoice := tele.Invoice{
		Title:       result.Invoice.Title,
		Description: result.Invoice.Description,
		Payload:     result.Invoice.Payload,
		Currency:    result.Invoice.Currency,
		Token:       a.cfg.Shop.ProviderToken,
		Prices:      prices,
		Start:       "order_payment",
	}
	if err := c.Send(&invoice); err != nil {
		logger.SVCOrders.LogAttrs(ctx, slog.LevelError, "order.invoice_failed",
			slog.Int64("user_id", userID),
			slog.Int64("order_id", result.OrderID),
			slog.String("err", err.Error()),
		)
		a.fsm.Clear(userID)
		return c.Send("Failed to issue the invoice, please contact support.", mainMenu())
	}
	return nil
}

func (a *App) fsmOrderPayment(c tele.Context) error {
	if orderID, ok := a.fsm.GetTempInt64(c.Sender().ID, tempOrderID); ok {
		return c.Send(fmt.Sprintf("💳 Pay the invoice for order #%d above, or send /cancel to abort.", orderID))
	}
	return c.Send("💳 Pay the invoice above, or send /cancel to abort the order.")
}

// handlePreCheckout answers the provider's pre-checkout query. The order is
// already persisted, so the query is always accepted.
func (a *App) handlePreCheckout(c tele.Context) error {
	if err := c.Accept(); err != nil {
		ctx := tghelpers.BuildContext(c)
		logger.SVCOrders.LogAttrs(ctx, slog.LevelError, "order.precheckout_failed",
			slog.Int64("user_id", c.Sender().ID),
			slog.String("err", err.Error()),
		)
	}
	return nil
}

func (a *App) handlePaymentSettled(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID
	payment := c.Message().Payment
	if payment == nil {
		return nil
	}

	orderID, err := a.orders.ConfirmPaid(ctx, payment.Payload)
	if err != nil {
		logger.SVCOrders.LogAttrs(ctx, slog.LevelError, "order.confirm_failed",
			slog.Int64("user_id", userID),
			slog.String("payload", payment.Payload),
			slog.String("err", err.Error()),
		)
		a.fsm.Clear(userID)
		return c.Send("Payment received, but confirming the order failed. Please contact support.")
	}

	a.fsm.Clear(userID)
	return c.Send(fmt.Sprintf("✅ Payment successful! Order #%d is on its way.", orderID), mainMenu())
}

func minorToText(minor int64) string {
	return fmt.Sprintf("%d.%02d", minor/100, minor%100)
}
