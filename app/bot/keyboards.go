package bot

import (
	"strconv"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/storebot/app/services"
	"github.com/m3rciful/storebot/app/storage"
	"github.com/m3rciful/storebot/core/telegram/keyboard"
)

func mainMenu() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{menuCatalog, menuCart},
		[]string{menuFAQ},
	)
}

func subscribeMarkup(channelURL string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.URL("📢 Join the channel", channelURL)),
		markup.Row(markup.Data("✅ I subscribed", cbSubCheck)),
	)
	return markup
}

func categoriesMarkup(categories []storage.Category, win services.PageWindow) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, win.End-win.Start+1)
	for _, cat := range categories[win.Start:win.End] {
		rows = append(rows, markup.Row(
			markup.Data(cat.Name, cbCategory, strconv.FormatInt(cat.ID, 10)),
		))
	}
	if nav := pageNav(markup, win, func(page int) tele.Btn {
		return markup.Data(pageLabel(page, win.Page), cbCatPage, strconv.Itoa(page))
	}); len(nav) > 0 {
		rows = append(rows, markup.Row(nav...))
	}
	markup.Inline(rows...)
	return markup
}

func subcategoriesMarkup(categoryID int64, subs []storage.Subcategory, win services.PageWindow) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, win.End-win.Start+1)
	for _, sub := range subs[win.Start:win.End] {
		rows = append(rows, markup.Row(
			markup.Data(sub.Name, cbSubcategory, strconv.FormatInt(sub.ID, 10)),
		))
	}
	if nav := pageNav(markup, win, func(page int) tele.Btn {
		return markup.Data(pageLabel(page, win.Page), cbSubcatPage,
			strconv.FormatInt(categoryID, 10), strconv.Itoa(page))
	}); len(nav) > 0 {
		rows = append(rows, markup.Row(nav...))
	}
	markup.Inline(rows...)
	return markup
}

func productMarkup(subcategoryID int64, index, total int, productID int64) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{
		markup.Row(markup.Data("🛒 Add to cart", cbCartAdd, strconv.FormatInt(productID, 10))),
	}
	var nav []tele.Btn
	if index > 0 {
		nav = append(nav, markup.Data("⬅ Back", cbProductPage,
			strconv.FormatInt(subcategoryID, 10), strconv.Itoa(index-1)))
	}
	if index < total-1 {
		nav = append(nav, markup.Data("Next ➡", cbProductPage,
			strconv.FormatInt(subcategoryID, 10), strconv.Itoa(index+1)))
	}
	if len(nav) > 0 {
		rows = append(rows, markup.Row(nav...))
	}
	markup.Inline(rows...)
	return markup
}

func confirmMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("✅ Confirm", cbCartConfirm),
		markup.Data("❌ Cancel", cbCartCancel),
	))
	return markup
}

func cartMarkup(view services.CartView) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(view.Items)+2)
	for _, item := range view.Items {
		rows = append(rows, markup.Row(
			markup.Data("❌ Remove "+item.Name, cbCartRemove, strconv.FormatInt(item.ProductID, 10)),
		))
	}
	rows = append(rows,
		markup.Row(markup.Data("🗑 Clear cart", cbCartClear)),
		markup.Row(markup.Data("✅ Checkout", cbCheckout)),
	)
	markup.Inline(rows...)
	return markup
}

func faqMarkup(entries []storage.FAQEntry) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, markup.Row(
			markup.Data(entry.Question, cbFAQ, strconv.FormatInt(entry.ID, 10)),
		))
	}
	markup.Inline(rows...)
	return markup
}

// pageNav builds back/next buttons for a page window; mkBtn receives the
// target page index.
func pageNav(_ *tele.ReplyMarkup, win services.PageWindow, mkBtn func(page int) tele.Btn) []tele.Btn {
	var nav []tele.Btn
	if win.HasPrev {
		nav = append(nav, mkBtn(win.Page-1))
	}
	if win.HasNext {
		nav = append(nav, mkBtn(win.Page+1))
	}
	return nav
}

func pageLabel(target, current int) string {
	if target < current {
		return "⬅ Back"
	}
	return "Next ➡"
}
