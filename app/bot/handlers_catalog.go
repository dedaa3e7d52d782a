package bot

import (
	"fmt"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/storebot/app/services"
	"github.com/m3rciful/storebot/app/storage"
	"github.com/m3rciful/storebot/core/logger"
	"github.com/m3rciful/storebot/core/telegram/callbacks"
	"github.com/m3rciful/storebot/core/telegram/format"
	tghelpers "github.com/m3rciful/storebot/core/telegram/helpers"
	"log/slog"
)

const chooseCategoryText = "📦 Choose a category:"
const chooseSubcategoryText = "🔍 Choose a subcategory:"

func (a *App) handleCatalog(c tele.Context) error {
	if !a.requireMember(c) {
		return nil
	}
	ctx := tghelpers.BuildContext(c)
	cats, err := a.store.Categories(ctx)
	if err != nil {
		logger.SVCCatalog.LogAttrs(ctx, slog.LevelError, "catalog.categories_failed",
			slog.String("err", err.Error()),
		)
		return c.Send("Something went wrong, please try again later.")
	}
	win := services.Paginate(len(cats), 0, services.PageSize)
	return c.Send(chooseCategoryText, categoriesMarkup(cats, win))
}

func (a *App) handleCategoriesPage(c tele.Context) error {
	page, err := callbacks.PayloadInt(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Failed to load categories."})
	}
	ctx := tghelpers.BuildContext(c)
	cats, err := a.store.Categories(ctx)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Failed to load categories."})
	}
	win := services.Paginate(len(cats), page, services.PageSize)
	return c.Edit(chooseCategoryText, categoriesMarkup(cats, win))
}

func (a *App) handleCategory(c tele.Context) error {
	categoryID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Failed to load subcategories."})
	}
	return a.showSubcategories(c, categoryID, 0)
}

func (a *App) handleSubcatPage(c tele.Context) error {
	categoryID, page, err := callbacks.PayloadTwoInt64(c, "|")
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Failed to load subcategories."})
	}
	return a.showSubcategories(c, categoryID, int(page))
}

func (a *App) showSubcategories(c tele.Context, categoryID int64, page int) error {
	ctx := tghelpers.BuildContext(c)
	subs, err := a.store.Subcategories(ctx, categoryID)
	if err != nil {
		logger.SVCCatalog.LogAttrs(ctx, slog.LevelError, "catalog.subcategories_failed",
			slog.Int64("category_id", categoryID),
			slog.String("err", err.Error()),
		)
		return c.Respond(&tele.CallbackResponse{Text: "❌ Failed to load subcategories."})
	}
	win := services.Paginate(len(subs), page, services.PageSize)
	return c.Edit(chooseSubcategoryText, subcategoriesMarkup(categoryID, subs, win))
}

func (a *App) handleSubcategory(c tele.Context) error {
	subcategoryID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Failed to load products."})
	}
	return a.showProduct(c, subcategoryID, 0)
}

func (a *App) handleProductPage(c tele.Context) error {
	subcategoryID, index, err := callbacks.PayloadTwoInt64(c, "|")
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Failed to load products."})
	}
	return a.showProduct(c, subcategoryID, int(index))
}

// showProduct renders one product of a subcategory as a card with navigation.
// The index is clamped, so an out-of-range request shows the nearest product.
func (a *App) showProduct(c tele.Context, subcategoryID int64, index int) error {
	ctx := tghelpers.BuildContext(c)
	products, err := a.store.ProductsBySubcategory(ctx, subcategoryID)
	if err != nil {
		logger.SVCCatalog.LogAttrs(ctx, slog.LevelError, "catalog.products_failed",
			slog.Int64("subcategory_id", subcategoryID),
			slog.String("err", err.Error()),
		)
		return c.Respond(&tele.CallbackResponse{Text: "❌ Failed to load products."})
	}
	if len(products) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ No products in this subcategory yet."})
	}

	index = services.ClampIndex(len(products), index)
	product := products[index]
	markup := productMarkup(subcategoryID, index, len(products), product.ID)
	caption := productCaption(product, a.cfg.Shop.Currency)

	// Replace the navigation message entirely; a photo cannot be edited into
	// a text message.
	_ = c.Delete()
	if product.ImageURL.Valid && product.ImageURL.String != "" {
		photo := &tele.Photo{File: tele.FromURL(product.ImageURL.String), Caption: caption}
		return c.Send(photo, markup, tele.ModeMarkdown)
	}
	return c.Send(caption, markup, tele.ModeMarkdown)
}

func productCaption(p storage.Product, currency string) string {
	price := "-"
	if p.Price.Valid {
		price = p.Price.Decimal.StringFixed(2) + " " + currency
	}
	name := escapeMD(p.Name)
	caption := fmt.Sprintf("🛍 *%s*\n💰 Price: %s", name, price)
	if p.Description.Valid && p.Description.String != "" {
		caption += "\n📜 " + escapeMD(p.Description.String)
	}
	return caption
}

// escapeMD neutralizes markdown control characters in admin-entered text.
func escapeMD(text string) string {
	escaped, err := format.EscapeMarkdown(text, format.MarkdownV1, "")
	if err != nil {
		return text
	}
	return escaped
}
