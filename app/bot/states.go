package bot

import "github.com/m3rciful/storebot/core/telegram/state"

// Conversation states of the storefront flows. Everything else is idle.
const (
	stateCartQuantity state.State = "cart:awaiting_quantity"
	stateCartConfirm  state.State = "cart:awaiting_confirm"
	stateOrderAddress state.State = "order:awaiting_address"
	stateOrderPhone   state.State = "order:awaiting_phone"
	stateOrderPayment state.State = "order:awaiting_payment"
	stateFAQAnswer    state.State = "faq:awaiting_answer"
)

// Session temp-data keys. Values live only while a flow is active.
const (
	tempProductID = "product_id"
	tempQuantity  = "quantity"
	tempAddress   = "address"
	tempQuestion  = "question"
	tempOrderID   = "order_id"
)

// Callback uniques. Payloads are typed fields joined by telebot, parsed back
// with the callbacks helpers; no positional token splitting.
const (
	cbSubCheck    = "sub_check"
	cbCatPage     = "cat_page"
	cbCategory    = "cat"
	cbSubcatPage  = "subcat_page"
	cbSubcategory = "subcat"
	cbProductPage = "prod_page"
	cbCartAdd     = "cart_add"
	cbCartConfirm = "cart_confirm"
	cbCartCancel  = "cart_cancel"
	cbCartRemove  = "cart_remove"
	cbCartClear   = "cart_clear"
	cbCheckout    = "checkout"
	cbFAQ         = "faq"
)

// Main menu reply-keyboard labels, registered as command aliases.
const (
	menuCatalog = "🛍 Catalog"
	menuCart    = "🛒 Cart"
	menuFAQ     = "ℹ️ FAQ"
)
