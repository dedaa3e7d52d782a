// Package bot assembles the storefront Telegram bot: handlers, keyboards, and
// conversation state over the shared core runtime.
package bot

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	appconfig "github.com/m3rciful/storebot/app/config"
	"github.com/m3rciful/storebot/app/services"
	"github.com/m3rciful/storebot/app/storage"
	"github.com/m3rciful/storebot/core/bootstrap"
	coretelegram "github.com/m3rciful/storebot/core/telegram"
	"github.com/m3rciful/storebot/core/telegram/commands"
	"github.com/m3rciful/storebot/core/telegram/middleware"
	"github.com/m3rciful/storebot/core/telegram/router"
	"github.com/m3rciful/storebot/core/telegram/state"
)

const defaultSessionTTL = 30 * time.Minute

// App wires configuration, storage, and the storefront services together.
type App struct {
	cfg   *appconfig.Config
	db    *sqlx.DB
	redis *redis.Client

	store     *storage.Gateway
	fsm       state.Manager
	cart      *services.Cart
	orders    *services.Orders
	faq       *services.FAQ
	gate      *services.Subscription
	broadcast *services.Broadcast
	export    *services.Export
}

// Bootstrap initializes infrastructure and constructs the application.
func Bootstrap(cfg *appconfig.Config) (*App, error) {
	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
		Seeders:  seeders(cfg),
	})
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:   cfg,
		db:    res.DB,
		store: storage.New(res.DB),
	}

	ttl := defaultSessionTTL
	if cfg.Session.TTLMinutes > 0 {
		ttl = time.Duration(cfg.Session.TTLMinutes) * time.Minute
	}
	if cfg.Redis.Addr != "" {
		app.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		app.fsm = state.NewRedisManager(app.redis, ttl)
	} else {
		app.fsm = state.NewMemoryManagerTTL(ttl)
	}

	app.cart = services.NewCart(app.store)
	app.orders = services.NewOrders(app.store, cfg.Shop.Currency, cfg.Shop.MinOrderMinor)
	app.faq = services.NewFAQ(app.store)
	app.gate = services.NewSubscription(cfg.Shop.Channel)
	app.broadcast = services.NewBroadcast(app.store)
	app.export = services.NewExport(app.store)

	return app, nil
}

func seeders(cfg *appconfig.Config) []bootstrap.Seeder {
	if !cfg.Shop.SeedDemo {
		return nil
	}
	return []bootstrap.Seeder{bootstrap.SeederFunc(storage.DemoCatalogSeeder)}
}

// TelegramRunOptions builds the routing table and middleware chain for the bot.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Open the main menu",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.handleCancel,
		Description: "Abort the current flow",
	})
	reg.RegisterCommand("/catalog", commands.Command{
		Handler:     a.handleCatalog,
		Description: "Browse the catalog",
		Aliases:     []string{menuCatalog},
	})
	reg.RegisterCommand("/cart", commands.Command{
		Handler:     a.handleCart,
		Description: "Show your cart",
		Aliases:     []string{menuCart},
	})
	reg.RegisterCommand("/faq", commands.Command{
		Handler:     a.handleFAQ,
		Description: "Frequently asked questions",
		Aliases:     []string{menuFAQ},
	})
	reg.RegisterCommand("/orders", commands.Command{
		Handler:     a.handleOrders,
		Description: "Export all orders as CSV",
		AdminOnly:   true,
		Hidden:      true,
	})
	reg.RegisterCommand("/broadcast", commands.Command{
		Handler:     a.handleBroadcast,
		Description: "Send a message to all users",
		AdminOnly:   true,
		Hidden:      true,
	})

	_ = reg.RegisterCallback(cbSubCheck, a.handleSubCheck)
	_ = reg.RegisterCallback(cbCatPage, a.handleCategoriesPage)
	_ = reg.RegisterCallback(cbCategory, a.handleCategory)
	_ = reg.RegisterCallback(cbSubcatPage, a.handleSubcatPage)
	_ = reg.RegisterCallback(cbSubcategory, a.handleSubcategory)
	_ = reg.RegisterCallback(cbProductPage, a.handleProductPage)
	_ = reg.RegisterCallback(cbCartAdd, a.handleCartAdd)
	_ = reg.RegisterCallback(cbCartConfirm, a.handleCartConfirm)
	_ = reg.RegisterCallback(cbCartCancel, a.handleCartCancel)
	_ = reg.RegisterCallback(cbCartRemove, a.handleCartRemove)
	_ = reg.RegisterCallback(cbCartClear, a.handleCartClear)
	_ = reg.RegisterCallback(cbCheckout, a.handleCheckout)
	_ = reg.RegisterCallback(cbFAQ, a.handleFAQEntry)

	state.RegisterHandler(stateCartQuantity, a.fsmCartQuantity)
	state.RegisterHandler(stateCartConfirm, a.fsmCartConfirmText)
	state.RegisterHandler(stateOrderAddress, a.fsmOrderAddress)
	state.RegisterHandler(stateOrderPhone, a.fsmOrderPhone)
	state.RegisterHandler(stateOrderPayment, a.fsmOrderPayment)
	state.RegisterHandler(stateFAQAnswer, a.fsmFAQAnswer)

	reg.SetTextFallback(a.UnknownText())
	reg.SetCallbackNotFound(a.UnknownCallback())

	cfg := a.cfg.CoreConfig()

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: cfg.Telegram.AdminID,
		OnAdminReject: func(c tele.Context) error {
			return c.Send("This command is for the shop administrator.")
		},
	})
	routes = append(routes, router.TextRoutes(a.fsm, reg, router.TextOptions{
		UnknownText:     a.UnknownText(),
		UnknownDocument: a.UnknownDocument(),
	})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, a.paymentRoutes()...)

	return coretelegram.RunOptions{
		Config:      cfg,
		Registry:    reg,
		Middlewares: append(
			coretelegram.DefaultMiddlewares(cfg, nil),
			coretelegram.Middleware{Name: "session", Use: state.WithSession(a.fsm)},
		),
		Routes:      routes,
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			if a.redis != nil {
				_ = a.redis.Close()
			}
			return a.db.Close()
		},
	}, nil
}

// paymentRoutes binds the payment-provider updates, which bypass the text and
// callback routers.
func (a *App) paymentRoutes() []coretelegram.Route {
	wrap := func(h tele.HandlerFunc) tele.HandlerFunc {
		return middleware.RecoverMiddleware(middleware.LoggerMiddleware(h))
	}
	return []coretelegram.Route{
		{Endpoint: tele.OnCheckout, Handler: wrap(a.handlePreCheckout)},
		{Endpoint: tele.OnPayment, Handler: wrap(a.handlePaymentSettled)},
	}
}
