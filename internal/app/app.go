package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/metrics"
	"github.com/niksmo/storefront/internal/adapter/otp"
	"github.com/niksmo/storefront/internal/adapter/storage"
	"github.com/niksmo/storefront/internal/adapter/token"
	"github.com/niksmo/storefront/internal/adapter/upload"
	"github.com/niksmo/storefront/internal/core/cart"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/retry"
	"github.com/niksmo/storefront/pkg/schema"
)

type serdes struct {
	catalogEvents schema.Serde
	orders        schema.Serde
}

type broker struct {
	producer   *kafka.EventsProducer
	processor  port.PopularityProcessor
	view       *kafka.PopularityView
	catalog    port.CatalogEventPublisher
	orders     port.OrderEventPublisher
	popularity port.PopularityReader
}

type coreService struct {
	catalog    service.Catalog
	storefront service.Storefront
	auth       service.Auth
	checkout   service.Checkout
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	wg         *sync.WaitGroup
	db         storage.SQLDB
	storage    storage.Storage
	otpStore   otp.RedisStore
	files      upload.DiskStore
	tokens     token.Issuer
	serdes     serdes
	broker     broker
	service    coreService
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg, wg: &sync.WaitGroup{}}

	app.initLogger()
	app.initStorage()
	app.initAccounts()
	app.initBroker()
	app.initCoreServices()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	var handler slog.Handler
	switch app.cfg.LogFormat {
	case "text":
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      app.cfg.LogLevel,
			TimeFormat: time.Kitchen,
		})
	default:
		handler = slog.NewJSONHandler(os.Stderr,
			&slog.HandlerOptions{Level: app.cfg.LogLevel})
	}
	slog.SetDefault(slog.New(handler))
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	db, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}

	policy := retry.RetryConfig{
		MaxAttempts: app.cfg.Retry.MaxAttempts,
		BaseDelay:   app.cfg.Retry.BaseDelay,
	}
	s := storage.New(db, policy, storage.WithRetryObserver(metrics.RetryObserver{}))
	if err := s.VerifySchema(app.ctx); err != nil {
		db.Close()
		app.fallDown(op, err)
	}

	files, err := upload.NewDiskStore(app.cfg.Upload.Dir)
	if err != nil {
		db.Close()
		app.fallDown(op, err)
	}

	app.db = db
	app.storage = s
	app.files = files
}

func (app *App) initAccounts() {
	const op = "App.initAccounts"

	tokens, err := token.NewIssuer(app.cfg.Auth.JWTSecret)
	if err != nil {
		app.fallDown(op, err)
	}

	otpStore, err := otp.NewRedisStore(app.ctx, app.cfg.Redis.URL)
	if err != nil {
		app.fallDown(op, err)
	}

	app.tokens = tokens
	app.otpStore = otpStore
}

func (app *App) initBroker() {
	const op = "App.initBroker"

	if !app.cfg.Broker.Enabled() {
		slog.Warn("no seed brokers configured, events and popularity are disabled",
			"op", op)
		app.broker.catalog = kafka.NopPublisher{}
		app.broker.orders = kafka.NopPublisher{}
		app.broker.popularity = kafka.NopPopularity{}
		return
	}

	bc := app.cfg.Broker
	tlsConfig, err := kafka.LoadTLSConfig(bc.TLS.CAFile, bc.TLS.CertFile, bc.TLS.KeyFile)
	if err != nil {
		app.fallDown(op, err)
	}
	kafka.ConfigureGoka(tlsConfig)

	app.initSerdes()

	producer, err := kafka.NewEventsProducer(
		kafka.ProducerClientOpt(app.ctx, bc.SeedBrokers, tlsConfig),
		kafka.CatalogEventsOpt(bc.Topics.CatalogEvents, app.serdes.catalogEvents),
		kafka.OrderEventsOpt(bc.Topics.Orders, app.serdes.orders),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	processor, err := kafka.NewPopularityProcessor(
		bc.SeedBrokers, bc.Topics.Orders, bc.Groups.ProductPopularity, app.serdes.orders,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	view, err := kafka.NewPopularityView(bc.SeedBrokers, bc.Groups.ProductPopularity)
	if err != nil {
		app.fallDown(op, err)
	}

	app.broker = broker{
		producer:   &producer,
		processor:  processor,
		view:       view,
		catalog:    producer,
		orders:     producer,
		popularity: view,
	}
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"

	srClient, err := schema.NewRegistryClient(app.cfg.Broker.SchemaRegistryURLs)
	if err != nil {
		app.fallDown(op, err)
	}
	schemaCreater := schema.NewSchemaCreater(srClient)
	topics := app.cfg.Broker.Topics

	catalogSerde, err := schema.NewSerdeCatalogEventV1(
		app.ctx,
		schema.SubjectOpt(topics.CatalogEvents+"-value"),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	ordersSerde, err := schema.NewSerdeOrderPlacedV1(
		app.ctx,
		schema.SubjectOpt(topics.Orders+"-value"),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.catalogEvents = catalogSerde
	app.serdes.orders = ordersSerde
}

func (app *App) initCoreServices() {
	s := app.storage
	repos := service.CatalogRepos{
		Categories:    storage.NewCategories(s),
		Subcategories: storage.NewSubcategories(s),
		Brands:        storage.NewBrands(s),
		Products:      storage.NewProducts(s),
		Details:       storage.NewProductDetails(s),
		Pictures:      storage.NewProductPictures(s),
		Banners:       storage.NewBanners(s),
		AdOffers:      storage.NewAdOffers(s),
		BankOffers:    storage.NewBankOffers(s),
	}
	customers := storage.NewCustomers(s)
	addresses := storage.NewAddresses(s)
	orders := storage.NewOrders(s)
	carts := cart.NewStore()

	app.service.catalog = service.NewCatalog(repos, app.broker.catalog)
	app.service.storefront = service.NewStorefront(repos, app.broker.popularity)

	app.service.auth = service.NewAuth(
		service.AuthDeps{
			Admins:    storage.NewAdmins(s),
			Customers: customers,
			Addresses: addresses,
			Orders:    orders,
			Tokens:    app.tokens,
			OTPStore:  app.otpStore,
			OTPSender: otp.LogSender{},
			Carts:     carts,
		},
		service.AuthConfig{
			AdminTokenTTL:      app.cfg.Auth.AdminTokenTTL,
			CustomerTokenTTL:   app.cfg.Auth.CustomerTokenTTL,
			AllowAdminRegister: app.cfg.Auth.AllowAdminRegister,
			OTPTTL:             app.cfg.OTP.TTL,
			OTPLength:          app.cfg.OTP.Length,
		},
	)

	app.service.checkout = service.NewCheckout(service.CheckoutDeps{
		Carts:     carts,
		Details:   repos.Details,
		Customers: customers,
		Addresses: addresses,
		Orders:    orders,
		Events:    app.broker.orders,
	})
}

func (app *App) initInboundAdapters() {
	handler := httphandler.NewRouter(httphandler.RouterDeps{
		Catalog:       app.service.catalog,
		Storefront:    app.service.storefront,
		Auth:          app.service.auth,
		Checkout:      app.service.checkout,
		Tokens:        app.tokens,
		Files:         app.files,
		DB:            app.db,
		AllowedOrigin: app.cfg.AllowedOrigin,
		PublicPrefix:  app.cfg.Upload.PublicPrefix,
		UploadDir:     app.files.Dir(),
		MaxMemory:     app.cfg.Upload.MaxMemory,
	})
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	if app.broker.processor != nil {
		app.wg.Add(2)
		go app.broker.processor.Run(app.ctx, stopFn, app.wg)
		go app.broker.view.Run(app.ctx, stopFn, app.wg)
	}

	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)

	if app.broker.processor != nil {
		app.broker.processor.Close()
		app.broker.producer.Close()
	}
	app.wg.Wait()

	app.otpStore.Close()
	app.db.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
