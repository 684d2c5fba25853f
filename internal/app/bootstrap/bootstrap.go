package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	gatewayregistry "keygate/contexts/card-network/gateway-registry"
	gatewaymock "keygate/contexts/card-network/gateway-registry/adapters/mockcheck"
	gatewaypostgres "keygate/contexts/card-network/gateway-registry/adapters/postgres"
	gatewayports "keygate/contexts/card-network/gateway-registry/ports"
	newsfeed "keygate/contexts/card-network/news-feed"
	newspostgres "keygate/contexts/card-network/news-feed/adapters/postgres"
	newsports "keygate/contexts/card-network/news-feed/ports"
	accountservice "keygate/contexts/identity-access/account-service"
	accountpostgres "keygate/contexts/identity-access/account-service/adapters/postgres"
	accountapp "keygate/contexts/identity-access/account-service/application"
	accountports "keygate/contexts/identity-access/account-service/ports"
	operatorservice "keygate/contexts/identity-access/operator-service"
	sqliteadapter "keygate/contexts/identity-access/operator-service/adapters/sqlite"
	"keygate/internal/platform/botserver"
	"keygate/internal/platform/config"
	"keygate/internal/platform/db"
	"keygate/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type BotApp struct {
	poller   *botserver.Poller
	postgres *db.Postgres
	roster   *db.SQLite
	logger   *slog.Logger
}

// creditLedger is the only bridge between the gateway registry and the
// account ledger. The registry sees one operation: the atomic check-and-debit.
type creditLedger struct {
	accounts accountapp.Service
}

func (l creditLedger) TryConsume(ctx context.Context, accountID int64, cost int64) (gatewayports.ConsumeOutcome, error) {
	result, err := l.accounts.TryConsume(ctx, accountID, cost)
	if err != nil {
		return gatewayports.ConsumeOutcome{}, err
	}
	return gatewayports.ConsumeOutcome{
		Granted:   result.Granted,
		Remaining: result.Remaining,
	}, nil
}

var _ gatewayports.CreditLedger = creditLedger{}

type domainModules struct {
	accounts accountservice.Module
	gateways gatewayregistry.Module
	news     newsfeed.Module
	postgres *db.Postgres
}

func buildDomainModules(cfg config.Config, logger *slog.Logger) (domainModules, error) {
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		accounts := accountservice.NewInMemoryModule(logger)
		gateways := gatewayregistry.NewInMemoryModule(creditLedger{accounts: accounts.Service}, logger)
		news := newsfeed.NewInMemoryModule(logger)
		if cfg.SeedDemoData {
			seedDemoData(accounts, gateways, news)
		}
		return domainModules{accounts: accounts, gateways: gateways, news: news}, nil
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return domainModules{}, err
	}

	accountRepo := accountpostgres.NewRepository(pg.DB, logger)
	gatewayRepo := gatewaypostgres.NewRepository(pg.DB, logger)
	newsRepo := newspostgres.NewRepository(pg.DB, logger)
	for _, migrate := range []func() error{accountRepo.Migrate, gatewayRepo.Migrate, newsRepo.Migrate} {
		if err := migrate(); err != nil {
			_ = pg.Close()
			return domainModules{}, err
		}
	}

	accounts := accountservice.NewModule(accountservice.Dependencies{
		Repository: accountRepo,
		Keys:       accountpostgres.UUIDKeyGenerator{},
		KeyRetries: 5,
		Logger:     logger,
	})
	gateways := gatewayregistry.NewModule(gatewayregistry.Dependencies{
		Repository: gatewayRepo,
		Ledger:     creditLedger{accounts: accounts.Service},
		Checker:    gatewaymock.NewChecker(time.Now().UnixNano()),
		Logger:     logger,
	})
	news := newsfeed.NewModule(newsfeed.Dependencies{
		Repository: newsRepo,
		Logger:     logger,
	})
	return domainModules{accounts: accounts, gateways: gateways, news: news, postgres: pg}, nil
}

// seedDemoData installs the fixed development dataset: one funded account,
// two gateways with one disabled, one announcement.
func seedDemoData(
	accounts accountservice.Module,
	gateways gatewayregistry.Module,
	news newsfeed.Module,
) {
	accounts.Store.SeedAccount(accountports.Account{
		ID:        1,
		AccessKey: "demo123",
		Credits:   1000,
		Language:  accountports.LanguageEnglish,
	})
	gateways.Store.SeedGateway(gatewayports.Gateway{ID: 1, Name: "Stripe Charge", Endpoint: "stripe.com/charge", Active: true})
	gateways.Store.SeedGateway(gatewayports.Gateway{ID: 2, Name: "PayPal Direct", Endpoint: "paypal.com/direct", Active: false})
	news.Store.SeedNews(newsports.NewsItem{
		ID:        1,
		Title:     "Welcome!",
		Content:   "Welcome to the checker.",
		CreatedAt: time.Now().UTC(),
	})
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	modules, err := buildDomainModules(cfg, logger)
	if err != nil {
		return nil, err
	}

	server := httpserver.New(
		modules.accounts,
		modules.gateways,
		modules.news,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: modules.postgres,
		logger:   logger,
	}, nil
}

func BuildBot(ctx context.Context) (*BotApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "bot")
	if strings.TrimSpace(cfg.BotToken) == "" {
		return nil, errors.New("BOT_TOKEN is required")
	}
	if len(cfg.OwnerIDs) == 0 {
		return nil, errors.New("OWNER_IDS is required")
	}

	modules, err := buildDomainModules(cfg, logger)
	if err != nil {
		return nil, err
	}

	roster, err := db.OpenSQLite(cfg.RosterPath)
	if err != nil {
		closeModules(modules)
		return nil, err
	}
	rosterStore, err := sqliteadapter.NewStore(roster.DB, logger)
	if err != nil {
		_ = roster.Close()
		closeModules(modules)
		return nil, err
	}

	operators, err := operatorservice.NewModule(ctx, operatorservice.Dependencies{
		OwnerIDs: cfg.OwnerIDs,
		Roster:   rosterStore,
		Logger:   logger,
	})
	if err != nil {
		_ = roster.Close()
		closeModules(modules)
		return nil, err
	}

	poller := &botserver.Poller{
		Client: botserver.NewClient(cfg.BotToken),
		Dispatcher: botserver.Dispatcher{
			Accounts:  modules.accounts.Service,
			Operators: operators.Service,
			Gateways:  modules.gateways.Service,
			News:      modules.news.Service,
			Logger:    logger,
		},
		Logger:             logger,
		PollTimeoutSeconds: cfg.BotPollTimeoutSeconds,
	}
	return &BotApp{
		poller:   poller,
		postgres: modules.postgres,
		roster:   roster,
		logger:   logger,
	}, nil
}

func closeModules(modules domainModules) {
	if modules.postgres != nil {
		_ = modules.postgres.Close()
	}
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (b *BotApp) Run(ctx context.Context) error {
	if b.logger != nil {
		b.logger.Info("bot app started",
			"event", "bootstrap_bot_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return b.poller.Run(ctx)
}

func (b *BotApp) Close() error {
	var errs []error
	if b.roster != nil {
		errs = append(errs, b.roster.Close())
	}
	if b.postgres != nil {
		errs = append(errs, b.postgres.Close())
	}
	return errors.Join(errs...)
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
