package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	backfillapp "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/backfill"
	diagnosticsapp "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/diagnostics"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/runlock"
	salesapp "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/sales"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/stockclass"
	stockinapp "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/stockin"
	worklistapp "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/application/worklist"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/cmd/config"
	redisclient "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/cmd/redis"
	_ "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/docs"
	balanceRepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/balance"
	ledgerRepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/ledger"
	lotRepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/lot"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/memory"
	redisRepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/redis"
	salesRepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/sales"
	stockclassRepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/stockclass"
	txRepo "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/repository/tx"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/thirdparty/rabbitmq"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/transport"
	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/logger"
	validatorx "github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/utils/validator"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type repositories struct {
	Tx         txRepo.TxRepository
	Lot        lotRepo.LotRepository
	Balance    balanceRepo.BalanceRepository
	Sales      salesRepo.SalesRepository
	Ledger     ledgerRepo.LedgerRepository
	StockClass stockclassRepo.StockClassRepository
	close      func()
}

func openRepositories(cfg *config.Config) repositories {
	if cfg.Storage.Driver == config.StorageMemory {
		logger.Warn("using in-memory storage, nothing survives a restart")
		store := memory.NewStore()
		return repositories{
			Tx:         store,
			Lot:        store.LotRepository(),
			Balance:    store.BalanceRepository(),
			Sales:      store.SalesRepository(),
			Ledger:     store.LedgerRepository(),
			StockClass: store.StockClassRepository(),
			close:      func() {},
		}
	}

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return repositories{
		Tx:         txRepo.NewTxRepository(db),
		Lot:        lotRepo.NewLotRepository(db),
		Balance:    balanceRepo.NewBalanceRepository(db),
		Sales:      salesRepo.NewSalesRepository(db),
		Ledger:     ledgerRepo.NewLedgerRepository(db),
		StockClass: stockclassRepo.NewStockClassRepository(db),
		close:      func() { _ = db.Close() },
	}
}

// @title ARCANAFRISIA INVENTORY API
// @version 1.0
// @description Lot allocation and FIFO consumption for the card warehouse
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey InternalKey
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	validatorx.Init()

	logger.Info("Starting server", zap.String("env", cfg.Environment), zap.String("storage", cfg.Storage.Driver))

	if cfg.Internal.APIKey == "" {
		logger.Warn("INTERNAL_API_KEY is empty, every internal route will answer 401")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos := openRepositories(cfg)
	defer repos.close()

	// Initialize Redis client; without a host the writer lock and the
	// stock class cache are skipped
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()
	var RedisRepo redisRepo.Repository
	if redisclient.Get() != nil {
		RedisRepo = redisRepo.NewRepository()
	} else {
		logger.Warn("redis not configured, runs are not serialized across instances")
	}

	var publisher *rabbitmq.Publisher
	if cfg.RabbitMQ.Host != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Fatal("err connect rabbitmq publisher", zap.Error(err))
		}
		publisher = p
		defer publisher.Close()

		if cfg.RabbitMQ.EnableConsume {
			consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.Internal.BaseURL, cfg.Internal.APIKey)
			if err != nil {
				logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
			}
			defer consumer.Close()
			if err := consumer.Start(ctx); err != nil {
				logger.Fatal("err start sales sync consumer", zap.Error(err))
			}
			logger.Info("sales sync consumer running", zap.String("queue", rabbitmq.SalesSyncQueue))
		}
	}

	// Initialize application layers
	locker := runlock.New(RedisRepo, cfg.Inventory.LockTTL)
	resolver := stockclass.NewResolver(repos.StockClass, RedisRepo, cfg.Inventory.StockClassCacheTTL)

	httpTransport := transport.NewTransport(&transport.RestHandler{
		StockInApp:     stockinapp.NewStockInApp(cfg, repos.Tx, repos.Lot, repos.Balance, resolver, locker),
		BackfillApp:    backfillapp.NewBackfillApp(cfg, repos.Tx, repos.Lot, locker),
		SalesApp:       salesapp.NewSalesApp(cfg, repos.Tx, repos.Lot, repos.Balance, repos.Sales, repos.Ledger, locker, publisher),
		DiagnosticsApp: diagnosticsapp.NewDiagnosticsApp(repos.Lot, repos.Sales, repos.Balance),
		WorklistApp:    worklistapp.NewWorklistApp(repos.Lot, resolver, locker),
	}, cfg.Internal.APIKey)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Fatal("failed server", zap.Error(err))
	}
}
