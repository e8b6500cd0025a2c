package main

import (
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	cartapp "marketplace/application/cart"
	orderapp "marketplace/application/order"
	voucherapp "marketplace/application/voucher"
	"marketplace/cmd/config"
	redisclient "marketplace/cmd/redis"
	cartRepo "marketplace/repository/cart"
	orderRepo "marketplace/repository/order"
	productRepo "marketplace/repository/product"
	redisRepo "marketplace/repository/redis"
	shopRepo "marketplace/repository/shop"
	txRepo "marketplace/repository/tx"
	voucherRepo "marketplace/repository/voucher"
	"marketplace/thirdparty/rabbitmq"
	"marketplace/transport"
	"marketplace/utils/logger"
)

// @title MARKETPLACE ORDER API
// @version 1.0
// @description Cart, voucher and order placement API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Order event publisher; the server still serves without it.
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Warn("err connect rabbitmq, order events disabled", zap.Error(err))
		publisher = nil
	} else {
		defer func() {
			_ = publisher.Close()
		}()
	}

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db, cfg.Order.LockWaitTimeout)
	CartRepo := cartRepo.NewCartRepository(db)
	ShopRepo := shopRepo.NewShopRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	VoucherRepo := voucherRepo.NewVoucherRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	CartApp := cartapp.NewCartApp(TxRepo, CartRepo, ProductRepo, ShopRepo)
	VoucherApp := voucherapp.NewVoucherApp(VoucherRepo)
	OrderApp := orderapp.NewOrderApp(TxRepo, CartRepo, ShopRepo, ProductRepo, VoucherRepo, OrderRepo, publisher)

	httpTransport := transport.NewTransport(CartApp, VoucherApp, OrderApp, RedisRepo, cfg.Auth.JWTSecret, cfg.Auth.InternalAPIKey)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
