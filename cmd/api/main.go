package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/skserveur/storefront/internal/config"
	"github.com/skserveur/storefront/internal/handlers"
	"github.com/skserveur/storefront/internal/mailer"
	"github.com/skserveur/storefront/internal/repository"
	"github.com/skserveur/storefront/internal/services"
	"github.com/skserveur/storefront/internal/session"
	xhttp "github.com/skserveur/storefront/pkg/http"
	"github.com/skserveur/storefront/pkg/logger"
	"github.com/skserveur/storefront/pkg/pg"
	"github.com/skserveur/storefront/pkg/prom"
	"github.com/skserveur/storefront/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	host, _ := os.Hostname()
	prom.Create(host, config.Get().AppEnv, config.Get().PromNamespace)

	// transport (tcp for now)
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	sessions := session.NewStore(redisAdap, config.Get().SessionTTL)

	sender, err := createMailSender()
	if err != nil {
		logger.Error("failed creating mail sender", "error", err)
		return
	}
	dispatcher := mailer.NewDispatcher(sender, config.Get().MailWorkers, config.Get().MailQueueSize)
	if err := dispatcher.Start(); err != nil {
		logger.Error("failed starting mail dispatcher", "error", err)
		return
	}

	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	paymentRepo := repository.NewPaymentConfigRepository(db)

	// services
	authService := services.NewAuthService(userRepo, sessions)
	catalogService := services.NewCatalogService(catalogRepo)
	walletService := services.NewWalletService(walletRepo, transactionRepo, paymentRepo)
	paymentService := services.NewPaymentService(paymentRepo)
	orderService := services.NewOrderService(orderRepo, walletRepo, catalogService, db, dispatcher, config.Get().AdminEmail)
	adminService := services.NewAdminService(orderRepo, transactionRepo, walletRepo, historyRepo, userRepo, db, dispatcher)
	dashboardService := services.NewDashboardService(catalogService, walletRepo, orderRepo, historyRepo)
	healthService := services.NewHealthService()

	if err := authService.EnsureAdminUser(context.Background(),
		config.Get().BootstrapAdminUsername,
		config.Get().BootstrapAdminEmail,
		config.Get().BootstrapAdminPassword); err != nil {
		logger.Error("failed seeding admin user", "error", err)
		return
	}

	// v1 handlers
	m := handlers.NewAuthMiddleware(authService)
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, dashboardService)
	walletHandler := handlers.NewWalletHandler(walletService)
	orderHandler := handlers.NewOrderHandler(orderService, catalogService)
	adminHandler := handlers.NewAdminHandler(adminService, catalogService, paymentService)
	healthHandler := handlers.NewHealthHandler(healthService)

	g := s.Router.Group("/api/v1")
	handlers.RegisterAuthRoutes(g, authHandler, m)
	handlers.RegisterCatalogRoutes(g, catalogHandler, m)
	handlers.RegisterWalletRoutes(g, walletHandler, m)
	handlers.RegisterOrderRoutes(g, orderHandler, m)
	handlers.RegisterAdminRoutes(g, adminHandler, m)
	handlers.RegisterHealthRoutes(g, healthHandler)
	s.Router.GET("/metrics", prom.Handler())

	// Create new server
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Kill)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	select {
	case <-c:
		s.Shutdown()
		dispatcher.Stop()
	}
}

func createMailSender() (mailer.Sender, error) {
	switch config.Get().MailDriver {
	case "smtp":
		return mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     config.Get().SmtpHost,
			Port:     config.Get().SmtpPort,
			User:     config.Get().SmtpUser,
			Password: config.Get().SmtpPassword,
			From:     config.Get().SmtpFrom,
		})
	case "relay":
		return mailer.NewRelaySender(config.Get().MailRelayPrimaryUrl, config.Get().MailRelayBackupUrl)
	default:
		return mailer.LogSender{}, nil
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
