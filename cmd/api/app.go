package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/route"
	"github.com/hugohenrick/erp-estoque/internal/adapter/repository"
	"github.com/hugohenrick/erp-estoque/internal/config"
	"github.com/hugohenrick/erp-estoque/internal/domain/notification"
	"github.com/hugohenrick/erp-estoque/internal/infrastructure/cache"
	"github.com/hugohenrick/erp-estoque/internal/infrastructure/database"
	"github.com/hugohenrick/erp-estoque/internal/service"
	"github.com/hugohenrick/erp-estoque/pkg/auth"
	"github.com/hugohenrick/erp-estoque/pkg/cooldown"
	"github.com/hugohenrick/erp-estoque/pkg/logger"
	"github.com/hugohenrick/erp-estoque/pkg/messaging"
	"github.com/hugohenrick/erp-estoque/pkg/middleware"
	"github.com/hugohenrick/erp-estoque/pkg/realtime"
	"github.com/hugohenrick/erp-estoque/pkg/tenant"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// App representa a aplicação e suas dependências
type App struct {
	config   *config.Config
	logger   logger.Logger
	router   *gin.Engine
	db       *pgxpool.Pool
	redis    *redis.Client
	rabbit   *messaging.RabbitMQClient
	broker   *realtime.Broker
	listener *realtime.Listener

	controllers route.Controllers
	guards      route.Guards
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	app := &App{config: cfg, logger: log}

	// Configurar banco de dados
	db, err := database.NewPostgresDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	app.db = db

	// Redis é opcional: sem ele o cooldown fica em memória e o limitador deixa passar
	var limiter cooldown.Limiter = cooldown.NewMemoryLimiter(cfg.Realtime.Cooldown)
	var rateLimitClient redis.Cmdable
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.redis = client
		limiter = cooldown.NewRedisLimiter(client, cfg.Realtime.Cooldown)
		rateLimitClient = client
	}

	// RabbitMQ é opcional: sem ele os eventos são descartados
	var events service.EventPublisher = messaging.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		app.rabbit = messaging.NewRabbitMQClient(&messaging.RabbitMQConfig{
			Host:       cfg.RabbitMQ.Host,
			Port:       cfg.RabbitMQ.Port,
			Username:   cfg.RabbitMQ.Username,
			Password:   cfg.RabbitMQ.Password,
			VHost:      cfg.RabbitMQ.VHost,
			Exchange:   cfg.RabbitMQ.Exchange,
			RetryCount: cfg.RabbitMQ.RetryCount,
			RetryDelay: cfg.RabbitMQ.RetryDelay,
		}, log)
		if err := app.rabbit.Connect(); err != nil {
			app.Close()
			return nil, err
		}
		events = messaging.NewPublisher(app.rabbit, log)
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil {
		app.Close()
		return nil, err
	}

	// Criar repositórios
	tenantRepo := repository.NewTenantRepository(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	// Criar serviços
	billing := service.NewBillingService(subscriptionRepo, productRepo, userRepo, log)
	products := service.NewProductService(productRepo, movementRepo, billing, events, log)
	stock := service.NewStockService(productRepo, movementRepo, events, log)
	imports := service.NewImportService(products, log)
	scan := service.NewScanService(products, stock)
	analytics := service.NewAnalyticsService(products)
	accounts := service.NewAccountService(tenantRepo, userRepo, billing, jwtService, log)

	app.broker = realtime.NewBroker(log)
	app.listener = realtime.NewListener(db, cfg.Realtime.Channel, app.broker, log)
	alerts := service.NewAlertService(app.broker, limiter, notification.NewMemoryStore(notification.MaxPerUser), billing, log, cfg.Realtime.SubscriberSize)

	// Criar controllers
	app.controllers = route.Controllers{
		Auth:         controller.NewAuthController(accounts),
		User:         controller.NewUserController(accounts),
		Product:      controller.NewProductController(products, stock),
		CSV:          controller.NewCSVController(imports),
		Scan:         controller.NewScanController(scan),
		Label:        controller.NewLabelController(products),
		Subscription: controller.NewSubscriptionController(billing, analytics),
		Notification: controller.NewNotificationController(alerts),
		Health:       controller.NewHealthController(app.healthChecks()),
	}

	app.guards = route.Guards{
		Auth:   auth.JWTAuthMiddleware(jwtService),
		Tenant: tenant.TenantMiddleware(repository.NewTenantValidator(tenantRepo)),
		RateLimit: middleware.RateLimiter(rateLimitClient, middleware.RateLimitConfig{
			Prefix: "rate_limit:auth:",
			Limit:  cfg.RateLimit.Requests,
			Period: cfg.RateLimit.Window,
		}, log),
		Features: billing,
	}

	// Configurar router com modo correto
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Configurar CORS e outros middlewares globais
	router.Use(logger.GinMiddleware(log), gin.Recovery())
	router.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))
	app.router = router

	return app, nil
}

func (a *App) healthChecks() map[string]controller.Pinger {
	checks := map[string]controller.Pinger{"database": a.db.Ping}
	if a.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return a.redis.Ping(ctx).Err()
		}
	}
	return checks
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// SetupRoutes configura as rotas da aplicação
func (a *App) SetupRoutes(basePath string) {
	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	route.SetupRoutes(a.router.Group(basePath), a.controllers, a.guards)
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Start inicia o feed de mudanças e o servidor HTTP até o contexto ser cancelado
func (a *App) Start(ctx context.Context) error {
	go a.listener.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + a.config.Server.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("servidor iniciado", "port", a.config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("erro ao iniciar servidor: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("encerrando servidor")
	// Encerra os fluxos SSE antes do servidor aguardar as conexões
	a.broker.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("erro ao encerrar servidor: %w", err)
	}
	return nil
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.rabbit != nil {
		if err := a.rabbit.Close(); err != nil {
			a.logger.Warn("erro ao fechar conexão com o RabbitMQ", "error", err)
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("erro ao fechar conexão com o Redis", "error", err)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}
