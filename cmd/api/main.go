package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/femibot-stock/internal/application/auth"
	"github.com/jhoicas/femibot-stock/internal/application/dashboard"
	"github.com/jhoicas/femibot-stock/internal/domain/repository"
	"github.com/jhoicas/femibot-stock/internal/infrastructure/excel"
	"github.com/jhoicas/femibot-stock/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/femibot-stock/internal/infrastructure/pdf"
	"github.com/jhoicas/femibot-stock/internal/infrastructure/postgres"
	"github.com/jhoicas/femibot-stock/internal/infrastructure/source"
	"github.com/jhoicas/femibot-stock/internal/infrastructure/tabular"
	httpRouter "github.com/jhoicas/femibot-stock/internal/interfaces/http"
	"github.com/jhoicas/femibot-stock/pkg/config"
	"github.com/jhoicas/femibot-stock/pkg/logger"

	_ "github.com/jhoicas/femibot-stock/docs"
)

// @title                       Femibot Stock API
// @version                     1.0
// @description                 Tablero de inventario y vencimientos a partir del archivo de stock.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Usuarios: PostgreSQL si hay DB configurada, si no AUTH_USERS.
	var userRepo repository.UserRepository
	if cfg.DB.Enabled {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		userRepo = postgres.NewUserRepository(pool)
	} else {
		repo, err := memory.NewUserRepository(cfg.Auth.Users)
		if err != nil {
			log.Fatal().Err(err).Msg("AUTH_USERS")
		}
		log.Info().Int("users", repo.Len()).Msg("usuarios desde configuración")
		userRepo = repo
	}

	// Fuente del archivo de stock.
	var src dashboard.Source
	if cfg.Stock.UseGCS() {
		client, err := storage.NewClient(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente de Cloud Storage")
		}
		defer client.Close()
		src = source.NewGCSSource(client, cfg.Stock.GCSBucket, cfg.Stock.GCSObject)
	} else {
		src = source.NewFileSource(cfg.Stock.SourcePath)
	}
	log.Info().Str("source", src.Name()).Msg("fuente de stock")

	cache, err := dashboard.NewTableCache(cfg.Stock.CacheSize, tabular.Read, log.Component("stock-cache"))
	if err != nil {
		log.Fatal().Err(err).Msg("caché de stock")
	}
	stockUC := dashboard.NewStockUseCase(src, cache,
		[]dashboard.ViewExporter{excel.NewExporter(), infrapdf.NewMarotoTableExporter()},
		log.Component("stock"),
		dashboard.WithDefaultThreshold(cfg.Stock.DefaultThresholdDays),
	)

	if cfg.Stock.Watch && !cfg.Stock.UseGCS() {
		w, err := source.NewWatcher(cfg.Stock.SourcePath, stockUC.Invalidate, log.Component("stock-watcher"))
		if err != nil {
			log.Warn().Err(err).Msg("sin observador de cambios del archivo de stock")
		} else {
			go w.Run(ctx)
		}
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Femibot Stock API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		AuthUC:    authUC,
		StockUC:   stockUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
