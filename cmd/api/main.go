// @title        Kardex API
// @version      1.0
// @description  Kardex de productos: movimientos de entrada y salida con saldo por línea y totales.
// @BasePath     /
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"golang.org/x/text/language"

	_ "github.com/jhoicas/kardex-api/docs"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
	"github.com/jhoicas/kardex-api/internal/infrastructure/mongodb"
	infrapdf "github.com/jhoicas/kardex-api/internal/infrastructure/pdf"
	"github.com/jhoicas/kardex-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/kardex-api/internal/interfaces/http"
	"github.com/jhoicas/kardex-api/pkg/config"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	productRepo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store.Driver).Msg("inicializar almacenamiento")
	}

	productUC := usecase.NewProductUseCase(productRepo)
	ledgerUC := inventory.NewLedgerUseCase(productRepo, inventory.LedgerConfig{
		MaxRetries: cfg.Ledger.MaxRetries,
	}, log.Zerolog())

	// PDF: kardex del producto con cantidades en formato local
	kardexUC := inventory.NewKardexUseCase(productRepo, infrapdf.NewMarotoKardexGenerator(language.Spanish))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowMethods: strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPatch, fiber.MethodDelete}, ","),
	}))
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Swagger.File); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.File,
			Path:     "docs",
			Title:    "Kardex API",
		}))
	} else {
		log.Warn().Str("file", cfg.Swagger.File).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		LedgerUC:    ledgerUC,
		KardexUC:    kardexUC,
		Store:       productRepo,
		ServiceName: cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// El almacenamiento se cierra después de drenar las peticiones en curso.
	if err := closeStore(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre del almacenamiento")
	}

	log.Info().Msg("aplicación detenida")
}

// openStore construye el repositorio según STORE_DRIVER y devuelve su función de cierre.
func openStore(ctx context.Context, cfg *config.Config) (repository.ProductRepository, func(context.Context) error, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewProductRepository(pool), func(context.Context) error {
			pool.Close()
			return nil
		}, nil

	case config.StoreDriverMongo:
		client, db, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		repo := mongodb.NewProductRepository(db, mongodb.CollectionName(cfg.Mongo.CollectionPrefix, mongodb.ProductsCollection))
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		return repo, client.Disconnect, nil

	case config.StoreDriverMemory:
		return memory.NewProductRepository(), func(context.Context) error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("driver de almacenamiento desconocido: %s", cfg.Store.Driver)
}
