package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
)

// Pinger verifica la disponibilidad del almacenamiento para /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	LedgerUC    *inventory.LedgerUseCase
	KardexUC    *inventory.KardexUseCase
	Store       Pinger
	ServiceName string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.Store, deps.ServiceName))

	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Kardex: posicional (compatibilidad) y por ID de línea
	ledgerHandler := NewLedgerHandler(deps.LedgerUC, deps.KardexUC)
	products.Post("/:id/logs", ledgerHandler.AppendLog)
	products.Patch("/:id/logs/:index", ledgerHandler.EditLogAt)
	products.Delete("/:id/logs/:index", ledgerHandler.DeleteLogAt)
	products.Patch("/:id/entries/:entryId", ledgerHandler.EditLog)
	products.Delete("/:id/entries/:entryId", ledgerHandler.DeleteLog)
	products.Post("/:id/reconcile", ledgerHandler.Reconcile)
	products.Get("/:id/kardex", ledgerHandler.KardexPDF)
}

// healthHandler godoc
// @Summary      Estado del servicio y del almacenamiento
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /health [get]
func healthHandler(store Pinger, service string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}
