package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
)

// LedgerHandler maneja las líneas del kardex de un producto.
type LedgerHandler struct {
	ledger *inventory.LedgerUseCase
	kardex *inventory.KardexUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(ledger *inventory.LedgerUseCase, kardex *inventory.KardexUseCase) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, kardex: kardex}
}

// AppendLog godoc
// @Summary      Agregar movimiento al kardex
// @Description  Recalcula saldos y totales. Falla con 400 si algún saldo quedaría negativo.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del producto"
// @Param        body  body  dto.AppendLogRequest  true  "type (in|out), quantity > 0, remarks, date"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/logs [post]
func (h *LedgerHandler) AppendLog(c *fiber.Ctx) error {
	var in dto.AppendLogRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.AppendLog(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// EditLogAt godoc
// @Summary      Editar movimiento por posición
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id     path  string              true  "ID del producto"
// @Param        index  path  int                 true  "Posición (desde 0)"
// @Param        body   body  dto.EditLogRequest  true  "Campos a cambiar"
// @Success      200    {object}  dto.LedgerTotalsResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/products/{id}/logs/{index} [patch]
func (h *LedgerHandler) EditLogAt(c *fiber.Ctx) error {
	index, err := parseIndex(c)
	if err != nil {
		return writeError(c, err)
	}
	var patch dto.EditLogRequest
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.EditLogAt(c.UserContext(), c.Params("id"), index, patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteLogAt godoc
// @Summary      Eliminar movimiento por posición
// @Tags         ledger
// @Produce      json
// @Param        id     path  string  true  "ID del producto"
// @Param        index  path  int     true  "Posición (desde 0)"
// @Success      200    {object}  dto.LedgerTotalsResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/products/{id}/logs/{index} [delete]
func (h *LedgerHandler) DeleteLogAt(c *fiber.Ctx) error {
	index, err := parseIndex(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.ledger.DeleteLogAt(c.UserContext(), c.Params("id"), index)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// EditLog godoc
// @Summary      Editar movimiento por ID
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id       path  string              true  "ID del producto"
// @Param        entryId  path  string              true  "ID de la línea"
// @Param        body     body  dto.EditLogRequest  true  "Campos a cambiar"
// @Success      200      {object}  dto.LedgerTotalsResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/products/{id}/entries/{entryId} [patch]
func (h *LedgerHandler) EditLog(c *fiber.Ctx) error {
	var patch dto.EditLogRequest
	if err := c.BodyParser(&patch); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.EditLog(c.UserContext(), c.Params("id"), c.Params("entryId"), patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteLog godoc
// @Summary      Eliminar movimiento por ID
// @Tags         ledger
// @Produce      json
// @Param        id       path  string  true  "ID del producto"
// @Param        entryId  path  string  true  "ID de la línea"
// @Success      200      {object}  dto.LedgerTotalsResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/products/{id}/entries/{entryId} [delete]
func (h *LedgerHandler) DeleteLog(c *fiber.Ctx) error {
	out, err := h.ledger.DeleteLog(c.UserContext(), c.Params("id"), c.Params("entryId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Recalcular saldos y totales del kardex almacenado
// @Tags         ledger
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/reconcile [post]
func (h *LedgerHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.ledger.Reconcile(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// KardexPDF godoc
// @Summary      Descargar kardex en PDF
// @Tags         ledger
// @Produce      application/pdf
// @Param        id    path   string  true   "ID del producto"
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/kardex [get]
func (h *LedgerHandler) KardexPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.kardex.DownloadKardexPDF(c.UserContext(), c.Params("id"), c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}

func parseIndex(c *fiber.Ctx) (int, error) {
	raw := c.Params("index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: índice %q no es un entero", domain.ErrInvalidInput, raw)
	}
	return index, nil
}
