package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario con su kardex embebido.
// Stock, TotalIn y TotalOut se derivan siempre de Logs (ver inventory.Reconcile); nunca se asignan directamente.
type Product struct {
	ID        string
	Name      string
	Unit      string
	Remarks   string
	Stock     decimal.Decimal
	TotalIn   decimal.Decimal
	TotalOut  decimal.Decimal
	Logs      []LedgerEntry
	Revision  int64 // control de concurrencia optimista, +1 por cada escritura del kardex
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LedgerSnapshot estado del kardex recalculado: líneas con saldo y totales agregados.
// Es lo único que se persiste al mutar el kardex, en una sola escritura.
type LedgerSnapshot struct {
	Logs     []LedgerEntry
	Stock    decimal.Decimal
	TotalIn  decimal.Decimal
	TotalOut decimal.Decimal
}
