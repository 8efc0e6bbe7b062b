package dto

import "github.com/shopspring/decimal"

// AppendLogRequest entrada para agregar una línea al kardex.
// quantity acepta número o string numérico; date acepta YYYY-MM-DD o RFC3339 (vacío = hoy).
type AppendLogRequest struct {
	Type     string           `json:"type" validate:"required,oneof=in out"`
	Quantity *decimal.Decimal `json:"quantity" validate:"required"`
	Remarks  string           `json:"remarks"`
	Date     string           `json:"date"`
}

// EditLogRequest cambios parciales sobre una línea existente; los campos omitidos conservan su valor.
type EditLogRequest struct {
	Date     *string          `json:"date"`
	Type     *string          `json:"type" validate:"omitempty,oneof=in out"`
	Quantity *decimal.Decimal `json:"quantity"`
	Remarks  *string          `json:"remarks"`
}

// LedgerEntryResponse una línea del kardex con su saldo.
type LedgerEntryResponse struct {
	ID       string          `json:"id"`
	Index    int             `json:"index"`
	Date     string          `json:"date"`
	Type     string          `json:"type"`
	Quantity decimal.Decimal `json:"quantity"`
	Remarks  string          `json:"remarks"`
	Balance  decimal.Decimal `json:"balance"`
}

// LedgerTotalsResponse totales del producto después de mutar el kardex.
// Entry se incluye cuando la operación afecta una línea concreta (edición).
type LedgerTotalsResponse struct {
	OK       bool                 `json:"ok"`
	Entry    *LedgerEntryResponse `json:"entry,omitempty"`
	Stock    decimal.Decimal      `json:"stock"`
	TotalIn  decimal.Decimal      `json:"totalIn"`
	TotalOut decimal.Decimal      `json:"totalOut"`
}
