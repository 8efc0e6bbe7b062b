package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name    string `json:"name" validate:"required"`
	Unit    string `json:"unit"`
	Remarks string `json:"remarks"`
}

// UpdateProductRequest entrada para actualizar los datos descriptivos (nunca stock ni kardex).
type UpdateProductRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1"`
	Unit    *string `json:"unit"`
	Remarks *string `json:"remarks"`
}

// ProductResponse resumen de un producto (sin kardex).
type ProductResponse struct {
	ID        string          `json:"_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Remarks   string          `json:"remarks"`
	Stock     decimal.Decimal `json:"stock"`
	TotalIn   decimal.Decimal `json:"totalIn"`
	TotalOut  decimal.Decimal `json:"totalOut"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ProductDetailResponse producto con las líneas del kardex (opcionalmente filtradas por fecha).
type ProductDetailResponse struct {
	ProductResponse
	Logs []LedgerEntryResponse `json:"logs"`
}

// DeleteProductResponse resultado de eliminar un producto.
type DeleteProductResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
