package dto

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// ProductFromEntity convierte un producto a su resumen HTTP.
func ProductFromEntity(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Unit:      p.Unit,
		Remarks:   p.Remarks,
		Stock:     p.Stock,
		TotalIn:   p.TotalIn,
		TotalOut:  p.TotalOut,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// LedgerEntryFromEntity convierte una línea del kardex; index es su posición en Product.Logs.
func LedgerEntryFromEntity(e entity.LedgerEntry, index int) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:       e.ID,
		Index:    index,
		Date:     e.Date,
		Type:     e.Type,
		Quantity: e.Quantity,
		Remarks:  e.Remarks,
		Balance:  e.Balance,
	}
}
