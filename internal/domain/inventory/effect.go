package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// Effect efecto con signo de una línea del kardex sobre los contadores del producto.
type Effect struct {
	Stock decimal.Decimal
	In    decimal.Decimal
	Out   decimal.Decimal
}

// EffectOf calcula el efecto de una línea (servicio de dominio, sin efectos secundarios).
//
//	in  → (+cantidad, +cantidad, 0)
//	out → (-cantidad, 0, +cantidad)
//
// Cualquier otro tipo no tiene efecto; la validación de borde debe impedir que llegue aquí.
func EffectOf(e entity.LedgerEntry) Effect {
	qty := e.Quantity
	switch e.Type {
	case entity.MovementTypeIn:
		return Effect{Stock: qty, In: qty, Out: decimal.Zero}
	case entity.MovementTypeOut:
		return Effect{Stock: qty.Neg(), In: decimal.Zero, Out: qty}
	default:
		return Effect{Stock: decimal.Zero, In: decimal.Zero, Out: decimal.Zero}
	}
}
