package entity

import "github.com/shopspring/decimal"

// Tipos de movimiento del kardex.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // salida
)

// Límites de cantidad. Con ellos cualquier cantidad aceptada, y los totales que se acumulan,
// caben en NUMERIC y en Decimal128 (34 dígitos significativos).
const (
	MaxQuantityIntegerDigits = 12 // cantidad < 10^12
	MaxQuantityScale         = 6  // hasta 6 decimales
)

// DateLayout formato de fecha de las líneas del kardex.
const DateLayout = "2006-01-02"

// LedgerEntry una línea del kardex (movimiento de entrada o salida).
// No existe fuera de Product.Logs; el orden del slice es el orden de aplicación.
type LedgerEntry struct {
	ID       string // estable, asignado al agregar la línea
	Date     string // YYYY-MM-DD
	Type     string // in, out
	Quantity decimal.Decimal
	Remarks  string
	Balance  decimal.Decimal // saldo después de aplicar esta línea (derivado)
}

// IsValidMovementType indica si t es una dirección de movimiento admitida.
func IsValidMovementType(t string) bool {
	return t == MovementTypeIn || t == MovementTypeOut
}
