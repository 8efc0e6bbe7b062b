package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// NegativeBalanceError indica que la secuencia dejaría el saldo en negativo en la línea Index.
type NegativeBalanceError struct {
	Index    int
	Type     string
	Quantity decimal.Decimal
	Date     string
	Balance  decimal.Decimal // saldo que habría resultado
}

func (e *NegativeBalanceError) Error() string {
	info := fmt.Sprintf("%s %s on %s", e.Type, e.Quantity.String(), e.Date)
	return fmt.Sprintf("%s; el saldo quedaría negativo en %q", domain.ErrNegativeBalance.Error(), info)
}

func (e *NegativeBalanceError) Unwrap() error { return domain.ErrNegativeBalance }

// Reconcile recalcula el saldo de cada línea y los totales del producto recorriendo la secuencia completa
// en orden de aplicación. Falla con *NegativeBalanceError si el saldo baja de cero en cualquier prefijo;
// en ese caso no devuelve estado parcial.
//
// Siempre es un recálculo total: insertar, editar o quitar la línea k cambia el saldo de todas las
// posteriores, y la regla de saldo no negativo debe verificarse sobre toda la secuencia resultante.
func Reconcile(entries []entity.LedgerEntry) (entity.LedgerSnapshot, error) {
	stock := decimal.Zero
	totalIn := decimal.Zero
	totalOut := decimal.Zero

	logs := make([]entity.LedgerEntry, 0, len(entries))
	for i, raw := range entries {
		e := entity.LedgerEntry{
			ID:       raw.ID,
			Date:     raw.Date,
			Type:     raw.Type,
			Quantity: raw.Quantity,
			Remarks:  raw.Remarks,
		}
		eff := EffectOf(e)
		next := stock.Add(eff.Stock)
		if next.IsNegative() {
			return entity.LedgerSnapshot{}, &NegativeBalanceError{
				Index:    i,
				Type:     e.Type,
				Quantity: e.Quantity,
				Date:     e.Date,
				Balance:  next,
			}
		}
		stock = next
		totalIn = totalIn.Add(eff.In)
		totalOut = totalOut.Add(eff.Out)

		e.Balance = stock
		logs = append(logs, e)
	}

	return entity.LedgerSnapshot{
		Logs:     logs,
		Stock:    stock,
		TotalIn:  totalIn,
		TotalOut: totalOut,
	}, nil
}
