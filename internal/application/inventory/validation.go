package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
)

func validateType(t string) error {
	if !entity.IsValidMovementType(t) {
		return fmt.Errorf("%w: type debe ser 'in' u 'out'", domain.ErrInvalidInput)
	}
	return nil
}

// validateQuantity exige cantidad positiva, finita y representable en todos los almacenamientos.
// Los límites se revisan con coeficiente y exponente antes de cualquier operación que reescale,
// para que valores como 1e50000000 se rechacen sin materializarlos.
func validateQuantity(q decimal.Decimal) error {
	if !q.IsPositive() {
		return fmt.Errorf("%w: quantity debe ser un número positivo", domain.ErrInvalidInput)
	}
	digits, exp := int64(q.NumDigits()), int64(q.Exponent())
	if digits+exp > entity.MaxQuantityIntegerDigits {
		return fmt.Errorf("%w: quantity fuera de rango (máximo %d dígitos enteros)", domain.ErrInvalidInput, entity.MaxQuantityIntegerDigits)
	}
	if digits > maxCoefficientDigits || -exp > maxCoefficientDigits || !q.Equal(q.Truncate(entity.MaxQuantityScale)) {
		return fmt.Errorf("%w: quantity admite hasta %d decimales", domain.ErrInvalidInput, entity.MaxQuantityScale)
	}
	return nil
}

// maxCoefficientDigits precisión de Decimal128; acota el costo de Truncate/Equal.
const maxCoefficientDigits = 34

// validatePatch valida los campos presentes antes de leer el almacenamiento.
func validatePatch(p dto.EditLogRequest) error {
	if p.Type != nil {
		if err := validateType(*p.Type); err != nil {
			return err
		}
	}
	if p.Quantity != nil {
		if err := validateQuantity(*p.Quantity); err != nil {
			return err
		}
	}
	if p.Date != nil && *p.Date != "" {
		if _, err := inventory.NormalizeDate(*p.Date); err != nil {
			return err
		}
	}
	return nil
}

// applyPatch combina el patch sobre la línea actual y revalida tipo y cantidad resultantes.
// El saldo se descarta: Reconcile lo recalcula.
func applyPatch(old entity.LedgerEntry, p dto.EditLogRequest) (entity.LedgerEntry, error) {
	merged := entity.LedgerEntry{
		ID:       old.ID,
		Date:     old.Date,
		Type:     old.Type,
		Quantity: old.Quantity,
		Remarks:  old.Remarks,
	}
	if p.Date != nil && *p.Date != "" {
		date, err := inventory.NormalizeDate(*p.Date)
		if err != nil {
			return entity.LedgerEntry{}, err
		}
		merged.Date = date
	}
	if p.Type != nil {
		merged.Type = *p.Type
	}
	if p.Quantity != nil {
		merged.Quantity = *p.Quantity
	}
	if p.Remarks != nil {
		merged.Remarks = *p.Remarks
	}
	if err := validateType(merged.Type); err != nil {
		return entity.LedgerEntry{}, err
	}
	if err := validateQuantity(merged.Quantity); err != nil {
		return entity.LedgerEntry{}, err
	}
	return merged, nil
}
