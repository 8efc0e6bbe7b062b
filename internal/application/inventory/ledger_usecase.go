package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// LedgerConfig parámetros del motor de kardex.
type LedgerConfig struct {
	MaxRetries int              // reintentos ante conflicto de revisión (0 = sin reintentos)
	Now        func() time.Time // reloj para la fecha por defecto; nil = time.Now
}

// LedgerUseCase agrega, edita y elimina líneas del kardex de un producto.
// Todas las mutaciones siguen el mismo ciclo: cargar → calcular secuencia candidata →
// Reconcile sobre la secuencia completa → persistir logs y totales en una sola escritura condicionada
// a la revisión leída. Si la revisión cambió, se repite el ciclo completo.
type LedgerUseCase struct {
	repo       repository.ProductRepository
	maxRetries int
	now        func() time.Time
	log        zerolog.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(repo repository.ProductRepository, cfg LedgerConfig, log zerolog.Logger) *LedgerUseCase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &LedgerUseCase{repo: repo, maxRetries: retries, now: now, log: log}
}

// mutation recibe una copia de las líneas actuales y devuelve la secuencia candidata
// junto con la posición de la línea afectada (-1 si no aplica).
type mutation func(logs []entity.LedgerEntry) ([]entity.LedgerEntry, int, error)

// mutationResult estado persistido tras una mutación exitosa.
type mutationResult struct {
	product *entity.Product // leído en el ciclo que persistió
	snap    entity.LedgerSnapshot
	pos     int
}

// AppendLog agrega una línea al final del kardex y devuelve la línea con su saldo.
func (uc *LedgerUseCase) AppendLog(ctx context.Context, productID string, in dto.AppendLogRequest) (*dto.LedgerEntryResponse, error) {
	if err := validateType(in.Type); err != nil {
		return nil, err
	}
	if in.Quantity == nil {
		return nil, fmt.Errorf("%w: quantity debe ser un número positivo", domain.ErrInvalidInput)
	}
	if err := validateQuantity(*in.Quantity); err != nil {
		return nil, err
	}
	date := uc.now().UTC().Format(entity.DateLayout)
	if in.Date != "" {
		normalized, err := inventory.NormalizeDate(in.Date)
		if err != nil {
			return nil, err
		}
		date = normalized
	}
	newEntry := entity.LedgerEntry{
		ID:       uuid.New().String(),
		Date:     date,
		Type:     in.Type,
		Quantity: *in.Quantity,
		Remarks:  in.Remarks,
	}

	res, err := uc.mutate(ctx, productID, "append", func(logs []entity.LedgerEntry) ([]entity.LedgerEntry, int, error) {
		logs = append(logs, newEntry)
		return logs, len(logs) - 1, nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.LedgerEntryFromEntity(res.snap.Logs[res.pos], res.pos)
	return &out, nil
}

// EditLogAt reemplaza la línea en la posición index combinando patch con los valores actuales.
func (uc *LedgerUseCase) EditLogAt(ctx context.Context, productID string, index int, patch dto.EditLogRequest) (*dto.LedgerTotalsResponse, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: índice inválido", domain.ErrInvalidInput)
	}
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	res, err := uc.mutate(ctx, productID, "edit", func(logs []entity.LedgerEntry) ([]entity.LedgerEntry, int, error) {
		if index >= len(logs) {
			return nil, -1, fmt.Errorf("%w: no existe registro en el índice %d", domain.ErrInvalidInput, index)
		}
		merged, err := applyPatch(logs[index], patch)
		if err != nil {
			return nil, -1, err
		}
		logs[index] = merged
		return logs, index, nil
	})
	if err != nil {
		return nil, err
	}
	return totalsResponse(res), nil
}

// EditLog igual que EditLogAt, direccionando la línea por su ID estable.
func (uc *LedgerUseCase) EditLog(ctx context.Context, productID, entryID string, patch dto.EditLogRequest) (*dto.LedgerTotalsResponse, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	res, err := uc.mutate(ctx, productID, "edit", func(logs []entity.LedgerEntry) ([]entity.LedgerEntry, int, error) {
		index := indexOf(logs, entryID)
		if index < 0 {
			return nil, -1, fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, entryID)
		}
		merged, err := applyPatch(logs[index], patch)
		if err != nil {
			return nil, -1, err
		}
		logs[index] = merged
		return logs, index, nil
	})
	if err != nil {
		return nil, err
	}
	return totalsResponse(res), nil
}

// DeleteLogAt elimina la línea en la posición index y recalcula todo el kardex.
func (uc *LedgerUseCase) DeleteLogAt(ctx context.Context, productID string, index int) (*dto.LedgerTotalsResponse, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: índice inválido", domain.ErrInvalidInput)
	}
	res, err := uc.mutate(ctx, productID, "delete", func(logs []entity.LedgerEntry) ([]entity.LedgerEntry, int, error) {
		if index >= len(logs) {
			return nil, -1, fmt.Errorf("%w: no existe registro en el índice %d", domain.ErrInvalidInput, index)
		}
		return append(logs[:index], logs[index+1:]...), -1, nil
	})
	if err != nil {
		return nil, err
	}
	return totalsResponse(res), nil
}

// DeleteLog igual que DeleteLogAt, direccionando la línea por su ID estable.
func (uc *LedgerUseCase) DeleteLog(ctx context.Context, productID, entryID string) (*dto.LedgerTotalsResponse, error) {
	res, err := uc.mutate(ctx, productID, "delete", func(logs []entity.LedgerEntry) ([]entity.LedgerEntry, int, error) {
		index := indexOf(logs, entryID)
		if index < 0 {
			return nil, -1, fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, entryID)
		}
		return append(logs[:index], logs[index+1:]...), -1, nil
	})
	if err != nil {
		return nil, err
	}
	return totalsResponse(res), nil
}

// Reconcile recalcula saldos y totales del kardex almacenado sin cambiar sus líneas.
// Repara totales alterados fuera de banda; falla con saldo negativo si la secuencia guardada no es válida.
func (uc *LedgerUseCase) Reconcile(ctx context.Context, productID string) (*dto.ProductResponse, error) {
	res, err := uc.mutate(ctx, productID, "reconcile", func(logs []entity.LedgerEntry) ([]entity.LedgerEntry, int, error) {
		return logs, -1, nil
	})
	if err != nil {
		return nil, err
	}
	// Respuesta con el producto del ciclo que persistió, sin releer.
	product := res.product
	product.Logs = res.snap.Logs
	product.Stock, product.TotalIn, product.TotalOut = res.snap.Stock, res.snap.TotalIn, res.snap.TotalOut
	product.Revision++
	product.UpdatedAt = uc.now().UTC()
	return dto.ProductFromEntity(product), nil
}

func (uc *LedgerUseCase) mutate(ctx context.Context, productID, op string, fn mutation) (*mutationResult, error) {
	for attempt := 0; ; attempt++ {
		product, err := uc.repo.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
		}

		scratch := make([]entity.LedgerEntry, len(product.Logs))
		copy(scratch, product.Logs)
		assignMissingIDs(scratch)

		candidate, pos, err := fn(scratch)
		if err != nil {
			return nil, err
		}
		snap, err := inventory.Reconcile(candidate)
		if err != nil {
			return nil, err
		}

		err = uc.repo.SaveLedger(ctx, productID, product.Revision, snap)
		if err == nil {
			return &mutationResult{product: product, snap: snap, pos: pos}, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		if attempt >= uc.maxRetries {
			uc.log.Error().Str("product_id", productID).Str("op", op).Int("attempts", attempt+1).
				Msg("kardex: reintentos agotados por escrituras concurrentes")
			return nil, fmt.Errorf("%w: el producto fue modificado concurrentemente, intente de nuevo", domain.ErrConflict)
		}
		uc.log.Warn().Str("product_id", productID).Str("op", op).Int64("revision", product.Revision).
			Int("attempt", attempt+1).Msg("kardex: conflicto de revisión, reintentando")
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
}

func totalsResponse(res *mutationResult) *dto.LedgerTotalsResponse {
	out := &dto.LedgerTotalsResponse{
		OK:       true,
		Stock:    res.snap.Stock,
		TotalIn:  res.snap.TotalIn,
		TotalOut: res.snap.TotalOut,
	}
	if res.pos >= 0 {
		e := dto.LedgerEntryFromEntity(res.snap.Logs[res.pos], res.pos)
		out.Entry = &e
	}
	return out
}

func indexOf(logs []entity.LedgerEntry, entryID string) int {
	if entryID == "" {
		return -1
	}
	for i, l := range logs {
		if l.ID == entryID {
			return i
		}
	}
	return -1
}

// assignMissingIDs asigna ID a líneas cargadas sin él (datos previos o modificados fuera de banda).
func assignMissingIDs(logs []entity.LedgerEntry) {
	for i := range logs {
		if logs[i].ID == "" {
			logs[i].ID = uuid.New().String()
		}
	}
}
