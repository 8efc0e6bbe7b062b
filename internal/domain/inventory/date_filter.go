package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// DateRange rango inclusivo de fechas de kardex. Un extremo nil no limita.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IsZero indica si el rango no tiene límites.
func (r DateRange) IsZero() bool { return r.From == nil && r.To == nil }

// ParseDate interpreta YYYY-MM-DD o RFC3339 y devuelve el día en UTC (00:00).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(entity.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q inválida, use YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// NormalizeDate devuelve s en formato YYYY-MM-DD.
func NormalizeDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(entity.DateLayout), nil
}

// parseBound interpreta un extremo del rango. YYYY-MM-DD es el inicio del día en UTC;
// RFC3339 conserva la hora y se compara como instante.
func parseBound(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(entity.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q inválida, use YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	return t.UTC(), nil
}

// ParseDateRange construye el rango a partir de los parámetros from/to (vacíos = sin límite).
// Cada línea vale como el instante 00:00 UTC de su fecha.
func ParseDateRange(from, to string) (DateRange, error) {
	var r DateRange
	if from != "" {
		t, err := parseBound(from)
		if err != nil {
			return DateRange{}, err
		}
		r.From = &t
	}
	if to != "" {
		t, err := parseBound(to)
		if err != nil {
			return DateRange{}, err
		}
		r.To = &t
	}
	return r, nil
}

// Contains indica si la fecha de una línea cae dentro del rango (inclusivo).
// Con rango acotado, las líneas sin fecha interpretable quedan fuera.
func (r DateRange) Contains(date string) bool {
	if r.IsZero() {
		return true
	}
	t, err := ParseDate(date)
	if err != nil {
		return false
	}
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// FilterByDate devuelve las líneas cuya fecha cae dentro del rango, conservando el orden.
func FilterByDate(logs []entity.LedgerEntry, r DateRange) []entity.LedgerEntry {
	if r.IsZero() {
		return logs
	}
	out := make([]entity.LedgerEntry, 0, len(logs))
	for _, l := range logs {
		if r.Contains(l.Date) {
			out = append(out, l)
		}
	}
	return out
}
