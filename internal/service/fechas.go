package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/HarryYanarico/my-proyect/internal/apperror"

	"gorm.io/gorm"
)

const formatoFecha = "2006-01-02"

// Reloj supplies the current instant in the business time zone. Calendar
// dates (fecha_venta, fecha_venc, ...) are stored as UTC midnight.
type Reloj struct {
	Loc *time.Location
	Now func() time.Time
}

func NewReloj(loc *time.Location) Reloj {
	return Reloj{Loc: loc, Now: time.Now}
}

func (r Reloj) Ahora() time.Time {
	now := r.Now
	if now == nil {
		now = time.Now
	}
	loc := r.Loc
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

// Hoy returns today's calendar date as UTC midnight.
func (r Reloj) Hoy() time.Time {
	return soloFecha(r.Ahora())
}

func soloFecha(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseFecha accepts YYYY-MM-DD or RFC 3339 and keeps only the calendar date.
func parseFecha(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(formatoFecha, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q: formato esperado YYYY-MM-DD", s)
	}
	if loc != nil {
		t = t.In(loc)
	}
	return soloFecha(t), nil
}

func formatearFecha(t time.Time) string { return t.Format(formatoFecha) }

// noEncontrado turns gorm.ErrRecordNotFound into apperror.ErrNotFound and
// wraps anything else with the operation name.
func noEncontrado(op string, err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NoEncontrado(op, msg)
	}
	return fmt.Errorf("%s: %w", op, err)
}
