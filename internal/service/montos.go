package service

import (
	"github.com/HarryYanarico/my-proyect/internal/apperror"

	"github.com/shopspring/decimal"
)

// Money columns are decimal(12,2); PostgreSQL would round anything finer.
const decimalesMoneda = 2

// validarEscala rejects amounts with more than two decimals.
func validarEscala(op, campo string, montos ...decimal.Decimal) error {
	for _, m := range montos {
		if !m.Equal(m.Round(decimalesMoneda)) {
			return apperror.Validacion(op, campo+" admite como máximo 2 decimales")
		}
	}
	return nil
}
