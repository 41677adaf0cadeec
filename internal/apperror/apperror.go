// Package apperror defines the failure kinds shared by the ledger services.
// Handlers translate kinds into HTTP statuses; callers match with errors.Is.
package apperror

import (
	"errors"
	"fmt"
)

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validacion")

// ErrNotFound indicates that a referenced record does not exist.
var ErrNotFound = errors.New("no encontrado")

// ErrConflict indicates a state or locking conflict: parcel no longer
// available, lock wait timeout, serialization failure or deadlock.
var ErrConflict = errors.New("conflicto")

// ErrInconsistencia indicates that persisted data violates a ledger invariant,
// e.g. reversing a payment would leave an installment with a negative balance.
var ErrInconsistencia = errors.New("inconsistencia interna")

// Error carries the operation that failed plus a client-facing message.
type Error struct {
	Op   string // e.g. "pago.revertir"
	Kind error  // one of the sentinel kinds above
	Msg  string
	Err  error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// Unwrap exposes the cause so errors.As can reach driver errors.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the kind of this error.
func (e *Error) Is(target error) bool { return e.Kind == target }

func Validacion(op, msg string) error {
	return &Error{Op: op, Kind: ErrValidation, Msg: msg}
}

func NoEncontrado(op, msg string) error {
	return &Error{Op: op, Kind: ErrNotFound, Msg: msg}
}

func Conflicto(op, msg string, cause error) error {
	return &Error{Op: op, Kind: ErrConflict, Msg: msg, Err: cause}
}

func Inconsistencia(op, msg string) error {
	return &Error{Op: op, Kind: ErrInconsistencia, Msg: msg}
}

// Mensaje returns the client-facing message of err. Errors that are not an
// *Error yield an empty string; callers must not leak their text.
func Mensaje(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return ""
}
