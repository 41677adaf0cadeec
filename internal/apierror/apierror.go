// Package apierror holds the JSON envelopes returned on 4xx/5xx responses.
// Internal causes (driver errors, stack traces) never reach these structs.
package apierror

// Codes let clients branch without parsing Detail.
const (
	CodeValidacion     = "validacion"
	CodeNoEncontrado   = "no_encontrado"
	CodeConflicto      = "conflicto"
	CodeNoAutorizado   = "no_autorizado"
	CodeProhibido      = "prohibido"
	CodeLimiteExcedido = "limite_excedido"
	CodeInterno        = "error_interno"
)

// APIError is the canonical error envelope.
type APIError struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func New(code, msg string) *APIError {
	return &APIError{Code: code, Detail: msg}
}

// Interno is the generic 500 body.
func Interno() *APIError {
	return &APIError{Code: CodeInterno, Detail: "Error interno del servidor"}
}

// ValidationError lists the offending fields with the rule each one broke.
type ValidationError struct {
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Code: CodeValidacion, Detail: "Error de validación", Fields: fields}
}
