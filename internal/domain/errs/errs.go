// Package errs define la taxonomía de errores compartida por los coordinadores y los gateways.
//
// Uso:
//
//	// en servicios
//	return errs.Validation("name is required")
//
//	// en handlers / CLI
//	if errors.Is(err, errs.ErrNotFound) { ... }
//	status := errs.HTTPStatus(err)
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrIntegrity  = errors.New("integrity error")
	ErrStorage    = errors.New("storage error")
)

// Code es la versión "máquina" del tipo de error (se expone en la API).
type Code string

const (
	CodeValidation Code = "VALIDATION"
	CodeNotFound   Code = "NOT_FOUND"
	CodeIntegrity  Code = "INTEGRITY"
	CodeStorage    Code = "STORAGE"
	CodeInternal   Code = "INTERNAL"
)

// Error es el error de dominio: un kind (sentinel), mensaje, detalles por campo y causa opcional.
type Error struct {
	Kind    error
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.Error()
	}
}

// Unwrap permite errors.Is contra el kind y contra la causa.
// Un error de integridad también es de validación (la operación se rechaza sin mutar nada).
func (e *Error) Unwrap() []error {
	out := []error{e.Kind}
	if e.Kind == ErrIntegrity {
		out = append(out, ErrValidation)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

func Validation(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationCause es Validation con un sentinel de causa (ej: pets.ErrDuplicateTag).
func ValidationCause(cause error, format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...), Err: cause}
}

func ValidationWithDetails(msg string, details map[string]string) error {
	return &Error{Kind: ErrValidation, Message: msg, Details: details}
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func Integrity(format string, args ...any) error {
	return &Error{Kind: ErrIntegrity, Message: fmt.Sprintf(format, args...)}
}

// Storage envuelve una falla del driver con la operación que la produjo.
// Si err ya es un error de dominio se devuelve tal cual (no se re-etiqueta).
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Kind: ErrStorage, Message: op, Err: err}
}

// CodeOf devuelve el Code del error (CodeInternal si no es de dominio).
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrIntegrity):
		return CodeIntegrity
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrStorage):
		return CodeStorage
	default:
		return CodeInternal
	}
}

// HTTPStatus mapea el kind a status HTTP.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeIntegrity:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// DetailsOf devuelve los detalles por campo si el error los tiene.
func DetailsOf(err error) map[string]string {
	var de *Error
	if errors.As(err, &de) {
		return de.Details
	}
	return nil
}
