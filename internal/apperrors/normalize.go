package apperrors

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Client-facing messages shared by controllers and the error handler.
const (
	MsgRecordNotFound      = "Registro no encontrado"
	MsgDuplicateValue      = "Valor duplicado"
	MsgInvalidReference    = "Dato de referencia inválido"
	MsgInvalidQuery        = "Error en la solicitud"
	MsgInvalidJSON         = "JSON inválido"
	MsgValidationFailed    = "Validación fallida"
	MsgDatabaseUnavailable = "Base de datos no disponible"
	MsgInternal            = "Error interno del servidor"
	MsgRouteNotFound       = "Recurso no encontrado"
)

// Normalize maps any error produced while serving a request onto the
// HTTP taxonomy. Unknown errors become a 500 that is not exposed.
func Normalize(err error) *HTTPError {
	if err == nil {
		return nil
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return validationError(validationErrs).Wrap(err)
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(MsgRecordNotFound).Wrap(err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict(MsgDuplicateValue, nil).Wrap(err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return UnprocessableEntity(MsgInvalidReference, nil).Wrap(err)
	case errors.Is(err, gorm.ErrInvalidField):
		return BadRequest(MsgInvalidQuery, nil).Wrap(err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return postgresError(pqErr)
	}

	if e := constraintError(err); e != nil {
		return e
	}

	if isConnectionError(err) {
		return ServiceUnavailable(MsgDatabaseUnavailable, Details{
			"reason": "No se puede conectar al servidor de base de datos",
		}).Wrap(err)
	}

	e := Internal(MsgInternal)
	if msg := err.Error(); msg != "" {
		e.Message = msg
	}
	return e.Wrap(err)
}

// Binding maps a request-body binding failure. Anything that is not a
// validation or JSON syntax/type error is reported as unreadable JSON.
func Binding(err error) *HTTPError {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return validationError(validationErrs).Wrap(err)
	}
	if e := decodeError(err); e != nil {
		return e
	}
	return BadRequest(MsgInvalidJSON, nil).Wrap(err)
}

func decodeError(err error) *HTTPError {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		return BadRequest(MsgInvalidJSON, Details{"offset": syntaxErr.Offset}).Wrap(err)
	case errors.As(err, &typeErr):
		return BadRequest(MsgInvalidJSON, Details{"field": typeErr.Field, "expected": typeErr.Type.String()}).Wrap(err)
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return BadRequest(MsgInvalidJSON, Details{"body": "vacío o incompleto"}).Wrap(err)
	}
	return nil
}

func postgresError(pqErr *pq.Error) *HTTPError {
	details := Details{"code": string(pqErr.Code)}
	if pqErr.Constraint != "" {
		details["target"] = pqErr.Constraint
	}

	switch pqErr.Code {
	case "23505": // unique_violation
		return Conflict(MsgDuplicateValue, details).Wrap(pqErr)
	case "23503": // foreign_key_violation
		return UnprocessableEntity(MsgInvalidReference, details).Wrap(pqErr)
	}

	switch pqErr.Code.Class() {
	case "08", "57": // connection exception, operator intervention
		return ServiceUnavailable(MsgDatabaseUnavailable, details).Wrap(pqErr)
	case "22", "23", "42":
		details["message"] = pqErr.Message
		return BadRequest(MsgInvalidQuery, details).Wrap(pqErr)
	}
	return Internal(MsgInternal).Wrap(pqErr)
}

// constraintError recognises constraint failures from drivers whose errors
// gorm does not translate.
func constraintError(err error) *HTTPError {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unique constraint"), strings.Contains(msg, "duplicate key"):
		return Conflict(MsgDuplicateValue, nil).Wrap(err)
	case strings.Contains(msg, "foreign key constraint"):
		return UnprocessableEntity(MsgInvalidReference, nil).Wrap(err)
	}
	return nil
}

// isConnectionError also covers a connection dropped mid-response, which
// lib/pq reports as an unexpected EOF.
func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "database is closed")
}

func validationError(errs validator.ValidationErrors) *HTTPError {
	fields := Details{}
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields[fe.Field()] = fe.Tag()
		msgs = append(msgs, fieldMessage(fe))
	}
	return BadRequest(strings.Join(msgs, "; "), Details{"fields": fields})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("el campo '%s' es requerido", fe.Field())
	case "email":
		return fmt.Sprintf("el campo '%s' debe ser un email válido", fe.Field())
	case "min":
		return fmt.Sprintf("el campo '%s' debe tener al menos %s caracteres", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("el campo '%s' admite como máximo %s caracteres", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("el campo '%s' debe tener %s caracteres", fe.Field(), fe.Param())
	case "latitude", "longitude":
		return fmt.Sprintf("el campo '%s' debe ser una coordenada válida", fe.Field())
	default:
		return fmt.Sprintf("el campo '%s' no es válido (%s)", fe.Field(), fe.Tag())
	}
}
