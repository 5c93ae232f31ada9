// Package apperr define la taxonomía de errores que cruza dominio y HTTP.
package apperr

import (
	"errors"
	"net/http"
	"strings"
)

type Kind string

const (
	KindParse        Kind = "parse_error"
	KindValidation   Kind = "validation_error"
	KindStoreWrite   Kind = "store_write_error"
	KindStoreRead    Kind = "store_read_error"
	KindOracle       Kind = "oracle_error"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindRateLimited  Kind = "rate_limited"
	KindInternal     Kind = "internal_error"
)

// Sentinels para errors.Is: comparan solo por Kind.
var (
	ErrParse        = &Error{Kind: KindParse}
	ErrValidation   = &Error{Kind: KindValidation}
	ErrStoreWrite   = &Error{Kind: KindStoreWrite}
	ErrStoreRead    = &Error{Kind: KindStoreRead}
	ErrOracle       = &Error{Kind: KindOracle}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrRateLimited  = &Error{Kind: KindRateLimited}
)

type Error struct {
	Kind Kind
	Op   string // ej: "journal.Submit"
	Msg  string // texto visible para el usuario
	Err  error
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}
	sb.WriteString(string(e.Kind))
	if e.Msg != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Msg)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Msg == "" && t.Err == nil
}

func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func WrapMsg(kind Kind, op, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

func Validation(op, msg string) *Error {
	return New(KindValidation, op, msg)
}

// KindOf devuelve el Kind más externo de la cadena, o KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message devuelve el texto visible para el usuario.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	switch KindOf(err) {
	case KindParse:
		return "invalid json"
	case KindValidation:
		return "invalid input"
	case KindStoreWrite:
		return "could not save your data, please try again"
	case KindStoreRead:
		return "could not load your data, please try again"
	case KindOracle:
		return "could not generate a supportive comment"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindRateLimited:
		return "too many requests"
	default:
		return "internal error"
	}
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindParse, KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindOracle:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
