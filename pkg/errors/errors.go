// Package errors is the error taxonomy shared by every core component.
// Repositories and services translate store and driver failures into one
// of these codes at their boundary; callers branch on Code, not on text.
package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeDuplicateKey       Code = "DUPLICATE_KEY"
	CodeNotFound           Code = "NOT_FOUND"
	CodeReferenced         Code = "REFERENCED"
	CodeValidation         Code = "VALIDATION"
	CodeAuthentication     Code = "AUTHENTICATION"
	CodeForbidden          Code = "FORBIDDEN"
	CodeStorage            Code = "STORAGE"
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
)

// Metadata describes how the presentation layer should treat a code.
type Metadata struct {
	Recoverable   bool
	PublicMessage string
}

var metadataByCode = map[Code]Metadata{
	CodeDuplicateKey:       {Recoverable: true, PublicMessage: "already exists"},
	CodeNotFound:           {Recoverable: true, PublicMessage: "not found"},
	CodeReferenced:         {Recoverable: true, PublicMessage: "still referenced by other records"},
	CodeValidation:         {Recoverable: true, PublicMessage: "invalid value"},
	CodeAuthentication:     {Recoverable: true, PublicMessage: "invalid username or password"},
	CodeForbidden:          {Recoverable: true, PublicMessage: "not allowed"},
	CodeStorage:            {Recoverable: false, PublicMessage: "storage error"},
	CodeStorageUnavailable: {Recoverable: false, PublicMessage: "storage unavailable"},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeStorage]
}

type Error struct {
	code    Code
	message string
	field   string
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

// WithField names the column or input field the error is about, e.g. the
// unique column a DUPLICATE_KEY violated.
func (e *Error) WithField(field string) *Error {
	if e == nil {
		return nil
	}
	e.field = field
	return e
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeStorage
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Field() string {
	if e == nil {
		return ""
	}
	return e.field
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.code, e.message, e.field)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is matches another *Error by code, so sentinel values work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.code == t.code
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.code == code
}
