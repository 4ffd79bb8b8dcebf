// Package contract mediates between raw client payloads and persisted
// records: per-entity write contracts with field coercion and validation,
// ownership injection on create, and nested read-only projections.
package contract

import (
	"sort"
	"strings"
)

type Code string

const (
	CodeInvalidFormat     Code = "invalid_format"
	CodeOutOfRange        Code = "out_of_range"
	CodeReferenceNotFound Code = "reference_not_found"
)

type FieldError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// ValidationErrors collects every field failure of a single submission so
// the client gets all of them in one round trip. It implements error.
type ValidationErrors map[string][]FieldError

func (v ValidationErrors) Add(field string, code Code, message string) {
	v[field] = append(v[field], FieldError{Code: code, Message: message})
}

func (v ValidationErrors) Merge(other ValidationErrors) {
	for field, errs := range other {
		v[field] = append(v[field], errs...)
	}
}

func (v ValidationErrors) Empty() bool {
	return len(v) == 0
}

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}
