package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidField is returned when an allow-listed field carries a value of the wrong type.
var ErrInvalidField = errors.New("invalid field value")

// FieldError reports which patched field was rejected and why. It matches ErrInvalidField.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v %q: %s", ErrInvalidField, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidField }

// Setter decodes a single JSON value into its field on dst.
type Setter[T any] func(dst *T, raw json.RawMessage) error

// Patchers maps JSON field names to typed setters.
type Patchers[T any] map[string]Setter[T]

// Apply invokes the setter of every allow-listed field present in fields.
// Keys outside the allow-list are ignored. dst is left untouched when any value is invalid.
func (p Patchers[T]) Apply(dst *T, fields map[string]json.RawMessage) error {
	next := *dst
	for key, set := range p {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := set(&next, raw); err != nil {
			return &FieldError{Field: key, Reason: err.Error()}
		}
	}
	*dst = next
	return nil
}

// Fields lists the allow-listed keys.
func (p Patchers[T]) Fields() []string {
	out := make([]string, 0, len(p))
	for k := range p {
		out = append(out, k)
	}
	return out
}

var jsonNull = []byte("null")

// decodeField unmarshals raw into dst. Errors are client-facing reasons, never decoder text.
func decodeField(raw json.RawMessage, dst any) error {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return errors.New("must not be null")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) {
			return errors.New("must be a " + ute.Type.String())
		}
		return errors.New("invalid value")
	}
	return nil
}

func decodeText(raw json.RawMessage, dst *string) error {
	var s string
	if err := decodeField(raw, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be empty")
	}
	*dst = s
	return nil
}
