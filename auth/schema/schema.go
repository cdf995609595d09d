// Package schema validates claim and header maps before they are signed into a token.
package schema

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Kind is the expected type of a field value.
type Kind int

const (
	Any Kind = iota
	String
	Number
	Bool
	Object
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "boolean"
	case Object:
		return "object"
	default:
		return "any"
	}
}

// FieldError describes the first field of a value that failed validation.
type FieldError struct {
	Path    string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Field describes a single field of an Object.
type Field struct {
	Kind     Kind
	Required bool

	// NonEmpty rejects empty strings.
	NonEmpty bool

	// Object describes nested fields when Kind is Object.
	Object *Schema
}

// Schema describes a map of fields.
type Schema struct {
	Fields map[string]Field

	// Reserved fields must not appear in a value.
	Reserved []string

	// AllowUnknown accepts fields not listed in Fields.
	AllowUnknown bool
}

// Validate checks value against the schema and returns the first *FieldError found.
// Fields are checked in lexical order, so the result is deterministic.
func (s Schema) Validate(value map[string]any) error {
	return s.validate("", value)
}

func (s Schema) validate(prefix string, value map[string]any) error {
	for _, name := range s.Reserved {
		if _, ok := value[name]; ok {
			return &FieldError{Path: join(prefix, name), Message: "is a reserved claim"}
		}
	}

	for _, name := range sortedKeys(value) {
		if _, ok := s.Fields[name]; !ok && !s.AllowUnknown {
			return &FieldError{Path: join(prefix, name), Message: "is not an allowed field"}
		}
	}

	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field := s.Fields[name]
		path := join(prefix, name)

		v, ok := value[name]
		if !ok || v == nil {
			if field.Required {
				return &FieldError{Path: path, Message: fmt.Sprintf("expected a value of type %s, but received nothing", field.Kind)}
			}

			continue
		}

		if err := field.validate(path, v); err != nil {
			return err
		}
	}

	return nil
}

func (f Field) validate(path string, v any) error {
	switch f.Kind {
	case String:
		s, ok := v.(string)
		if !ok {
			return mismatch(path, f.Kind, v)
		}

		if f.NonEmpty && s == "" {
			return &FieldError{Path: path, Message: "must be a non-empty string"}
		}

	case Number:
		if !isNumber(v) {
			return mismatch(path, f.Kind, v)
		}

	case Bool:
		if _, ok := v.(bool); !ok {
			return mismatch(path, f.Kind, v)
		}

	case Object:
		m, ok := v.(map[string]any)
		if !ok {
			return mismatch(path, f.Kind, v)
		}

		if f.Object != nil {
			return f.Object.validate(path, m)
		}
	}

	return nil
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return true
	default:
		return false
	}
}

func mismatch(path string, kind Kind, v any) error {
	return &FieldError{Path: path, Message: fmt.Sprintf("expected a value of type %s, but received %#v", kind, v)}
}

func join(prefix string, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "." + name
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
