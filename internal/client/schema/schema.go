// Package schema checks Cinescope JSON bodies against typed shapes.
//
// Validation runs in two passes. The shape pass walks the raw JSON against the
// Go type and reports missing fields and wrong primitive kinds. The body is
// then decoded as far as it goes and go-playground/validator checks formats.
// Both passes feed one report, so every violation is listed, not just the
// first. A field the shape pass already flagged is not reported again.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrViolation = errors.New("schema violation")

// Violation is one broken constraint. Field is a JSON path such as
// "user.email" or "movies[2].location".
type Violation struct {
	Field  string
	Rule   string
	Detail string
}

func (v Violation) String() string {
	field := v.Field
	if field == "" {
		field = "<root>"
	}
	return fmt.Sprintf("%s (%s): %s", field, v.Rule, v.Detail)
}

// Error lists every violation found while checking one body.
type Error struct {
	Schema     string
	Violations []Violation
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("schema %s: %d violation(s): %s", e.Schema, len(e.Violations), strings.Join(parts, "; "))
}

func (e *Error) Is(target error) bool { return target == ErrViolation }

// Fields returns the paths of all violated fields.
func (e *Error) Fields() []string {
	out := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		out[i] = v.Field
	}
	return out
}

// Decode checks body against T and returns the typed view.
func Decode[T any](body []byte) (T, error) {
	var out T
	typ := reflect.TypeOf(out)
	name := typeName(typ)

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return out, &Error{Schema: name, Violations: []Violation{{Rule: "json", Detail: err.Error()}}}
	}

	var violations []Violation
	checkShape(typ, raw, "", &violations)

	// encoding/json keeps going past type errors, so the fields that do fit
	// still reach the format pass.
	if err := json.Unmarshal(body, &out); err != nil {
		var te *json.UnmarshalTypeError
		if !errors.As(err, &te) || len(violations) == 0 {
			return out, &Error{Schema: name, Violations: []Violation{{Rule: "json", Detail: err.Error()}}}
		}
	}

	shaped := violations
	for _, v := range formatViolations(reflect.ValueOf(out), "") {
		if !covered(shaped, v.Field) {
			violations = append(violations, v)
		}
	}
	if len(violations) > 0 {
		return out, &Error{Schema: name, Violations: violations}
	}
	return out, nil
}

// Check runs the format constraints declared in v's validate tags. It is used
// for response views and for outgoing request payloads alike. Slices and
// arrays are checked element by element.
func Check(v any) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return &Error{Violations: []Violation{{Rule: "invalid", Detail: "nil value"}}}
	}
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return &Error{Schema: typeName(rv.Type().Elem()), Violations: []Violation{{Rule: "invalid", Detail: "nil pointer"}}}
	}

	violations := formatViolations(rv, "")
	if len(violations) == 0 {
		return nil
	}
	return &Error{Schema: typeName(reflect.Indirect(rv).Type()), Violations: violations}
}

func formatViolations(rv reflect.Value, path string) []Violation {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		err := validate.Struct(rv.Interface())
		if err == nil {
			return nil
		}
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return []Violation{{Field: path, Rule: "invalid", Detail: err.Error()}}
		}
		out := make([]Violation, 0, len(ve))
		for _, fe := range ve {
			out = append(out, Violation{
				Field:  join(path, fieldPath(fe.Namespace())),
				Rule:   fe.Tag(),
				Detail: describe(fe),
			})
		}
		return out
	case reflect.Slice, reflect.Array:
		var out []Violation
		for i := range rv.Len() {
			out = append(out, formatViolations(rv.Index(i), fmt.Sprintf("%s[%d]", path, i))...)
		}
		return out
	default:
		return nil
	}
}

// covered reports whether field sits at or below a path already in vs.
func covered(vs []Violation, field string) bool {
	for _, v := range vs {
		p := v.Field
		if p == "" || p == field ||
			strings.HasPrefix(field, p+".") || strings.HasPrefix(field, p+"[") {
			return true
		}
	}
	return false
}

func typeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func checkShape(t reflect.Type, v any, path string, out *[]Violation) {
	nullable := false
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
		nullable = true
	}
	if v == nil {
		if !nullable && t.Kind() != reflect.Interface {
			*out = append(*out, Violation{Field: path, Rule: "type", Detail: "expected " + kindName(t) + ", got null"})
		}
		return
	}

	mismatch := func() {
		*out = append(*out, Violation{Field: path, Rule: "type", Detail: fmt.Sprintf("expected %s, got %s", kindName(t), jsonKind(v))})
	}

	switch t.Kind() {
	case reflect.Struct:
		obj, ok := v.(map[string]any)
		if !ok {
			mismatch()
			return
		}
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, optional := jsonField(f)
			if name == "-" {
				continue
			}
			val, present := obj[name]
			if !present {
				if !optional && f.Type.Kind() != reflect.Pointer {
					*out = append(*out, Violation{Field: join(path, name), Rule: "required", Detail: "field is missing"})
				}
				continue
			}
			checkShape(f.Type, val, join(path, name), out)
		}
	case reflect.Slice, reflect.Array:
		arr, ok := v.([]any)
		if !ok {
			mismatch()
			return
		}
		for i, el := range arr {
			checkShape(t.Elem(), el, fmt.Sprintf("%s[%d]", path, i), out)
		}
	case reflect.Map:
		if _, ok := v.(map[string]any); !ok {
			mismatch()
		}
	case reflect.String:
		if _, ok := v.(string); !ok {
			mismatch()
		}
	case reflect.Bool:
		if _, ok := v.(bool); !ok {
			mismatch()
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := v.(float64)
		if !ok {
			mismatch()
			return
		}
		if n != math.Trunc(n) {
			*out = append(*out, Violation{Field: path, Rule: "integer", Detail: fmt.Sprintf("expected integer, got %v", n)})
		}
	case reflect.Float32, reflect.Float64:
		if _, ok := v.(float64); !ok {
			mismatch()
		}
	}
}

func jsonField(f reflect.StructField) (name string, optional bool) {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name, false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = f.Name
	}
	for _, p := range parts[1:] {
		if p == "omitempty" || p == "omitzero" {
			optional = true
		}
	}
	return name, optional
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func kindName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Interface:
		return "any"
	default:
		return "integer"
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	default:
		return "null"
	}
}
