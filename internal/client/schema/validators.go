package schema

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

// EmailPattern is the address format Cinescope accepts.
var EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _ := jsonField(f)
		if name == "-" {
			return ""
		}
		return name
	})

	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("schema: register %s: %v", tag, err))
		}
	}
	must("cinemail", func(fl validator.FieldLevel) bool {
		return EmailPattern.MatchString(fl.Field().String())
	})
	must("iso8601", func(fl validator.FieldLevel) bool {
		_, err := ParseTimestamp(fl.Field().String())
		return err == nil
	})
	must("role", func(fl validator.FieldLevel) bool {
		return domain.Role(fl.Field().String()).Valid()
	})
	must("location", func(fl validator.FieldLevel) bool {
		return domain.Location(fl.Field().String()).Valid()
	})
	must("letterdigit", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return strings.ContainsFunc(s, isLetter) && strings.ContainsFunc(s, isDigit)
	})
	return v
}

// ParseTimestamp accepts the ISO-8601 forms Cinescope emits.
func ParseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func isLetter(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "cinemail", "email":
		return fmt.Sprintf("%q is not a valid email", fe.Value())
	case "iso8601":
		return fmt.Sprintf("%q is not an ISO-8601 timestamp", fe.Value())
	case "role":
		return fmt.Sprintf("%q is not one of %v", fe.Value(), domain.AllRoles)
	case "location":
		return fmt.Sprintf("%q is not one of %v", fe.Value(), domain.AllLocations)
	case "uuid", "uuid4":
		return fmt.Sprintf("%q is not a UUID", fe.Value())
	case "letterdigit":
		return "must contain a letter and a digit"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "eqfield":
		return fmt.Sprintf("must equal %s", fe.Param())
	case "contains":
		return fmt.Sprintf("must contain %q", fe.Param())
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
