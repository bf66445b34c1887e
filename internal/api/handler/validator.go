package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// Failures come back as *domain.ValidationError with one message per field.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("letterdigit", func(fl validator.FieldLevel) bool {
		var letter, digit bool
		for _, r := range fl.Field().String() {
			letter = letter || unicode.IsLetter(r)
			digit = digit || unicode.IsDigit(r)
		}
		return letter && digit
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return domain.Role(fl.Field().String()).Valid()
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return domain.NewValidationError(msgs)
		}
		return err
	}
	return nil
}

// fieldError converts a single FieldError into the message Cinescope reports.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	if strings.HasPrefix(field, "roles[") {
		field = "roles"
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Поле %s не может быть пустым", field)
	case "email":
		return fmt.Sprintf("Поле %s должно быть корректным email адресом", field)
	case "min":
		return fmt.Sprintf("Поле %s должно содержать не менее %s символов", field, fe.Param())
	case "max":
		return fmt.Sprintf("Поле %s должно содержать не более %s символов", field, fe.Param())
	case "letterdigit":
		return fmt.Sprintf("Поле %s должно содержать хотя бы одну букву и одну цифру", field)
	case "eqfield":
		return domain.MsgPasswordsMismatch
	case "role":
		return "Каждое значение в поле roles должно быть одним из значений: USER, ADMIN, SUPER_ADMIN"
	default:
		return fmt.Sprintf("Поле %s не прошло проверку (%s)", field, fe.Tag())
	}
}
