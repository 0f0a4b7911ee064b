// Package validation wires go-playground/validator to the domain's input rules.
package validation

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"usersvc/config"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/domain/service"
	"usersvc/internal/errors"

	"github.com/go-playground/validator/v10"
)

const passwordTag = "password"

// Validator implements service.InputValidator and echo.Validator.
type Validator struct {
	validate *validator.Validate
}

var _ service.InputValidator = (*Validator)(nil)

// New builds a validator with the "password" rule driven by cfg.PasswordStrength.
func New(cfg *config.Config) (*Validator, error) {
	policy := config.PasswordStrengthConfig{MinLength: 1}
	if cfg != nil && cfg.PasswordStrength != nil {
		policy = *cfg.PasswordStrength
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	if err := v.RegisterValidation(passwordTag, passwordRule(policy)); err != nil {
		return nil, errors.Wrap(err, "register password rule")
	}

	return &Validator{validate: v}, nil
}

// NewInputValidator exposes New as a service.InputValidator for fx.
func NewInputValidator(v *Validator) service.InputValidator {
	return v
}

// Validate checks i against its struct tags. Any violation is reported as
// ErrInvalidData with one "field: rule" entry per failing field.
func (v *Validator) Validate(i any) error {
	if i == nil {
		return domainerrors.ErrInvalidData.WithDetails("payload is required")
	}

	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domainerrors.ErrInvalidData.WithDetails(err.Error())
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describe(fe))
	}

	return domainerrors.ErrInvalidData.WithDetails(strings.Join(messages, "; "))
}

// fieldName reports fields the way the API spells them: the json tag when
// present, otherwise the Go name in snake_case (FirstName -> first_name).
func fieldName(field reflect.StructField) string {
	if tag, _, _ := strings.Cut(field.Tag.Get("json"), ","); tag != "" && tag != "-" {
		return tag
	}

	var b strings.Builder
	for i, r := range field.Name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}

	return b.String()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + ": is required"
	case "email":
		return fe.Field() + ": must be a valid email address"
	case "max":
		return fe.Field() + ": must be at most " + fe.Param() + " characters"
	case "min":
		return fe.Field() + ": must be at least " + fe.Param() + " characters"
	case passwordTag:
		return fe.Field() + ": does not meet the password policy"
	default:
		return fe.Field() + ": failed " + fe.Tag()
	}
}

func passwordRule(policy config.PasswordStrengthConfig) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return meetsPolicy(fl.Field().String(), policy)
	}
}

func meetsPolicy(password string, policy config.PasswordStrengthConfig) bool {
	length := utf8.RuneCountInString(password)
	if length == 0 || length < policy.MinLength {
		return false
	}
	if policy.MaxLength > 0 && length > policy.MaxLength {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}

	switch {
	case policy.RequireUppercase && !upper:
		return false
	case policy.RequireLowercase && !lower:
		return false
	case policy.RequireNumbers && !digit:
		return false
	case policy.RequireSpecial && !special:
		return false
	}

	return true
}
