package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/theirongolddev/bliss/internal/budget"
)

// ErrInvalid is matched by every config validation failure.
var ErrInvalid = errors.New("invalid config")

var (
	validate = validator.New()
	nonSpace = regexp.MustCompile(`\S`)
)

func init() {
	// notblank: string is not empty or whitespace-only.
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return nonSpace.MatchString(fl.Field().String())
	})
	// amount: a non-negative finite decimal.
	_ = validate.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		_, err := budget.ParseAmount("amount", fl.Field().String())
		return err == nil
	})
}

// Validate checks cfg field constraints and reports every violation.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// Sanitize resets every field of cfg that fails validation to its default
// and returns the result together with the validation error, if any.
func Sanitize(cfg Config) (Config, error) {
	err := validate.Struct(cfg)
	if err == nil {
		return cfg, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return cfg, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	dst := reflect.ValueOf(&cfg).Elem()
	def := reflect.ValueOf(DefaultConfig())
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
		resetField(dst, def, fe.StructNamespace())
	}
	return cfg, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// resetField copies the field at namespace ("Config.General.DefaultCategories[1]")
// from def into dst. Element errors reset the whole slice.
func resetField(dst, def reflect.Value, namespace string) {
	parts := strings.Split(namespace, ".")
	for _, p := range parts[1:] {
		if i := strings.IndexByte(p, '['); i >= 0 {
			p = p[:i]
		}
		dst = dst.FieldByName(p)
		def = def.FieldByName(p)
		if !dst.IsValid() || !def.IsValid() {
			return
		}
	}
	if dst.CanSet() {
		dst.Set(def)
	}
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	case "unique":
		return fmt.Sprintf("%s must not repeat entries", field)
	case "amount":
		return fmt.Sprintf("%s must be a non-negative number, got %q", field, fe.Value())
	case "min", "max":
		return fmt.Sprintf("%s must be %s %s", field, map[string]string{"min": ">=", "max": "<="}[fe.Tag()], fe.Param())
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}
