package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/odvcencio/persistui/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	subjectTokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// validatorInstance configures and returns the shared validator.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Bus subjects are dot separated, so prefix and name must be a
		// single wildcard-free token.
		_ = v.RegisterValidation("subject_token", func(fl validator.FieldLevel) bool {
			return subjectTokenPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("nats_url", func(fl validator.FieldLevel) bool {
			u, err := url.Parse(fl.Field().String())
			if err != nil || u.Host == "" {
				return false
			}
			switch strings.ToLower(u.Scheme) {
			case "nats", "tls", "ws", "wss":
				return true
			}
			return false
		})

		validateInst = v
	})
	return validateInst
}

// Validate checks the configuration and reports the first failing field.
func (c *Config) Validate() error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		fe := ves[0]
		field := yamlishFieldName(fe)
		return errors.New(errors.ErrCodeConfigInvalid, fmt.Sprintf("%s failed validation for tag '%s'", field, fe.Tag())).
			WithContext("field", field).
			WithContext("value", fe.Value())
	}
	return errors.Wrap(err, errors.ErrCodeConfigInvalid, "config validation")
}

// yamlishFieldName turns Config.UI.TickRate into ui.tick_rate.
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 0 && parts[0] == "Config" {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = snake(part)
	}
	return strings.Join(parts, ".")
}

func snake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 && !(runes[i-1] >= 'A' && runes[i-1] <= 'Z') {
			b.WriteByte('_')
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
