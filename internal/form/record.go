// Package form holds the submitted record and its validation rules.
package form

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Field names as they appear in FieldErrors and JSON output.
const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldCity  = "city"
)

// Record is the data collected by the form.
type Record struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
	City  string `json:"city" validate:"required"`
}

// FieldErrors maps a field name to a human-readable message.
type FieldErrors map[string]string

// Has reports whether field has an error.
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// SubmitFunc receives a record that passed validation.
type SubmitFunc func(Record)

var requiredMessages = map[string]string{
	FieldName:  "name is required",
	FieldEmail: "email is required",
	FieldCity:  "city is required",
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Trimmed returns a copy of r with surrounding whitespace removed.
func (r Record) Trimmed() Record {
	return Record{
		Name:  strings.TrimSpace(r.Name),
		Email: strings.TrimSpace(r.Email),
		City:  strings.TrimSpace(r.City),
	}
}

// Validate checks that every field is present. Whitespace-only values count
// as missing. The result is nil when the record is complete.
func Validate(r Record) FieldErrors {
	err := validatorInstance().Struct(r.Trimmed())
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"": err.Error()}
	}
	errs := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		msg, ok := requiredMessages[field]
		if !ok {
			msg = field + " is invalid"
		}
		errs[field] = msg
	}
	return errs
}

// LogSubmitter reports submitted records to log.
func LogSubmitter(log *zap.Logger) SubmitFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(r Record) {
		log.Info("form submitted",
			zap.String(FieldName, r.Name),
			zap.String(FieldEmail, r.Email),
			zap.String(FieldCity, r.City),
		)
	}
}
