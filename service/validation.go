package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"dealtown/filter"
)

var validationMessages = map[string]string{
	"required":   "is required",
	"max":        "must be at most %s",
	"min":        "must be at least %s",
	"oneof":      "must be one of: %s",
	"email":      "must be a valid email address",
	"url":        "must be a valid URL",
	"weekday":    "must be a day name such as Mon or Tuesday",
	"clock":      "must be a time in HH:MM format",
	"startswith": "must start with %s",
}

// ValidationError lists the offending fields by their JSON name.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + " " + e.Fields[name]
	}
	return strings.Join(parts, ", ")
}

// NewValidator returns a validator with the "weekday" and "clock" rules and
// JSON field names in errors. It panics if a rule fails to register.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "weekday", validateWeekday)
	mustRegister(v, "clock", validateClock)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

func validateWeekday(fl validator.FieldLevel) bool {
	_, ok := filter.NormalizeDay(fl.Field().String(), filter.SchemeName)
	return ok
}

func validateClock(fl validator.FieldLevel) bool {
	_, ok := filter.ParseTimeOfDay(fl.Field().String())
	return ok
}

// validateStruct converts validator errors into a *ValidationError.
func validateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		msg, ok := validationMessages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		if strings.Contains(msg, "%s") {
			msg = strings.Replace(msg, "%s", fe.Param(), 1)
		}
		name := fe.Field()
		// dive errors are reported as days[2]
		if _, taken := out.Fields[name]; !taken {
			out.Fields[name] = msg
		}
	}
	return out
}
