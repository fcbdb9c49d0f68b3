package services

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidator_CustomRules(t *testing.T) {
	type form struct {
		Day   string `json:"day" validate:"weekday"`
		Start string `json:"start" validate:"clock"`
	}
	v := NewValidator()

	assert.NoError(t, validateStruct(v, form{Day: "Tues", Start: "11:30"}))

	err := validateStruct(v, form{Day: "Funday", Start: "25:99"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"day":   validationMessages["weekday"],
		"start": validationMessages["clock"],
	}, verr.Fields)
}

func TestMustRegister_PanicsOnBadRule(t *testing.T) {
	v := validator.New()
	assert.Panics(t, func() { mustRegister(v, "", validateClock) })
	assert.Panics(t, func() { mustRegister(v, "clock", nil) })
	assert.NotPanics(t, func() { mustRegister(v, "clock", validateClock) })
}
