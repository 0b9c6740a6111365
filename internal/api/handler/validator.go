package handler

import (
	"github.com/gotrek/gotrek/internal/core/forms"
)

// echoValidator adapts forms.Validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *forms.Validator
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: forms.NewValidator()}
}

// Validate satisfies the echo.Validator interface. Rule violations come back
// as forms.FieldErrors for the error handler to render per field.
func (ev *echoValidator) Validate(i any) error {
	return ev.v.Validate(i)
}
