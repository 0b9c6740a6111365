// Package forms holds the signup and login form rules shared by the HTTP
// handlers and the CLI.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

// SignupForm mirrors the account creation form.
type SignupForm struct {
	Name            string `json:"name"             validate:"utf16min=2"`
	Email           string `json:"email"            validate:"email"`
	Password        string `json:"password"         validate:"utf16min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=Password"`
}

// LoginForm mirrors the sign-in form. Its password minimum is lower than the
// signup one.
type LoginForm struct {
	Email    string `json:"email"    validate:"email"`
	Password string `json:"password" validate:"utf16min=6"`
}

// messages maps json field name and tag to the text shown next to the field.
var messages = map[string]string{
	"name.utf16min":            "Name must be at least 2 characters",
	"email.email":              "Invalid email address",
	"password.utf16min":        "Password must be at least %s characters",
	"confirm_password.eqfield": "Passwords don't match",
}

// FieldErrors is returned when a form fails validation. Keys are json field
// names.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fe[k])
	}
	return strings.Join(msgs, "; ")
}

// Validator checks forms against their struct tags.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// cannot fail: the tag is not reserved and the func is non-nil
	_ = v.RegisterValidation("utf16min", utf16Min)
	return &Validator{v: v}
}

// utf16Min checks a string's length in UTF-16 code units, the unit browser
// form lengths are measured in. A character outside the BMP counts as two.
func utf16Min(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(utf16.Encode([]rune(fl.Field().String()))) >= n
}

// Validate returns FieldErrors for rule violations, or the validator's own
// error for anything that is not a struct.
func (fv *Validator) Validate(i any) error {
	err := fv.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := make(FieldErrors, len(ve))
	for _, fe := range ve {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	msg, ok := messages[fe.Field()+"."+fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
	if strings.Contains(msg, "%s") {
		return fmt.Sprintf(msg, fe.Param())
	}
	return msg
}
