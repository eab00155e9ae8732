package httpapi

import (
	"errors"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// validate is package-local so the custom password rule does not leak into
// gin's global binding engine.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("strongpw", strongPassword); err != nil {
		panic(err)
	}
	return v
}

// strongPassword requires at least one upper, one lower, one digit and one
// special character. Length is enforced separately via min=8.
func strongPassword(fl validator.FieldLevel) bool {
	var upper, lower, digit, special bool
	for _, r := range fl.Field().String() {
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
	return upper && lower && digit && special
}

// fieldErrors flattens validator output into a field -> message map for
// 400 responses.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["body"] = "invalid request"
		return out
	}

	for _, fe := range verrs {
		switch fe.Field() {
		case "Name":
			out["name"] = "name must be at least 2 characters"
		case "Email":
			out["email"] = "a valid email address is required"
		case "Password":
			if fe.Tag() == "min" || fe.Tag() == "required" {
				out["password"] = "password must be at least 8 characters"
			} else {
				out["password"] = "password needs upper, lower, digit and special characters"
			}
		case "Role":
			out["role"] = "role must be DEVELOPER or PROJECT_MANAGER"
		default:
			out[fe.Field()] = "invalid value"
		}
	}
	return out
}
