package validation

import (
	"regexp"

	validatorv10 "github.com/go-playground/validator/v10"
)

var (
	phoneRe   = regexp.MustCompile(`^(\+?91)?[0-9]{10}$`)
	pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)
	otpRe     = regexp.MustCompile(`^[0-9]{6}$`)
)

// New returns a validator with the storefront tags registered:
//
//	phone10  ten digit mobile number, optionally prefixed with 91 or +91
//	pincode  six digit postal code
//	otpcode  six digit one-time code
func New() *validatorv10.Validate {
	v := validatorv10.New()

	_ = v.RegisterValidation("phone10", func(fl validatorv10.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("pincode", func(fl validatorv10.FieldLevel) bool {
		return pincodeRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("otpcode", func(fl validatorv10.FieldLevel) bool {
		return otpRe.MatchString(fl.Field().String())
	})

	return v
}
