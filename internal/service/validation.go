package service

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)

const (
	msgFillAllFields   = "Please fill in all fields"
	msgInvalidEmail    = "Invalid email"
	msgInvalidUsername = "Username must be between 3 and 30 characters"
	msgWeakPassword    = "Password must be at least 8 characters w/at least one number, one special character, and one uppercase letter"
)

// maxPasswordBytes is the longest input bcrypt will hash.
const maxPasswordBytes = 72

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		password := fl.Field().String()
		return len(password) <= maxPasswordBytes && IsStrongPassword(password)
	})
	return v
}

// IsStrongPassword requires 8+ characters with at least one digit, one
// uppercase letter and one special character.
func IsStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasDigit, hasUpper, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	return hasDigit && hasUpper && hasSpecial
}

type registration struct {
	Username string `validate:"required,min=3,max=30"`
	Email    string `validate:"required,emailaddr"`
	Password string `validate:"required,max=72,password"`
}

// validateRegistration reports the first failing rule, missing fields first.
func validateRegistration(r registration) error {
	if strings.TrimSpace(r.Username) == "" || r.Email == "" || r.Password == "" {
		return &ValidationError{Message: msgFillAllFields}
	}

	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	switch fieldErrs[0].Field() {
	case "Username":
		return &ValidationError{Message: msgInvalidUsername}
	case "Email":
		return &ValidationError{Message: msgInvalidEmail}
	default:
		return &ValidationError{Message: msgWeakPassword}
	}
}
