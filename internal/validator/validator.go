package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinebook/internal/domain"
)

const (
	minNameLength = 2

	ErrDefaultInvalid = "is invalid"
	ErrRequired       = "is required"
	ErrMinValue       = "must be at least %s"
	ErrMaxValue       = "must be at most %s"

	ErrNameInvalid  = "Name must be at least 2 characters"
	ErrEmailInvalid = "Please enter a valid email address"
	ErrPhoneInvalid = "Please enter a valid phone number"
)

const (
	tagName  = "cinema_name"
	tagEmail = "cinema_email"
	tagPhone = "cinema_phone"
)

// space matches what browsers treat as whitespace in patterns and trim():
// ASCII spaces, vertical tab, every Unicode separator and the BOM.
const space = `\s\v\p{Z}\x{FEFF}`

var (
	emailRgx = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)
	phoneRgx = regexp.MustCompile(`^[\d` + space + `\-+()]{10,}$`)
)

var fieldTags = map[domain.ContactField]string{
	domain.FieldName:  tagName,
	domain.FieldEmail: tagEmail,
	domain.FieldPhone: tagPhone,
}

var fieldMessages = map[domain.ContactField]string{
	domain.FieldName:  ErrNameInvalid,
	domain.FieldEmail: ErrEmailInvalid,
	domain.FieldPhone: ErrPhoneInvalid,
}

// validate checks contact details through the cinema_* tags on
// domain.Contact.
var validate = NewValidator()

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation(tagName, validateName)
	validator.RegisterValidation(tagEmail, validateEmail)
	validator.RegisterValidation(tagPhone, validatePhone)

	return validator
}

func validateName(fl validator.FieldLevel) bool {
	return IsValidName(fl.Field().String())
}

func validateEmail(fl validator.FieldLevel) bool {
	return IsValidEmail(fl.Field().String())
}

func validatePhone(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

func isSpace(r rune) bool {
	return r == '\t' || r == '\n' || r == '\v' || r == '\f' || r == '\r' ||
		r == '\uFEFF' || unicode.Is(unicode.Z, r)
}

// Trim strips leading and trailing whitespace, including Unicode spaces.
func Trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func IsValidName(name string) bool {
	return utf8.RuneCountInString(Trim(name)) >= minNameLength
}

func IsValidEmail(email string) bool {
	return emailRgx.MatchString(Trim(email))
}

func IsValidPhone(phone string) bool {
	return phoneRgx.MatchString(Trim(phone))
}

// Field checks a single contact field and returns the inline error text for
// it. The text is empty when the value is valid.
func Field(field domain.ContactField, value string) (bool, string, error) {
	tag, ok := fieldTags[field]
	if !ok {
		return false, "", fmt.Errorf("%w: %q", domain.ErrUnknownField, field)
	}

	err := validate.Var(value, tag)
	if err == nil {
		return true, "", nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return false, "", err
	}

	return false, fieldMessages[field], nil
}

// ContactValid reports whether every contact field passes its check.
func ContactValid(c domain.Contact) bool {
	return validate.Struct(c) == nil
}

// FormValid is the gate for enabling submission: valid contact details and
// at least one selected seat.
func FormValid(c domain.Contact, seatCount int) bool {
	return ContactValid(c) && seatCount >= 1
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min", "gte":
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max", "lte":
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case tagName:
		return ErrNameInvalid
	case tagEmail:
		return ErrEmailInvalid
	case tagPhone:
		return ErrPhoneInvalid
	default:
		return ErrDefaultInvalid
	}
}
