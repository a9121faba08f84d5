package common

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsValidID reports whether value is a canonical 24-character hex ObjectID.
// Only the lowercase form is canonical; stores compare ids as strings.
func IsValidID(value string) bool {
	if len(value) != 24 {
		return false
	}
	oid, err := primitive.ObjectIDFromHex(value)
	return err == nil && oid.Hex() == value
}

// NewID returns a fresh identifier in the same format the stores use.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// RequireIDs checks name/value pairs and fails on the first malformed id.
func RequireIDs(pairs ...string) error {
	if len(pairs)%2 != 0 {
		return fmt.Errorf("RequireIDs: odd number of arguments")
	}
	var bad []string
	for i := 0; i < len(pairs); i += 2 {
		if !IsValidID(pairs[i+1]) {
			bad = append(bad, pairs[i])
		}
	}
	if len(bad) == 0 {
		return nil
	}
	if len(bad) == 1 {
		return InvalidArgument("invalid %s format", bad[0])
	}
	return InvalidArgument("invalid %s format", strings.Join(bad, " or "))
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct runs struct tag validation and reports failures as a
// ValidationError with a readable message.
func ValidateStruct(s interface{}) error {
	if err := Validator().Struct(s); err != nil {
		return Validation("%s", FormatValidationError(err))
	}
	return nil
}

func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		messages := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			messages = append(messages, fieldErrorMessage(fe))
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "url":
		return fmt.Sprintf("%s must be a valid url", field)
	case "len":
		return fmt.Sprintf("%s must be %s characters", field, fe.Param())
	case "hexadecimal":
		return fmt.Sprintf("%s must be hexadecimal", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
