// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/json"
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/sharelink/internal/errors"
)

var (
	// emailRegex is a basic email validation pattern
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// fieldNameRegex matches template field names (identifier-like, 1..64 chars)
	fieldNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-]{0,63}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Email validates email format using regex
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// FieldName validates a template field name.
var FieldName = validation.NewStringRuleWithError(
	func(s string) bool {
		return fieldNameRegex.MatchString(s)
	},
	validation.NewError(
		"validation_field_name",
		"must start with a letter or underscore and contain only letters, digits, '_' or '-'",
	),
)

// JSONObject validates that a value is a JSON document whose top level is an object.
var JSONObject = validation.By(func(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case json.RawMessage:
		raw = v
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return validation.NewError("validation_json_type", "must be a JSON document")
	}
	if len(raw) == 0 {
		return nil // Let Required handle empty documents
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return validation.NewError("validation_json_object", "must be a JSON object")
	}
	return nil
})

// UniqueStrings validates that a string slice holds no duplicates.
var UniqueStrings = validation.By(func(value interface{}) error {
	items, ok := value.([]string)
	if !ok {
		return validation.NewError("validation_unique_type", "must be a list of strings")
	}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item]; dup {
			return validation.NewError("validation_unique", "must not contain duplicates")
		}
		seen[item] = struct{}{}
	}
	return nil
})
