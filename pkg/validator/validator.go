// pkg/validator/validator.go
package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// FieldError is one failed rule, keyed by the client-facing field path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func init() {
	validate = validator.New()

	// use the json/form/uri tag name as the field name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form", "uri"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	registerCustomValidators()
}

func registerCustomValidators() {
	validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	// at least one lowercase letter, one uppercase letter and one digit
	validate.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		var lower, upper, digit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLower(r):
				lower = true
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return lower && upper && digit
	})

	validate.RegisterValidation("role", oneOf("USER", "ADMIN", "SUPER_ADMIN", "CONTENT_MANAGER", "MODERATOR"))
	validate.RegisterValidation("quotestatus", oneOf("DRAFT", "REVIEW", "PUBLISHED", "ARCHIVED"))
	validate.RegisterValidation("assettype", oneOf("BACKGROUND_IMAGE", "BACKGROUND_GRADIENT", "FONT", "TEXTURE"))
}

func oneOf(values ...string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		for _, allowed := range values {
			if v == allowed {
				return true
			}
		}
		return false
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func GetValidator() *validator.Validate {
	return validate
}

// Translate turns a validation error into field-level messages. Errors that
// are not validator.ValidationErrors produce a single entry under fallback.
func Translate(err error, fallback string) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{decodeError(err, fallback)}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(fe), Message: message(fe)})
	}
	return out
}

// decodeError describes a binding failure without exposing Go type names.
func decodeError(err error, fallback string) FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = fallback
		}
		return FieldError{Field: field, Message: "must be " + kindName(typeErr.Type)}
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		if numErr.Func == "ParseBool" {
			return FieldError{Field: fallback, Message: "must be a boolean"}
		}
		return FieldError{Field: fallback, Message: "must be a number"}
	}
	return FieldError{Field: fallback, Message: "is invalid"}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.Ptr:
		return kindName(t.Elem())
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	}
	return "a valid value"
}

// fieldPath drops the top-level struct name: "QuoteBulkCreateRequest.quotes[0].textBn" -> "quotes[0].textBn".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid id"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "eqfield":
		return fmt.Sprintf("must match %s", lowerFirst(fe.Param()))
	case "slug":
		return "must contain only lowercase letters, numbers and hyphens"
	case "strongpassword":
		return "must contain at least one uppercase letter, one lowercase letter and one number"
	case "role":
		return "must be a valid role"
	case "quotestatus":
		return "must be one of: DRAFT REVIEW PUBLISHED ARCHIVED"
	case "assettype":
		return "must be one of: BACKGROUND_IMAGE BACKGROUND_GRADIENT FONT TEXTURE"
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
