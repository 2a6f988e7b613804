package api

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rsydfhmy03/SEA-Catering/internal/apperr"
)

// Indonesian mobile numbers: +62 / 62 / 0 prefix, then 8, a non-zero digit and 6-9 more digits.
var phonePattern = regexp.MustCompile(`^(\+62|62|0)8[1-9][0-9]{6,9}$`)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags used by request
// structs and makes validation errors report json field names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("id_phone", validatePhone)
		_ = v.RegisterValidation("strong_password", validateStrongPassword)
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func validatePhone(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

// IsStrongPassword requires 8+ characters with a lower case letter, an upper
// case letter, a digit and one of @$!%*?&#.
func IsStrongPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune("@$!%*?&#", r):
			special = true
		}
	}
	return lower && upper && digit && special
}

// FieldErrors converts a binding error into field attributed details.
func FieldErrors(err error) []apperr.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperr.FieldError{apperr.Field("body", "Invalid request payload.")}
	}

	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.Field(fieldPath(fe), getErrorMessage(fe)))
	}
	return fields
}

// fieldPath drops the struct name from the namespace: "createRequest.meal_types[0]" -> "meal_types[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func getErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "uuid", "uuid4":
		return field + " must be a valid UUID"
	case "min":
		if fe.Kind() == reflect.Slice {
			return field + " must contain at least " + fe.Param() + " item(s)"
		}
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		if fe.Kind() == reflect.Slice {
			return field + " must contain at most " + fe.Param() + " item(s)"
		}
		return field + " must be at most " + fe.Param() + " characters"
	case "gte":
		return field + " must be greater than or equal to " + fe.Param()
	case "lte":
		return field + " must be less than or equal to " + fe.Param()
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	case "id_phone":
		return field + " must be a valid Indonesian mobile number"
	case "strong_password":
		return field + " must contain upper and lower case letters, a digit and a special character"
	case "unique":
		return field + " must not contain duplicates"
	default:
		return field + " is invalid"
	}
}

// BindJSON binds the body into req and writes a validation envelope on
// failure. It reports whether the handler should continue.
func BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			ValidationFailed(c, FieldErrors(err))
			return false
		}
		c.JSON(http.StatusBadRequest, ErrorEnvelope(http.StatusBadRequest, CodeBadRequest, "Invalid request payload", FieldErrors(err)))
		return false
	}
	return true
}

// BindQuery is BindJSON for query strings.
func BindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		ValidationFailed(c, FieldErrors(err))
		return false
	}
	return true
}
