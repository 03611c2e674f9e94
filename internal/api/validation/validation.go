package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

const tagTime = "hhmm"

var (
	validate = newValidate()

	indexPattern = regexp.MustCompile(`\[(\d+)\]`)
)

func newValidate() *validator.Validate {
	v := validator.New()

	// Ключи ошибок совпадают с именами полей JSON
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(tagTime, func(fl validator.FieldLevel) bool {
		return types.TimeString(fl.Field().String()).Validate() == nil
	})

	return v
}

// Struct проверяет теги validate у s и возвращает ошибки по полям, nil если все корректно
func Struct(s interface{}) domain.FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return domain.FieldErrors{"": {err.Error()}}
	}

	fields := domain.FieldErrors{}
	for _, fe := range vErrs {
		key := fieldKey(fe.Namespace())
		fields.Add(key, message(fe, key))
	}
	return fields
}

// fieldKey "SetAvailabilityRequest.time_slots[0].start_time" -> "time_slots.0.start_time"
func fieldKey(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		namespace = namespace[idx+1:]
	}
	return indexPattern.ReplaceAllString(namespace, ".$1")
}

func attribute(key string) string {
	if idx := strings.LastIndex(key, "."); idx >= 0 {
		key = key[idx+1:]
	}
	return strings.ReplaceAll(key, "_", " ")
}

func message(fe validator.FieldError, key string) string {
	attr := attribute(key)

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", attr)
	case "required_if":
		parts := strings.Fields(fe.Param())
		if len(parts) == 2 {
			return fmt.Sprintf("The %s field is required when %s is %s.", attr, strings.ToLower(parts[0]), parts[1])
		}
		return fmt.Sprintf("The %s field is required.", attr)
	case "gt":
		return fmt.Sprintf("The %s must be greater than %s.", attr, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("The %s must have at least %s items.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s must be at least %s characters.", attr, fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("The %s may not have more than %s items.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s may not be greater than %s characters.", attr, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", attr)
	case tagTime:
		return fmt.Sprintf("The %s does not match the format H:i.", attr)
	case "datetime":
		return fmt.Sprintf("The %s does not match the format Y-m-d.", attr)
	default:
		return fmt.Sprintf("The %s is invalid.", attr)
	}
}
