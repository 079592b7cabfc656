package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"mapstructure", "json"} {
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
	return validate
}

// ValidateStruct runs the `validate` tags of f. Field names in the error
// come from the mapstructure tag, falling back to json.
func ValidateStruct(f interface{}) error {
	err := getValidator().Struct(f)
	return checkError(err)
}

func ValidateOneOf(value string, enums ...string) error {
	tags := "omitempty,oneof=" + strings.Join(enums, " ")
	err := getValidator().Var(value, tags)
	return checkError(err)
}

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = newValidator()
	})
	return validate
}

func checkError(err error) error {
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}

	errStrs := make([]string, 0, len(errs))
	for _, e := range errs {
		field := e.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}

		switch e.Tag() {
		case "oneof":
			msg := fmt.Sprintf("error value \"%v\"", e.Value())
			if field != "" {
				msg += fmt.Sprintf(" for key \"%s\"", field)
			}
			msg += fmt.Sprintf(" not recognized, only support \"%s\"", e.Param())
			errStrs = append(errStrs, msg)
		case "gte", "min":
			errStrs = append(errStrs, fmt.Sprintf("%s cannot be less than %s", field, e.Param()))
		case "lte", "max":
			errStrs = append(errStrs, fmt.Sprintf("%s cannot be greater than %s", field, e.Param()))
		case "required":
			errStrs = append(errStrs, fmt.Sprintf("%s is required", field))
		default:
			errStrs = append(errStrs, e.Error())
		}
	}
	return errors.New(strings.Join(errStrs, " and "))
}
