package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Report JSON field names rather than Go field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// describeValidationError turns the first binding tag failure into a client
// message.
func describeValidationError(err error) (string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", false
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field), true
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param()), true
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param()), true
	case "alpha":
		return fmt.Sprintf("%s must contain only letters", field), true
	default:
		return fmt.Sprintf("%s is invalid", field), true
	}
}
