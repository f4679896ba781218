package serverutils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"gymkaana-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json names so clients see the keys they sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateRequest validates req and returns a Validation AppError. When only
// required fields are absent the message lists them, in declaration order.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Validation(err.Error())
	}

	var missing, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		invalid = append(invalid, fmt.Sprintf("%s must satisfy %s", fe.Field(), describeTag(fe)))
	}

	if len(invalid) == 0 {
		return apperror.Validation("Missing required fields: "+strings.Join(missing, ", "), missing...)
	}

	msg := "Invalid fields: " + strings.Join(invalid, "; ")
	if len(missing) > 0 {
		msg = "Missing required fields: " + strings.Join(missing, ", ") + ". " + msg
	}
	return apperror.Validation(msg, missing...)
}

func describeTag(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
