package billing

import (
	"github.com/go-playground/validator/v10"

	"encore.dev/beta/errs"
)

var validate = validator.New()

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}
	return nil
}
