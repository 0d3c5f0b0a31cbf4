package utils

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"mathlearn/backend/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("youtube", func(fl validator.FieldLevel) bool {
		return ValidateYouTubeURL(fl.Field().String())
	})
	return v
}

// ValidateStruct runs struct-tag validation and converts the first failure
// into a domain ValidationError.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &models.ValidationError{Field: fe.Field(), Message: "failed " + fe.Tag() + " validation"}
	}
	return err
}
