package board

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps go-playground/validator to implement echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

// SignupRequest is the sign-up form.
type SignupRequest struct {
	Email    string `form:"email" json:"email" validate:"required"`
	Activity string `form:"activity" json:"activity" validate:"required"`
}

// RemovalRequest identifies a participant to unregister. The htmx control
// sends it as a query string, the no-JS fallback as a form.
type RemovalRequest struct {
	Activity string `query:"activity" form:"activity" json:"activity" validate:"required"`
	Email    string `query:"email" form:"email" json:"email" validate:"required"`
}

// checkInput validates req and converts failures into a ValidationError
// naming the missing fields.
func (cv *CustomValidator) checkInput(req any) error {
	err := cv.Validate(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, fe.Field())
	}
	return verr
}
