package contract

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var urlValidator = validator.New()

// ValidateURLList checks that every element of an image list is a
// syntactically valid URL. One bad element fails the whole field; order of
// the list is never touched, it is the display order.
func ValidateURLList(values []string) *FieldError {
	for i, value := range values {
		if err := urlValidator.Var(value, "required,url"); err != nil {
			return &FieldError{
				Code:    CodeInvalidFormat,
				Message: fmt.Sprintf("element %d is not a valid URL", i),
			}
		}
	}
	return nil
}
