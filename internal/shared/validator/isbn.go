package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// isbnRegex matches the catalog ISBN notation
	// Format: ISBN 978-3-16-148410-0
	isbnRegex = regexp.MustCompile(`^ISBN\s\d{3}-\d-\d{2,5}-\d{2,7}-\d$`)
)

// ValidateISBN validates a catalog code in the library's ISBN notation
func ValidateISBN(fl validator.FieldLevel) bool {
	return isbnRegex.MatchString(fl.Field().String())
}
