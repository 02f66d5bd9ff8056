package validator_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	sharedValidator "github.com/library-circulation/go-api-server/internal/shared/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateISBN(t *testing.T) {
	v := validator.New()
	require.NoError(t, v.RegisterValidation("isbncode", sharedValidator.ValidateISBN))

	testCases := []struct {
		isbn  string
		valid bool
	}{
		{isbn: "ISBN 978-3-16-148410-0", valid: true},
		{isbn: "ISBN 978-0-13235-08-8", valid: true},
		{isbn: "978-3-16-148410-0", valid: false},
		{isbn: "ISBN 97-3-16-148410-0", valid: false},
		{isbn: "ISBN 978-3-1-148410-0", valid: false},
		{isbn: "", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.isbn, func(t *testing.T) {
			err := v.Var(tc.isbn, "isbncode")
			assert.Equal(t, tc.valid, err == nil)
		})
	}
}
