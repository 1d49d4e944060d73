package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	ID    int     `validate:"required,gt=0"`
	Title string  `validate:"required"`
	Price float64 `validate:"gte=0"`
	Image string  `validate:"omitempty,url"`
}

func TestValidate_Valid(t *testing.T) {
	err := Validate(sampleRequest{ID: 1, Title: "Backpack", Price: 109.95})
	assert.NoError(t, err)
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	err := Validate(sampleRequest{Price: 10})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := valErr.Fields()
	assert.Contains(t, fields, "ID")
	assert.Contains(t, fields, "Title")
	assert.Equal(t, "is required", fields["Title"])
}

func TestValidate_NegativePrice(t *testing.T) {
	err := Validate(sampleRequest{ID: 1, Title: "Backpack", Price: -1})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["Price"], "greater than or equal to 0")
}

func TestValidate_InvalidURL(t *testing.T) {
	err := Validate(sampleRequest{ID: 1, Title: "Backpack", Image: "not a url"})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be a valid URL", valErr.Fields()["Image"])
}

func TestValidationError_Message(t *testing.T) {
	err := Validate(sampleRequest{})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Error(), "field 'Title' is required")
}

func TestDecodeAndValidate(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"ID":1,"Title":"Backpack","Price":10}`))

	var dst sampleRequest
	require.NoError(t, DecodeAndValidate(req, &dst))
	assert.Equal(t, "Backpack", dst.Title)
}

func TestDecodeAndValidate_MalformedBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))

	var dst sampleRequest
	err := DecodeAndValidate(req, &dst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}
