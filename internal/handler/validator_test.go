package handler

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"123456789012345678", true},
		{"user-1_a", true},
		{"", false},
		{"has space", false},
		{"tab\tinside", false},
		{strings.Repeat("x", MaxUserIDLength), true},
		{strings.Repeat("x", MaxUserIDLength+1), false},
	}

	for _, tt := range tests {
		err := GetValidator().ValidateStruct(UserRequest{UserID: tt.id})
		assert.Equal(t, tt.valid, err == nil, "id %q", tt.id)
	}
}

func TestFormatValidationError(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))

	errs := FormatValidationError(errors.New("boom"))
	assert.Equal(t, "Invalid request format", errs["error"])

	err := GetValidator().ValidateStruct(AwardRequest{UserID: "u1", Category: strings.Repeat("c", 65)})
	errs = FormatValidationError(err)
	assert.Equal(t, "Must be at most 64", errs["category"])
	assert.Equal(t, "This field is required", errs["action"])
	assert.NotContains(t, errs, "AwardRequest.Action")
}

func TestMapServiceError_UnknownIsGeneric(t *testing.T) {
	status, msg := mapServiceError(errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, ErrMsgGenericServerError, msg)
}
