package models

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateUserRequest_Fields(t *testing.T) {
	assert.Empty(t, UpdateUserRequest{}.Fields())

	got := UpdateUserRequest{Name: ptr("Carlos"), IsActive: ptr(false)}.Fields()
	assert.Equal(t, map[string]any{"name": "Carlos", "is_active": false}, got)
}

func TestUpdateFavoriteCityRequest_Fields(t *testing.T) {
	assert.Empty(t, UpdateFavoriteCityRequest{}.Fields())

	got := UpdateFavoriteCityRequest{Notes: ptr(""), Lat: ptr(-25.3), CountryCode: ptr("PY")}.Fields()
	assert.Equal(t, map[string]any{"notes": "", "lat": -25.3, "country_code": "PY"}, got)
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterValidations(v))
	return v
}

func TestRequests_BlankNamesAreRejected(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name  string
		req   any
		valid bool
	}{
		{"user create", CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1"}, true},
		{"user create blank name", CreateUserRequest{Name: "   ", Email: "ana@example.com", Password: "secret1"}, false},
		{"user update name", UpdateUserRequest{Name: ptr("Ana")}, true},
		{"user update blank name", UpdateUserRequest{Name: ptr(" \t ")}, false},
		{"user update without name", UpdateUserRequest{IsActive: ptr(true)}, true},
		{"city create", CreateFavoriteCityRequest{Name: "Lima"}, true},
		{"city create blank name", CreateFavoriteCityRequest{Name: "  "}, false},
		{"city update blank name", UpdateFavoriteCityRequest{Name: ptr("")}, false},
		{"city update notes only", UpdateFavoriteCityRequest{Notes: ptr("")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
