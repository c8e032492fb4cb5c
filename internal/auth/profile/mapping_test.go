package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapAttributesRenamesProviderFields(t *testing.T) {
	attrs := MapAttributes(map[string]any{
		"id":        42,
		"firstname": "Ann",
		"sex":       "f",
	})

	assert.Equal(t, 42, attrs["identifier"])
	assert.Equal(t, "Ann", attrs["first_name"])
	assert.Equal(t, "f", attrs["gender"])

	assert.NotContains(t, attrs, "id")
	assert.NotContains(t, attrs, "firstname")
	assert.NotContains(t, attrs, "sex")
}

func TestMapAttributesFullRenameTable(t *testing.T) {
	attrs := MapAttributes(map[string]any{
		"id":            "sub-1",
		"lastname":      "Doe",
		"firstname":     "Jane",
		"birthday":      "1990-04-01",
		"emailVerified": true,
		"fullname":      "Jane Doe",
		"sex":           "f",
		"pictureURL":    "https://img.example/jane.png",
	})

	assert.Equal(t, map[string]any{
		"identifier":     "sub-1",
		"last_name":      "Doe",
		"first_name":     "Jane",
		"birth_date":     "1990-04-01",
		"email_verified": true,
		"full_name":      "Jane Doe",
		"gender":         "f",
		"picture_url":    "https://img.example/jane.png",
	}, attrs)
}

func TestMapAttributesPassesUnknownFieldsThrough(t *testing.T) {
	attrs := MapAttributes(map[string]any{
		"email":  "jane@example.com",
		"locale": "en",
		"login":  "janedoe",
	})

	assert.Equal(t, "jane@example.com", attrs["email"])
	assert.Equal(t, "en", attrs["locale"])
	assert.Equal(t, "janedoe", attrs["login"])
}
