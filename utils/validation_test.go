package utils

import (
	"strings"
	"testing"

	"robolibrary/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateFolderName(t *testing.T) {
	assert.NoError(t, ValidateFolderName("Grade 8"))
	assert.NoError(t, ValidateFolderName("Unité Robotique"))

	invalid := []string{
		"",
		strings.Repeat("x", 256),
		"a/b",
		"a\\b",
		"what?",
		"\xff\xfe",
	}
	for _, name := range invalid {
		err := ValidateFolderName(name)
		assert.True(t, models.IsValidation(err), "expected validation error for %q", name)
	}
}

func TestValidateContentTitle(t *testing.T) {
	// Slashes are fine in titles, unlike folder names.
	assert.NoError(t, ValidateContentTitle("Intro / Setup"))

	assert.True(t, models.IsValidation(ValidateContentTitle("")))
	assert.True(t, models.IsValidation(ValidateContentTitle(strings.Repeat("x", 256))))
	assert.True(t, models.IsValidation(ValidateContentTitle("bad\x00title")))
}

func TestValidateAssetName(t *testing.T) {
	assert.NoError(t, ValidateAssetName("wiring-diagram.pdf"))

	assert.True(t, models.IsValidation(ValidateAssetName("")))
	assert.True(t, models.IsValidation(ValidateAssetName("../etc/passwd")))
	assert.True(t, models.IsValidation(ValidateAssetName("video<1>.mp4")))
}
