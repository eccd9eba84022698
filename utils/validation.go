package utils

import (
	"strings"
	"unicode/utf8"

	"robolibrary/models"
)

// Folder validation
func ValidateFolderName(name string) error {
	if name == "" {
		return models.NewValidation("folder name cannot be empty")
	}

	if len(name) > 255 {
		return models.NewValidation("folder name too long (max 255 characters)")
	}

	if !utf8.ValidString(name) {
		return models.NewValidation("folder name contains invalid UTF-8 characters")
	}

	invalidChars := []string{"<", ">", ":", "\"", "|", "?", "*", "\x00", "/", "\\"}
	for _, char := range invalidChars {
		if strings.Contains(name, char) {
			return models.NewValidation("folder name contains invalid character: %s", char)
		}
	}

	return nil
}

// Content validation
func ValidateContentTitle(title string) error {
	if title == "" {
		return models.NewValidation("content title cannot be empty")
	}

	if len(title) > 255 {
		return models.NewValidation("content title too long (max 255 characters)")
	}

	if !utf8.ValidString(title) {
		return models.NewValidation("content title contains invalid UTF-8 characters")
	}

	if strings.ContainsRune(title, '\x00') {
		return models.NewValidation("content title contains invalid character")
	}

	return nil
}

// Asset validation
func ValidateAssetName(filename string) error {
	if filename == "" {
		return models.NewValidation("filename cannot be empty")
	}

	if len(filename) > 255 {
		return models.NewValidation("filename too long (max 255 characters)")
	}

	if !utf8.ValidString(filename) {
		return models.NewValidation("filename contains invalid UTF-8 characters")
	}

	invalidChars := []string{"<", ">", ":", "\"", "|", "?", "*", "\x00"}
	for _, char := range invalidChars {
		if strings.Contains(filename, char) {
			return models.NewValidation("filename contains invalid character: %s", char)
		}
	}

	if strings.Contains(filename, "..") {
		return models.NewValidation("filename cannot contain '..'")
	}

	return nil
}
