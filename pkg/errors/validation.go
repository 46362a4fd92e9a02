package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// stageNameRegex matches stage identifiers such as "purge-rooms".
var stageNameRegex = regexp.MustCompile(`^[a-z]+(-[a-z]+)*$`)

// ValidateStageName checks that name is shaped like a stage identifier.
// It does not check that the stage exists; the pipeline does that.
func ValidateStageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidStage, "stage name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidStage, "stage name too long (max 64 characters)")
	}
	if !stageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidStage, "invalid stage name: %q", name)
	}
	return nil
}

// pointRegex matches "x,y" with optional whitespace and signs.
var pointRegex = regexp.MustCompile(`^\s*-?\d+(\.\d+)?\s*,\s*-?\d+(\.\d+)?\s*$`)

// ValidatePoint checks that s is a coordinate pair of the form "x,y".
func ValidatePoint(s string) error {
	if s == "" {
		return New(ErrCodeInvalidPoint, "point cannot be empty")
	}
	if !pointRegex.MatchString(s) {
		return New(ErrCodeInvalidPoint, "invalid point %q (expected x,y)", s)
	}
	return nil
}

// ValidatePath validates a file path given on the command line, such as a
// config file or an export destination.
//
// The rules are:
//   - No empty paths
//   - No null bytes or control characters
//   - Maximum length of 500 characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.TrimSpace(path) != path {
		return New(ErrCodeInvalidPath, "path cannot start or end with whitespace")
	}

	return nil
}
