// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hay-kot/criterio"
)

// Title validates a title is non-empty after trimming whitespace.
func Title(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// SlideID validates a slide id: non-empty, with no whitespace and none of the
// characters used in coordinate paths.
func SlideID(id string) error {
	if id == "" {
		return fmt.Errorf("id is required")
	}
	for _, r := range id {
		switch {
		case unicode.IsSpace(r):
			return fmt.Errorf("id %q contains whitespace", id)
		case r == '/' || r == '?' || r == '#':
			return fmt.Errorf("id %q contains %q", id, r)
		}
	}
	return nil
}

// SlideIDField returns a criterio validator for slide ids.
func SlideIDField(field, id string) error {
	return criterio.Run(field, id, SlideID)
}
