package host

import (
	"fmt"
	"strings"
)

// RequiredString returns args[key] as a non-blank string.
func RequiredString(args map[string]any, key string) (string, error) {
	value, ok := OptionalString(args, key)
	if !ok {
		return "", fmt.Errorf("%s: %w", key, ErrMissingArgument)
	}
	return value, nil
}

// OptionalString returns args[key] when it is a non-blank string.
func OptionalString(args map[string]any, key string) (string, bool) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return "", false
	}
	value, ok := raw.(string)
	if !ok {
		value = fmt.Sprint(raw)
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}
