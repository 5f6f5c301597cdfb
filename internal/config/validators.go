package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cristianoliveira/molmark/internal/colors"
)

// Validator normalizes value for key. An invalid value yields defaultValue
// and a console warning.
type Validator func(key, value, defaultValue string) (normalized string, err error)

// Granularities are the accepted values of the granularity key, finest first.
var Granularities = []string{"element", "residue", "chain", "structure"}

// OutputFormats are the accepted values of the output_format key.
var OutputFormats = []string{"text", "table", "json"}

var validators map[string]Validator

func initValidators() {
	boolean := BoolValidator()
	validators = map[string]Validator{
		"granularity":       OneOf(Granularities...),
		"output_format":     OneOf(OutputFormats...),
		"color":             boolean,
		"debug":             boolean,
		"quiet":             boolean,
		"logging_enabled":   boolean,
		"logging_level":     OneOf("debug", "info", "warn", "error"),
		"logging_max_files": PositiveIntValidator(),
	}
}

func getValidator(key string) Validator {
	return validators[key]
}

// PositiveIntValidator accepts integers greater than zero.
func PositiveIntValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		if n, err := strconv.Atoi(value); err != nil || n <= 0 {
			return fallback(key, value, defaultValue, "must be a positive integer"), nil
		}
		return value, nil
	}
}

// OneOf accepts the listed values, case-insensitively, and lowercases them.
func OneOf(allowed ...string) Validator {
	sorted := append([]string(nil), allowed...)
	sort.Strings(sorted)
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		lower := strings.ToLower(value)
		for _, a := range allowed {
			if lower == a {
				return lower, nil
			}
		}
		return fallback(key, value, defaultValue, "must be one of: "+strings.Join(sorted, ", ")), nil
	}
}

// BoolValidator accepts 1/0, true/false, yes/no and on/off.
func BoolValidator() Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		normalized := normalizeBool(value)
		if normalized != "true" && normalized != "false" {
			return fallback(key, value, defaultValue, "must be a boolean (1, true, yes, on, 0, false, no, off)"), nil
		}
		return normalized, nil
	}
}

func fallback(key, value, defaultValue, reason string) string {
	colors.Warning(fmt.Sprintf("invalid %s value '%s': %s; using default: %s", key, value, reason, defaultValue))
	return defaultValue
}

// normalizeBool maps the accepted boolean spellings to "true" or "false".
// Anything else is returned unchanged.
func normalizeBool(val string) string {
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return "true"
	case "0", "false", "no", "off":
		return "false"
	}
	return val
}
