// Package settings holds the styling presets of the field and the per-breakpoint
// resolver used by the editor toolbar commands.
//
// Key features:
//   - Parsing of "Label:value" preset strings from the field options.
//   - Built-in option lists with fallback when custom presets are disabled or empty.
//   - Validation of custom presets at save time.
//   - Resolution and cascading of font, separator and image settings per breakpoint.
package settings

import "strings"

// ParsePresetString splits a newline separated "Label:value" list. A line without
// a colon is used as both label and value. Empty lines are skipped.
func ParsePresetString(preset string) []Option {
	res := []Option{}
	if preset == "" {
		return res
	}

	for _, line := range strings.Split(preset, "\n") {
		if line == "" {
			continue
		}
		label, value, found := strings.Cut(line, ":")
		if !found {
			res = append(res, Option{Label: line, Value: line})
			continue
		}
		res = append(res, Option{
			Label: strings.TrimSpace(label),
			Value: strings.TrimSpace(value),
		})
	}
	return res
}

// OptionsWithFallback returns the custom presets when they are enabled and
// parse to at least one entry, the defaults otherwise.
func OptionsWithFallback(defaults []Option, custom string, useCustom bool) []Option {
	if useCustom && custom != "" {
		if parsed := ParsePresetString(custom); len(parsed) > 0 {
			return parsed
		}
	}
	return defaults
}

// DefaultValue picks the option equal to def, the first option when def is not
// offered, or def itself for an empty list.
func DefaultValue(options []Option, def string) string {
	for _, o := range options {
		if o.Value == def {
			return o.Value
		}
	}
	if len(options) > 0 {
		return options[0].Value
	}
	return def
}

// Values returns the option values.
func Values(options []Option) []string {
	res := make([]string, len(options))
	for i, o := range options {
		res[i] = o.Value
	}
	return res
}
