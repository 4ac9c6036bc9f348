package settings

import (
	"errors"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator"
)

const (
	MsgRequired         = "This field is required"
	MsgBadStringFormat  = `Each line must be in format "label:value" (no spaces or duplicates allowed)`
	MsgBadNumericFormat = "Each line must be a valid number (no spaces or duplicates allowed)"
)

var (
	stringLineRegex        = regexp.MustCompile(`^[a-zA-Z]+(?:\s+[a-zA-Z]+)*:(?:[a-zA-Z][-a-zA-Z0-9]*|#[0-9A-Fa-f]+)$`)
	numericLineRegex       = regexp.MustCompile(`^\d*\.?\d+$`)
	signedNumericLineRegex = regexp.MustCompile(`^-?\d*\.?\d+$`)
)

// PresetError describes one invalid preset field.
type PresetError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e PresetError) Error() string {
	return e.Field + ": " + e.Message
}

// порядок полей в ответе
var presetFields = []string{
	"customFontsPresets",
	"customColorsPresets",
	"customViewportsPresets",
	"customSizesPresets",
	"customLineHeightsPresets",
	"customTrackingPresets",
	"customAlignmentsPresets",
}

var presetValidator = newPresetValidator()

func newPresetValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("stringPreset", stringPresetValidator); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("numericPreset", numericPresetValidator); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("signedNumericPreset", signedNumericPresetValidator); err != nil {
		panic(err)
	}
	v.RegisterStructValidation(requiredPresetsValidator, PluginOptions{})
	return v
}

// ValidatePresets checks custom presets the way the field settings form does.
// Nil means the options are valid.
func ValidatePresets(o PluginOptions) []PresetError {
	err := presetValidator.Struct(o)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []PresetError{{Message: err.Error()}}
	}

	res := make([]PresetError, 0, len(verrs))
	for _, fe := range verrs {
		pe := PresetError{Field: fe.Field()}
		switch fe.Tag() {
		case "required":
			pe.Message = MsgRequired
		case "numericPreset", "signedNumericPreset":
			pe.Message = MsgBadNumericFormat
		default:
			pe.Message = MsgBadStringFormat
		}
		res = append(res, pe)
	}
	slices.SortStableFunc(res, func(a, b PresetError) int {
		return slices.Index(presetFields, a.Field) - slices.Index(presetFields, b.Field)
	})
	return res
}

func requiredPresetsValidator(sl validator.StructLevel) {
	o := sl.Current().Interface().(PluginOptions)

	check := func(disabled bool, value, field, structField string) {
		if disabled && value == "" {
			sl.ReportError(value, field, structField, "required", "")
		}
	}
	check(o.DisableDefaultFonts, o.CustomFontsPresets, "customFontsPresets", "CustomFontsPresets")
	check(o.DisableDefaultColors, o.CustomColorsPresets, "customColorsPresets", "CustomColorsPresets")
	check(o.DisableDefaultViewports, o.CustomViewportsPresets, "customViewportsPresets", "CustomViewportsPresets")
	check(o.DisableDefaultSizes, o.CustomSizesPresets, "customSizesPresets", "CustomSizesPresets")
	check(o.DisableDefaultLineHeights, o.CustomLineHeightsPresets, "customLineHeightsPresets", "CustomLineHeightsPresets")
	check(o.DisableDefaultTracking, o.CustomTrackingPresets, "customTrackingPresets", "CustomTrackingPresets")
	check(o.DisableDefaultAlignments, o.CustomAlignmentsPresets, "customAlignmentsPresets", "CustomAlignmentsPresets")
}

func stringPresetValidator(fl validator.FieldLevel) bool {
	return validPresetLines(fl.Field().String(), stringLineRegex)
}

func numericPresetValidator(fl validator.FieldLevel) bool {
	return validPresetLines(fl.Field().String(), numericLineRegex)
}

func signedNumericPresetValidator(fl validator.FieldLevel) bool {
	return validPresetLines(fl.Field().String(), signedNumericLineRegex)
}

// validPresetLines: без пустых строк, каждая строка по шаблону, без повторов.
func validPresetLines(value string, re *regexp.Regexp) bool {
	if value == "" {
		return true
	}

	lines := strings.Split(value, "\n")
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			return false
		}
		if !re.MatchString(line) {
			return false
		}
		if _, ok := seen[line]; ok {
			return false
		}
		seen[line] = struct{}{}
	}
	return true
}
