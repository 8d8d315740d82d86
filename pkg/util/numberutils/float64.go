package numberutils

import "strconv"

// IsFloat64 checks if the given string can be converted to a valid float64.
func IsFloat64(str string) bool {
	_, err := strconv.ParseFloat(str, 64)
	return err == nil
}

// ToFloat64 converts the given string to a float64 and reports whether the
// conversion succeeded.
func ToFloat64(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ToFloat64WithDefault converts the given string to a float64.
// If the string cannot be converted, it returns the provided default value.
func ToFloat64WithDefault(s string, defaultVal float64) float64 {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return defaultVal
}
