package editor

import (
	"math"
	"strconv"
	"strings"

	apperrors "github.com/zaqqye/evaluasi_backend/pkg/errors"
)

// ParseValue coerces raw form input to a score. Blank input is 0; anything
// that is not a finite number is rejected.
func ParseValue(field, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperrors.ValidationError{
			Field:   field,
			Value:   raw,
			Message: "must be a finite number",
		}
	}
	return v, nil
}
