package resort

import (
	"encoding/json"
	"math"
	"strconv"
)

// Num returns the value of a nullable float, or 0 when the pointer is nil or
// the value is not finite. Every arithmetic consumer of backend numerics goes
// through Num or NumInt so comparisons never see NaN or Inf.
func Num(v *float64) float64 {
	if v == nil {
		return 0
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	return *v
}

// NumInt returns the value of a nullable integer, or 0 when nil.
func NumInt(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

// Coerce interprets an arbitrary decoded JSON value as a finite number.
// Numbers pass through, numeric strings are parsed, everything else
// (nil, non-numeric strings, NaN, Inf) coerces to 0.
func Coerce(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return Num(&n)
	case float32:
		f := float64(n)
		return Num(&f)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return Num(&f)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return Num(&f)
	default:
		return 0
	}
}
