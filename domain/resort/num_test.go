package resort

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNum(t *testing.T) {
	v := 12.5
	nan := math.NaN()
	inf := math.Inf(1)

	assert.Equal(t, 12.5, Num(&v))
	assert.Equal(t, 0.0, Num(nil))
	assert.Equal(t, 0.0, Num(&nan))
	assert.Equal(t, 0.0, Num(&inf))
}

func TestNumInt(t *testing.T) {
	v := int64(7)
	assert.Equal(t, int64(7), NumInt(&v))
	assert.Equal(t, int64(0), NumInt(nil))
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected float64
	}{
		{"nil", nil, 0},
		{"float", 3.25, 3.25},
		{"int", 4, 4},
		{"int64", int64(9), 9},
		{"numeric_string", "12.5", 12.5},
		{"integer_string", "42", 42},
		{"non_numeric_string", "abc", 0},
		{"empty_string", "", 0},
		{"nan", math.NaN(), 0},
		{"positive_inf", math.Inf(1), 0},
		{"negative_inf", math.Inf(-1), 0},
		{"json_number", json.Number("7.5"), 7.5},
		{"bad_json_number", json.Number("x"), 0},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Coerce(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.False(t, math.IsNaN(got) || math.IsInf(got, 0))
		})
	}
}
