package resort

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus_OpenSpellings(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"english", "open"},
		{"english_upper", "OPEN"},
		{"masculine", "otwarty"},
		{"feminine", "otwarta"},
		{"neuter", "otwarte"},
		{"operating_masculine", "czynny"},
		{"operating_feminine", "Czynna"},
		{"operating_neuter", "CZYNNE"},
		{"padded", "  otwarty  "},
		{"mixed_case_padded", "\tOtWaRtE \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, StatusOpen, NormalizeStatus(tt.raw))
		})
	}
}

func TestNormalizeStatus_EverythingElseIsClosed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"closed", "closed"},
		{"polish_closed", "nieczynny"},
		{"partial_match", "otwartyy"},
		{"open_with_suffix", "open?"},
		{"sentence", "open from december"},
		{"garbage", "n/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, StatusClosed, NormalizeStatus(tt.raw))
		})
	}
}
