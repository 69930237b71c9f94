package resort

import "strings"

// openSpellings is the closed set of raw status values that mean "open".
// Covers the English form plus the Polish masculine/feminine/neuter forms
// of "open" and "operating" as they appear in the source data.
var openSpellings = map[string]struct{}{
	"open":    {},
	"otwarty": {},
	"otwarta": {},
	"otwarte": {},
	"czynny":  {},
	"czynna":  {},
	"czynne":  {},
}

// NormalizeStatus maps a raw status string to the two-value status domain.
// The function is total: anything that is not a recognized "open" spelling
// (case-insensitive, trimmed) normalizes to StatusClosed, including the
// empty string.
func NormalizeStatus(raw string) Status {
	key := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := openSpellings[key]; ok {
		return StatusOpen
	}
	return StatusClosed
}
