package domain

import "strings"

// Gender markers as the backend stores them ("H" = male, "Ж" = female).
const (
	GenderMale   = "H"
	GenderFemale = "Ж"
)

// NormalizeGender trims and upper-cases a gender marker. Both sides of
// every gender comparison in the module go through this helper.
func NormalizeGender(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
