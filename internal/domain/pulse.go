package domain

// ValidPulseText reports whether a pulse-count value contains only the
// allowed characters: ASCII digits plus the "/" and "-" separators used
// for compound values and ranges. Empty text is valid and means "no
// value yet".
func ValidPulseText(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '/' || r == '-':
		default:
			return false
		}
	}
	return true
}
