package domain

// Zone catalog entry for a treatable body area (backend table: zonas).
// The catalog is read-mostly: the client never mutates a zone, it only
// replaces the whole set on refresh.
type Zone struct {
	ZoneID    string
	Name      string // canonical display name
	AliasName string // secondary-language name, may be empty
	// GenderRestriction limits visibility to patients whose gender marker
	// normalizes equal to it. Empty means visible for every gender.
	GenderRestriction string
	// MeanPulse is a pre-fill hint for new assignments, kept as text
	// because the backend stores pulse counts as free text.
	MeanPulse string
}

// VisibleFor reports whether the zone may be offered for a patient with
// the given gender marker.
func (z Zone) VisibleFor(gender string) bool {
	if z.GenderRestriction == "" {
		return true
	}
	return NormalizeGender(z.GenderRestriction) == NormalizeGender(gender)
}
