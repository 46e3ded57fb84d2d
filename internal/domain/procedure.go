package domain

// ZoneAssignment pairs a zone with a pulse count inside one procedure.
// Resolved is false when only a display name is known and no catalog id
// could be reconciled; such assignments must never reach a write payload.
type ZoneAssignment struct {
	ZoneID   string
	ZoneName string
	Pulses   string // free text, tolerates compound values like "12/8"
	Resolved bool
}

// Procedure canonical procedure record (backend table: proceduras).
// Zones keeps the backend order.
type Procedure struct {
	ID        string
	PatientID string
	Date      string // YYYY-MM-DD
	Price     float64
	Comment   string
	Zones     []ZoneAssignment
}

// CloneZones returns an independent copy of the assignment list so that
// derived views can narrow or rewrite it without touching the cache.
func (p Procedure) CloneZones() []ZoneAssignment {
	out := make([]ZoneAssignment, len(p.Zones))
	copy(out, p.Zones)
	return out
}
