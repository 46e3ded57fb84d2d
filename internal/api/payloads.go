package api

// Write payloads use the backend's snake_case convention throughout.
// Zone assignments always carry ids here, never names; the editor and
// grid are responsible for resolving names before a payload is built.

// PatientWrite body for POST/PUT /api/pacientes.
type PatientWrite struct {
	Name   string `json:"ime"`
	Gender string `json:"pol"`
	Phone  string `json:"telefon"`
	Email  string `json:"email"`
}

// AssignmentWrite one zone assignment inside a procedure write.
type AssignmentWrite struct {
	ZoneID string `json:"id_zona"`
	Pulses string `json:"pulsaciones"`
}

// ProcedureWrite body for POST/PUT /api/proceduras.
type ProcedureWrite struct {
	Date      string            `json:"data"`
	Price     float64           `json:"obshta_cena"`
	PatientID string            `json:"id_paciente"`
	Comment   string            `json:"comment"`
	Zones     []AssignmentWrite `json:"zonas"`
}
