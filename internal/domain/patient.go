package domain

// Patient canonical patient record (backend table: pacientes)
type Patient struct {
	ID      string
	Name    string
	Gender  string // normalized marker, see NormalizeGender
	Phone   string
	Email   string
	Balance float64
}
