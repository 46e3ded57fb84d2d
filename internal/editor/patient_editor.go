package editor

import (
	"strings"

	"clinicdesk/internal/api"
	"clinicdesk/internal/domain"
)

// PatientEditor form state for creating or editing one patient.
type PatientEditor struct {
	patientID string // empty for a new patient
	name      string
	gender    string
	phone     string
	email     string
}

// NewPatient starts an empty patient form. Gender defaults to female,
// matching the clinic's intake form.
func NewPatient() *PatientEditor {
	return &PatientEditor{gender: domain.GenderFemale}
}

// EditPatient starts a form pre-filled from an existing record.
func EditPatient(p domain.Patient) *PatientEditor {
	gender := p.Gender
	if gender == "" {
		gender = domain.GenderFemale
	}
	return &PatientEditor{
		patientID: p.ID,
		name:      p.Name,
		gender:    gender,
		phone:     p.Phone,
		email:     p.Email,
	}
}

func (e *PatientEditor) PatientID() string { return e.patientID }
func (e *PatientEditor) Name() string      { return e.name }
func (e *PatientEditor) Gender() string    { return e.gender }
func (e *PatientEditor) Phone() string     { return e.phone }
func (e *PatientEditor) Email() string     { return e.email }

func (e *PatientEditor) SetName(v string)   { e.name = v }
func (e *PatientEditor) SetGender(v string) { e.gender = v }
func (e *PatientEditor) SetPhone(v string)  { e.phone = v }
func (e *PatientEditor) SetEmail(v string)  { e.email = v }

// Submit validates the form and returns the write payload. The name is
// the only required field.
func (e *PatientEditor) Submit() (api.PatientWrite, error) {
	var failed []string
	if strings.TrimSpace(e.name) == "" {
		failed = append(failed, "name")
	}
	if len(failed) > 0 {
		return api.PatientWrite{}, &ValidationError{Fields: failed}
	}

	gender := e.gender
	if strings.TrimSpace(gender) == "" {
		gender = domain.GenderFemale
	}
	return api.PatientWrite{
		Name:   strings.TrimSpace(e.name),
		Gender: gender,
		Phone:  strings.TrimSpace(e.phone),
		Email:  strings.TrimSpace(e.email),
	}, nil
}
