package editor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicdesk/internal/domain"
)

func TestPatientEditorDefaults(t *testing.T) {
	e := NewPatient()
	assert.Equal(t, domain.GenderFemale, e.Gender())
	assert.Empty(t, e.PatientID())
}

func TestPatientEditorRequiresName(t *testing.T) {
	e := NewPatient()
	e.SetName("   ")

	_, err := e.Submit()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("name"))
}

func TestPatientEditorSubmit(t *testing.T) {
	e := NewPatient()
	e.SetName("  Иван Петров ")
	e.SetGender(domain.GenderMale)
	e.SetPhone("0899 123 456")
	e.SetEmail("ivan@example.com")

	payload, err := e.Submit()
	require.NoError(t, err)
	assert.Equal(t, "Иван Петров", payload.Name)
	assert.Equal(t, "H", payload.Gender)
}

func TestPatientEditorEditPrefills(t *testing.T) {
	e := EditPatient(domain.Patient{
		ID: "7", Name: "Мария", Gender: "Ж", Phone: "0888", Email: "m@x.bg",
	})
	assert.Equal(t, "7", e.PatientID())
	assert.Equal(t, "Мария", e.Name())

	payload, err := e.Submit()
	require.NoError(t, err)
	assert.Equal(t, "Мария", payload.Name)
}
