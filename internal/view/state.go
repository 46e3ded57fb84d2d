package view

import (
	"errors"

	"clinicdesk/internal/domain"
)

// Screen top-level navigation state.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenPatientDetails
)

// Modal overlay kind. ModalNone means no overlay.
type Modal int

const (
	ModalNone Modal = iota
	ModalPatientForm
	ModalProcedureForm
	ModalConfirmDeletePatient
	ModalConfirmDeleteProcedure
)

// ErrNoPatientSelected procedure actions require an open patient.
var ErrNoPatientSelected = errors.New("no patient is selected")

// Machine the top-level view state: which screen is shown, which modal
// is open, and which record is staged for edit or delete. All state
// moves through named transitions; flag combinations like "delete
// confirmation open with nothing staged" cannot be produced.
type Machine struct {
	screen Screen
	modal  Modal

	selected          *domain.Patient
	editingPatient    *domain.Patient   // nil = create
	editingProcedure  *domain.Procedure // nil = create
	deletePatient     *domain.Patient
	deleteProcedureID string
}

func NewMachine() *Machine {
	return &Machine{screen: ScreenHome}
}

func (m *Machine) Screen() Screen { return m.screen }
func (m *Machine) Modal() Modal   { return m.modal }

// Selected returns the currently open patient, if any.
func (m *Machine) Selected() (domain.Patient, bool) {
	if m.selected == nil {
		return domain.Patient{}, false
	}
	return *m.selected, true
}

// EditingPatient returns the record staged in the patient form; ok is
// false for a create form.
func (m *Machine) EditingPatient() (domain.Patient, bool) {
	if m.editingPatient == nil {
		return domain.Patient{}, false
	}
	return *m.editingPatient, true
}

// EditingProcedure returns the record staged in the procedure form; ok
// is false for a create form.
func (m *Machine) EditingProcedure() (domain.Procedure, bool) {
	if m.editingProcedure == nil {
		return domain.Procedure{}, false
	}
	return *m.editingProcedure, true
}

// DeleteTargetPatient returns the patient staged for deletion.
func (m *Machine) DeleteTargetPatient() (domain.Patient, bool) {
	if m.deletePatient == nil {
		return domain.Patient{}, false
	}
	return *m.deletePatient, true
}

// DeleteTargetProcedure returns the procedure id staged for deletion.
func (m *Machine) DeleteTargetProcedure() (string, bool) {
	return m.deleteProcedureID, m.deleteProcedureID != ""
}

// SelectPatient opens the details screen for one patient.
func (m *Machine) SelectPatient(p domain.Patient) {
	m.selected = &p
	m.screen = ScreenPatientDetails
}

// Back returns to the home screen and clears the selection.
func (m *Machine) Back() {
	m.selected = nil
	m.screen = ScreenHome
}

// OpenNewPatientForm opens the patient form in create mode.
func (m *Machine) OpenNewPatientForm() {
	m.clearStaged()
	m.modal = ModalPatientForm
}

// OpenEditPatientForm opens the patient form with the target staged.
func (m *Machine) OpenEditPatientForm(p domain.Patient) {
	m.clearStaged()
	m.editingPatient = &p
	m.modal = ModalPatientForm
}

// OpenNewProcedureForm opens the procedure form in create mode; a
// patient must be selected because procedures are always scoped to one.
func (m *Machine) OpenNewProcedureForm() error {
	if m.selected == nil {
		return ErrNoPatientSelected
	}
	m.clearStaged()
	m.modal = ModalProcedureForm
	return nil
}

// OpenEditProcedureForm opens the procedure form with the target staged.
func (m *Machine) OpenEditProcedureForm(p domain.Procedure) error {
	if m.selected == nil {
		return ErrNoPatientSelected
	}
	m.clearStaged()
	m.editingProcedure = &p
	m.modal = ModalProcedureForm
	return nil
}

// RequestDeletePatient opens the confirmation dialog naming the record;
// deletion never proceeds without it.
func (m *Machine) RequestDeletePatient(p domain.Patient) {
	m.clearStaged()
	m.deletePatient = &p
	m.modal = ModalConfirmDeletePatient
}

// RequestDeleteProcedure opens the confirmation dialog for a procedure.
func (m *Machine) RequestDeleteProcedure(procedureID string) {
	m.clearStaged()
	m.deleteProcedureID = procedureID
	m.modal = ModalConfirmDeleteProcedure
}

// CloseModal cancels or completes whatever overlay is open and clears
// every staged target.
func (m *Machine) CloseModal() {
	m.clearStaged()
	m.modal = ModalNone
}

// PatientDeleted records a confirmed, successful patient delete: the
// modal closes and the view is forced back to the home screen because
// the open record no longer exists.
func (m *Machine) PatientDeleted() {
	m.CloseModal()
	m.Back()
}

func (m *Machine) clearStaged() {
	m.editingPatient = nil
	m.editingProcedure = nil
	m.deletePatient = nil
	m.deleteProcedureID = ""
}
