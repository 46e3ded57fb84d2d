package editor

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"clinicdesk/internal/api"
	"clinicdesk/internal/catalog"
	"clinicdesk/internal/domain"
)

// State of an in-progress procedure form.
type State int

const (
	StateEmpty State = iota // new procedure, one blank row
	StatePopulated          // editing an existing procedure
	StateDirty              // at least one field changed
	StateSubmitting
	StateSaved
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	case StateDirty:
		return "dirty"
	case StateSubmitting:
		return "submitting"
	case StateSaved:
		return "saved"
	default:
		return "unknown"
	}
}

var (
	// ErrLastRow at least one assignment row must always exist.
	ErrLastRow = errors.New("cannot remove the last assignment row")
	// ErrPulseCharset pulse counts accept digits and the / - separators only.
	ErrPulseCharset = errors.New("pulse count may contain digits, '/' and '-' only")
	// ErrNoSuchRow unknown row id.
	ErrNoSuchRow = errors.New("no such assignment row")
)

// Row one zone-assignment line of the form. Search text, dropdown state
// and the binding live together in one struct; there are no parallel
// arrays to keep in lockstep.
type Row struct {
	RowID        string
	SearchText   string
	DropdownOpen bool
	ZoneID       string // empty until a suggestion is selected
	ZoneName     string
	Pulses       string
}

// Bound reports whether the row carries a resolved zone id.
func (r Row) Bound() bool { return r.ZoneID != "" }

// ProcedureEditor owns the form state for creating or editing a single
// procedure. It never talks to the network itself; Submit hands a fully
// normalized write payload to the caller and the caller reports the
// outcome back via MarkSaved / MarkFailed.
type ProcedureEditor struct {
	state       State
	cat         *catalog.Catalog
	patient     domain.Patient
	procedureID string // empty for a new procedure

	date    string
	price   string // raw text until submit
	comment string
	rows    []Row
}

// NewProcedure starts an empty form for the given patient, dated today,
// with one blank assignment row.
func NewProcedure(cat *catalog.Catalog, patient domain.Patient) *ProcedureEditor {
	return &ProcedureEditor{
		state:   StateEmpty,
		cat:     cat,
		patient: patient,
		date:    domain.Today(),
		rows:    []Row{blankRow()},
	}
}

// EditProcedure starts a populated form for an existing procedure. Rows
// are reconstructed against the loaded catalog; an assignment that does
// not resolve keeps its raw name with no binding and no pulse pre-fill,
// leaving the row editable rather than failing the whole form.
func EditProcedure(cat *catalog.Catalog, patient domain.Patient, proc domain.Procedure) *ProcedureEditor {
	e := &ProcedureEditor{
		state:       StatePopulated,
		cat:         cat,
		patient:     patient,
		procedureID: proc.ID,
		date:        domain.NormalizeDate(proc.Date),
		price:       strconv.FormatFloat(proc.Price, 'f', -1, 64),
		comment:     proc.Comment,
	}
	if e.date == "" {
		e.date = domain.Today()
	}

	for _, a := range proc.Zones {
		row := Row{
			RowID:      uuid.NewString(),
			SearchText: a.ZoneName,
			Pulses:     a.Pulses,
		}
		switch {
		case a.ZoneID != "":
			if z, ok := cat.ResolveByID(a.ZoneID); ok {
				row.ZoneID = z.ZoneID
				row.ZoneName = z.Name
				row.SearchText = z.Name
			} else {
				row.ZoneID = a.ZoneID
				row.ZoneName = a.ZoneName
			}
		default:
			if z, ok := cat.ResolveByName(a.ZoneName); ok {
				row.ZoneID = z.ZoneID
				row.ZoneName = z.Name
			}
		}
		e.rows = append(e.rows, row)
	}
	if len(e.rows) == 0 {
		e.rows = []Row{blankRow()}
	}
	return e
}

func blankRow() Row {
	return Row{RowID: uuid.NewString()}
}

func (e *ProcedureEditor) State() State        { return e.state }
func (e *ProcedureEditor) ProcedureID() string { return e.procedureID }
func (e *ProcedureEditor) Date() string        { return e.date }
func (e *ProcedureEditor) Price() string       { return e.price }
func (e *ProcedureEditor) Comment() string     { return e.comment }

// Rows returns a copy of the assignment rows in order.
func (e *ProcedureEditor) Rows() []Row {
	out := make([]Row, len(e.rows))
	copy(out, e.rows)
	return out
}

func (e *ProcedureEditor) markDirty() {
	if e.state == StateEmpty || e.state == StatePopulated {
		e.state = StateDirty
	}
}

// AddRow appends a blank assignment row.
func (e *ProcedureEditor) AddRow() Row {
	row := blankRow()
	e.rows = append(e.rows, row)
	e.markDirty()
	return row
}

// RemoveRow deletes a row; removing the last remaining row is refused.
func (e *ProcedureEditor) RemoveRow(rowID string) error {
	if len(e.rows) <= 1 {
		return ErrLastRow
	}
	idx := e.rowIndex(rowID)
	if idx < 0 {
		return ErrNoSuchRow
	}
	e.rows = append(e.rows[:idx], e.rows[idx+1:]...)
	e.markDirty()
	return nil
}

// SetSearchText updates a row's free-text zone search, opens that row's
// dropdown and returns the matching zones under the patient's gender
// visibility.
func (e *ProcedureEditor) SetSearchText(rowID, text string) ([]domain.Zone, error) {
	idx := e.rowIndex(rowID)
	if idx < 0 {
		return nil, ErrNoSuchRow
	}
	e.rows[idx].SearchText = text
	e.rows[idx].DropdownOpen = true
	e.markDirty()
	return e.cat.Search(text, e.patient.Gender), nil
}

// CloseDropdown closes a row's suggestion list without changing the
// binding (the blur path in the UI).
func (e *ProcedureEditor) CloseDropdown(rowID string) error {
	idx := e.rowIndex(rowID)
	if idx < 0 {
		return ErrNoSuchRow
	}
	e.rows[idx].DropdownOpen = false
	return nil
}

// SelectZone binds a suggestion to the row. The zone's mean-pulse hint
// pre-fills the pulse field only when it is still empty, so a value the
// user already typed is never overwritten.
func (e *ProcedureEditor) SelectZone(rowID string, zone domain.Zone) error {
	idx := e.rowIndex(rowID)
	if idx < 0 {
		return ErrNoSuchRow
	}
	row := &e.rows[idx]
	row.ZoneID = zone.ZoneID
	row.ZoneName = zone.Name
	row.SearchText = zone.Name
	row.DropdownOpen = false
	if row.Pulses == "" && zone.MeanPulse != "" {
		row.Pulses = zone.MeanPulse
	}
	e.markDirty()
	return nil
}

// SetPulses updates a row's pulse text, validated against the allowed
// character set.
func (e *ProcedureEditor) SetPulses(rowID, text string) error {
	idx := e.rowIndex(rowID)
	if idx < 0 {
		return ErrNoSuchRow
	}
	if !domain.ValidPulseText(text) {
		return ErrPulseCharset
	}
	e.rows[idx].Pulses = text
	e.markDirty()
	return nil
}

func (e *ProcedureEditor) SetDate(date string) {
	e.date = domain.NormalizeDate(date)
	e.markDirty()
}

func (e *ProcedureEditor) SetPrice(price string) {
	e.price = price
	e.markDirty()
}

func (e *ProcedureEditor) SetComment(comment string) {
	e.comment = comment
	e.markDirty()
}

// Submit validates the whole form at once and, when everything holds,
// moves to Submitting and returns the id-based write payload. On a
// validation failure the editor stays as it was and the returned
// *ValidationError names every failing field.
func (e *ProcedureEditor) Submit() (api.ProcedureWrite, error) {
	var failed []string

	// ParseFloat accepts "NaN" and "Inf" spellings; neither is a price.
	price, err := strconv.ParseFloat(strings.TrimSpace(e.price), 64)
	if strings.TrimSpace(e.price) == "" || err != nil ||
		price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		failed = append(failed, "price")
	}
	for _, row := range e.rows {
		if !row.Bound() {
			failed = append(failed, "zones")
			break
		}
	}
	for _, row := range e.rows {
		if strings.TrimSpace(row.Pulses) == "" {
			failed = append(failed, "pulses")
			break
		}
	}
	if e.patient.ID == "" {
		failed = append(failed, "patient")
	}
	if len(failed) > 0 {
		return api.ProcedureWrite{}, &ValidationError{Fields: failed}
	}

	payload := api.ProcedureWrite{
		Date:      e.date,
		Price:     price,
		PatientID: e.patient.ID,
		Comment:   e.comment,
	}
	for _, row := range e.rows {
		payload.Zones = append(payload.Zones, api.AssignmentWrite{
			ZoneID: row.ZoneID,
			Pulses: row.Pulses,
		})
	}
	e.state = StateSubmitting
	return payload, nil
}

// MarkSaved records a successful write; the editor is done.
func (e *ProcedureEditor) MarkSaved() {
	e.state = StateSaved
}

// MarkFailed records a failed write; the form stays open and editable
// so the user can retry.
func (e *ProcedureEditor) MarkFailed() {
	e.state = StateDirty
}

func (e *ProcedureEditor) rowIndex(rowID string) int {
	for i := range e.rows {
		if e.rows[i].RowID == rowID {
			return i
		}
	}
	return -1
}
