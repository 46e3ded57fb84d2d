// Package grid derives the procedures-by-zones matrix for one patient
// and drives the double-click inline edit of a single pulse-count cell.
package grid

import (
	"errors"
	"sort"
	"strings"

	"clinicdesk/internal/api"
	"clinicdesk/internal/catalog"
	"clinicdesk/internal/domain"
)

// EmptyCell marker shown for a (procedure, zone) pair with no
// assignment.
const EmptyCell = "—"

var (
	// ErrNoSuchCell the (procedure, zone) pair is not part of the grid.
	ErrNoSuchCell = errors.New("no such grid cell")
	// ErrNoEdit commit or cancel with no cell in edit state.
	ErrNoEdit = errors.New("no cell is being edited")
	// ErrPulseCharset grid cells accept digits and the / - separators only.
	ErrPulseCharset = errors.New("pulse count may contain digits, '/' and '-' only")
)

// CellEdit the single in-progress cell edit. At most one exists per
// grid; starting a new edit replaces it.
type CellEdit struct {
	ProcedureID string
	ZoneName    string
	Value       string // seeded with the current cell value
}

// Grid one row per procedure, one column per distinct zone name
// observed across the loaded procedures. Rebuilt from the cache on
// every procedure-set change, never mutated in place.
type Grid struct {
	cat        *catalog.Catalog
	procedures []domain.Procedure // date ascending
	columns    []string
	edit       *CellEdit
}

// Build derives a grid from the loaded procedure set. Rows are ordered
// by date ascending (stable for equal dates); columns are the collated
// sorted union of zone names. The catalog resolves zone names at commit
// time, so callers hand in the editing catalog.
func Build(cat *catalog.Catalog, procedures []domain.Procedure) *Grid {
	rows := make([]domain.Procedure, len(procedures))
	copy(rows, procedures)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date < rows[j].Date
	})

	seen := map[string]bool{}
	var columns []string
	for _, p := range rows {
		for _, a := range p.Zones {
			key := strings.ToLower(a.ZoneName)
			if a.ZoneName == "" || seen[key] {
				continue
			}
			seen[key] = true
			columns = append(columns, a.ZoneName)
		}
	}
	sort.SliceStable(columns, func(i, j int) bool {
		return catalog.Compare(columns[i], columns[j]) < 0
	})

	return &Grid{cat: cat, procedures: rows, columns: columns}
}

// Columns returns the zone-name columns in display order.
func (g *Grid) Columns() []string {
	out := make([]string, len(g.columns))
	copy(out, g.columns)
	return out
}

// Rows returns the procedures in display order.
func (g *Grid) Rows() []domain.Procedure {
	out := make([]domain.Procedure, len(g.procedures))
	copy(out, g.procedures)
	return out
}

// CellAt returns the pulse count for a (procedure, zone) pair and
// whether an assignment exists there.
func (g *Grid) CellAt(procedureID, zoneName string) (string, bool) {
	p, ok := g.procedure(procedureID)
	if !ok {
		return "", false
	}
	for _, a := range p.Zones {
		if strings.EqualFold(a.ZoneName, zoneName) {
			return a.Pulses, true
		}
	}
	return "", false
}

// Display returns the cell text with the empty-cell marker applied.
func (g *Grid) Display(procedureID, zoneName string) string {
	if v, ok := g.CellAt(procedureID, zoneName); ok && v != "" {
		return v
	}
	return EmptyCell
}

// Editing returns the current cell edit, if any.
func (g *Grid) Editing() *CellEdit {
	if g.edit == nil {
		return nil
	}
	e := *g.edit
	return &e
}

// BeginEdit enters edit state for exactly one cell, seeded with its
// current value. A previous edit, if any, is discarded.
func (g *Grid) BeginEdit(procedureID, zoneName string) (CellEdit, error) {
	if _, ok := g.procedure(procedureID); !ok {
		return CellEdit{}, ErrNoSuchCell
	}
	if !g.hasColumn(zoneName) {
		return CellEdit{}, ErrNoSuchCell
	}
	value, _ := g.CellAt(procedureID, zoneName)
	g.edit = &CellEdit{ProcedureID: procedureID, ZoneName: zoneName, Value: value}
	return *g.edit, nil
}

// SetValue updates the in-progress edit (the keystroke path). The grid
// treats the cell as numeric, so the pulse character set is enforced.
func (g *Grid) SetValue(value string) error {
	if g.edit == nil {
		return ErrNoEdit
	}
	if !domain.ValidPulseText(value) {
		return ErrPulseCharset
	}
	g.edit.Value = value
	return nil
}

// Cancel discards the scoped edit state without writing (the Escape
// path).
func (g *Grid) Cancel() error {
	if g.edit == nil {
		return ErrNoEdit
	}
	g.edit = nil
	return nil
}

// Commit builds the full-replacement write for the edited procedure:
// the located assignment's pulse count is replaced, or a new assignment
// is appended after resolving the column's zone name to an id. The
// payload carries ids and pulse counts only; date, price and comment
// pass through unchanged. A zone name the catalog cannot resolve fails
// the commit with catalog.ErrUnresolvedZone and keeps the cell in edit
// state so the value is not silently lost.
func (g *Grid) Commit() (string, api.ProcedureWrite, error) {
	if g.edit == nil {
		return "", api.ProcedureWrite{}, ErrNoEdit
	}
	p, ok := g.procedure(g.edit.ProcedureID)
	if !ok {
		return "", api.ProcedureWrite{}, ErrNoSuchCell
	}

	zones := p.CloneZones()
	replaced := false
	for i := range zones {
		if strings.EqualFold(zones[i].ZoneName, g.edit.ZoneName) {
			zones[i].Pulses = g.edit.Value
			replaced = true
			break
		}
	}
	if !replaced {
		z, ok := g.cat.ResolveByAnyName(g.edit.ZoneName)
		if !ok {
			return "", api.ProcedureWrite{}, catalog.ErrUnresolvedZone
		}
		zones = append(zones, domain.ZoneAssignment{
			ZoneID:   z.ZoneID,
			ZoneName: z.Name,
			Pulses:   g.edit.Value,
			Resolved: true,
		})
	}

	payload := api.ProcedureWrite{
		Date:      p.Date,
		Price:     p.Price,
		PatientID: p.PatientID,
		Comment:   p.Comment,
	}
	for _, a := range zones {
		id := a.ZoneID
		if id == "" {
			z, ok := g.cat.ResolveByAnyName(a.ZoneName)
			if !ok {
				return "", api.ProcedureWrite{}, catalog.ErrUnresolvedZone
			}
			id = z.ZoneID
		}
		payload.Zones = append(payload.Zones, api.AssignmentWrite{
			ZoneID: id,
			Pulses: a.Pulses,
		})
	}

	procedureID := g.edit.ProcedureID
	g.edit = nil
	return procedureID, payload, nil
}

func (g *Grid) procedure(id string) (domain.Procedure, bool) {
	for _, p := range g.procedures {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Procedure{}, false
}

func (g *Grid) hasColumn(zoneName string) bool {
	for _, c := range g.columns {
		if strings.EqualFold(c, zoneName) {
			return true
		}
	}
	return false
}
