package view

import (
	"sort"
	"strings"

	"clinicdesk/internal/catalog"
	"clinicdesk/internal/domain"
)

// SortKey for the patient list.
type SortKey int

const (
	SortByName SortKey = iota
	SortByEmail
)

// SortDir ascending or descending.
type SortDir int

const (
	Ascending SortDir = iota
	Descending
)

// FilterPatients keeps patients whose name, email or phone contains the
// term, case-insensitively. The input slice is never mutated; an empty
// term returns a copy of the input, so filtering is idempotent.
func FilterPatients(patients []domain.Patient, term string) []domain.Patient {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]domain.Patient, 0, len(patients))
	for _, p := range patients {
		if needle == "" ||
			strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Email), needle) ||
			strings.Contains(strings.ToLower(p.Phone), needle) {
			out = append(out, p)
		}
	}
	return out
}

// SortPatients returns a sorted copy. The comparison is locale-aware
// and case-insensitive; equal keys preserve their input order in both
// directions.
func SortPatients(patients []domain.Patient, key SortKey, dir SortDir) []domain.Patient {
	out := make([]domain.Patient, len(patients))
	copy(out, patients)

	keyOf := func(p domain.Patient) string {
		if key == SortByEmail {
			return p.Email
		}
		return p.Name
	}
	sort.SliceStable(out, func(i, j int) bool {
		cmp := catalog.Compare(keyOf(out[i]), keyOf(out[j]))
		if dir == Descending {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

// FilterProcedures keeps procedures with at least one assignment whose
// zone name contains the term, and narrows each retained procedure's
// displayed assignment list to the matching subset. The narrowing is
// display-only: the returned procedures hold copied assignment slices
// and must never be written back.
func FilterProcedures(procedures []domain.Procedure, term string) []domain.Procedure {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		out := make([]domain.Procedure, len(procedures))
		copy(out, procedures)
		return out
	}

	var out []domain.Procedure
	for _, p := range procedures {
		var matched []domain.ZoneAssignment
		for _, a := range p.Zones {
			if strings.Contains(strings.ToLower(a.ZoneName), needle) {
				matched = append(matched, a)
			}
		}
		if len(matched) == 0 {
			continue
		}
		narrowed := p
		narrowed.Zones = matched
		out = append(out, narrowed)
	}
	return out
}
