// Package normalize is the single boundary allowed to read raw backend
// records. The backend mixes two field-naming conventions for the same
// logical fields (snake_case on the write path, camelCase on parts of
// the read path), and returns a procedure's zones as names where writes
// require ids. Everything behind this package consumes only the
// canonical domain shapes.
package normalize

import (
	"strconv"
	"strings"

	"clinicdesk/internal/api"
	"clinicdesk/internal/catalog"
	"clinicdesk/internal/domain"
)

// pick returns the first present value among the candidate keys.
// Absent everywhere means nil, never an error.
func pick(raw api.RawRecord, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// str coerces a raw value to text. JSON numbers decode as float64, and
// the backend is inconsistent about quoting ids and pulse counts, so
// numeric values are formatted without an exponent.
func str(raw api.RawRecord, keys ...string) string {
	switch v := pick(raw, keys...).(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func num(raw api.RawRecord, keys ...string) float64 {
	switch v := pick(raw, keys...).(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Patient maps a raw patient record to the canonical shape.
func Patient(raw api.RawRecord) domain.Patient {
	return domain.Patient{
		ID:      str(raw, "id", "ID", "idPaciente", "id_paciente"),
		Name:    str(raw, "IME", "ime"),
		Gender:  domain.NormalizeGender(str(raw, "POL", "pol")),
		Phone:   str(raw, "TELEFON", "telefon"),
		Email:   str(raw, "EMAIL", "email"),
		Balance: num(raw, "balance", "BALANCE"),
	}
}

// Patients maps a raw patient list, dropping nil entries.
func Patients(raws []api.RawRecord) []domain.Patient {
	out := make([]domain.Patient, 0, len(raws))
	for _, raw := range raws {
		if raw == nil {
			continue
		}
		out = append(out, Patient(raw))
	}
	return out
}

// Zone maps a raw catalog entry to the canonical shape.
func Zone(raw api.RawRecord) domain.Zone {
	return domain.Zone{
		ZoneID:            str(raw, "idZona", "id_zona"),
		Name:              str(raw, "NAZVANIE", "nazvanie"),
		AliasName:         str(raw, "nazvanieEs", "nazvanie_es"),
		GenderRestriction: strings.TrimSpace(str(raw, "polSpecifichen", "pol_specifichen")),
		MeanPulse:         str(raw, "meanPulsaciones", "mean_pulsaciones"),
	}
}

// Zones maps a raw catalog list.
func Zones(raws []api.RawRecord) []domain.Zone {
	out := make([]domain.Zone, 0, len(raws))
	for _, raw := range raws {
		if raw == nil {
			continue
		}
		out = append(out, Zone(raw))
	}
	return out
}

// Procedure maps a raw procedure record to the canonical shape,
// reconciling its zone list against the catalog. The backend returns
// assignments in two representations: name + pulses on the read path
// and id + pulses on the write path; both are accepted here. A name
// with no catalog entry yields an assignment with Resolved=false, kept
// in place so the UI can show the raw name instead of dropping it.
func Procedure(raw api.RawRecord, cat *catalog.Catalog) domain.Procedure {
	p := domain.Procedure{
		ID:        str(raw, "idProcedura", "id_procedura"),
		PatientID: str(raw, "idPaciente", "id_paciente"),
		Date:      domain.NormalizeDate(str(raw, "data", "DATA")),
		Price:     num(raw, "obshta_cena", "obshtaCena"),
		Comment:   str(raw, "comment", "COMMENT"),
	}

	list, _ := pick(raw, "zonas", "ZONAS").([]any)
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		p.Zones = append(p.Zones, assignment(entry, cat))
	}
	return p
}

// Procedures maps a raw procedure list.
func Procedures(raws []api.RawRecord, cat *catalog.Catalog) []domain.Procedure {
	out := make([]domain.Procedure, 0, len(raws))
	for _, raw := range raws {
		if raw == nil {
			continue
		}
		out = append(out, Procedure(raw, cat))
	}
	return out
}

func assignment(entry api.RawRecord, cat *catalog.Catalog) domain.ZoneAssignment {
	a := domain.ZoneAssignment{
		ZoneID:   str(entry, "id_zona", "idZona"),
		ZoneName: str(entry, "zona", "ZONA", "zoneName"),
		Pulses:   str(entry, "pulsaciones", "PULSACIONES"),
	}

	if a.ZoneID != "" {
		if z, ok := cat.ResolveByID(a.ZoneID); ok {
			a.ZoneName = z.Name
			a.Resolved = true
			return a
		}
		// Id not in the loaded catalog: keep it, the backend is
		// authoritative for referential integrity.
		a.Resolved = true
		return a
	}

	if z, ok := cat.ResolveByAnyName(a.ZoneName); ok {
		a.ZoneID = z.ZoneID
		a.ZoneName = z.Name
		a.Resolved = true
		return a
	}

	a.Resolved = false
	return a
}
