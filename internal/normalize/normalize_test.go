package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicdesk/internal/api"
	"clinicdesk/internal/catalog"
	"clinicdesk/internal/domain"
)

func testCatalog() *catalog.Catalog {
	c := catalog.New()
	c.Replace([]domain.Zone{
		{ZoneID: "10", Name: "Цели крака", AliasName: "Piernas enteras"},
		{ZoneID: "11", Name: "Подмишници", AliasName: "Axilas"},
	})
	return c
}

func TestPatientUppercaseKeys(t *testing.T) {
	p := Patient(api.RawRecord{
		"id":      float64(7),
		"IME":     "Мария Иванова",
		"POL":     " ж ",
		"TELEFON": "0888123456",
		"EMAIL":   "maria@example.com",
		"balance": float64(120.5),
	})
	assert.Equal(t, "7", p.ID)
	assert.Equal(t, "Мария Иванова", p.Name)
	assert.Equal(t, "Ж", p.Gender, "gender marker is trimmed and upper-cased")
	assert.Equal(t, "0888123456", p.Phone)
	assert.Equal(t, 120.5, p.Balance)
}

func TestPatientLowercaseKeys(t *testing.T) {
	p := Patient(api.RawRecord{
		"id":  "7",
		"ime": "Мария",
		"pol": "H",
	})
	assert.Equal(t, "Мария", p.Name)
	assert.Equal(t, "H", p.Gender)
	assert.Empty(t, p.Email, "absent field is the zero value, never an error")
}

func TestZoneDualIDConventions(t *testing.T) {
	camel := Zone(api.RawRecord{"idZona": float64(3), "NAZVANIE": "Гръб"})
	snake := Zone(api.RawRecord{"id_zona": "3", "nazvanie": "Гръб"})
	assert.Equal(t, camel.ZoneID, snake.ZoneID)
	assert.Equal(t, camel.Name, snake.Name)
}

func TestProcedureDualPriceConventions(t *testing.T) {
	cat := testCatalog()

	snake := Procedure(api.RawRecord{"obshta_cena": float64(150)}, cat)
	camel := Procedure(api.RawRecord{"obshtaCena": float64(150)}, cat)
	neither := Procedure(api.RawRecord{}, cat)

	assert.Equal(t, 150.0, snake.Price)
	assert.Equal(t, 150.0, camel.Price)
	assert.Zero(t, neither.Price)
}

func TestProcedureDateNormalized(t *testing.T) {
	cat := testCatalog()
	p := Procedure(api.RawRecord{"data": "2026-03-14T00:00:00Z"}, cat)
	assert.Equal(t, "2026-03-14", p.Date)
}

func TestProcedureZonesByNameReconciled(t *testing.T) {
	cat := testCatalog()
	p := Procedure(api.RawRecord{
		"idProcedura": float64(42),
		"idPaciente":  float64(7),
		"zonas": []any{
			map[string]any{"zona": "цели крака", "pulsaciones": "3200"},
			map[string]any{"zona": "Axilas", "pulsaciones": float64(500)},
		},
	}, cat)

	require.Len(t, p.Zones, 2)

	first := p.Zones[0]
	assert.True(t, first.Resolved)
	assert.Equal(t, "10", first.ZoneID, "name is reconciled to the catalog id")
	assert.Equal(t, "Цели крака", first.ZoneName, "canonical spelling wins")
	assert.Equal(t, "3200", first.Pulses)

	second := p.Zones[1]
	assert.True(t, second.Resolved, "alias names resolve too")
	assert.Equal(t, "11", second.ZoneID)
	assert.Equal(t, "500", second.Pulses, "numeric pulse counts become text")
}

func TestProcedureZonesByIDReconciled(t *testing.T) {
	cat := testCatalog()
	p := Procedure(api.RawRecord{
		"zonas": []any{
			map[string]any{"id_zona": float64(11), "pulsaciones": "500"},
		},
	}, cat)

	require.Len(t, p.Zones, 1)
	assert.True(t, p.Zones[0].Resolved)
	assert.Equal(t, "Подмишници", p.Zones[0].ZoneName)
}

func TestProcedureUnknownZoneKeptUnresolved(t *testing.T) {
	cat := testCatalog()
	p := Procedure(api.RawRecord{
		"zonas": []any{
			map[string]any{"zona": "Мистериозна зона", "pulsaciones": "100"},
		},
	}, cat)

	require.Len(t, p.Zones, 1, "unmatched assignments are flagged, not dropped")
	assert.False(t, p.Zones[0].Resolved)
	assert.Empty(t, p.Zones[0].ZoneID)
	assert.Equal(t, "Мистериозна зона", p.Zones[0].ZoneName)
}
