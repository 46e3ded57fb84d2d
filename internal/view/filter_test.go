package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicdesk/internal/domain"
)

func TestSortPatientsLocaleAwareCaseInsensitive(t *testing.T) {
	patients := []domain.Patient{
		{Name: "Ana"},
		{Name: "Zara"},
		{Name: "boris"},
	}

	sorted := SortPatients(patients, SortByName, Ascending)
	var names []string
	for _, p := range sorted {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Ana", "boris", "Zara"}, names)
}

func TestSortPatientsStableAndReversible(t *testing.T) {
	patients := []domain.Patient{
		{Name: "Ana", Email: "first@x.bg"},
		{Name: "Zara"},
		{Name: "ana", Email: "second@x.bg"},
		{Name: "Boris"},
	}

	asc := SortPatients(patients, SortByName, Ascending)
	desc := SortPatients(patients, SortByName, Descending)

	// Equal keys preserve input order in both directions.
	assert.Equal(t, "first@x.bg", asc[0].Email)
	assert.Equal(t, "second@x.bg", asc[1].Email)
	assert.Equal(t, "first@x.bg", desc[2].Email)
	assert.Equal(t, "second@x.bg", desc[3].Email)

	// Non-equal keys reverse.
	assert.Equal(t, "Zara", desc[0].Name)
	assert.Equal(t, "Boris", desc[1].Name)
}

func TestSortPatientsByEmail(t *testing.T) {
	patients := []domain.Patient{
		{Name: "B", Email: "zz@x.bg"},
		{Name: "A", Email: "aa@x.bg"},
	}
	sorted := SortPatients(patients, SortByEmail, Ascending)
	assert.Equal(t, "aa@x.bg", sorted[0].Email)
}

func TestFilterPatientsMatchesNameEmailPhone(t *testing.T) {
	patients := []domain.Patient{
		{Name: "Мария Иванова", Email: "maria@x.bg", Phone: "0888123456"},
		{Name: "Иван Петров", Email: "ivan@x.bg", Phone: "0899"},
	}

	assert.Len(t, FilterPatients(patients, "мАрИя"), 1)
	assert.Len(t, FilterPatients(patients, "x.bg"), 2)
	assert.Len(t, FilterPatients(patients, "0888"), 1)
	assert.Empty(t, FilterPatients(patients, "георги"))
}

func TestFilterPatientsIdempotent(t *testing.T) {
	patients := []domain.Patient{
		{Name: "Мария"},
		{Name: "Иван"},
		{Name: "Марина"},
	}

	once := FilterPatients(patients, "мар")
	twice := FilterPatients(once, "мар")
	assert.Equal(t, once, twice)
}

func TestFilterPatientsDoesNotMutateInput(t *testing.T) {
	patients := []domain.Patient{{Name: "Мария"}, {Name: "Иван"}}
	_ = FilterPatients(patients, "мария")
	assert.Equal(t, "Мария", patients[0].Name)
	assert.Len(t, patients, 2)
}

func TestFilterProceduresNarrowsAssignments(t *testing.T) {
	procedures := []domain.Procedure{
		{
			ID: "1",
			Zones: []domain.ZoneAssignment{
				{ZoneName: "Цели крака", Pulses: "3200"},
				{ZoneName: "Подмишници", Pulses: "500"},
			},
		},
		{
			ID: "2",
			Zones: []domain.ZoneAssignment{
				{ZoneName: "Бикини", Pulses: "450"},
			},
		},
	}

	got := FilterProcedures(procedures, "крака")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
	require.Len(t, got[0].Zones, 1, "retained procedures show only the matching subset")
	assert.Equal(t, "Цели крака", got[0].Zones[0].ZoneName)

	// Display-only narrowing: the cached procedure still has both zones.
	assert.Len(t, procedures[0].Zones, 2)
}

func TestFilterProceduresEmptyTermCopiesAll(t *testing.T) {
	procedures := []domain.Procedure{{ID: "1"}, {ID: "2"}}
	got := FilterProcedures(procedures, "  ")
	assert.Len(t, got, 2)
}
