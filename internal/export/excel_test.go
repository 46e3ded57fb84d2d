package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"clinicdesk/internal/catalog"
	"clinicdesk/internal/domain"
	"clinicdesk/internal/grid"
)

func TestProcedureGridWorkbook(t *testing.T) {
	cat := catalog.New()
	cat.Replace([]domain.Zone{
		{ZoneID: "10", Name: "Цели крака"},
		{ZoneID: "11", Name: "Подмишници"},
	})
	procedures := []domain.Procedure{
		{
			ID: "1", PatientID: "7", Date: "2026-01-15", Price: 150, Comment: "първа",
			Zones: []domain.ZoneAssignment{
				{ZoneID: "10", ZoneName: "Цели крака", Pulses: "3200", Resolved: true},
			},
		},
	}
	g := grid.Build(cat, procedures)
	patient := domain.Patient{ID: "7", Name: "Мария"}

	content, err := ProcedureGrid(patient, g)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Procedures", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)

	zoneHeader, err := f.GetCellValue("Procedures", "D1")
	require.NoError(t, err)
	assert.Equal(t, "Цели крака", zoneHeader)

	pulse, err := f.GetCellValue("Procedures", "D2")
	require.NoError(t, err)
	assert.Equal(t, "3200", pulse)

	date, err := f.GetCellValue("Procedures", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15", date)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "procedures-Мария.xlsx", Filename(domain.Patient{ID: "7", Name: "Мария"}))
	assert.Equal(t, "procedures-7.xlsx", Filename(domain.Patient{ID: "7"}))
}

func TestFilenameStripsPathSeparators(t *testing.T) {
	got := Filename(domain.Patient{ID: "7", Name: "../etc/Мария"})
	assert.Equal(t, "procedures-..-etc-Мария.xlsx", got)
	assert.NotContains(t, got, "/")

	got = Filename(domain.Patient{ID: "7", Name: `a\b`})
	assert.Equal(t, "procedures-a-b.xlsx", got)
}
