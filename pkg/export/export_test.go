package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"ID", "Curso", "Asistencia %"},
		Rows: []map[string]string{
			{"ID": "1", "Curso": "Formación Básica", "Asistencia %": "80.00"},
			{"ID": "2", "Curso": "Especialización", "Asistencia %": "0.00"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, UTF8BOM))

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(out, UTF8BOM))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"ID", "Curso", "Asistencia %"}, records[0])
	assert.Equal(t, "Formación Básica", records[1][1])
}

func TestCSVExporterOptions(t *testing.T) {
	out, err := NewCSVExporter(WithComma(';'), WithoutBOM()).Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "ID;Curso;Asistencia %\n", string(out[:len("ID;Curso;Asistencia %\n")]))

	_, err = NewCSVExporter().Render(Dataset{})
	assert.ErrorIs(t, err, errNoHeaders)
}

func TestDatasetRecordFillsMissingCells(t *testing.T) {
	data := Dataset{Headers: []string{"A", "B"}, Rows: []map[string]string{{"B": "x"}}}
	assert.Equal(t, []string{"", "x"}, data.Record(0))
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(), "Listado de Actividades")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = NewPDFExporter().Render(Dataset{}, "")
	assert.Error(t, err)
}

func TestXLSXExporterRender(t *testing.T) {
	out, err := NewXLSXExporter("Actividades").Render(sampleDataset(), map[string]bool{"ID": true, "Asistencia %": true})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Actividades", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Curso", header)
	curso, err := f.GetCellValue("Actividades", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Formación Básica", curso)
	pct, err := f.GetCellValue("Actividades", "C2")
	require.NoError(t, err)
	assert.Equal(t, "80", pct)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "corto", truncate("corto", 40))
	long := "una descripción bastante larga para la celda"
	got := truncate(long, 16)
	assert.Less(t, len([]rune(got)), len([]rune(long)))
	assert.True(t, bytes.HasSuffix([]byte(got), []byte("...")))
}
