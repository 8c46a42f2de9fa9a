package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/agentes-admin/internal/models"
	"github.com/noah-isme/agentes-admin/pkg/export"
	appErrors "github.com/noah-isme/agentes-admin/pkg/errors"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

var exportHeaders = []string{"ID", "Fecha", "Día", "Turno", "Curso", "Monitor", "Agentes", "Confirmados", "No confirmados", "Pendientes", "Asistencia %", "Estado"}

var numericHeaders = map[string]bool{
	"ID": true, "Agentes": true, "Confirmados": true, "No confirmados": true, "Pendientes": true, "Asistencia %": true,
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type xlsxRenderer interface {
	Render(data export.Dataset, numeric map[string]bool) ([]byte, error)
}

type resumenFilterer interface {
	Filtrado(ctx context.Context, filter models.ActividadFilter) ([]models.ActividadResumen, string, error)
}

// ExportFile is a rendered report ready to stream.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the filtered activity report.
type ExportService struct {
	resumen resumenFilterer
	csv     csvRenderer
	pdf     pdfRenderer
	xlsx    xlsxRenderer
	title   string
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService constructs an ExportService with the default renderers.
func NewExportService(resumen resumenFilterer, title string, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if title == "" {
		title = "Listado de Actividades"
	}
	return &ExportService{
		resumen: resumen,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		xlsx:    export.NewXLSXExporter("Actividades"),
		title:   title,
		logger:  logger,
		now:     time.Now,
	}
}

// Export renders the filtered summary in format.
func (s *ExportService) Export(ctx context.Context, filter models.ActividadFilter, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatPDF && format != FormatXLSX {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv, pdf or xlsx")
	}

	rows, _, err := s.resumen.Filtrado(ctx, filter)
	if err != nil {
		return nil, err
	}
	dataset := BuildActividadesDataset(rows)

	var (
		data        []byte
		contentType string
	)
	switch format {
	case FormatCSV:
		data, err = s.csv.Render(dataset)
		contentType = "text/csv; charset=utf-8"
	case FormatPDF:
		data, err = s.pdf.Render(dataset, s.title)
		contentType = "application/pdf"
	case FormatXLSX:
		data, err = s.xlsx.Render(dataset, numericHeaders)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	s.logger.Info("actividades exported", zap.String("format", format), zap.Int("rows", len(rows)))
	return &ExportFile{
		Filename:    fmt.Sprintf("actividades_%s.%s", s.now().Format("20060102_150405"), format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// BuildActividadesDataset flattens summary rows into export records.
func BuildActividadesDataset(rows []models.ActividadResumen) export.Dataset {
	dataset := export.Dataset{Headers: exportHeaders, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":             strconv.FormatInt(row.ID, 10),
			"Fecha":          row.Fecha.String(),
			"Día":            row.DiaSemana,
			"Turno":          row.TurnoNombre,
			"Curso":          row.CursoNombre,
			"Monitor":        models.TextOrEmpty(row.MonitorNombre),
			"Agentes":        strconv.Itoa(row.TotalAgentes),
			"Confirmados":    strconv.Itoa(row.AsistenciaConfirmada),
			"No confirmados": strconv.Itoa(row.AsistenciaNoConfirmada),
			"Pendientes":     strconv.Itoa(row.AsistenciaPendiente),
			"Asistencia %":   strconv.FormatFloat(row.AsistenciaPorcentaje, 'f', 2, 64),
			"Estado":         row.Estado,
		})
	}
	return dataset
}
