// Package export genera los documentos descargables: la hoja de cálculo de
// postulaciones (excelize) y el informe PDF de un proceso de entrevistas (maroto).
package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/recruitment-api/internal/application/ports"
	"github.com/jhoicas/recruitment-api/internal/domain/entity"
)

var _ ports.SpreadsheetExporter = (*XLSXExporter)(nil)

// ApplicationsSheet nombre de la única hoja del libro exportado.
const ApplicationsSheet = "Applications"

var applicationHeaders = []string{"ID", "Candidate", "Email", "Job Opening", "Company", "Status", "Applied Date"}

// XLSXExporter implementa ports.SpreadsheetExporter con excelize.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

// ExportApplications escribe una fila por postulación, con cabecera fija y autofiltro.
func (e *XLSXExporter) ExportApplications(_ context.Context, rows []*entity.ApplicationDetail) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ApplicationsSheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	widths := []float64{8, 28, 32, 30, 26, 14, 14}
	for i, h := range applicationHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ApplicationsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: cabecera: %w", err)
		}
		colName, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(ApplicationsSheet, colName, colName, widths[i]); err != nil {
			return nil, fmt.Errorf("xlsx: ancho de columna: %w", err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(applicationHeaders), 1)
	if err := f.SetCellStyle(ApplicationsSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	for i, a := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			a.ID,
			a.CandidateName,
			a.CandidateEmail,
			a.JobTitle,
			a.CompanyName,
			string(a.Status),
			a.AppliedDate.UTC().Format("2006-01-02"),
		}
		if err := f.SetSheetRow(ApplicationsSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}

	if len(rows) > 0 {
		lastCell, _ := excelize.CoordinatesToCellName(len(applicationHeaders), len(rows)+1)
		if err := f.AutoFilter(ApplicationsSheet, "A1:"+lastCell, nil); err != nil {
			return nil, fmt.Errorf("xlsx: autofiltro: %w", err)
		}
	}
	if err := f.SetPanes(ApplicationsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("xlsx: fijar cabecera: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
