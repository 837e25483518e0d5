package export

// Layout de la página A4 del informe de proceso:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Candidato + email     │  Proceso N° + estado        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VACANTE: título / empresa / plantilla                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Etapa | Estado | Fecha | Puntaje | Feedback      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: fecha de generación                                 │
//	└─────────────────────────────────────────────────────────────┘

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/recruitment-api/internal/application/ports"
)

var _ ports.ProcessReportGenerator = (*ProcessReportPDF)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorBand    = &props.Color{Red: 232, Green: 238, Blue: 245}
)

// ProcessReportPDF implementa ports.ProcessReportGenerator usando Maroto v2.
type ProcessReportPDF struct {
	now func() time.Time
}

// NewProcessReportPDF construye el generador.
func NewProcessReportPDF() *ProcessReportPDF {
	return &ProcessReportPDF{now: time.Now}
}

// GenerateProcessReport genera el PDF y devuelve sus bytes.
func (g *ProcessReportPDF) GenerateProcessReport(_ context.Context, r ports.ProcessReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Interview process #%d", r.Process.ID), true).
		WithAuthor(r.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(reportHeaderRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(jobRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(stepsHeaderRow())
	m.AddRows(stepRows(r.Steps)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Generated "+g.now().UTC().Format("2006-01-02 15:04")+" UTC", props.Text{
			Size: 7, Align: align.Right, Color: colorGray, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// reportHeaderRow: candidato (izq) y número + estado del proceso (der).
func reportHeaderRow(r ports.ProcessReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(r.CandidateName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(r.CandidateMail, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("INTERVIEW PROCESS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("#%d", r.Process.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Status: "+string(r.Process.Status), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func jobRow(r ports.ProcessReport) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("JOB OPENING", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(r.JobTitle, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Company: %s   |   Template: %s",
				nonEmpty(r.CompanyName, "-"),
				nonEmpty(r.TemplateName, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func stepsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Step", 3, align.Left),
		h("Status", 2, align.Left),
		h("Scheduled", 2, align.Left),
		h("Score", 1, align.Right),
		h("Feedback", 3, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorBand})
}

func stepRows(steps []ports.ProcessReportStep) []core.Row {
	rows := make([]core.Row, 0, len(steps))
	for _, s := range steps {
		scheduled := "-"
		if s.ScheduledAt != nil {
			scheduled = s.ScheduledAt.UTC().Format("2006-01-02 15:04")
		}
		score := "-"
		if s.Score != nil {
			score = s.Score.StringFixed(1)
		}
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(s.Order), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(s.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(string(s.Status), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(scheduled, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(score, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(nonEmpty(s.Feedback, "-"), props.Text{Size: 7, Top: 1, Left: 1, Color: colorGray})),
		))
	}
	return rows
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
