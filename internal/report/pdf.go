package report

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	colorPrimary = &props.Color{Red: 13, Green: 71, Blue: 161}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PDFGenerator renders a single checklist instance as an A4 document:
// metadata header, one row per question with its answer and comment, then
// the collected signatures.
type PDFGenerator struct{}

func NewPDFGenerator() *PDFGenerator { return &PDFGenerator{} }

func (g *PDFGenerator) Generate(header *Header, rows []Row, signatures []SignatureImage) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Checklist "+header.ExternalID, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(header))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(metadataRow(header))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(answerHeaderRow())
	for _, r := range answerRows(rows) {
		m.AddRows(r)
	}

	if header.TotalScore != nil {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(scoreRow(header))
	}

	if len(signatures) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(signatureRows(signatures)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate checklist pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(h *Header) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(h.TemplateName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Checklist "+h.ExternalID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(statusLabel(h.Status), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 2,
			}),
			text.New("Date: "+h.FillDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

func metadataRow(h *Header) core.Row {
	subject := h.EmployeeName
	subjectLabel := "Employee"
	if subject == "" {
		subject = h.EquipmentName
		subjectLabel = "Equipment"
	}

	schedule := ""
	if h.DayNumber != nil {
		schedule = fmt.Sprintf("Day %d / Week %d", *h.DayNumber, derefInt(h.WeekNumber))
	} else if h.WeekNumber != nil {
		schedule = fmt.Sprintf("Week %d evaluation", *h.WeekNumber)
	}

	return row.New(14).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("%s: %s   |   Sector: %s", subjectLabel, nonEmpty(subject, "—"), nonEmpty(h.SectorName, "—")),
				props.Text{Size: 9, Top: 1}),
			text.New(fmt.Sprintf("Leader: %s   |   Evaluator: %s   %s",
				nonEmpty(h.LeaderName, "—"),
				nonEmpty(h.EvaluatorName, "—"),
				schedule,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func answerHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Item", 6, align.Left),
		h("Answer", 2, align.Center),
		h("Comment", 4, align.Left),
	)
}

func answerRows(rows []Row) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(r.Question, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(2).Add(text.New(answerLabel(r.Value), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(4).Add(text.New(r.Comment, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray,
			})),
		))
	}
	return result
}

func scoreRow(h *Header) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(4).Add(
			text.New(fmt.Sprintf("Total score: %.1f", *h.TotalScore), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 2, Right: 1,
			}),
		),
	)
}

func signatureRows(signatures []SignatureImage) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("SIGNATURES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	width := 12 / len(signatures)
	if width < 3 {
		width = 3
	}

	sigRow := row.New(30)
	for _, sig := range signatures {
		sigRow.Add(col.New(width).Add(
			image.NewFromBytes(sig.PNG, extension.Png, props.Rect{
				Percent: 80,
				Center:  true,
			}),
		))
	}
	rows = append(rows, sigRow)

	labelRow := row.New(6)
	for _, sig := range signatures {
		labelRow.Add(col.New(width).Add(
			text.New(sig.Label, props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 1,
			}),
		))
	}
	rows = append(rows, labelRow)

	return rows
}

func statusLabel(status string) string {
	switch status {
	case "awaiting_validation":
		return "AWAITING VALIDATION"
	case "non_compliant":
		return "NON-COMPLIANT"
	case "in_progress":
		return "IN PROGRESS"
	default:
		if status == "" {
			return "—"
		}
		out := []byte(status)
		for i := range out {
			if out[i] >= 'a' && out[i] <= 'z' {
				out[i] -= 'a' - 'A'
			}
		}
		return string(out)
	}
}

func answerLabel(value string) string {
	switch value {
	case "yes":
		return "Yes"
	case "no":
		return "No"
	case "partial":
		return "Partial"
	case "not_applicable":
		return "N/A"
	}
	return value
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
