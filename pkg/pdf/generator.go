package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// AgreementData is the flattened contract view rendered into the agreement
// summary PDF.
type AgreementData struct {
	ContractID            string
	Title                 string
	ClientName            string
	ClientEmail           string
	StatusLabel           string
	EventDate             *time.Time
	SignedAt              *time.Time
	DeliveryWindowDays    int
	EstimatedDeliveryDate *time.Time
	GeneratedAt           time.Time
}

// Options configures PDF generation.
type Options struct {
	PageSize    string
	Orientation string
	StudioName  string
	FontFamily  string
	FontSize    float64
	HeaderColor Color
}

// Color represents an RGB color.
type Color struct {
	R int
	G int
	B int
}

// DefaultOptions returns default PDF options.
func DefaultOptions() Options {
	return Options{
		PageSize:    "A4",
		Orientation: "P",
		StudioName:  "Studio Portal",
		FontFamily:  "Arial",
		FontSize:    11,
		HeaderColor: Color{R: 52, G: 73, B: 94},
	}
}

// Generator renders agreement summary PDFs.
type Generator struct {
	options Options
}

func NewGenerator(options Options) *Generator {
	if options.PageSize == "" {
		options = DefaultOptions()
	}
	return &Generator{options: options}
}

// RenderAgreement produces the one-page agreement summary for a contract.
func (g *Generator) RenderAgreement(data AgreementData) ([]byte, error) {
	doc := gofpdf.New(g.options.Orientation, "mm", g.options.PageSize, "")
	doc.SetMargins(15, 20, 15)
	doc.AddPage()

	header := g.options.HeaderColor
	doc.SetFillColor(header.R, header.G, header.B)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont(g.options.FontFamily, "B", 16)
	doc.CellFormat(0, 12, g.options.StudioName, "", 1, "L", true, 0, "")

	doc.Ln(4)
	doc.SetTextColor(0, 0, 0)
	doc.SetFont(g.options.FontFamily, "B", 14)
	doc.CellFormat(0, 8, "Photography Agreement Summary", "", 1, "L", false, 0, "")
	doc.SetFont(g.options.FontFamily, "", g.options.FontSize)
	doc.CellFormat(0, 6, data.Title, "", 1, "L", false, 0, "")
	doc.Ln(4)

	rows := [][2]string{
		{"Contract ID", data.ContractID},
		{"Client", data.ClientName},
		{"Client Email", data.ClientEmail},
		{"Status", data.StatusLabel},
		{"Event Date", formatDate(data.EventDate)},
		{"Signed", formatDate(data.SignedAt)},
		{"Delivery Window", fmt.Sprintf("%d days", data.DeliveryWindowDays)},
		{"Estimated Delivery", formatDate(data.EstimatedDeliveryDate)},
	}

	for i, row := range rows {
		if i%2 == 1 {
			doc.SetFillColor(242, 242, 242)
		} else {
			doc.SetFillColor(255, 255, 255)
		}
		doc.SetFont(g.options.FontFamily, "B", g.options.FontSize)
		doc.CellFormat(55, 8, row[0], "", 0, "L", true, 0, "")
		doc.SetFont(g.options.FontFamily, "", g.options.FontSize)
		doc.CellFormat(0, 8, row[1], "", 1, "L", true, 0, "")
	}

	doc.Ln(8)
	doc.SetFont(g.options.FontFamily, "I", 8)
	doc.SetTextColor(120, 120, 120)
	doc.CellFormat(0, 5, fmt.Sprintf("Generated %s", data.GeneratedAt.Format("2006-01-02 15:04 MST")), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render agreement pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}
