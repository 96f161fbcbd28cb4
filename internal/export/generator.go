package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"menuboard/internal/dateutil"
	"menuboard/internal/planboard"
)

// Format selects the export output type.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatCSV Format = "csv"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF, FormatCSV:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}

// Generator renders a week of the plan as a printable menu.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the given days in the requested format. Days are
// expected date-ordered, typically the seven days of a week projection.
func (g *Generator) Generate(days []planboard.DayPlan, format Format) ([]byte, error) {
	switch format {
	case FormatPDF:
		return g.generatePDF(days)
	case FormatCSV:
		return g.generateCSV(days)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// generateCSV writes one row per day with a column per meal type. Entries
// within a slot are joined with "; "; an outing slot renders as "out"
// plus its location.
func (g *Generator) generateCSV(days []planboard.DayPlan) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "weekday"}
	for _, mt := range planboard.MealTypes {
		header = append(header, string(mt))
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, day := range days {
		row := []string{dateutil.FormatDay(day.Date), day.Date.Weekday().String()}
		for _, mt := range planboard.MealTypes {
			row = append(row, slotText(day.Slot(mt)))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// generatePDF draws a one-page week menu table.
func (g *Generator) generatePDF(days []planboard.DayPlan) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 16)
	pdf.AddPage()

	pdf.Cell(0, 10, "Weekly Menu")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	if len(days) > 0 {
		first := dateutil.FormatDay(days[0].Date)
		last := dateutil.FormatDay(days[len(days)-1].Date)
		pdf.Cell(0, 8, fmt.Sprintf("%s - %s", first, last))
	}
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(30, 7, "Day", "1", 0, "C", false, 0, "")
	for _, mt := range planboard.MealTypes {
		pdf.CellFormat(80, 7, titleCase(string(mt)), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, day := range days {
		label := fmt.Sprintf("%s %s", day.Date.Weekday().String()[:3], day.Date.Format("01/02"))
		pdf.CellFormat(30, 8, label, "1", 0, "C", false, 0, "")
		for _, mt := range planboard.MealTypes {
			pdf.CellFormat(80, 8, slotText(day.Slot(mt)), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func slotText(slot *planboard.MealSlot) string {
	if slot == nil {
		return ""
	}
	if slot.IsOutside {
		if slot.OutsideLocation != "" {
			return "out: " + slot.OutsideLocation
		}
		return "out"
	}
	names := make([]string, 0, len(slot.Entries))
	for _, entry := range slot.Entries {
		names = append(names, entry.Name)
	}
	return strings.Join(names, "; ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
