package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/couchcryptid/sdoh-dashboard/internal/domain"
)

// ToPDF renders a printable summary report: title, metric description,
// generation timestamp, and summary statistics over the present values.
// The summary block is omitted when no record carries a value. An empty
// record list yields a nil byte slice and no error.
func ToPDF(records []domain.Record, metric domain.MetricDefinition, title string, generatedAt time.Time) ([]byte, error) {
	if len(records) == 0 {
		return nil, nil
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 10, title, "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf("Metric: %s", metric.Description), "", "L", false)
	pdf.Ln(2)
	pdf.MultiCell(0, 6, fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04:05")), "", "L", false)
	pdf.Ln(4)

	if summary, ok := domain.Summarize(records); ok {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 7, "Data Summary", "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, fmt.Sprintf("Total locations: %d", summary.Count), "", "L", false)
		pdf.MultiCell(0, 6, fmt.Sprintf("Average: %.2f", summary.Mean), "", "L", false)
		pdf.MultiCell(0, 6, fmt.Sprintf("Minimum: %.2f", summary.Min), "", "L", false)
		pdf.MultiCell(0, 6, fmt.Sprintf("Maximum: %.2f", summary.Max), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
