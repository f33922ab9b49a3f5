// Package report renders printable documents for saved quotes.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/models"
)

// QuotePDF renders a one-page A4 summary of a saved quote.
func QuotePDF(q *models.Quote) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := textEncoder(pdf)
	pdf.SetTitle("Travel Quote "+q.ID, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Travel Quote")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Quote: %s", q.ID)))
	pdf.Ln(6)
	if q.CustomerName != "" {
		pdf.Cell(0, 7, tr(fmt.Sprintf("Customer: %s", q.CustomerName)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Issued: %s", time.Unix(q.CreatedAt, 0).UTC().Format("Jan 2, 2006")))
	pdf.Ln(10)

	b := q.Breakdown
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(40, 7, "Category")
	pdf.Cell(30, 7, "Price")
	pdf.Cell(0, 7, "Details")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	section(pdf, tr, "Villa", b.Villa.Price, villaNights(q))
	section(pdf, tr, "Vehicle", b.Vehicle.Price, b.Vehicle.Description)
	section(pdf, tr, "Golf", b.Golf.Price, b.Golf.Description)
	section(pdf, tr, "Eco girl", b.EcoGirl.Price, b.EcoGirl.Description)
	section(pdf, tr, "Guide", b.Guide.Price, b.Guide.Description)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Total: $%d", b.Total))
	pdf.Ln(8)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render quote pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write quote pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// textEncoder converts UTF-8 to the cp1252 encoding of the core fonts.
// Characters outside cp1252, such as Vietnamese tones or Hangul, are
// replaced rather than rendered as mojibake.
func textEncoder(pdf *gofpdf.Fpdf) func(string) string {
	return pdf.UnicodeTranslatorFromDescriptor("")
}

// section writes one category row; zero-priced categories are omitted.
func section(pdf *gofpdf.Fpdf, tr func(string) string, label string, price int64, details string) {
	if price == 0 {
		return
	}
	pdf.Cell(40, 6, label)
	pdf.Cell(30, 6, fmt.Sprintf("$%d", price))
	// Description lines are " | " joined; print one per row.
	pdf.MultiCell(0, 6, tr(strings.ReplaceAll(details, " | ", "\n")), "", "L", false)
	pdf.Ln(2)
}

func villaNights(q *models.Quote) string {
	lines := make([]string, 0, len(q.Breakdown.Villa.Details))
	for _, n := range q.Breakdown.Villa.Details {
		lines = append(lines, fmt.Sprintf("%s  $%d", n.Day, n.Price))
	}
	return strings.Join(lines, " | ")
}
