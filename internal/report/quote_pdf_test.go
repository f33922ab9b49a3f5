package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/calculator"
	"github.com/soulcounter486-lgtm/Travel-Planner-sub001/internal/models"
)

func TestQuotePDF(t *testing.T) {
	req := calculator.QuoteRequest{
		Villa: &calculator.VillaRequest{Enabled: true, CheckInDate: "2024-06-07", CheckOutDate: "2024-06-09"},
		Golf: &calculator.GolfRequest{Enabled: true, Selections: []calculator.GolfSelection{
			{Date: "2024-06-08", Course: "paradise", Players: 2},
		}},
	}
	b := calculator.CalculateQuote(req)
	q := &models.Quote{
		ID:           "q-1",
		CustomerName: "Lee",
		Request:      req,
		Breakdown:    b,
		Total:        b.Total,
		CreatedAt:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Unix(),
	}

	out, err := QuotePDF(q)
	if err != nil {
		t.Fatalf("QuotePDF failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output does not look like a PDF: %q", out[:min(len(out), 16)])
	}
}

func TestQuotePDF_EmptyBreakdown(t *testing.T) {
	q := &models.Quote{ID: "q-empty", Breakdown: calculator.CalculateQuote(calculator.QuoteRequest{})}
	if _, err := QuotePDF(q); err != nil {
		t.Fatalf("QuotePDF failed: %v", err)
	}
}

func TestTextEncoder(t *testing.T) {
	tr := textEncoder(gofpdf.New("P", "mm", "A4", ""))

	if got := tr("Caf\u00e9 Lee"); got != "Caf\xe9 Lee" {
		t.Errorf("latin text = %q, want cp1252 bytes", got)
	}
	if got := tr("Nguy\u1ec5n \uae40"); strings.ContainsAny(got, "\u1ec5\uae40") {
		t.Errorf("characters outside cp1252 leaked through: %q", got)
	}
}

func TestQuotePDF_UnicodeCustomer(t *testing.T) {
	b := calculator.CalculateQuote(calculator.QuoteRequest{
		Guide: &calculator.GuideRequest{Enabled: true, Days: 1, GroupSize: 2},
	})
	q := &models.Quote{ID: "q-2", CustomerName: "Nguy\u1ec5n V\u0103n \uae40", Breakdown: b, Total: b.Total}

	out, err := QuotePDF(q)
	if err != nil {
		t.Fatalf("QuotePDF failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("expected PDF output")
	}
}
