package summary

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"voyagent/models"
)

// RenderPDF renders r as an A4 report and returns the document bytes.
func RenderPDF(r *Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 8, fmt.Sprintf("VoyAgent - Not a booking confirmation - Page %d", pdf.PageNo()),
			"", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "VoyAgent", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Travel search report", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 12, "FD")
	pdf.SetXY(23, y+2)
	disclaimer := "This is NOT a booking confirmation. Prices are subject to change. Please verify with providers before booking."
	if r.Estimated {
		disclaimer = "ESTIMATED PRICES: live provider data was not available. This is NOT a booking confirmation."
	}
	pdf.MultiCell(164, 4, disclaimer, "", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+tr(title), "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(45, 6, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(125, 6, tr(value), "", "L", false)
	}

	// ── Request ──────────────────────────────────────────────
	sectionHeader("Request")
	if r.Query != "" {
		row("Query", r.Query)
	}
	if in := r.Intent; in != nil {
		if in.Origin != "" {
			row("From", in.Origin)
		}
		row("Destination", in.Location)
		row("Dates", fmt.Sprintf("%s to %s", readableDate(in.ArrivalDate), readableDate(in.DepartureDate)))
		row("Travelers", fmt.Sprintf("%d adult(s), %d child(ren)", in.GuestQty, in.ChildrenQty))
		if in.Budget.Valid {
			row("Budget", FormatPrice(in.Budget, "USD"))
		}
	}
	generated := r.GeneratedAt
	if generated.IsZero() {
		generated = time.Now().UTC()
	}
	row("Generated", generated.Format("02 Jan 2006, 15:04 UTC"))
	if r.ID != "" {
		row("Reference", r.ID)
	}
	pdf.Ln(4)

	// ── Offers ───────────────────────────────────────────────
	for _, s := range r.Sections {
		sectionHeader(Header(r.Intent, s.Kind))
		if s.Err != nil {
			row("Status", fmt.Sprintf("No results: %v", s.Err))
			pdf.Ln(4)
			continue
		}
		if len(s.Offers) == 0 {
			row("Status", "No results found.")
			pdf.Ln(4)
			continue
		}
		for i, o := range s.Offers {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(170, 7, tr(fmt.Sprintf("%d. %s", i+1, o.Name)), "", 1, "L", false, 0, "")
			row("Price", FormatPrice(o.Price, o.Currency))
			if o.Kind == models.KindFlight {
				row("Departs", o.Dates.Start)
				row("Arrives", o.Dates.End)
				row("Duration", fmt.Sprintf("%s, %s", o.Duration, Stops(o.Stops)))
			} else if o.Rating > 0 {
				row("Rating", fmt.Sprintf("%.1f", o.Rating))
			}
			if o.Link != "" {
				pdf.SetFont("Helvetica", "U", 9)
				pdf.SetTextColor(30, 80, 160)
				pdf.CellFormat(170, 6, "Book or view details", "", 1, "L", false, 0, o.Link)
				pdf.SetTextColor(0, 0, 0)
			}
			pdf.Ln(2)
		}
		pdf.Ln(2)
	}

	// ── Recommendation ───────────────────────────────────────
	if r.Recommendation != "" || r.Advice != "" {
		sectionHeader("Recommendation")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		if r.Recommendation != "" {
			pdf.MultiCell(170, 5, tr(r.Recommendation), "", "L", false)
			pdf.Ln(2)
		}
		if r.Advice != "" {
			pdf.MultiCell(170, 5, tr(r.Advice), "", "L", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func readableDate(iso string) string {
	t, err := time.Parse(models.DateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006 (Mon)")
}
