package services

import (
	"bytes"
	"fmt"
	"strings"

	"busreserve/internal/domain"
	"busreserve/internal/utils"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// DocsService renders the e-ticket PDF for a booking.
type DocsService struct {
	Bookings  BookingService
	RequestID string
}

// GenerateETicket builds a single-page e-ticket for a confirmed
// booking, with a QR code carrying the PNR for gate scanning.
func (s DocsService) GenerateETicket(reference string) ([]byte, string, error) {
	detail, err := s.Bookings.GetByReference(reference)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("reference=%s", reference))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	pdf.SetAutoPageBreak(false, 0)

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "SLEEPER BUS E-TICKET")
	pdf.Ln(16)

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(6)

	yStart := pdf.GetY()
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(15, yStart, 120, 62, "F")

	pdf.SetXY(20, yStart+6)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "BOOKING SUMMARY")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)

	line := func(label, value string) {
		pdf.SetX(20)
		pdf.Cell(0, 7, fmt.Sprintf("%s: %s", label, value))
		pdf.Ln(6)
	}
	line("Reference", detail.BookingID)
	line("PNR", detail.PNR)
	line("Passenger", detail.Passenger.Name)
	line("Route", fmt.Sprintf("%s to %s", detail.Journey.FromStation, detail.Journey.ToStation))
	line("Date", detail.Journey.Date)
	line("Departure", detail.Journey.DepartureTime)
	line("Seats", strings.Join(detail.Seats, ", "))
	line("Total Paid", fmt.Sprintf("Rs. %d", detail.TotalAmount))

	// QR holds the PNR so conductors can look the booking up offline.
	qrBytes, err := qrcode.Encode(detail.PNR, qrcode.Medium, 256)
	if err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render QR code", Err: err}
	}
	pdf.RegisterImageOptionsReader("pnr-qr", gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(qrBytes))
	pdf.ImageOptions("pnr-qr", 145, yStart+8, 45, 0, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")

	pdf.SetY(yStart + 70)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Carry a valid photo ID. Arrive at the boarding point 15 minutes before departure.")
	if detail.Status != "CONFIRMED" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.Cell(0, 6, fmt.Sprintf("STATUS: %s", detail.Status))
		pdf.SetTextColor(0, 0, 0)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render e-ticket", Err: err}
	}
	return buf.Bytes(), fmt.Sprintf("eticket-%s.pdf", detail.BookingID), nil
}
