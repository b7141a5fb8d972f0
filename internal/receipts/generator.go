package receipts

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf/v2"

	"mboma-backend/internal/archive"
	"mboma-backend/internal/models"
	"mboma-backend/internal/timeutil"
)

// Generator renders deposit receipts as text and PDF files under Dir and,
// when an archiver is configured, uploads copies to object storage.
type Generator struct {
	Dir      string
	Archiver *archive.Uploader
}

func NewGenerator(dir string, archiver *archive.Uploader) (*Generator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create receipts directory: %w", err)
	}
	return &Generator{Dir: dir, Archiver: archiver}, nil
}

// Issue writes <number>.txt and <number>.pdf for a receipt. The text file is
// the canonical artifact; PDF or archive failures are logged but do not fail
// the issue.
func (g *Generator) Issue(ctx context.Context, rcpt *models.Receipt) error {
	text := RenderText(rcpt)
	txtPath := filepath.Join(g.Dir, rcpt.Number+".txt")
	if err := os.WriteFile(txtPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write receipt %s: %w", rcpt.Number, err)
	}

	pdfBytes, err := renderPDF(rcpt)
	if err != nil {
		log.Printf("[Receipt] PDF render failed for %s: %v", rcpt.Number, err)
	} else {
		pdfPath := filepath.Join(g.Dir, rcpt.Number+".pdf")
		if err := os.WriteFile(pdfPath, pdfBytes, 0o644); err != nil {
			log.Printf("[Receipt] PDF write failed for %s: %v", rcpt.Number, err)
			pdfBytes = nil
		}
	}

	if g.Archiver != nil {
		if err := g.Archiver.Upload(ctx, rcpt.Number+".txt", []byte(text), "text/plain"); err != nil {
			log.Printf("[Receipt] Archive upload failed for %s.txt: %v", rcpt.Number, err)
		}
		if pdfBytes != nil {
			if err := g.Archiver.Upload(ctx, rcpt.Number+".pdf", pdfBytes, "application/pdf"); err != nil {
				log.Printf("[Receipt] Archive upload failed for %s.pdf: %v", rcpt.Number, err)
			}
		}
	}

	return nil
}

// RenderText produces the plain-text receipt handed to the tenant
func RenderText(rcpt *models.Receipt) string {
	var buf bytes.Buffer
	buf.WriteString("========== PAYMENT RECEIPT ==========\n")
	fmt.Fprintf(&buf, "Receipt Number: %s\n", rcpt.Number)
	fmt.Fprintf(&buf, "Date: %s\n", timeutil.FormatEAT(rcpt.Date, timeutil.DateTimeLayout))
	fmt.Fprintf(&buf, "Customer: %s\n", rcpt.CustomerName)
	fmt.Fprintf(&buf, "Phone: %s\n", rcpt.Phone)
	fmt.Fprintf(&buf, "Email: %s\n", rcpt.Email)
	fmt.Fprintf(&buf, "Property: %s at %s\n", rcpt.HouseType, rcpt.HouseAddress)
	fmt.Fprintf(&buf, "Amount Paid: KES %.2f\n", rcpt.Amount)
	fmt.Fprintf(&buf, "Payment Method: %s\n", rcpt.Method)
	buf.WriteString("Status: PAID\n")
	buf.WriteString("======================================\n")
	return buf.String()
}

func renderPDF(rcpt *models.Receipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(180, 10, "M-Boma Housing - Deposit Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(180, 6, fmt.Sprintf("Receipt %s - %s", rcpt.Number, timeutil.FormatEAT(rcpt.Date, timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Tenant Info Box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(180, 8, "Tenant", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(90, 7, fmt.Sprintf("Name: %s", rcpt.CustomerName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(90, 7, fmt.Sprintf("Phone: %s", rcpt.Phone), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(180, 7, fmt.Sprintf("Email: %s", rcpt.Email), "LRB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Payment Details
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(180, 8, "Payment", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(180, 7, fmt.Sprintf("Property: %s at %s", rcpt.HouseType, rcpt.HouseAddress), "LRB", 1, "L", false, 0, "")
	pdf.CellFormat(90, 7, fmt.Sprintf("Amount Paid: KES %.2f", rcpt.Amount), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(90, 7, fmt.Sprintf("Method: %s", rcpt.Method), "RB", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(180, 8, "Status: PAID", "LRB", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
