package report

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/odonto/odonto/internal/domain/odontogram"
)

// SnapshotResolver resolves a chart snapshot handle to its PNG bytes.
type SnapshotResolver interface {
	Resolve(ctx context.Context, handle string) ([]byte, error)
}

// CaptureError reports a failed chart snapshot resolution. Non-fatal: the
// report degrades to a placeholder line and continues.
type CaptureError struct {
	Handle string
	Err    error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture chart snapshot %q: %v", e.Handle, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// DefaultClinicName is used when the input carries no clinic name.
const DefaultClinicName = "Dental Clinic"

// capturePlaceholder is emitted in place of the chart image when resolution
// fails.
const capturePlaceholder = "(error capturing chart image)"

// Page geometry in millimeters (A4 portrait).
const (
	pageMargin = 14.0
	topMargin  = 20.0
	pageBottom = 270.0
	rowHeight  = 8.0
)

// Ledger column widths in millimeters; they sum to the usable page width.
var colWidths = [6]float64{24, 18, 24, 44, 50, 22}

var colHeaders = [6]string{"Date", "Tooth", "Surface", "Diagnosis", "Notes", "Cost"}

// Input is everything the generator consumes. Conditions carry their own
// order; the generator never re-sorts them.
type Input struct {
	ClinicName          string
	PatientName         string
	PatientEmail        string
	PatientPhone        string
	Odontogram          *odontogram.Odontogram
	Conditions          []*odontogram.ToothCondition
	ChartSnapshotHandle string
}

// Document is the generated report.
type Document struct {
	Filename      string      `json:"filename"`
	PDF           []byte      `json:"-"`
	Rows          []LedgerRow `json:"rows"`
	ChartEmbedded bool        `json:"chart_embedded"`
	Pages         int         `json:"pages"`
}

// Generator produces reports. It is stateless between calls; two calls with
// identical input yield identical ledger content.
type Generator struct {
	resolver SnapshotResolver
	now      func() time.Time
}

func NewGenerator(resolver SnapshotResolver) *Generator {
	return &Generator{resolver: resolver, now: time.Now}
}

// SetClock replaces the generator clock, for tests.
func (g *Generator) SetClock(now func() time.Time) { g.now = now }

// Generate runs the single-pass pipeline: header, identity blocks, chart
// image (placeholder on capture failure), ledger table with manual
// pagination. A missing patient name or an empty condition list still yields
// a valid document; a nil odontogram is a programming error.
func (g *Generator) Generate(ctx context.Context, in Input) (*Document, error) {
	if in.Odontogram == nil {
		return nil, fmt.Errorf("report: nil odontogram")
	}

	generatedAt := g.now()
	clinic := in.ClinicName
	if clinic == "" {
		clinic = DefaultClinicName
	}

	chartPNG, chartW, chartH, captureErr := g.resolveChart(ctx, in.ChartSnapshotHandle)
	rows := BuildLedgerRows(in.Conditions)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	usableW := pageW - 2*pageMargin

	// Header
	pdf.SetY(topMargin)
	pdf.SetX(pageMargin)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(usableW, 9, clinic, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetX(pageMargin)
	pdf.CellFormat(usableW, 6, "Generated: "+generatedAt.Format(DateLayout), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Patient identity block
	pdf.SetFont("Helvetica", "", 11)
	writeLine := func(s string) {
		pdf.SetX(pageMargin)
		pdf.CellFormat(usableW, 6, s, "", 1, "L", false, 0, "")
	}
	writeLine("Patient: " + in.PatientName)
	if in.PatientEmail != "" {
		writeLine("Email: " + in.PatientEmail)
	}
	if in.PatientPhone != "" {
		writeLine("Phone: " + in.PatientPhone)
	}

	// Odontogram identity block
	writeLine("Odontogram: " + in.Odontogram.Name)
	writeLine("Created: " + FormatDate(in.Odontogram.CreatedDate))
	pdf.Ln(4)

	// Chart image, scaled to the usable width preserving the intrinsic
	// aspect ratio. Capture failure degrades to a placeholder line.
	chartEmbedded := false
	if captureErr == nil {
		imgW := usableW
		imgH := imgW * float64(chartH) / float64(chartW)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("chart", opts, bytes.NewReader(chartPNG))
		pdf.ImageOptions("chart", pageMargin, pdf.GetY(), imgW, imgH, false, opts, 0, "")
		pdf.SetY(pdf.GetY() + imgH + 6)
		chartEmbedded = true
	} else {
		pdf.SetFont("Helvetica", "I", 10)
		writeLine(capturePlaceholder)
		pdf.Ln(4)
	}

	// Ledger table. The header row is emitted once; continuation pages start
	// directly with data rows.
	if len(rows) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetX(pageMargin)
		for i, h := range colHeaders {
			pdf.CellFormat(colWidths[i], rowHeight, h, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(rowHeight)

		pdf.SetFont("Helvetica", "", 10)
		for _, row := range rows {
			if pdf.GetY() > pageBottom {
				pdf.AddPage()
				pdf.SetY(topMargin)
			}
			pdf.SetX(pageMargin)
			cells := [6]string{row.Date, row.Tooth, row.Surfaces, row.Diagnosis, row.Notes, row.Cost}
			for i, cell := range cells {
				pdf.CellFormat(colWidths[i], rowHeight, cell, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(rowHeight)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	return &Document{
		Filename:      Filename(in.PatientName, generatedAt),
		PDF:           buf.Bytes(),
		Rows:          rows,
		ChartEmbedded: chartEmbedded,
		Pages:         pdf.PageCount(),
	}, nil
}

// resolveChart fetches and decodes the snapshot. Any failure, including a
// missing handle, comes back as a CaptureError for the caller to degrade on.
func (g *Generator) resolveChart(ctx context.Context, handle string) (data []byte, w, h int, err error) {
	if handle == "" {
		return nil, 0, 0, &CaptureError{Handle: handle, Err: fmt.Errorf("no snapshot handle")}
	}
	data, err = g.resolver.Resolve(ctx, handle)
	if err != nil {
		return nil, 0, 0, &CaptureError{Handle: handle, Err: err}
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, &CaptureError{Handle: handle, Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, 0, 0, &CaptureError{Handle: handle, Err: fmt.Errorf("empty image")}
	}
	return data, cfg.Width, cfg.Height, nil
}
