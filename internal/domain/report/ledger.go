// Package report turns an odontogram and a chart snapshot into the printable
// clinical document: a header, patient and chart identity blocks, the
// embedded tooth map image, and the condition ledger table.
package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/odonto/odonto/internal/domain/catalog"
	"github.com/odonto/odonto/internal/domain/odontogram"
)

// DateLayout is the clinical record date format used everywhere in this
// module, on screen and in the report: two-digit day, two-digit month,
// four-digit year.
const DateLayout = "02/01/2006"

// MaxNotesLen is the ledger notes column character limit.
const MaxNotesLen = 30

// LedgerRow is one rendered table row. All columns are final display strings;
// two generations over the same input produce identical rows.
type LedgerRow struct {
	Date      string `json:"date"`
	Tooth     string `json:"tooth"`
	Surfaces  string `json:"surfaces"`
	Diagnosis string `json:"diagnosis"`
	Notes     string `json:"notes"`
	Cost      string `json:"cost"`
}

// FormatDate renders t in the clinical date format, or "-" for a zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DateLayout)
}

// FormatCost renders the cost column: "$0" when absent or zero, otherwise the
// plain amount with a dollar prefix.
func FormatCost(cost *float64) string {
	if cost == nil || *cost == 0 {
		return "$0"
	}
	return "$" + strconv.FormatFloat(*cost, 'f', -1, 64)
}

// TruncateNotes caps notes at MaxNotesLen characters and substitutes "-" for
// absent notes.
func TruncateNotes(notes *string) string {
	if notes == nil || *notes == "" {
		return "-"
	}
	r := []rune(*notes)
	if len(r) > MaxNotesLen {
		return string(r[:MaxNotesLen])
	}
	return *notes
}

// surfaceCell joins the mapped surface codes. Unmapped surfaces degrade to
// their raw stored value rather than failing the row.
func surfaceCell(surfaces []catalog.Surface) string {
	codes := make([]string, len(surfaces))
	for i, s := range surfaces {
		codes[i] = catalog.SurfaceCode(s)
	}
	return strings.Join(codes, ",")
}

// BuildLedgerRow renders one condition into its display row.
func BuildLedgerRow(c *odontogram.ToothCondition) LedgerRow {
	return LedgerRow{
		Date:      FormatDate(c.CreatedDate),
		Tooth:     c.ToothDescriptor(),
		Surfaces:  surfaceCell(c.Surfaces),
		Diagnosis: catalog.ConditionLabel(c.ConditionType),
		Notes:     TruncateNotes(c.Notes),
		Cost:      FormatCost(c.Cost),
	}
}

// BuildLedgerRows renders the full ledger in the conditions' given order. No
// re-sorting: rows reflect entry order.
func BuildLedgerRows(conditions []*odontogram.ToothCondition) []LedgerRow {
	rows := make([]LedgerRow, len(conditions))
	for i, c := range conditions {
		rows[i] = BuildLedgerRow(c)
	}
	return rows
}

// Filename is the default document name:
// Odontograma_{patientName}_{generationDate}.pdf with the clinical date
// format. The name is carried as metadata (Content-Disposition), so the
// slashes in the date are harmless.
func Filename(patientName string, generatedAt time.Time) string {
	return "Odontograma_" + patientName + "_" + generatedAt.Format(DateLayout) + ".pdf"
}
