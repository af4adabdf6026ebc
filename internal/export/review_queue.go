// Package export renders the manual review queue as CSV or XLSX for
// offline moderation.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"locali/internal/domain"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a query value to a Format. Empty selects XLSX.
func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatXLSX:
		return FormatXLSX, true
	case FormatCSV:
		return FormatCSV, true
	default:
		return "", false
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// SheetName is the worksheet that holds the queue in XLSX exports.
const SheetName = "Review Queue"

// Columns is the header row shared by both formats.
var Columns = []string{
	"Listing ID",
	"Name",
	"Owner ID",
	"Category ID",
	"Location",
	"Description",
	"Contact Email",
	"Phone",
	"Tier",
	"Triage Status",
	"Triage Reason",
	"Triaged At",
	"Review Status",
	"Created At",
}

// ListingRow converts a listing to a row aligned with Columns.
func ListingRow(l *domain.Listing) []string {
	category := ""
	if l.CategoryID != nil {
		category = l.CategoryID.String()
	}
	return []string{
		l.ID.String(),
		l.DisplayName(),
		l.OwnerID.String(),
		category,
		deref(l.Location),
		deref(l.Description),
		deref(l.ContactEmail),
		deref(l.Phone),
		string(l.Tier),
		string(l.TriageStatus),
		deref(l.TriageReason),
		formatTime(l.TriagedAt),
		string(l.ReviewStatus),
		l.CreatedAt.Format(time.RFC3339),
	}
}

// WriteCSV writes listings as a BOM-prefixed CSV document.
func WriteCSV(w io.Writer, listings []domain.Listing) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for i := range listings {
		if err := cw.Write(ListingRow(&listings[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes listings as a single-sheet workbook.
func WriteXLSX(w io.Writer, listings []domain.Listing) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("creating stream writer: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = excelize.Cell{StyleID: bold, Value: c}
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: bold}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range listings {
		row := ListingRow(&listings[i])
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

var nonFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// BuildFilename returns a Content-Disposition filename of the form
// {prefix}_{YYYY-MM-DD}.{format}.
func BuildFilename(prefix string, f Format, now time.Time) string {
	s := strings.Trim(nonFilenameChars.ReplaceAllString(prefix, "_"), "_")
	if s == "" {
		s = "export"
	}
	return fmt.Sprintf("%s_%s.%s", s, now.Format("2006-01-02"), f)
}
