package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"locali/internal/domain"
	"locali/internal/export"
)

func strPtr(s string) *string { return &s }

func flaggedListing() domain.Listing {
	triaged := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return domain.Listing{
		ID:           uuid.New(),
		OwnerID:      uuid.New(),
		Name:         strPtr("Casino Nights"),
		Location:     strPtr("Fitzroy"),
		Tier:         domain.TierBasic,
		TriageStatus: domain.TriageStatusFlagged,
		TriageReason: strPtr("Keyword filter violation: prohibited term \"casino\""),
		TriagedAt:    &triaged,
		ReviewStatus: domain.ReviewStatusPending,
		CreatedAt:    triaged.Add(-time.Hour),
	}
}

func TestListingRow(t *testing.T) {
	l := flaggedListing()
	row := export.ListingRow(&l)

	require.Len(t, row, len(export.Columns))
	assert.Equal(t, l.ID.String(), row[0])
	assert.Equal(t, "Casino Nights", row[1])
	assert.Equal(t, "", row[3])
	assert.Equal(t, "Fitzroy", row[4])
	assert.Equal(t, "", row[5])
	assert.Equal(t, "flagged", row[9])
	assert.Equal(t, "2026-03-01T10:00:00Z", row[11])
	assert.Equal(t, "pending", row[12])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, []domain.Listing{flaggedListing(), flaggedListing()}))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, export.BOM))

	rows, err := csv.NewReader(bytes.NewReader(data[len(export.BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, export.Columns, rows[0])
	assert.Equal(t, "Casino Nights", rows[1][1])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	l := flaggedListing()
	require.NoError(t, export.WriteXLSX(&buf, []domain.Listing{l}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Listing ID", rows[0][0])
	assert.Equal(t, l.ID.String(), rows[1][0])
	assert.Equal(t, "Casino Nights", rows[1][1])
}

func TestParseFormat(t *testing.T) {
	f, ok := export.ParseFormat("")
	assert.True(t, ok)
	assert.Equal(t, export.FormatXLSX, f)

	f, ok = export.ParseFormat("CSV")
	assert.True(t, ok)
	assert.Equal(t, export.FormatCSV, f)

	_, ok = export.ParseFormat("pdf")
	assert.False(t, ok)
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "review_queue_2026-10-17.xlsx", export.BuildFilename("review queue", export.FormatXLSX, now))
	assert.Equal(t, "export_2026-10-17.csv", export.BuildFilename("!!!", export.FormatCSV, now))
}
