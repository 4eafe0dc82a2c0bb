package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbookSummaryOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteWorkbook(path, sampleResult(), false))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet}, f.GetSheetList())

	v, err := f.GetCellValue(summarySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "bugs with tag count != 1", v)

	v, err = f.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, `ixBug:"20" OR ixBug:"30"`, v)

	// Header row after the anomaly block.
	v, err = f.GetCellValue(summarySheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "dev_name", v)

	// Alice's web-ui cell: dev_name, None, web-ui => column C.
	v, err = f.GetCellValue(summarySheet, "C5")
	require.NoError(t, err)
	assert.Equal(t, "2.5", v)
}

func TestWriteWorkbookWithDetails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteWorkbook(path, sampleResult(), true))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, detailSheet}, f.GetSheetList())

	v, err := f.GetCellValue(detailSheet, "A4")
	require.NoError(t, err)
	assert.Equal(t, "date", v)

	v, err = f.GetCellValue(detailSheet, "D5")
	require.NoError(t, err)
	assert.Equal(t, "Login broken", v)

	v, err = f.GetCellValue(detailSheet, "J5")
	require.NoError(t, err)
	assert.Equal(t, EntryTimesheet, v)
}
