package data

import (
	"io"

	"github.com/pulsefit/models"
	"github.com/xuri/excelize/v2"
)

// readXLSX reads the first sheet of a workbook. Timestamp cells may hold
// text or Excel serial dates.
func readXLSX(r io.Reader) ([]models.RawSample, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &models.FormatError{Source: "xlsx", Reason: "failed to open workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &models.FormatError{Source: "xlsx", Reason: "workbook has no sheets"}
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &models.FormatError{Source: "xlsx", Reason: "failed to read sheet " + sheets[0], Err: err}
	}
	if len(rows) == 0 {
		return nil, &models.FormatError{Source: "xlsx", Reason: "sheet is empty"}
	}
	return rowsToSamples(rows, parseExcelTimestamp)
}
