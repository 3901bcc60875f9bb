package loader

import (
	"github.com/xuri/excelize/v2"
)

// loadWorkbook returns one sheet per non-empty worksheet, in workbook order.
func loadWorkbook(path string) ([]Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 || len(rows[0]) == 0 {
			continue
		}
		sheet := Sheet{Name: name, Headers: headerRow(rows[0])}
		for _, row := range rows[1:] {
			sheet.Rows = append(sheet.Rows, normalizeRow(row, sheet.Width()))
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}
