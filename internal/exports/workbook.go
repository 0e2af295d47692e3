package exports

import (
	"bytes"
	"fmt"
	"time"

	"orderflow_backend/internal/stage"

	"github.com/xuri/excelize/v2"
)

const (
	boardSheet  = "Orders"
	xlsxType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	fileNameFmt = "orders_%s.xlsx"
)

var boardHeaders = []string{
	"Order Number", "Stage", "Customer", "Address", "Designer", "Salesperson",
	"Splitter", "Order Type", "Categories", "Quote Status", "Status", "Order Date", "Created At",
}

var boardColWidths = []float64{16, 12, 22, 30, 14, 14, 14, 14, 30, 14, 28, 12, 20}

// BuildWorkbook renders the order board into a single-sheet workbook.
func BuildWorkbook(items []stage.Summary) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", boardSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range boardHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(boardSheet, cell, h); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(boardSheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for rowIdx, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(boardSheet, cell, &[]interface{}{
			item.OrderNumber,
			string(item.Stage),
			item.CustomerName,
			item.Address,
			deref(item.Designer),
			deref(item.Salesperson),
			deref(item.Splitter),
			deref(item.OrderType),
			item.CategoryName,
			deref(item.QuoteStatus),
			item.CompositeStatus,
			deref(item.OrderDate),
			item.CreatedAt.UTC().Format(time.DateTime),
		}); err != nil {
			return nil, err
		}
	}

	for i, w := range boardColWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(boardSheet, col, col, w); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(boardSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}
	return f, nil
}

// renderBoard returns the workbook bytes and its file name.
func renderBoard(items []stage.Summary, at time.Time) ([]byte, string, error) {
	f, err := BuildWorkbook(items)
	if err != nil {
		return nil, "", fmt.Errorf("build workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), fmt.Sprintf(fileNameFmt, at.UTC().Format("20060102_150405")), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
