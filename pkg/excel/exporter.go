package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

type ExportOptions struct {
	IncludeHeaders bool
	AutoFilter     bool
	FreezeHeader   bool
	// MaxRows caps data rows; zero means unlimited.
	MaxRows int
}

type StyleOptions struct {
	HeaderStyle *excelize.Style
	ColumnWidth float64
}

func DefaultOptions() *ExportOptions {
	return &ExportOptions{
		IncludeHeaders: true,
		AutoFilter:     true,
		FreezeHeader:   true,
	}
}

func DefaultStyleOptions() *StyleOptions {
	return &StyleOptions{
		HeaderStyle: &excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		},
		ColumnWidth: 20,
	}
}

type ExcelExporter struct {
	options *ExportOptions
	styles  *StyleOptions
}

func NewExcelExporter(opts *ExportOptions, styleOpts *StyleOptions) *ExcelExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	if styleOpts == nil {
		styleOpts = DefaultStyleOptions()
	}
	return &ExcelExporter{options: opts, styles: styleOpts}
}

// Export renders ds into an xlsx workbook with a single sheet.
func (e *ExcelExporter) Export(ctx context.Context, ds DataSource) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := ds.GetSheetName()
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := ds.GetHeaders()
	row := 1
	if e.options.IncludeHeaders && len(headers) > 0 {
		if err := e.writeHeaders(f, sheet, headers); err != nil {
			return nil, err
		}
		row++
	}

	next, err := ds.GetRowIterator(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	written := 0
	for {
		if e.options.MaxRows > 0 && written >= e.options.MaxRows {
			break
		}
		values, err := next()
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", written+1, err)
		}
		if values == nil {
			break
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
		row++
		written++
	}

	if len(headers) > 0 {
		if err := e.finish(f, sheet, len(headers), row-1); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *ExcelExporter) writeHeaders(f *excelize.File, sheet string, headers []string) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	if e.styles.HeaderStyle == nil {
		return nil
	}
	styleID, err := f.NewStyle(e.styles.HeaderStyle)
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, styleID)
}

func (e *ExcelExporter) finish(f *excelize.File, sheet string, cols, lastRow int) error {
	lastCol, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}
	if e.styles.ColumnWidth > 0 {
		if err := f.SetColWidth(sheet, "A", lastCol, e.styles.ColumnWidth); err != nil {
			return err
		}
	}
	if !e.options.IncludeHeaders {
		return nil
	}
	if e.options.FreezeHeader {
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("failed to freeze header: %w", err)
		}
	}
	if e.options.AutoFilter {
		if err := f.AutoFilter(sheet, fmt.Sprintf("A1:%s%d", lastCol, lastRow), nil); err != nil {
			return fmt.Errorf("failed to set auto filter: %w", err)
		}
	}
	return nil
}
