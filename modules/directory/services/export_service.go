package services

import (
	"context"
	"strings"

	"github.com/iota-uz/employee-directory/modules/directory/domain/aggregates/employee"
	"github.com/iota-uz/employee-directory/pkg/excel"
	"github.com/iota-uz/employee-directory/pkg/metrics"
	"github.com/iota-uz/employee-directory/pkg/serrors"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsxExt         = ".xlsx"
)

var exportHeaders = []string{"ID", "First Name", "Last Name", "City"}

// Download is a generated file ready to be handed to the user.
type Download struct {
	FileName    string
	ContentType string
	Data        []byte
}

type ExportService struct {
	exporter        *excel.ExcelExporter
	sheetName       string
	defaultFileName string
}

func NewExportService(sheetName, defaultFileName string) *ExportService {
	return &ExportService{
		exporter:        excel.NewExcelExporter(excel.DefaultOptions(), excel.DefaultStyleOptions()),
		sheetName:       sheetName,
		defaultFileName: defaultFileName,
	}
}

// Export writes items, in order, to a single-sheet workbook named fileName.xlsx.
// An empty fileName falls back to the configured default.
func (s *ExportService) Export(ctx context.Context, items []employee.Employee, fileName string) (*Download, error) {
	rows := make([][]interface{}, 0, len(items))
	for _, e := range items {
		rows = append(rows, []interface{}{e.ID(), e.FirstName(), e.LastName(), e.City()})
	}

	ds := excel.NewSliceDataSource(exportHeaders, rows).WithSheetName(s.sheetName)
	data, err := s.exporter.Export(ctx, ds)
	if err != nil {
		return nil, serrors.Wrap(employee.ErrExportFailed, err)
	}
	metrics.Exports.Inc()

	return &Download{
		FileName:    s.fileName(fileName),
		ContentType: XLSXContentType,
		Data:        data,
	}, nil
}

func (s *ExportService) fileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultFileName
	}
	if strings.HasSuffix(strings.ToLower(name), xlsxExt) {
		return name
	}
	return name + xlsxExt
}
