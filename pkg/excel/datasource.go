package excel

import "context"

// RowIterator yields one row per call and (nil, nil) once exhausted.
type RowIterator func() ([]interface{}, error)

// DataSource feeds rows to the exporter.
type DataSource interface {
	GetHeaders() []string
	GetSheetName() string
	GetRowIterator(ctx context.Context) (RowIterator, error)
}

// SliceDataSource serves rows already held in memory.
type SliceDataSource struct {
	headers   []string
	rows      [][]interface{}
	sheetName string
}

func NewSliceDataSource(headers []string, rows [][]interface{}) *SliceDataSource {
	return &SliceDataSource{
		headers:   headers,
		rows:      rows,
		sheetName: "Sheet1",
	}
}

func (s *SliceDataSource) WithSheetName(name string) *SliceDataSource {
	if name != "" {
		s.sheetName = name
	}
	return s
}

func (s *SliceDataSource) GetHeaders() []string {
	return s.headers
}

func (s *SliceDataSource) GetSheetName() string {
	return s.sheetName
}

func (s *SliceDataSource) GetRowIterator(ctx context.Context) (RowIterator, error) {
	i := 0
	return func() ([]interface{}, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i >= len(s.rows) {
			return nil, nil
		}
		row := s.rows[i]
		i++
		return row, nil
	}, nil
}
