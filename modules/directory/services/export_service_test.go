package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iota-uz/employee-directory/modules/directory/domain/aggregates/employee"
)

func TestExportService_Export(t *testing.T) {
	svc := NewExportService("Employees", "data")
	items := []employee.Employee{
		employee.Hydrate("42", "Grace", "Hopper", "Arlington"),
		employee.Hydrate("43", "Alan", "Turing", "Wilmslow"),
	}

	dl, err := svc.Export(context.Background(), items, "")
	require.NoError(t, err)
	require.Equal(t, "data.xlsx", dl.FileName)
	require.Equal(t, XLSXContentType, dl.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(dl.Data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows("Employees")
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"ID", "First Name", "Last Name", "City"},
		{"42", "Grace", "Hopper", "Arlington"},
		{"43", "Alan", "Turing", "Wilmslow"},
	}, rows)
}

func TestExportService_EmptyListHasHeaderOnly(t *testing.T) {
	svc := NewExportService("Employees", "data")

	dl, err := svc.Export(context.Background(), nil, "staff")
	require.NoError(t, err)
	require.Equal(t, "staff.xlsx", dl.FileName)

	f, err := excelize.OpenReader(bytes.NewReader(dl.Data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows("Employees")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestExportService_FileName(t *testing.T) {
	svc := NewExportService("Employees", "data")
	require.Equal(t, "data.xlsx", svc.fileName("  "))
	require.Equal(t, "report.xlsx", svc.fileName("report"))
	require.Equal(t, "report.XLSX", svc.fileName("report.XLSX"))
}

func TestExportService_CanceledContext(t *testing.T) {
	svc := NewExportService("Employees", "data")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Export(ctx, []employee.Employee{employee.Hydrate("1", "A", "B", "C")}, "")
	require.ErrorIs(t, err, employee.ErrExportFailed)
}
