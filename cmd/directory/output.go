package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/iota-uz/employee-directory/modules/directory/domain/aggregates/employee"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

type employeeLine struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	City      string `json:"city"`
}

func writeJSONLines(w io.Writer, items []employee.Employee) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, e := range items {
		line := employeeLine{ID: e.ID(), FirstName: e.FirstName(), LastName: e.LastName(), City: e.City()}
		if err := enc.Encode(line); err != nil {
			return withCode(exitIO, fmt.Errorf("json encode: %w", err))
		}
	}
	return nil
}

func writeTable(w io.Writer, headers []string, items []employee.Employee) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for _, e := range items {
		t.Row(e.ID(), e.FirstName(), e.LastName(), e.City())
	}
	if _, err := fmt.Fprintln(w, t.String()); err != nil {
		return withCode(exitIO, err)
	}
	return nil
}
