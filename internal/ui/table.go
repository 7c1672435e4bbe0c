package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jason-dio-so/insurance-ontology-v3/internal/models"
)

// renderComparisonTable renders the tabular comparison attached to an
// assistant message. The premium and notes columns appear iff at least one
// row in the set carries the field; the capability check runs once per
// render, not per cell.
func renderComparisonTable(data []models.ComparisonResult) string {
	if len(data) == 0 {
		return ""
	}

	hasPremium := false
	hasNotes := false
	for _, row := range data {
		if row.Premium != "" {
			hasPremium = true
		}
		if row.Notes != "" {
			hasNotes = true
		}
	}

	headers := []string{"회사", "상품", "담보", "보장금액"}
	if hasPremium {
		headers = append(headers, "월보험료")
	}
	if hasNotes {
		headers = append(headers, "비고")
	}

	rows := make([][]string, 0, len(data))
	for _, r := range data {
		row := []string{r.Company, r.Product, r.Coverage, r.Benefit}
		if hasPremium {
			row = append(row, orDash(r.Premium))
		}
		if hasNotes {
			row = append(row, orDash(r.Notes))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...)

	return t.Render()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
