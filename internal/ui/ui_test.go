package ui

import (
	"strings"
	"testing"

	"github.com/jason-dio-so/insurance-ontology-v3/internal/models"
)

func TestFormatBenefit(t *testing.T) {
	if got := formatBenefit(nil); got != "N/A" {
		t.Errorf("formatBenefit(nil) = %q, want N/A", got)
	}
	zero := int64(0)
	if got := formatBenefit(&zero); got != "N/A" {
		t.Errorf("formatBenefit(0) = %q, want N/A", got)
	}
	v := int64(10000000)
	if got := formatBenefit(&v); got != "10,000,000원" {
		t.Errorf("formatBenefit(10000000) = %q", got)
	}
}

func TestGroupDigits(t *testing.T) {
	cases := map[int64]string{
		0:          "0",
		999:        "999",
		1000:       "1,000",
		600000:     "600,000",
		1234567890: "1,234,567,890",
		-4500:      "-4,500",
	}
	for in, want := range cases {
		if got := groupDigits(in); got != want {
			t.Errorf("groupDigits(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("짧은 문장", 10); got != "짧은 문장" {
		t.Errorf("truncate short = %q", got)
	}
	// Rune-safe: 5 Hangul characters are 15 bytes but 5 runes.
	if got := truncate("암진단비보장", 5); got != "암진단비보..." {
		t.Errorf("truncate = %q, want rune-safe cut", got)
	}
}

func TestComparisonTableOptionalColumns(t *testing.T) {
	base := []models.ComparisonResult{
		{Company: "삼성화재", Product: "암보험", Coverage: "암진단비", Benefit: "3,000만원"},
		{Company: "한화손보", Product: "건강보험", Coverage: "암진단비", Benefit: "2,000만원"},
	}

	out := renderComparisonTable(base)
	if strings.Contains(out, "월보험료") || strings.Contains(out, "비고") {
		t.Error("optional columns rendered with no data in any row")
	}
	for _, cell := range []string{"회사", "상품", "담보", "보장금액", "삼성화재", "2,000만원"} {
		if !strings.Contains(out, cell) {
			t.Errorf("table missing %q", cell)
		}
	}

	// One row with a premium is enough to surface the column for all rows.
	withPremium := append([]models.ComparisonResult{}, base...)
	withPremium[0].Premium = "45,000원"
	out = renderComparisonTable(withPremium)
	if !strings.Contains(out, "월보험료") {
		t.Error("premium column missing even though a row carries one")
	}
	if !strings.Contains(out, "-") {
		t.Error("rows without a premium should render a dash")
	}
	if strings.Contains(out, "비고") {
		t.Error("notes column rendered with no notes in any row")
	}

	if got := renderComparisonTable(nil); got != "" {
		t.Errorf("empty table rendered %q", got)
	}
}
