package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jason-dio-so/insurance-ontology-v3/internal/catalog"
	"github.com/jason-dio-so/insurance-ontology-v3/internal/gateway"
	"github.com/jason-dio-so/insurance-ontology-v3/internal/models"
	"github.com/jason-dio-so/insurance-ontology-v3/internal/wizard"
)

func (a *App) handleWizardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := a.wiz
	key := msg.String()

	if key == "esc" {
		a.wiz = nil
		return a, nil
	}
	if w.Loading() {
		return a, nil
	}

	if w.Err() != nil {
		switch key {
		case "r":
			return a, wizardLoadCmd(a.gw, w.Retry())
		case "left", "b":
			w.Back()
			a.wizCursor = 0
		}
		return a, nil
	}

	a.wizNotice = ""

	switch w.CurrentStep() {
	case wizard.StepCompanySelect:
		return a.handleCompanyStep(key)
	case wizard.StepProductSelect:
		return a.handleProductStep(key)
	case wizard.StepCoverageSelect:
		return a.handleCoverageStep(key)
	case wizard.StepCoverageNameSelect:
		return a.handleCoverageNameStep(msg)
	case wizard.StepInfoTypeSelect:
		return a.handleInfoTypeStep(key)
	}
	return a, nil
}

func (a *App) handleCompanyStep(key string) (tea.Model, tea.Cmd) {
	w := a.wiz
	companies := w.Companies()
	switch key {
	case "up", "k":
		if a.wizCursor > 0 {
			a.wizCursor--
		}
	case "down", "j":
		if a.wizCursor < len(companies)-1 {
			a.wizCursor++
		}
	case " ":
		if a.wizCursor < len(companies) {
			if err := w.ToggleCompany(companies[a.wizCursor].Name); err != nil {
				a.wizNotice = err.Error()
			}
		}
	case "a":
		if err := w.ToggleSelectAll(); err != nil {
			a.wizNotice = err.Error()
		}
	case "enter":
		req, err := w.Next()
		if err != nil {
			if err == models.ErrNoCompanySelected {
				a.wizNotice = "보험사를 선택해주세요."
			}
			return a, nil
		}
		return a, wizardLoadCmd(a.gw, req)
	}
	return a, nil
}

func (a *App) handleProductStep(key string) (tea.Model, tea.Cmd) {
	w := a.wiz
	products := w.Products()
	switch key {
	case "up", "k":
		if a.wizCursor > 0 {
			a.wizCursor--
		}
	case "down", "j":
		if a.wizCursor < len(products)-1 {
			a.wizCursor++
		}
	case "left", "b":
		w.Back()
		a.wizCursor = 0
	case "enter":
		if a.wizCursor < len(products) {
			req, err := w.ChooseProduct(products[a.wizCursor])
			if err != nil {
				return a, nil
			}
			return a, wizardLoadCmd(a.gw, req)
		}
	}
	return a, nil
}

func (a *App) handleCoverageStep(key string) (tea.Model, tea.Cmd) {
	w := a.wiz
	coverages := w.Coverages()
	switch key {
	case "up", "k":
		if a.wizCursor > 0 {
			a.wizCursor--
		}
	case "down", "j":
		if a.wizCursor < len(coverages)-1 {
			a.wizCursor++
		}
	case "left", "b":
		w.Back()
		a.wizCursor = 0
	case "enter":
		if a.wizCursor >= len(coverages) {
			return a, nil
		}
		picked := coverages[a.wizCursor].CoverageName
		sel := w.Selected()
		if sel.Coverage != nil && sel.Coverage.CoverageName == picked && w.CanSubmit() {
			return a.submitWizard()
		}
		if err := w.ChooseCoverage(picked); err == nil {
			a.wizCursor = 0
		}
	}
	return a, nil
}

func (a *App) handleCoverageNameStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w := a.wiz
	matches, _ := w.SearchCoverageNames(a.wizSearch.Value())
	switch msg.String() {
	case "up":
		if a.wizCursor > 0 {
			a.wizCursor--
		}
		return a, nil
	case "down":
		if a.wizCursor < len(matches)-1 {
			a.wizCursor++
		}
		return a, nil
	case "left":
		w.Back()
		a.wizCursor = 0
		a.wizSearch.Reset()
		return a, nil
	case "enter":
		if a.wizCursor >= len(matches) {
			return a, nil
		}
		picked := matches[a.wizCursor]
		if w.Selected().CoverageName == picked && w.CanSubmit() {
			return a.submitWizard()
		}
		if err := w.ChooseCoverageName(picked); err == nil {
			a.wizCursor = 0
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.wizSearch.Focus()
	a.wizSearch, cmd = a.wizSearch.Update(msg)
	a.wizCursor = 0
	return a, cmd
}

func (a *App) handleInfoTypeStep(key string) (tea.Model, tea.Cmd) {
	w := a.wiz
	infoTypes := catalog.InfoTypes()
	switch key {
	case "up", "k":
		if a.wizCursor > 0 {
			a.wizCursor--
		}
	case "down", "j":
		if a.wizCursor < len(infoTypes)-1 {
			a.wizCursor++
		}
	case "left", "b":
		w.Back()
		a.wizCursor = 0
	case "enter":
		picked := infoTypes[a.wizCursor]
		sel := w.Selected()
		if sel.InfoType != nil && sel.InfoType.ID == picked.ID && w.CanSubmit() {
			return a.submitWizard()
		}
		if err := w.ChooseInfoType(picked.ID); err != nil {
			a.wizNotice = err.Error()
		}
	}
	return a, nil
}

func (a *App) submitWizard() (tea.Model, tea.Cmd) {
	q, err := a.wiz.Submit()
	if err != nil {
		a.wizNotice = "모든 항목을 선택해주세요."
		return a, nil
	}
	a.wiz = nil
	call, err := a.conv.SubmitWizard(q)
	if err != nil {
		return a, nil
	}
	a.refreshTranscript()
	return a, searchCmd(a.gw, call)
}

// Rendering

func (a *App) renderWizard(width int) string {
	w := a.wiz
	var b strings.Builder

	b.WriteString(titleStyle.Render("상품/담보 정보 조회"))
	b.WriteString("\n\n")
	b.WriteString(a.renderWizardProgress())
	b.WriteString("\n\n")

	switch {
	case w.Loading():
		b.WriteString(a.spin.View())
		b.WriteString(dimStyle.Render("불러오는 중..."))
		b.WriteString("\n")
	case w.Err() != nil:
		b.WriteString(errorStyle.Render(loadErrorText(w)))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("r 다시 시도 · ← 이전 · Esc 취소"))
		b.WriteString("\n")
	default:
		b.WriteString(a.renderWizardStep())
	}

	if a.wizNotice != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(a.wizNotice))
		b.WriteString("\n")
	}

	return overlayStyle.Width(width).Render(b.String())
}

func (a *App) renderWizardProgress() string {
	w := a.wiz
	steps := w.Steps()
	current := w.StepIndex()
	parts := make([]string, 0, len(steps))
	for i, s := range steps {
		label := fmt.Sprintf("%d %s", i+1, s.Label)
		if i <= current {
			parts = append(parts, stepDoneStyle.Render(label))
		} else {
			parts = append(parts, stepTodoStyle.Render(label))
		}
	}
	return strings.Join(parts, dimStyle.Render(" ── "))
}

func (a *App) renderWizardStep() string {
	w := a.wiz
	switch w.CurrentStep() {
	case wizard.StepCompanySelect:
		return a.renderCompanyStep()
	case wizard.StepProductSelect:
		return a.renderProductStep()
	case wizard.StepCoverageSelect:
		return a.renderCoverageStep()
	case wizard.StepCoverageNameSelect:
		return a.renderCoverageNameStep()
	case wizard.StepInfoTypeSelect:
		return a.renderInfoTypeStep()
	}
	return ""
}

func (a *App) renderCompanyStep() string {
	w := a.wiz
	sel := w.Selected()
	selected := make(map[string]bool, len(sel.Companies))
	for _, c := range sel.Companies {
		selected[c.Name] = true
	}

	var b strings.Builder
	b.WriteString("보험사를 선택하세요 (2개 이상 선택 시 비교 모드)\n\n")
	for i, c := range w.Companies() {
		mark := "[ ]"
		if selected[c.Name] {
			mark = checkedStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s %s", mark, c.DisplayName)
		if i == a.wizCursor {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	allMark := "[ ]"
	if sel.SelectAll {
		allMark = checkedStyle.Render("[x]")
	}
	b.WriteString(fmt.Sprintf("%s 전체 선택 (a)\n", allMark))
	b.WriteString(dimStyle.Render(fmt.Sprintf("\n선택됨: %d개", len(sel.Companies))))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Space 선택 · a 전체 · Enter 다음 · Esc 취소"))
	b.WriteString("\n")
	return b.String()
}

func (a *App) renderProductStep() string {
	w := a.wiz
	sel := w.Selected()
	var b strings.Builder
	b.WriteString("상품을 선택하세요\n")
	if len(sel.Companies) == 1 {
		b.WriteString(dimStyle.Render("선택한 보험사: " + sel.Companies[0].DisplayName))
	}
	b.WriteString("\n\n")
	for i, p := range w.Products() {
		line := p
		if p == sel.Product {
			line = checkedStyle.Render(line)
		}
		if i == a.wizCursor {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Enter 선택 · ← 이전 · Esc 취소"))
	b.WriteString("\n")
	return b.String()
}

func (a *App) renderCoverageStep() string {
	w := a.wiz
	sel := w.Selected()
	var b strings.Builder
	b.WriteString("담보를 선택하세요\n")
	if len(sel.Companies) == 1 {
		b.WriteString(dimStyle.Render("보험사: " + sel.Companies[0].DisplayName))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("상품: " + sel.Product))
	b.WriteString("\n\n")
	for i, c := range w.Coverages() {
		line := fmt.Sprintf("%s  %s", c.CoverageName, dimStyle.Render("보장금액: "+formatBenefit(c.BenefitAmount)))
		if sel.Coverage != nil && sel.Coverage.CoverageName == c.CoverageName {
			line = checkedStyle.Render(c.CoverageName) + "  " + dimStyle.Render("보장금액: "+formatBenefit(c.BenefitAmount))
		}
		if i == a.wizCursor {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.readyHint())
	b.WriteString(dimStyle.Render("Enter 선택 · ← 이전 · Esc 취소"))
	b.WriteString("\n")
	return b.String()
}

func (a *App) renderCoverageNameStep() string {
	w := a.wiz
	matches, total := w.SearchCoverageNames(a.wizSearch.Value())
	var b strings.Builder
	b.WriteString("담보명을 선택하세요\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("비교 대상: %s", compareSubject(w.Selected()))))
	b.WriteString("\n\n")
	b.WriteString(a.wizSearch.View())
	b.WriteString("\n\n")
	for i, name := range matches {
		line := name
		if w.Selected().CoverageName == name {
			line = checkedStyle.Render(line)
		}
		if i == a.wizCursor {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if total > len(matches) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("... 총 %d개 중 %d개 표시", total, len(matches))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.readyHint())
	b.WriteString(dimStyle.Render("입력으로 검색 · ↑↓ 이동 · Enter 선택 · ← 이전"))
	b.WriteString("\n")
	return b.String()
}

func (a *App) renderInfoTypeStep() string {
	w := a.wiz
	sel := w.Selected()
	var b strings.Builder
	b.WriteString("조회할 정보를 선택하세요\n\n")
	for i, it := range catalog.InfoTypes() {
		line := fmt.Sprintf("%s  %s", it.Label, dimStyle.Render(it.Description))
		if sel.InfoType != nil && sel.InfoType.ID == it.ID {
			line = checkedStyle.Render(it.Label) + "  " + dimStyle.Render(it.Description)
		}
		if i == a.wizCursor {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.readyHint())
	b.WriteString(dimStyle.Render("Enter 선택 · ← 이전 · Esc 취소"))
	b.WriteString("\n")
	return b.String()
}

// readyHint tells the user a complete selection can be submitted.
func (a *App) readyHint() string {
	if a.wiz.CanSubmit() {
		return selectedStyle.Render("선택 완료 — 선택된 항목에서 Enter 를 다시 누르면 조회합니다") + "\n"
	}
	return ""
}

// loadErrorText prefixes the classified failure with the tier that failed.
func loadErrorText(w *wizard.Builder) string {
	prefix := map[wizard.LoadKind]string{
		wizard.LoadCompanies:     "회사 목록을 불러오는데 실패했습니다.",
		wizard.LoadProducts:      "상품 목록을 불러오는데 실패했습니다.",
		wizard.LoadCoverages:     "담보 목록을 불러오는데 실패했습니다.",
		wizard.LoadCoverageNames: "담보 목록을 불러오는데 실패했습니다.",
	}[w.LastLoadKind()]
	return prefix + "\n" + gateway.UserMessage(w.Err())
}

func compareSubject(sel wizard.Selection) string {
	if sel.SelectAll {
		return wizard.AllCompaniesToken
	}
	names := make([]string, len(sel.Companies))
	for i, c := range sel.Companies {
		names[i] = c.DisplayName
	}
	return strings.Join(names, wizard.CompanySeparator)
}

// formatBenefit renders a coverage amount in won, N/A when absent.
func formatBenefit(amount *int64) string {
	if amount == nil || *amount == 0 {
		return "N/A"
	}
	return groupDigits(*amount) + "원"
}

func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}
