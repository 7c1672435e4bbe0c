package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jason-dio-so/insurance-ontology-v3/internal/catalog"
)

func (a *App) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.category == "" {
		categories := catalog.Categories()
		switch msg.String() {
		case "up", "k":
			if a.catCursor > 0 {
				a.catCursor--
			}
		case "down", "j":
			if a.catCursor < len(categories)-1 {
				a.catCursor++
			}
		case "enter":
			a.category = categories[a.catCursor]
			a.tmplCursor = 0
		}
		return a, nil
	}

	templates := catalog.TemplatesByCategory(a.category)
	switch msg.String() {
	case "esc":
		a.category = ""
		a.tmplCursor = 0
	case "up", "k":
		if a.tmplCursor > 0 {
			a.tmplCursor--
		}
	case "down", "j":
		if a.tmplCursor < len(templates)-1 {
			a.tmplCursor++
		}
	case "enter":
		if a.tmplCursor < len(templates) {
			return a.selectTemplate(templates[a.tmplCursor])
		}
	}
	return a, nil
}

// selectTemplate routes a picked template: info-category entries open the
// wizard with that info type preselected, everything else seeds the
// free-text input with the template's example question.
func (a *App) selectTemplate(t catalog.Template) (tea.Model, tea.Cmd) {
	if t.Category == catalog.CategoryInfo {
		if pre, ok := catalog.InfoTypeByID(t.ID); ok {
			return a.openWizard(&pre)
		}
		return a.openWizard(nil)
	}
	a.conv.UseTemplate(t)
	a.input.SetValue(t.Example)
	a.focus = focusInput
	a.input.Focus()
	a.refreshTranscript()
	return a, nil
}

func (a *App) renderSidebar(height int) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("카테고리"))
	b.WriteString("\n\n")

	if a.category == "" {
		for i, c := range catalog.CategoryMetadata() {
			line := fmt.Sprintf("%s %s", c.Icon, c.Name)
			if a.focus == focusSidebar && i == a.catCursor {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Enter 선택 · Tab 입력창"))
	} else {
		b.WriteString(selectedStyle.Render(a.category))
		b.WriteString("\n\n")
		for i, t := range catalog.TemplatesByCategory(a.category) {
			title := t.Title
			if a.focus == focusSidebar && i == a.tmplCursor {
				b.WriteString(selectedStyle.Render("> " + title))
				b.WriteString("\n")
				b.WriteString(dimStyle.Render("  " + truncate(t.Description, 28)))
			} else {
				b.WriteString("  " + title)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Esc 뒤로 · Enter 선택"))
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("저장된 대화: %d", a.sessionCount)))

	return sidebarStyle.Width(sidebarWidth).Height(height).Render(b.String())
}
