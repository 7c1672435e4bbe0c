package ui

import (
	"fmt"
	"strings"

	"github.com/jason-dio-so/insurance-ontology-v3/internal/catalog"
	"github.com/jason-dio-so/insurance-ontology-v3/internal/models"
)

// refreshTranscript re-renders the viewport content and pins it to the
// bottom, and keeps the input placeholder in sync with the controller
// state.
func (a *App) refreshTranscript() {
	if !a.ready {
		return
	}
	a.vp.SetContent(a.renderTranscript())
	a.vp.GotoBottom()

	switch {
	case a.conv.Locked():
		a.input.Placeholder = "Ctrl+N 으로 대화를 초기화해주세요"
	case len(a.conv.Messages()) == 0:
		a.input.Placeholder = "질문을 입력하거나 왼쪽에서 템플릿을 선택해주세요"
	default:
		a.input.Placeholder = "질문을 입력하세요..."
	}
}

func (a *App) renderTranscript() string {
	messages := a.conv.Messages()
	if len(messages) == 0 {
		return a.renderWelcome()
	}

	var b strings.Builder
	for _, m := range messages {
		b.WriteString(a.renderMessage(m))
		b.WriteString("\n")
	}
	if a.conv.Loading() {
		b.WriteString(assistantLabelStyle.Render("AI"))
		b.WriteString("  ")
		b.WriteString(a.spin.View())
		b.WriteString(dimStyle.Render("답변을 생성하고 있습니다..."))
		b.WriteString("\n")
	}
	if a.conv.Locked() && !a.conv.Loading() {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("조회가 끝났습니다. Ctrl+N 으로 처음으로 돌아가세요."))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) renderMessage(m models.Message) string {
	var b strings.Builder
	switch {
	case m.Role == models.RoleUser:
		b.WriteString(userLabelStyle.Render("나"))
		b.WriteString("\n")
		b.WriteString(m.Content)
		b.WriteString("\n")
	case m.IsError:
		b.WriteString(assistantLabelStyle.Render("AI"))
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.Content))
		b.WriteString("\n")
	default:
		b.WriteString(assistantLabelStyle.Render("AI"))
		b.WriteString("\n")
		b.WriteString(a.renderMarkdown(m.Content))
		if len(m.ComparisonTable) > 0 {
			b.WriteString(renderComparisonTable(m.ComparisonTable))
			b.WriteString("\n")
		}
		if len(m.Sources) > 0 {
			b.WriteString(a.renderSources(m.Sources))
		}
	}
	return b.String()
}

func (a *App) renderMarkdown(content string) string {
	if a.md == nil {
		return content + "\n"
	}
	out, err := a.md.Render(content)
	if err != nil {
		return content + "\n"
	}
	return out
}

func (a *App) renderSources(sources []models.Source) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("참조 약관 (%d)", len(sources))))
	b.WriteString("\n")
	for _, s := range sources {
		line := fmt.Sprintf("- %s %s: %s", s.Company, s.Product, truncate(s.Clause, 120))
		b.WriteString(sourceStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) renderWelcome() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(selectedStyle.Render("보험 온톨로지 AI에 오신 것을 환영합니다"))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("왼쪽에서 질문 템플릿을 선택하거나, 아래에 자유롭게 질문해주세요."))
	b.WriteString("\n\n")
	for _, c := range catalog.CategoryMetadata() {
		b.WriteString(fmt.Sprintf("%s %s\n", c.Icon, selectedStyle.Render(c.Name)))
		b.WriteString(dimStyle.Render("   " + c.Description))
		b.WriteString("\n\n")
	}
	if a.healthErr != nil {
		b.WriteString(errorStyle.Render("⚠ 서버 상태 확인 실패: 백엔드가 실행 중인지 확인해주세요."))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
