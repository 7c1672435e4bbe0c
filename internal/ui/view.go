package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View composes the full frame: header, sidebar next to either the chat
// transcript or the query-builder overlay, and the key help footer.
func (a *App) View() string {
	if !a.ready {
		return "초기화 중..."
	}

	header := titleStyle.Render("보험 온톨로지 AI 챗봇")

	chatWidth := a.width - sidebarWidth - 4
	if chatWidth < 20 {
		chatWidth = 20
	}

	var main string
	if a.wiz != nil {
		main = a.renderWizard(chatWidth)
	} else {
		var b strings.Builder
		b.WriteString(a.vp.View())
		b.WriteString("\n")
		b.WriteString(a.input.View())
		main = b.String()
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.renderSidebar(a.vp.Height+a.input.Height()+1),
		" ",
		main,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		body,
		dimStyle.Render(a.helpLine()),
	)
}

func (a *App) helpLine() string {
	if a.wiz != nil {
		return "Esc 닫기 · Ctrl+N 새 대화 · Ctrl+C 종료"
	}
	return "Tab 포커스 전환 · Ctrl+B 상품 조회 · Ctrl+N 새 대화 · Ctrl+C 종료"
}
