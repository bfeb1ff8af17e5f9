package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel 是/否确认。Ctrl+C 与 Esc 视为否。
type ConfirmModel struct {
	question  string
	value     bool
	done      bool
	cancelled bool
	styles    UIStyles
}

// NewConfirmModel 创建初始选中 def 的确认模型
func NewConfirmModel(question string, def bool) *ConfirmModel {
	return &ConfirmModel{question: question, value: def, styles: DefaultStyles()}
}

// Init 实现 tea.Model 接口
func (m *ConfirmModel) Init() tea.Cmd { return nil }

// Update 处理按键事件
func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.value = false
		m.cancelled = true
		m.done = true
		return m, tea.Quit
	case "y", "Y":
		m.value = true
		m.done = true
		return m, tea.Quit
	case "n", "N":
		m.value = false
		m.done = true
		return m, tea.Quit
	case "left", "right", "h", "l", "tab":
		m.value = !m.value
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View 渲染
func (m *ConfirmModel) View() string {
	question := m.styles.Prompt.Render("? ") + m.question
	if m.done {
		answer := "no"
		if m.value {
			answer = "yes"
		}
		return fmt.Sprintf("%s %s\n", question, m.styles.Muted.Render(answer))
	}

	yes := RenderButton(Button{Hint: "Y", Text: "Yes", SelectedBg: m.styles.Colors.Green}, m.value)
	no := RenderButton(Button{Hint: "N", Text: "No", SelectedBg: m.styles.Colors.Red}, !m.value)
	return fmt.Sprintf("%s\n  %s %s\n", question, yes, no)
}

// Value 返回最终选择
func (m *ConfirmModel) Value() bool { return m.value }

// Cancelled 报告用户是否按下了 Ctrl+C 或 Esc
func (m *ConfirmModel) Cancelled() bool { return m.cancelled }
