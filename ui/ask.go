package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// AskModel 单行文本输入。空输入取默认值，Ctrl+C 返回空字符串。
type AskModel struct {
	question  string
	def       string
	textInput textinput.Model
	value     string
	done      bool
	styles    UIStyles
}

// NewAskModel 创建文本输入模型
func NewAskModel(question, def string) *AskModel {
	ti := textinput.New()
	ti.Placeholder = def
	ti.CharLimit = 256
	ti.Focus()
	return &AskModel{
		question:  question,
		def:       def,
		textInput: ti,
		styles:    DefaultStyles(),
	}
}

// Init 实现 tea.Model 接口
func (m *AskModel) Init() tea.Cmd { return textinput.Blink }

// Update 处理按键事件，其余交给 textinput
func (m *AskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c", "esc":
			m.value = ""
			m.done = true
			return m, tea.Quit
		case "enter":
			m.value = strings.TrimSpace(strings.ReplaceAll(m.textInput.Value(), "\r", ""))
			if m.value == "" {
				m.value = m.def
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View 渲染
func (m *AskModel) View() string {
	question := m.styles.Prompt.Render("? ") + m.question
	if m.done {
		return fmt.Sprintf("%s %s\n", question, m.styles.Muted.Render(m.value))
	}
	return fmt.Sprintf("%s\n  %s\n", question, m.textInput.View())
}

// Value 返回输入结果
func (m *AskModel) Value() string { return m.value }
