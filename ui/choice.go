package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// ChoiceModel lets the operator pick one option. Typing narrows the list with
// fuzzy matching; the cursor starts on the default option.
type ChoiceModel struct {
	question  string
	options   []string
	filter    textinput.Model
	matches   fuzzy.Matches
	cursor    int
	value     string
	done      bool
	cancelled bool
	styles    UIStyles
}

// NewChoiceModel 创建选择模型
func NewChoiceModel(question string, options []string, def string) *ChoiceModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "/ "
	ti.Focus()

	m := &ChoiceModel{
		question: question,
		options:  options,
		filter:   ti,
		styles:   DefaultStyles(),
	}
	m.refilter()
	for i, match := range m.matches {
		if match.Str == def {
			m.cursor = i
			break
		}
	}
	return m
}

// Init 实现 tea.Model 接口
func (m *ChoiceModel) Init() tea.Cmd { return nil }

// Update 处理按键事件
func (m *ChoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if len(m.matches) == 0 {
				return m, nil
			}
			m.value = m.matches[m.cursor].Str
			m.done = true
			return m, tea.Quit
		}
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.refilter()
		m.cursor = 0
	}
	return m, cmd
}

// refilter 根据输入重新计算匹配项；输入为空时保留原始顺序
func (m *ChoiceModel) refilter() {
	pattern := strings.TrimSpace(m.filter.Value())
	if pattern == "" {
		m.matches = make(fuzzy.Matches, len(m.options))
		for i, opt := range m.options {
			m.matches[i] = fuzzy.Match{Str: opt, Index: i}
		}
		return
	}
	m.matches = fuzzy.Find(pattern, m.options)
}

// View 渲染
func (m *ChoiceModel) View() string {
	question := m.styles.Prompt.Render("? ") + m.question
	if m.done {
		if m.cancelled {
			return fmt.Sprintf("%s %s\n", question, m.styles.Muted.Render("cancelled"))
		}
		return fmt.Sprintf("%s %s\n", question, m.styles.Muted.Render(m.value))
	}

	var sb strings.Builder
	sb.WriteString(question + "\n")
	sb.WriteString("  " + m.filter.View() + "\n")
	if len(m.matches) == 0 {
		sb.WriteString(m.styles.Muted.Render("  no match") + "\n")
	}
	for i, match := range m.matches {
		line := highlight(match, m.styles)
		if i == m.cursor {
			sb.WriteString(m.styles.Selected.Render("> ") + line + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}
	return sb.String()
}

// highlight 标出模糊匹配命中的字符
func highlight(match fuzzy.Match, styles UIStyles) string {
	if len(match.MatchedIndexes) == 0 {
		return match.Str
	}
	hit := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		hit[i] = true
	}
	var sb strings.Builder
	for i, r := range match.Str {
		if hit[i] {
			sb.WriteString(styles.Match.Render(string(r)))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Value 返回选中的选项
func (m *ChoiceModel) Value() string { return m.value }

// Cancelled 报告用户是否取消了选择
func (m *ChoiceModel) Cancelled() bool { return m.cancelled }
