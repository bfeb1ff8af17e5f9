package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// UIColors 定义统一的颜色主题
type UIColors struct {
	Gray   lipgloss.Color
	Blue   lipgloss.Color
	Green  lipgloss.Color
	Yellow lipgloss.Color
	Red    lipgloss.Color
	White  lipgloss.Color
	Black  lipgloss.Color
}

// DefaultColors 返回默认的颜色主题
func DefaultColors() UIColors {
	return UIColors{
		Gray:   lipgloss.Color("245"),
		Blue:   lipgloss.Color("39"),
		Green:  lipgloss.Color("42"),
		Yellow: lipgloss.Color("220"),
		Red:    lipgloss.Color("196"),
		White:  lipgloss.Color("255"),
		Black:  lipgloss.Color("0"),
	}
}

// UIStyles 定义统一的样式
type UIStyles struct {
	Colors   UIColors
	Head     lipgloss.Style
	Sub      lipgloss.Style
	Section  lipgloss.Style
	Note     lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Prompt   lipgloss.Style
	Selected lipgloss.Style
	Match    lipgloss.Style
}

// DefaultStyles 返回默认的样式集
func DefaultStyles() UIStyles {
	colors := DefaultColors()
	return UIStyles{
		Colors:  colors,
		Head:    lipgloss.NewStyle().Foreground(colors.White).Bold(true),
		Sub:     lipgloss.NewStyle().Foreground(colors.Yellow),
		Section: lipgloss.NewStyle().Foreground(colors.Blue).Bold(true),
		Note: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colors.Yellow).
			PaddingLeft(1),
		Muted: lipgloss.NewStyle().Foreground(colors.Gray),
		Success: lipgloss.NewStyle().
			Foreground(colors.Black).
			Background(colors.Green).
			Bold(true).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Foreground(colors.White).
			Background(colors.Red).
			Padding(0, 1),
		Prompt:   lipgloss.NewStyle().Foreground(colors.Green),
		Selected: lipgloss.NewStyle().Foreground(colors.Blue).Bold(true),
		Match:    lipgloss.NewStyle().Foreground(colors.Yellow).Underline(true),
	}
}

// wordWrap 包装文本，保留原有的换行
func wordWrap(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}

	paragraphs := strings.Split(s, "\n")
	for i, paragraph := range paragraphs {
		paragraphs[i] = wrapParagraph(paragraph, width)
	}
	return strings.Join(paragraphs, "\n")
}

// wrapParagraph 包装单个段落，按显示宽度而不是字节数计算
func wrapParagraph(paragraph string, width int) string {
	var result strings.Builder
	var line strings.Builder

	for _, word := range strings.Fields(paragraph) {
		if line.Len() == 0 {
			line.WriteString(word)
			continue
		}
		if lipgloss.Width(line.String()+" "+word) <= width {
			line.WriteString(" ")
			line.WriteString(word)
			continue
		}
		result.WriteString(line.String() + "\n")
		line.Reset()
		line.WriteString(word)
	}
	result.WriteString(line.String())

	return result.String()
}

// Button 表示一个可交互的按钮
type Button struct {
	Hint       string
	Text       string
	SelectedBg lipgloss.Color
}

// RenderButton 渲染单个按钮
func RenderButton(b Button, isSelected bool) string {
	colors := DefaultColors()
	hStyle := lipgloss.NewStyle().Foreground(colors.Gray)
	tStyle := lipgloss.NewStyle().Foreground(colors.White)

	if isSelected {
		fgColor := colors.Black
		// 红色背景上白色文字更清晰
		if b.SelectedBg == colors.Red {
			fgColor = colors.White
		}
		hStyle = hStyle.Background(b.SelectedBg).Foreground(fgColor)
		tStyle = tStyle.Background(b.SelectedBg).Foreground(fgColor)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		hStyle.Padding(0, 1).Render(b.Hint),
		tStyle.Padding(0, 1).Render(b.Text),
	)
}
