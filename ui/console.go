package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
)

const blockWidth = 72

// Console 渲染部署过程中的标题、提示块与结果块
type Console struct {
	out    io.Writer
	width  int // 终端宽度，0 表示不是终端
	styles UIStyles
}

// NewConsole 创建写入 out 的 Console；out 是终端时记录其宽度
func NewConsole(out io.Writer) *Console {
	return &Console{out: out, width: terminalWidth(out), styles: DefaultStyles()}
}

func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(f.Fd()) {
		return 0
	}
	width, _, err := term.GetSize(f.Fd())
	if err != nil {
		return 0
	}
	return width
}

// SetWidth overrides the detected terminal width.
func (c *Console) SetWidth(width int) { c.width = width }

// Out 返回底层 writer
func (c *Console) Out() io.Writer { return c.out }

// Head 渲染命令标题，如 "Deploy recent code changes" 与 "production my-app.frb.io"
func (c *Console) Head(title, subtitle string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.Head.Render(title))
	if subtitle != "" {
		fmt.Fprintln(c.out, c.styles.Sub.Render(subtitle))
	}
	fmt.Fprintln(c.out)
}

// Section 渲染小节标题
func (c *Console) Section(title string) {
	fmt.Fprintln(c.out, c.styles.Section.Render("▶ "+title))
}

// Note 渲染带标题的提示块；lines 为空时只渲染标题
func (c *Console) Note(title string, lines []string) {
	body := c.styles.Sub.Render(title)
	if len(lines) > 0 {
		body += "\n" + strings.Join(lines, "\n")
	}
	fmt.Fprintln(c.out, c.styles.Note.Render(body))
	fmt.Fprintln(c.out)
}

// Println 输出普通文本
func (c *Console) Println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

// ErrorBlock 渲染红色错误块，message 为失败工具自身的输出
func (c *Console) ErrorBlock(title, message string) {
	lines := []string{title}
	if message = strings.TrimSpace(message); message != "" {
		lines = append(lines, wordWrap(message, blockWidth))
	}
	fmt.Fprintln(c.out, c.styles.Error.Render(strings.Join(lines, "\n")))
}

// SuccessBlock 渲染绿色成功块
func (c *Console) SuccessBlock(message string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.Success.Render(message))
}

// StreamWriter returns a writer that tracks the lines of streamed tool
// output so they can be retracted on failure.
func (c *Console) StreamWriter() *LineTracker {
	return NewLineTracker(c.out).WithWidth(c.width)
}

// Retract 擦除 tracker 写出的所有行
func (c *Console) Retract(t *LineTracker) error {
	return t.Retract()
}
