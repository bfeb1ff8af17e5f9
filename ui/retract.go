package ui

import (
	"bytes"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const (
	clearLine = "\x1b[2K"
	cursorUp  = "\x1b[1A"
)

// LineTracker forwards writes and remembers how many terminal rows they
// produced, so the output can be erased again with Retract. With a width
// set, a line wider than the terminal counts once per wrapped row.
type LineTracker struct {
	w     io.Writer
	width int

	rows    int             // 已完成的行占用的终端行数
	current strings.Builder // 尚未换行的当前行
	widest  int             // 当前行被 \r 覆盖前的最大宽度
}

// NewLineTracker 包装 w，不考虑自动折行
func NewLineTracker(w io.Writer) *LineTracker {
	return &LineTracker{w: w}
}

// WithWidth sets the terminal width used to count wrapped rows. Zero or a
// negative width disables wrapping.
func (t *LineTracker) WithWidth(width int) *LineTracker {
	t.width = width
	return t
}

func (t *LineTracker) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	for _, b := range p[:n] {
		switch b {
		case '\n':
			t.rows += t.rowsFor(t.currentWidth())
			t.current.Reset()
			t.widest = 0
		case '\r':
			t.widest = t.currentWidth()
			t.current.Reset()
		default:
			t.current.WriteByte(b)
		}
	}
	return n, err
}

func (t *LineTracker) currentWidth() int {
	if w := ansi.StringWidth(t.current.String()); w > t.widest {
		return w
	}
	return t.widest
}

func (t *LineTracker) partial() bool {
	return t.current.Len() > 0 || t.widest > 0
}

// rowsFor 返回宽度为 w 的一行占用的终端行数
func (t *LineTracker) rowsFor(w int) int {
	if t.width <= 0 || w <= t.width {
		return 1
	}
	return (w + t.width - 1) / t.width
}

// Lines 返回已写出内容占用的终端行数，未以换行结尾的最后一行也计算在内
func (t *LineTracker) Lines() int {
	if t.partial() {
		return t.rows + t.rowsFor(t.currentWidth())
	}
	return t.rows
}

// Retract erases everything written through the tracker. The cursor ends at
// the start of the row where the first write began.
func (t *LineTracker) Retract() error {
	var buf bytes.Buffer
	if t.partial() {
		buf.WriteString("\r" + clearLine)
		for i := 1; i < t.rowsFor(t.currentWidth()); i++ {
			buf.WriteString(cursorUp + clearLine)
		}
	}
	for i := 0; i < t.rows; i++ {
		buf.WriteString(cursorUp + clearLine)
	}
	t.rows = 0
	t.current.Reset()
	t.widest = 0

	if buf.Len() == 0 {
		return nil
	}
	_, err := t.w.Write(buf.Bytes())
	return err
}
