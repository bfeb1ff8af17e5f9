package ui

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled 用户在选择列表中按下 Ctrl+C 或 Esc
var ErrCancelled = errors.New("prompt cancelled")

// Prompter asks the operator questions. A cancelled Confirm counts as "no".
type Prompter interface {
	// Interactive 报告是否真的会询问用户
	Interactive() bool
	Confirm(question string, def bool) (bool, error)
	Ask(question, def string) (string, error)
	Choice(question string, options []string, def string) (string, error)
}

// TerminalPrompter 通过 bubbletea 程序在终端中提问
type TerminalPrompter struct {
	in  io.Reader
	out io.Writer
}

// NewTerminalPrompter 创建读取 in、渲染到 out 的 Prompter
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: in, out: out}
}

func (p *TerminalPrompter) Interactive() bool { return true }

func (p *TerminalPrompter) Confirm(question string, def bool) (bool, error) {
	final, err := p.run(NewConfirmModel(question, def))
	if err != nil {
		return false, err
	}
	m := final.(*ConfirmModel)
	return m.Value(), nil
}

func (p *TerminalPrompter) Ask(question, def string) (string, error) {
	final, err := p.run(NewAskModel(question, def))
	if err != nil {
		return "", err
	}
	return final.(*AskModel).Value(), nil
}

func (p *TerminalPrompter) Choice(question string, options []string, def string) (string, error) {
	final, err := p.run(NewChoiceModel(question, options, def))
	if err != nil {
		return "", err
	}
	m := final.(*ChoiceModel)
	if m.Cancelled() {
		return "", ErrCancelled
	}
	return m.Value(), nil
}

func (p *TerminalPrompter) run(model tea.Model) (tea.Model, error) {
	final, err := tea.NewProgram(model, tea.WithInput(p.in), tea.WithOutput(p.out)).Run()
	if err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return final, nil
}

// NonInteractivePrompter 不询问用户，始终返回默认值
type NonInteractivePrompter struct{}

func (NonInteractivePrompter) Interactive() bool { return false }

func (NonInteractivePrompter) Confirm(question string, def bool) (bool, error) { return def, nil }

func (NonInteractivePrompter) Ask(question, def string) (string, error) { return def, nil }

func (NonInteractivePrompter) Choice(question string, options []string, def string) (string, error) {
	if def == "" && len(options) > 0 {
		return options[0], nil
	}
	return def, nil
}
