// Package uitest provides a scripted ui.Prompter for tests.
package uitest

import (
	"fmt"

	"github.com/penwyp/codeup/ui"
)

// Prompter answers from queued responses and records every question. When a
// queue runs dry the default is returned.
type Prompter struct {
	NonInteractive bool
	Confirms       []bool
	Answers        []string
	Choices        []string
	ChoiceErr      error

	Asked []string
}

var _ ui.Prompter = (*Prompter)(nil)

func (p *Prompter) Interactive() bool { return !p.NonInteractive }

func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	p.Asked = append(p.Asked, "confirm: "+question)
	if len(p.Confirms) == 0 {
		return def, nil
	}
	answer := p.Confirms[0]
	p.Confirms = p.Confirms[1:]
	return answer, nil
}

func (p *Prompter) Ask(question, def string) (string, error) {
	p.Asked = append(p.Asked, "ask: "+question)
	if len(p.Answers) == 0 {
		return def, nil
	}
	answer := p.Answers[0]
	p.Answers = p.Answers[1:]
	return answer, nil
}

func (p *Prompter) Choice(question string, options []string, def string) (string, error) {
	p.Asked = append(p.Asked, fmt.Sprintf("choice: %s %v", question, options))
	if p.ChoiceErr != nil {
		return "", p.ChoiceErr
	}
	if len(p.Choices) == 0 {
		return def, nil
	}
	answer := p.Choices[0]
	p.Choices = p.Choices[1:]
	return answer, nil
}
