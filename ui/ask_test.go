package ui

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func typeText(m *AskModel, text string) {
	for _, r := range text {
		m.Update(key(string(r)))
	}
}

func TestAskModel_TypedValue(t *testing.T) {
	m := NewAskModel("Describe your changes", "")
	typeText(m, "fix header")
	updated, cmd := m.Update(key("enter"))

	require.NotNil(t, cmd)
	require.Equal(t, "fix header", updated.(*AskModel).Value())
}

func TestAskModel_EmptyTakesDefault(t *testing.T) {
	m := NewAskModel("Describe your changes", "init Craft")
	updated, _ := m.Update(key("enter"))
	require.Equal(t, "init Craft", updated.(*AskModel).Value())
}

func TestAskModel_WhitespaceOnlyIsEmpty(t *testing.T) {
	m := NewAskModel("Describe your changes", "")
	typeText(m, "   ")
	updated, _ := m.Update(key("enter"))
	require.Equal(t, "", updated.(*AskModel).Value())
}

func TestAskModel_CtrlCReturnsEmpty(t *testing.T) {
	m := NewAskModel("Describe your changes", "init Craft")
	typeText(m, "half")
	updated, cmd := m.Update(key("ctrl+c"))

	require.NotNil(t, cmd)
	require.Equal(t, "", updated.(*AskModel).Value())
}
