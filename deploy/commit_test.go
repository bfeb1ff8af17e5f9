package deploy

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/penwyp/codeup/internal/errors"
	"github.com/penwyp/codeup/internal/git/gitfake"
	"github.com/penwyp/codeup/ui"
	"github.com/penwyp/codeup/ui/uitest"
	"github.com/penwyp/codeup/workcopy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestCommitter_Clean(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		fake := gitfake.New()
		prompter := &uitest.Prompter{Confirms: []bool{true}}
		c := NewCommitter(fake, prompter, ui.NewConsole(&bytes.Buffer{}), nil)

		msg, err := c.Commit(context.Background(), workcopy.Status{})
		require.NoError(t, err)
		assert.Equal(t, EmptyCommitMessage, msg)
		assert.Equal(t, []string{"confirm: About to push latest commits, proceed?"}, prompter.Asked)
		assert.False(t, fake.Called("commit"))
	})

	t.Run("declined is benign", func(t *testing.T) {
		fake := gitfake.New()
		prompter := &uitest.Prompter{Confirms: []bool{false}}
		c := NewCommitter(fake, prompter, ui.NewConsole(&bytes.Buffer{}), nil)

		_, err := c.Commit(context.Background(), workcopy.Status{})
		assert.True(t, errors.Is(err, errors.ErrDeclined))
		assert.Equal(t, 0, errors.ExitCodeFor(err))
	})

	t.Run("non-interactive proceeds", func(t *testing.T) {
		c := NewCommitter(gitfake.New(), &uitest.Prompter{NonInteractive: true}, ui.NewConsole(&bytes.Buffer{}), nil)

		msg, err := c.Commit(context.Background(), workcopy.Status{})
		require.NoError(t, err)
		assert.Equal(t, EmptyCommitMessage, msg)
	})
}

func TestCommitter_Dirty(t *testing.T) {
	dirty := workcopy.Status{Dirty: true, Text: " M index.php\n?? config/new.php\n"}

	t.Run("commits everything with the given message", func(t *testing.T) {
		fake := gitfake.New()
		fake.Dirty = []string{" M index.php"}
		var out bytes.Buffer
		prompter := &uitest.Prompter{Answers: []string{"  fix header  "}}

		msg, err := NewCommitter(fake, prompter, ui.NewConsole(&out), nil).Commit(context.Background(), dirty)
		require.NoError(t, err)
		assert.Equal(t, "fix header", msg)
		assert.Equal(t, []string{"add .", "commit -m fix header"}, fake.Calls)
		assert.Empty(t, fake.Dirty)
		assert.Contains(t, out.String(), "Uncommitted changes:")
		assert.Contains(t, out.String(), "?? config/new.php")
	})

	t.Run("empty message aborts", func(t *testing.T) {
		fake := gitfake.New()
		prompter := &uitest.Prompter{Answers: []string{"   "}}

		_, err := NewCommitter(fake, prompter, ui.NewConsole(&bytes.Buffer{}), nil).Commit(context.Background(), dirty)
		assert.True(t, errors.Is(err, errors.ErrCommitAborted))
		assert.Equal(t, 1, errors.ExitCodeFor(err))
		assert.Empty(t, fake.Calls)
	})

	t.Run("interactive default is empty", func(t *testing.T) {
		fake := gitfake.New()

		_, err := NewCommitter(fake, &uitest.Prompter{}, ui.NewConsole(&bytes.Buffer{}), nil).Commit(context.Background(), dirty)
		assert.True(t, errors.Is(err, errors.ErrCommitAborted))
	})

	t.Run("non-interactive default message", func(t *testing.T) {
		fake := gitfake.New()

		msg, err := NewCommitter(fake, &uitest.Prompter{NonInteractive: true}, ui.NewConsole(&bytes.Buffer{}), nil).Commit(context.Background(), dirty)
		require.NoError(t, err)
		assert.Equal(t, DefaultCommitMessage, msg)
		assert.Equal(t, []string{DefaultCommitMessage}, fake.Commits)
	})

	t.Run("commit failure", func(t *testing.T) {
		fake := gitfake.New()
		fake.CommitErr = errors.New(errors.ErrTypeGit, "nothing to commit")

		_, err := NewCommitter(fake, &uitest.Prompter{Answers: []string{"msg"}}, ui.NewConsole(&bytes.Buffer{}), nil).Commit(context.Background(), dirty)
		assert.Equal(t, errors.ErrTypeGit, errors.GetType(err))
	})
}
