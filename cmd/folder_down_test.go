package cmd

import (
	"testing"

	"github.com/penwyp/codeup/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolderDown(t *testing.T) {
	t.Run("default folder", func(t *testing.T) {
		h := newHarness(t)
		h.writeConfig(t, testConfig)

		require.NoError(t, h.run("folder", "down", "-n"))
		assert.Equal(t, [][]string{{
			"rsync", "-avz", "--human-readable",
			"my-app@deploy.eu2.frbit.com:web/assets/", "web/assets/",
		}}, h.runner.streams)
		assert.Contains(t, h.out.String(), "Rsync started")
	})

	t.Run("dry run with folder", func(t *testing.T) {
		h := newHarness(t)
		h.writeConfig(t, testConfig)

		require.NoError(t, h.run("folder", "down", "production", "./storage/uploads", "--dry-run", "-n"))
		assert.Equal(t, [][]string{{
			"rsync", "-avz", "--human-readable", "--dry-run",
			"my-app@deploy.eu2.frbit.com:storage/uploads/", "storage/uploads/",
		}}, h.runner.streams)
		assert.Contains(t, h.out.String(), "Rsync dry-run")
	})

	t.Run("declined", func(t *testing.T) {
		h := newHarness(t)
		h.writeConfig(t, testConfig)
		h.prompter.Confirms = []bool{false}

		err := h.run("folder", "down")
		assert.True(t, errors.Is(err, errors.ErrAborted))
		assert.Equal(t, 1, errors.ExitCodeFor(err))
		assert.Empty(t, h.runner.streams)
	})

	t.Run("rsync missing", func(t *testing.T) {
		h := newHarness(t)
		h.writeConfig(t, testConfig)
		delete(h.runner.versions, "rsync")

		err := h.run("folder", "down", "-n")
		assert.Equal(t, errors.ErrTypeConfig, errors.GetType(err))
		assert.Contains(t, errors.GetSuggestion(err), "install rsync")
		assert.Empty(t, h.runner.streams)
	})
}
