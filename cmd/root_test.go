package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "scorebook dev (commit: none)\n", out.String())
}

func TestCommandsRegistered(t *testing.T) {
	root := NewRootCommand()
	for _, name := range []string{"serve", "migrate", "adduser", "token", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestAddUserRejectsShortPassword(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"adduser", "-u", "scorer", "-p", "short"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")
}
