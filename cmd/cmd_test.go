// -- cmd/cmd_test.go --
package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolesCommand_ListsKnownRoles(t *testing.T) {
	var buf bytes.Buffer
	rolesCmd.SetOut(&buf)
	rolesCmd.Run(rolesCmd, nil)

	out := buf.String()
	for _, role := range []string{"like", "reply", "retweet", "follow", "home"} {
		assert.Contains(t, out, role)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, sortedLines(lines), "roles must be listed alphabetically")
}

func sortedLines(lines []string) bool {
	for i := 1; i < len(lines); i++ {
		if lines[i] < lines[i-1] {
			return false
		}
	}
	return true
}

func TestClickCommand_RequiresURL(t *testing.T) {
	flag := clickCmd.Flags().Lookup("url")
	require.NotNil(t, flag)
	assert.Equal(t, []string{"true"}, flag.Annotations[cobra.BashCompOneRequiredFlag])
}

func TestVersionIsSet(t *testing.T) {
	assert.NotEmpty(t, Version)
}
